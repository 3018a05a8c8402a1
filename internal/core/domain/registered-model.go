package domain

import (
	"time"

	"github.com/google/uuid"
)

type VersionStage string

const (
	VersionStageLatest     VersionStage = "LATEST"
	VersionStageSuperseded VersionStage = "SUPERSEDED"
)

type RegisteredModel struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Description string    `json:"description"`

	// Computed fields (populated by repository)
	VersionCount  int           `json:"version_count"`
	LatestVersion *ModelVersion `json:"latest_version,omitempty"`
}

// ModelVersion is a versioned pointer to one run's artifact. Version numbers
// are monotonically increasing per model name. Promotion supersedes the
// previous LATEST version; versions are never deleted.
type ModelVersion struct {
	ID          uuid.UUID    `json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	ModelID     uuid.UUID    `json:"model_id"`
	ModelName   string       `json:"model_name"`
	Version     int          `json:"version"`
	Stage       VersionStage `json:"stage"`
	RunID       uuid.UUID    `json:"run_id"`
	ArtifactURI string       `json:"artifact_uri"`
	MetricName  string       `json:"metric_name"`
	MetricValue float64      `json:"metric_value"`
}

// PromotionResult reports the outcome of a promotion attempt. A result with
// Promoted=false is a no-op, not an error: the candidate run simply did not
// clear the improvement margin over the current version.
type PromotionResult struct {
	Promoted bool          `json:"promoted"`
	Reason   string        `json:"reason,omitempty"`
	Version  *ModelVersion `json:"version,omitempty"`
}
