package dto

import (
	"time"

	"github.com/google/uuid"

	"mltrack/internal/core/domain"
)

type CreateRunRequest struct {
	ExperimentID uuid.UUID         `json:"experiment_id" binding:"required"`
	Name         string            `json:"name"`
	Params       map[string]string `json:"params"`
}

type LogMetricsRequest struct {
	Metrics map[string]float64 `json:"metrics" binding:"required"`
}

type FinishRunRequest struct {
	Failed bool `json:"failed"`
}

type LogArtifactResponse struct {
	ArtifactURI string `json:"artifact_uri"`
}

type RunResponse struct {
	ID           uuid.UUID          `json:"id"`
	ExperimentID uuid.UUID          `json:"experiment_id"`
	Name         string             `json:"name"`
	Status       string             `json:"status"`
	Params       map[string]string  `json:"params"`
	Metrics      map[string]float64 `json:"metrics"`
	ArtifactURI  string             `json:"artifact_uri,omitempty"`
	StartedAt    string             `json:"started_at"`
	EndedAt      string             `json:"ended_at,omitempty"`
}

type ListRunsResponse struct {
	Items      []RunResponse `json:"items"`
	Total      int           `json:"total"`
	PageSize   int           `json:"page_size"`
	NextOffset int           `json:"next_offset"`
}

func ToRunResponse(run *domain.Run) RunResponse {
	resp := RunResponse{
		ID:           run.ID,
		ExperimentID: run.ExperimentID,
		Name:         run.Name,
		Status:       string(run.Status),
		Params:       run.Params,
		Metrics:      run.Metrics,
		ArtifactURI:  run.ArtifactURI,
		StartedAt:    run.StartedAt.Format(time.RFC3339),
	}
	if run.EndedAt != nil {
		resp.EndedAt = run.EndedAt.Format(time.RFC3339)
	}
	return resp
}
