package domain

import "errors"

// ============================================================================
// Tracking Errors
// ============================================================================

var (
	ErrExperimentNotFound     = errors.New("experiment not found")
	ErrExperimentNameConflict = errors.New("experiment with this name already exists")
	ErrInvalidExperimentName  = errors.New("experiment name is required")
	ErrRunNotFound            = errors.New("run not found")
	ErrNoRuns                 = errors.New("experiment has no runs")
	ErrRunNotActive           = errors.New("run is not in RUNNING status")
	ErrMetricNotFound         = errors.New("metric not found on run")
)

// ============================================================================
// Registry Errors
// ============================================================================

var (
	ErrModelNotFound     = errors.New("registered model not found")
	ErrModelNameConflict = errors.New("model with this name already exists")
	ErrInvalidModelName  = errors.New("model name is required")
	ErrVersionNotFound   = errors.New("model version not found")
	ErrNoVersions        = errors.New("model has no registered versions")
	ErrArtifactNotFound  = errors.New("model artifact not found")
	ErrRunHasNoArtifact  = errors.New("run has no logged artifact")
)

// ============================================================================
// Registrar Validation Errors
// ============================================================================

var (
	ErrInvalidMetricName = errors.New("metric name is required")
	ErrInvalidMinImprove = errors.New("min improvement threshold must be >= 0")
	ErrMetricMismatch    = errors.New("metric does not match the registered version's metric")
)
