package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"mltrack/internal/core/domain"
	ports "mltrack/internal/core/ports/output"
	"mltrack/internal/metrics"
)

// RegistryService owns the promotion policy: a run is promoted to a model
// name only when its metric beats the currently registered version's metric
// by at least the caller's margin.
type RegistryService struct {
	models   ports.RegisteredModelRepository
	versions ports.ModelVersionRepository
	runs     ports.RunRepository
}

func NewRegistryService(models ports.RegisteredModelRepository, versions ports.ModelVersionRepository, runs ports.RunRepository) *RegistryService {
	return &RegistryService{models: models, versions: versions, runs: runs}
}

// Promote compares the run's value for metricName against the current LATEST
// version of modelName and registers a new version when
//
//	new >= current + minImprove
//
// The bound is inclusive: a run that exactly meets the margin is promoted.
// With no version registered yet the run is promoted unconditionally. A
// candidate below the margin yields Promoted=false with a reason, not an
// error.
func (s *RegistryService) Promote(ctx context.Context, modelName string, runID uuid.UUID, metricName string, minImprove float64) (*domain.PromotionResult, error) {
	if modelName == "" {
		return nil, domain.ErrInvalidModelName
	}
	if metricName == "" {
		return nil, domain.ErrInvalidMetricName
	}
	if minImprove < 0 {
		return nil, domain.ErrInvalidMinImprove
	}

	run, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	newValue, ok := run.Metrics[metricName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMetricNotFound, metricName)
	}
	if run.ArtifactURI == "" {
		return nil, domain.ErrRunHasNoArtifact
	}

	model, err := s.getOrCreateModel(ctx, modelName)
	if err != nil {
		return nil, err
	}

	current, err := s.versions.Latest(ctx, model.ID)
	if err != nil && !errors.Is(err, domain.ErrNoVersions) {
		return nil, err
	}

	if current != nil {
		// Comparing different metrics would make the margin meaningless.
		if current.MetricName != metricName {
			return nil, fmt.Errorf("%w: candidate %s, registered %s",
				domain.ErrMetricMismatch, metricName, current.MetricName)
		}
		required := current.MetricValue + minImprove
		if newValue < required {
			metrics.PromotionsSkipped.WithLabelValues(modelName).Inc()
			log.WithFields(log.Fields{
				"model":       modelName,
				"run_id":      runID,
				"metric":      metricName,
				"new_value":   newValue,
				"current":     current.MetricValue,
				"min_improve": minImprove,
			}).Info("promotion skipped: below improvement margin")
			return &domain.PromotionResult{
				Promoted: false,
				Reason: fmt.Sprintf("%s=%.4f does not improve on registered %.4f by margin %.4f",
					metricName, newValue, current.MetricValue, minImprove),
			}, nil
		}
	}

	number, err := s.versions.NextVersionNumber(ctx, model.ID)
	if err != nil {
		return nil, err
	}

	version := &domain.ModelVersion{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		ModelID:     model.ID,
		ModelName:   model.Name,
		Version:     number,
		Stage:       domain.VersionStageLatest,
		RunID:       runID,
		ArtifactURI: run.ArtifactURI,
		MetricName:  metricName,
		MetricValue: newValue,
	}
	if err := s.versions.Create(ctx, version); err != nil {
		return nil, err
	}

	metrics.Promotions.WithLabelValues(modelName).Inc()
	log.WithFields(log.Fields{
		"model":   modelName,
		"version": number,
		"run_id":  runID,
		"metric":  metricName,
		"value":   newValue,
	}).Info("model version promoted")

	return &domain.PromotionResult{Promoted: true, Version: version}, nil
}

func (s *RegistryService) GetModel(ctx context.Context, name string) (*domain.RegisteredModel, error) {
	if name == "" {
		return nil, domain.ErrInvalidModelName
	}
	return s.models.GetByName(ctx, name)
}

func (s *RegistryService) ListModels(ctx context.Context, limit, offset int) ([]*domain.RegisteredModel, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.models.List(ctx, limit, offset)
}

// LatestVersion returns the current LATEST version for a model name.
func (s *RegistryService) LatestVersion(ctx context.Context, modelName string) (*domain.ModelVersion, error) {
	model, err := s.GetModel(ctx, modelName)
	if err != nil {
		return nil, err
	}
	return s.versions.Latest(ctx, model.ID)
}

func (s *RegistryService) GetVersion(ctx context.Context, modelName string, number int) (*domain.ModelVersion, error) {
	model, err := s.GetModel(ctx, modelName)
	if err != nil {
		return nil, err
	}
	return s.versions.GetByNumber(ctx, model.ID, number)
}

func (s *RegistryService) ListVersions(ctx context.Context, modelName string, limit, offset int) ([]*domain.ModelVersion, int, error) {
	model, err := s.GetModel(ctx, modelName)
	if err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.versions.ListByModel(ctx, model.ID, limit, offset)
}

func (s *RegistryService) getOrCreateModel(ctx context.Context, name string) (*domain.RegisteredModel, error) {
	model, err := s.models.GetByName(ctx, name)
	if err == nil {
		return model, nil
	}
	if !errors.Is(err, domain.ErrModelNotFound) {
		return nil, err
	}

	model = &domain.RegisteredModel{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Name:      name,
	}
	if err := s.models.Create(ctx, model); err != nil {
		if errors.Is(err, domain.ErrModelNameConflict) {
			return s.models.GetByName(ctx, name)
		}
		return nil, err
	}
	return model, nil
}
