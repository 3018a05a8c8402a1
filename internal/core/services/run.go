package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mltrack/internal/core/domain"
	ports "mltrack/internal/core/ports/output"
	"mltrack/internal/metrics"
)

type RunService struct {
	runs      ports.RunRepository
	exps      ports.ExperimentRepository
	artifacts ports.ArtifactStore
}

func NewRunService(runs ports.RunRepository, exps ports.ExperimentRepository, artifacts ports.ArtifactStore) *RunService {
	return &RunService{runs: runs, exps: exps, artifacts: artifacts}
}

func (s *RunService) Create(ctx context.Context, experimentID uuid.UUID, name string, params map[string]string) (*domain.Run, error) {
	if _, err := s.exps.GetByID(ctx, experimentID); err != nil {
		return nil, err
	}

	now := time.Now()
	if name == "" {
		name = "run-" + now.Format("20060102-150405")
	}
	if params == nil {
		params = map[string]string{}
	}

	run := &domain.Run{
		ID:           uuid.New(),
		ExperimentID: experimentID,
		Name:         name,
		Status:       domain.RunStatusRunning,
		Params:       params,
		Metrics:      map[string]float64{},
		StartedAt:    now,
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, err
	}

	metrics.RunsCreated.Inc()
	return run, nil
}

func (s *RunService) Get(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	return s.runs.GetByID(ctx, id)
}

func (s *RunService) Latest(ctx context.Context, experimentName string) (*domain.Run, error) {
	exp, err := s.exps.GetByName(ctx, experimentName)
	if err != nil {
		return nil, err
	}
	return s.runs.Latest(ctx, exp.ID)
}

func (s *RunService) List(ctx context.Context, filter ports.RunListFilter) ([]*domain.Run, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.runs.List(ctx, filter)
}

func (s *RunService) LogMetrics(ctx context.Context, id uuid.UUID, values map[string]float64) error {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if run.Status != domain.RunStatusRunning {
		return domain.ErrRunNotActive
	}
	if len(values) == 0 {
		return nil
	}
	return s.runs.LogMetrics(ctx, id, values)
}

// LogArtifact stores the model blob for a run and records its URI.
func (s *RunService) LogArtifact(ctx context.Context, id uuid.UUID, data []byte) (string, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if run.Status != domain.RunStatusRunning {
		return "", domain.ErrRunNotActive
	}

	key := fmt.Sprintf("runs/%s/model.json", id)
	uri, err := s.artifacts.Put(ctx, key, data)
	if err != nil {
		return "", err
	}
	if err := s.runs.SetArtifactURI(ctx, id, uri); err != nil {
		return "", err
	}
	return uri, nil
}

func (s *RunService) GetArtifact(ctx context.Context, id uuid.UUID) ([]byte, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run.ArtifactURI == "" {
		return nil, domain.ErrRunHasNoArtifact
	}
	key := fmt.Sprintf("runs/%s/model.json", id)
	return s.artifacts.Get(ctx, key)
}

func (s *RunService) Finish(ctx context.Context, id uuid.UUID, failed bool) error {
	status := domain.RunStatusFinished
	if failed {
		status = domain.RunStatusFailed
	}
	return s.runs.Finish(ctx, id, status)
}
