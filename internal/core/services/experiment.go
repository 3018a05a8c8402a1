package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"mltrack/internal/core/domain"
	ports "mltrack/internal/core/ports/output"
)

type ExperimentService struct {
	repo ports.ExperimentRepository
}

func NewExperimentService(repo ports.ExperimentRepository) *ExperimentService {
	return &ExperimentService{repo: repo}
}

func (s *ExperimentService) Create(ctx context.Context, name string) (*domain.Experiment, error) {
	if name == "" {
		return nil, domain.ErrInvalidExperimentName
	}

	exp := &domain.Experiment{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Name:      name,
	}
	if err := s.repo.Create(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

// GetOrCreate returns the experiment with the given name, creating it first
// if none exists. This mirrors how training jobs address experiments: by
// name, idempotently.
func (s *ExperimentService) GetOrCreate(ctx context.Context, name string) (*domain.Experiment, error) {
	exp, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return exp, nil
	}
	if !errors.Is(err, domain.ErrExperimentNotFound) {
		return nil, err
	}

	exp, err = s.Create(ctx, name)
	if errors.Is(err, domain.ErrExperimentNameConflict) {
		// lost a create race, the row exists now
		return s.repo.GetByName(ctx, name)
	}
	return exp, err
}

func (s *ExperimentService) GetByName(ctx context.Context, name string) (*domain.Experiment, error) {
	if name == "" {
		return nil, domain.ErrInvalidExperimentName
	}
	return s.repo.GetByName(ctx, name)
}

func (s *ExperimentService) List(ctx context.Context, limit, offset int) ([]*domain.Experiment, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, limit, offset)
}
