package ports

import (
	"context"

	"github.com/google/uuid"

	"mltrack/internal/core/domain"
)

type RunListFilter struct {
	ExperimentID uuid.UUID
	Status       string
	Limit        int
	Offset       int
}

type ExperimentRepository interface {
	Create(ctx context.Context, exp *domain.Experiment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Experiment, error)
	GetByName(ctx context.Context, name string) (*domain.Experiment, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Experiment, int, error)
}

type RunRepository interface {
	Create(ctx context.Context, run *domain.Run) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Run, error)
	// Latest returns the most recently started run of an experiment.
	Latest(ctx context.Context, experimentID uuid.UUID) (*domain.Run, error)
	List(ctx context.Context, filter RunListFilter) ([]*domain.Run, int, error)
	LogMetrics(ctx context.Context, id uuid.UUID, metrics map[string]float64) error
	SetArtifactURI(ctx context.Context, id uuid.UUID, uri string) error
	Finish(ctx context.Context, id uuid.UUID, status domain.RunStatus) error
}

type RegisteredModelRepository interface {
	Create(ctx context.Context, model *domain.RegisteredModel) error
	GetByName(ctx context.Context, name string) (*domain.RegisteredModel, error)
	List(ctx context.Context, limit, offset int) ([]*domain.RegisteredModel, int, error)
}

type ModelVersionRepository interface {
	// Create inserts the version and marks the previous LATEST version of the
	// same model SUPERSEDED in one transaction.
	Create(ctx context.Context, version *domain.ModelVersion) error
	Latest(ctx context.Context, modelID uuid.UUID) (*domain.ModelVersion, error)
	GetByNumber(ctx context.Context, modelID uuid.UUID, number int) (*domain.ModelVersion, error)
	ListByModel(ctx context.Context, modelID uuid.UUID, limit, offset int) ([]*domain.ModelVersion, int, error)
	NextVersionNumber(ctx context.Context, modelID uuid.UUID) (int, error)
}
