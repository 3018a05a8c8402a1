package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mltrack/internal/core/domain"
	"mltrack/internal/testutil"
)

func TestExperimentService_Create(t *testing.T) {
	repo := new(testutil.MockExperimentRepo)
	svc := NewExperimentService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Experiment")).Return(nil)

	exp, err := svc.Create(context.Background(), "iris-exp")
	assert.NoError(t, err)
	assert.Equal(t, "iris-exp", exp.Name)
	repo.AssertExpectations(t)
}

func TestExperimentService_Create_EmptyName(t *testing.T) {
	repo := new(testutil.MockExperimentRepo)
	svc := NewExperimentService(repo)

	_, err := svc.Create(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidExperimentName)
}

func TestExperimentService_GetOrCreate_Existing(t *testing.T) {
	repo := new(testutil.MockExperimentRepo)
	svc := NewExperimentService(repo)

	existing := &domain.Experiment{ID: uuid.New(), Name: "iris-exp"}
	repo.On("GetByName", mock.Anything, "iris-exp").Return(existing, nil)

	exp, err := svc.GetOrCreate(context.Background(), "iris-exp")
	assert.NoError(t, err)
	assert.Equal(t, existing.ID, exp.ID)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExperimentService_GetOrCreate_Creates(t *testing.T) {
	repo := new(testutil.MockExperimentRepo)
	svc := NewExperimentService(repo)

	repo.On("GetByName", mock.Anything, "iris-exp").Return(nil, domain.ErrExperimentNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Experiment")).Return(nil)

	exp, err := svc.GetOrCreate(context.Background(), "iris-exp")
	assert.NoError(t, err)
	assert.Equal(t, "iris-exp", exp.Name)
	repo.AssertExpectations(t)
}

func TestExperimentService_GetOrCreate_LostRace(t *testing.T) {
	repo := new(testutil.MockExperimentRepo)
	svc := NewExperimentService(repo)

	winner := &domain.Experiment{ID: uuid.New(), Name: "iris-exp"}
	repo.On("GetByName", mock.Anything, "iris-exp").Return(nil, domain.ErrExperimentNotFound).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Experiment")).Return(domain.ErrExperimentNameConflict)
	repo.On("GetByName", mock.Anything, "iris-exp").Return(winner, nil).Once()

	exp, err := svc.GetOrCreate(context.Background(), "iris-exp")
	assert.NoError(t, err)
	assert.Equal(t, winner.ID, exp.ID)
}

func TestExperimentService_List_ClampsLimit(t *testing.T) {
	repo := new(testutil.MockExperimentRepo)
	svc := NewExperimentService(repo)

	repo.On("List", mock.Anything, 100, 0).Return([]*domain.Experiment{}, 0, nil)

	_, _, err := svc.List(context.Background(), 500, 0)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
