package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mltrack/internal/core/domain"
	"mltrack/internal/testutil"
)

func runFixtures() (*testutil.MockRunRepo, *testutil.MockExperimentRepo, *testutil.MockArtifactStore, *RunService) {
	runs := new(testutil.MockRunRepo)
	exps := new(testutil.MockExperimentRepo)
	artifacts := new(testutil.MockArtifactStore)
	return runs, exps, artifacts, NewRunService(runs, exps, artifacts)
}

func TestRunService_Create(t *testing.T) {
	runs, exps, _, svc := runFixtures()

	expID := uuid.New()
	exps.On("GetByID", mock.Anything, expID).Return(&domain.Experiment{ID: expID, Name: "iris-exp"}, nil)
	runs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Run")).Return(nil)

	run, err := svc.Create(context.Background(), expID, "", map[string]string{"n_estimators": "100"})
	assert.NoError(t, err)
	assert.Equal(t, expID, run.ExperimentID)
	assert.Equal(t, domain.RunStatusRunning, run.Status)
	assert.NotEmpty(t, run.Name)
	assert.Equal(t, "100", run.Params["n_estimators"])
	runs.AssertExpectations(t)
}

func TestRunService_Create_ExperimentNotFound(t *testing.T) {
	_, exps, _, svc := runFixtures()

	expID := uuid.New()
	exps.On("GetByID", mock.Anything, expID).Return(nil, domain.ErrExperimentNotFound)

	_, err := svc.Create(context.Background(), expID, "r1", nil)
	assert.ErrorIs(t, err, domain.ErrExperimentNotFound)
}

func TestRunService_Latest(t *testing.T) {
	runs, exps, _, svc := runFixtures()

	expID := uuid.New()
	latest := &domain.Run{ID: uuid.New(), ExperimentID: expID, Status: domain.RunStatusFinished, StartedAt: time.Now()}
	exps.On("GetByName", mock.Anything, "iris-exp").Return(&domain.Experiment{ID: expID, Name: "iris-exp"}, nil)
	runs.On("Latest", mock.Anything, expID).Return(latest, nil)

	run, err := svc.Latest(context.Background(), "iris-exp")
	assert.NoError(t, err)
	assert.Equal(t, latest.ID, run.ID)
}

func TestRunService_LogMetrics(t *testing.T) {
	runs, _, _, svc := runFixtures()

	id := uuid.New()
	runs.On("GetByID", mock.Anything, id).Return(&domain.Run{ID: id, Status: domain.RunStatusRunning}, nil)
	runs.On("LogMetrics", mock.Anything, id, map[string]float64{"accuracy": 0.97}).Return(nil)

	err := svc.LogMetrics(context.Background(), id, map[string]float64{"accuracy": 0.97})
	assert.NoError(t, err)
	runs.AssertExpectations(t)
}

func TestRunService_LogMetrics_FinishedRun(t *testing.T) {
	runs, _, _, svc := runFixtures()

	id := uuid.New()
	runs.On("GetByID", mock.Anything, id).Return(&domain.Run{ID: id, Status: domain.RunStatusFinished}, nil)

	err := svc.LogMetrics(context.Background(), id, map[string]float64{"accuracy": 0.97})
	assert.ErrorIs(t, err, domain.ErrRunNotActive)
	runs.AssertNotCalled(t, "LogMetrics", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunService_LogArtifact(t *testing.T) {
	runs, _, artifacts, svc := runFixtures()

	id := uuid.New()
	blob := []byte(`{"params":{}}`)
	key := "runs/" + id.String() + "/model.json"

	runs.On("GetByID", mock.Anything, id).Return(&domain.Run{ID: id, Status: domain.RunStatusRunning}, nil)
	artifacts.On("Put", mock.Anything, key, blob).Return("file:///tmp/artifacts/"+key, nil)
	runs.On("SetArtifactURI", mock.Anything, id, "file:///tmp/artifacts/"+key).Return(nil)

	uri, err := svc.LogArtifact(context.Background(), id, blob)
	assert.NoError(t, err)
	assert.Contains(t, uri, id.String())
	artifacts.AssertExpectations(t)
	runs.AssertExpectations(t)
}

func TestRunService_GetArtifact_NoneLogged(t *testing.T) {
	runs, _, _, svc := runFixtures()

	id := uuid.New()
	runs.On("GetByID", mock.Anything, id).Return(&domain.Run{ID: id, Status: domain.RunStatusFinished}, nil)

	_, err := svc.GetArtifact(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrRunHasNoArtifact)
}

func TestRunService_Finish(t *testing.T) {
	runs, _, _, svc := runFixtures()

	id := uuid.New()
	runs.On("Finish", mock.Anything, id, domain.RunStatusFinished).Return(nil)

	assert.NoError(t, svc.Finish(context.Background(), id, false))
	runs.AssertExpectations(t)
}

func TestRunService_Finish_Failed(t *testing.T) {
	runs, _, _, svc := runFixtures()

	id := uuid.New()
	runs.On("Finish", mock.Anything, id, domain.RunStatusFailed).Return(nil)

	assert.NoError(t, svc.Finish(context.Background(), id, true))
	runs.AssertExpectations(t)
}
