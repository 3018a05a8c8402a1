package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClient_CreateExperiment(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/experiments", r.URL.Path)

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "iris-exp", body["name"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": id, "name": "iris-exp"})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	exp, err := c.CreateExperiment(context.Background(), "iris-exp")
	assert.NoError(t, err)
	assert.Equal(t, id, exp.ID)
	assert.Equal(t, "iris-exp", exp.Name)
}

func TestClient_LatestRun_QueryEscaped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/runs/latest", r.URL.Path)
		assert.Equal(t, "my exp", r.URL.Query().Get("experiment"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": uuid.New(), "name": "run-1", "status": "FINISHED"})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	run, err := c.LatestRun(context.Background(), "my exp")
	assert.NoError(t, err)
	assert.Equal(t, "run-1", run.Name)
}

func TestClient_LogArtifact_RawBody(t *testing.T) {
	runID := uuid.New()
	blob := []byte(`{"params":{},"trees":[]}`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/runs/"+runID.String()+"/artifact", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, blob, body)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"artifact_uri": "file:///tmp/a"})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	uri, err := c.LogArtifact(context.Background(), runID, blob)
	assert.NoError(t, err)
	assert.Equal(t, "file:///tmp/a", uri)
}

func TestClient_Promote(t *testing.T) {
	runID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/models/iris-classifier/promote", r.URL.Path)

		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, runID.String(), body["run_id"])
		assert.Equal(t, "f1_score", body["metric"])
		assert.Equal(t, 0.02, body["min_improve"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"promoted": true,
			"version":  map[string]interface{}{"version": 1, "stage": "LATEST"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	result, err := c.Promote(context.Background(), "iris-classifier", runID, "f1_score", 0.02)
	assert.NoError(t, err)
	assert.True(t, result.Promoted)
	assert.Equal(t, 1, result.Version.Version)
}

func TestClient_Promote_SkippedIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"promoted": false,
			"reason":   "f1_score=0.9100 does not improve on registered 0.9000 by margin 0.0200",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	result, err := c.Promote(context.Background(), "iris-classifier", uuid.New(), "f1_score", 0.02)
	assert.NoError(t, err)
	assert.False(t, result.Promoted)
	assert.NotEmpty(t, result.Reason)
}

func TestClient_ServerErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "model not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.LatestVersion(context.Background(), "nope")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
	assert.Contains(t, err.Error(), "404")
}

func TestClient_ConnectionRefused(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second)
	_, err := c.CreateExperiment(context.Background(), "iris-exp")
	assert.Error(t, err)
}
