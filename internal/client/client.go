// Package client is the Go client for the mltrack tracking server, used by
// the CLI commands. Any transport or server failure is returned unmodified
// to the caller; the client performs no retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"mltrack/internal/adapters/primary/http/dto"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

func (c *Client) CreateExperiment(ctx context.Context, name string) (*dto.ExperimentResponse, error) {
	var resp dto.ExperimentResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/experiments", dto.CreateExperimentRequest{Name: name}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateRun(ctx context.Context, experimentID uuid.UUID, name string, params map[string]string) (*dto.RunResponse, error) {
	req := dto.CreateRunRequest{ExperimentID: experimentID, Name: name, Params: params}
	var resp dto.RunResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/runs", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) LatestRun(ctx context.Context, experiment string) (*dto.RunResponse, error) {
	path := "/api/v1/runs/latest?experiment=" + url.QueryEscape(experiment)
	var resp dto.RunResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) LogMetrics(ctx context.Context, runID uuid.UUID, values map[string]float64) error {
	path := fmt.Sprintf("/api/v1/runs/%s/metrics", runID)
	return c.do(ctx, http.MethodPost, path, dto.LogMetricsRequest{Metrics: values}, nil)
}

func (c *Client) LogArtifact(ctx context.Context, runID uuid.UUID, data []byte) (string, error) {
	path := fmt.Sprintf("/api/v1/runs/%s/artifact", runID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp dto.LogArtifactResponse
	if err := c.send(req, &resp); err != nil {
		return "", err
	}
	return resp.ArtifactURI, nil
}

func (c *Client) GetArtifact(ctx context.Context, runID uuid.UUID) ([]byte, error) {
	path := fmt.Sprintf("%s/api/v1/runs/%s/artifact", c.baseURL, runID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracking server request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) FinishRun(ctx context.Context, runID uuid.UUID, failed bool) error {
	path := fmt.Sprintf("/api/v1/runs/%s/finish", runID)
	return c.do(ctx, http.MethodPost, path, dto.FinishRunRequest{Failed: failed}, nil)
}

func (c *Client) Promote(ctx context.Context, modelName string, runID uuid.UUID, metric string, minImprove float64) (*dto.PromotionResponse, error) {
	path := fmt.Sprintf("/api/v1/models/%s/promote", url.PathEscape(modelName))
	req := dto.PromoteRequest{RunID: runID, Metric: metric, MinImprove: minImprove}
	var resp dto.PromotionResponse
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) LatestVersion(ctx context.Context, modelName string) (*dto.ModelVersionResponse, error) {
	path := fmt.Sprintf("/api/v1/models/%s/versions/latest", url.PathEscape(modelName))
	var resp dto.ModelVersionResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	log.WithFields(log.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	}).Debug("tracking server request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tracking server request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("tracking server: %s (status %d)", payload.Error, resp.StatusCode)
	}
	return fmt.Errorf("tracking server: status %d", resp.StatusCode)
}
