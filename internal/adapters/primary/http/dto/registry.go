package dto

import (
	"time"

	"github.com/google/uuid"

	"mltrack/internal/core/domain"
	"mltrack/internal/core/services"
)

type PromoteRequest struct {
	RunID      uuid.UUID `json:"run_id" binding:"required"`
	Metric     string    `json:"metric" binding:"required"`
	MinImprove float64   `json:"min_improve" binding:"gte=0"`
}

type ModelVersionResponse struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   string    `json:"created_at"`
	ModelName   string    `json:"model_name"`
	Version     int       `json:"version"`
	Stage       string    `json:"stage"`
	RunID       uuid.UUID `json:"run_id"`
	ArtifactURI string    `json:"artifact_uri"`
	MetricName  string    `json:"metric_name"`
	MetricValue float64   `json:"metric_value"`
}

type PromotionResponse struct {
	Promoted bool                  `json:"promoted"`
	Reason   string                `json:"reason,omitempty"`
	Version  *ModelVersionResponse `json:"version,omitempty"`
}

type RegisteredModelResponse struct {
	ID            uuid.UUID             `json:"id"`
	CreatedAt     string                `json:"created_at"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	VersionCount  int                   `json:"version_count"`
	LatestVersion *ModelVersionResponse `json:"latest_version,omitempty"`
}

type ListModelsResponse struct {
	Items      []RegisteredModelResponse `json:"items"`
	Total      int                       `json:"total"`
	PageSize   int                       `json:"page_size"`
	NextOffset int                       `json:"next_offset"`
}

type ListVersionsResponse struct {
	Items      []ModelVersionResponse `json:"items"`
	Total      int                    `json:"total"`
	PageSize   int                    `json:"page_size"`
	NextOffset int                    `json:"next_offset"`
}

type PredictRequest struct {
	Record map[string]interface{} `json:"record" binding:"required"`
}

type PredictionResponse struct {
	ModelName string `json:"model_name"`
	Version   int    `json:"version"`
	Class     int    `json:"class"`
	Label     string `json:"label"`
}

func ToModelVersionResponse(v *domain.ModelVersion) ModelVersionResponse {
	return ModelVersionResponse{
		ID:          v.ID,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		ModelName:   v.ModelName,
		Version:     v.Version,
		Stage:       string(v.Stage),
		RunID:       v.RunID,
		ArtifactURI: v.ArtifactURI,
		MetricName:  v.MetricName,
		MetricValue: v.MetricValue,
	}
}

func ToPromotionResponse(result *domain.PromotionResult) PromotionResponse {
	resp := PromotionResponse{
		Promoted: result.Promoted,
		Reason:   result.Reason,
	}
	if result.Version != nil {
		v := ToModelVersionResponse(result.Version)
		resp.Version = &v
	}
	return resp
}

func ToRegisteredModelResponse(m *domain.RegisteredModel) RegisteredModelResponse {
	resp := RegisteredModelResponse{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
		Name:         m.Name,
		Description:  m.Description,
		VersionCount: m.VersionCount,
	}
	if m.LatestVersion != nil {
		v := ToModelVersionResponse(m.LatestVersion)
		resp.LatestVersion = &v
	}
	return resp
}

func ToPredictionResponse(p *services.Prediction) PredictionResponse {
	return PredictionResponse{
		ModelName: p.ModelName,
		Version:   p.Version,
		Class:     p.Class,
		Label:     p.Label,
	}
}
