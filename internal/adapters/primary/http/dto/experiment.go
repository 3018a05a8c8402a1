package dto

import (
	"time"

	"github.com/google/uuid"

	"mltrack/internal/core/domain"
)

type CreateExperimentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type ExperimentResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt string    `json:"created_at"`
	Name      string    `json:"name"`
}

type ListExperimentsResponse struct {
	Items      []ExperimentResponse `json:"items"`
	Total      int                  `json:"total"`
	PageSize   int                  `json:"page_size"`
	NextOffset int                  `json:"next_offset"`
}

func ToExperimentResponse(exp *domain.Experiment) ExperimentResponse {
	return ExperimentResponse{
		ID:        exp.ID,
		CreatedAt: exp.CreatedAt.Format(time.RFC3339),
		Name:      exp.Name,
	}
}
