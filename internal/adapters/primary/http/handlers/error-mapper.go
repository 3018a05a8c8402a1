package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mltrack/internal/core/domain"
	"mltrack/internal/schema"
)

func mapDomainError(c *gin.Context, err error) {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
		return
	}

	switch {
	// Not found errors
	case errors.Is(err, domain.ErrExperimentNotFound),
		errors.Is(err, domain.ErrRunNotFound),
		errors.Is(err, domain.ErrNoRuns),
		errors.Is(err, domain.ErrModelNotFound),
		errors.Is(err, domain.ErrVersionNotFound),
		errors.Is(err, domain.ErrNoVersions),
		errors.Is(err, domain.ErrArtifactNotFound),
		errors.Is(err, domain.ErrMetricNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Conflict errors
	case errors.Is(err, domain.ErrExperimentNameConflict),
		errors.Is(err, domain.ErrModelNameConflict),
		errors.Is(err, domain.ErrRunNotActive),
		errors.Is(err, domain.ErrMetricMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidExperimentName),
		errors.Is(err, domain.ErrInvalidModelName),
		errors.Is(err, domain.ErrInvalidMetricName),
		errors.Is(err, domain.ErrInvalidMinImprove),
		errors.Is(err, domain.ErrRunHasNoArtifact):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
