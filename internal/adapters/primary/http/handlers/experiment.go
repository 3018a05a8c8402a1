package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"mltrack/internal/adapters/primary/http/dto"
	"mltrack/internal/core/domain"
)

func (h *Handler) CreateExperiment(c *gin.Context) {
	var req dto.CreateExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Creation is idempotent by name: training jobs address experiments
	// by name and expect to reuse an existing one.
	exp, err := h.expSvc.GetOrCreate(c.Request.Context(), req.Name)
	if err != nil {
		log.WithError(err).Error("create experiment failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExperimentResponse(exp))
}

func (h *Handler) GetExperimentByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidExperimentName.Error()})
		return
	}

	exp, err := h.expSvc.GetByName(c.Request.Context(), name)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExperimentResponse(exp))
}

func (h *Handler) ListExperiments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	exps, total, err := h.expSvc.List(c.Request.Context(), limit, offset)
	if err != nil {
		log.WithError(err).Error("list experiments failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ExperimentResponse, 0, len(exps))
	for _, exp := range exps {
		items = append(items, dto.ToExperimentResponse(exp))
	}

	c.JSON(http.StatusOK, dto.ListExperimentsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}
