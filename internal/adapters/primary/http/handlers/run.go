package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"mltrack/internal/adapters/primary/http/dto"
	"mltrack/internal/core/domain"
	ports "mltrack/internal/core/ports/output"
)

// model artifacts are small JSON forests; cap uploads well above that
const maxArtifactSize = 32 << 20

func (h *Handler) CreateRun(c *gin.Context) {
	var req dto.CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := h.runSvc.Create(c.Request.Context(), req.ExperimentID, req.Name, req.Params)
	if err != nil {
		log.WithError(err).Error("create run failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRunResponse(run))
}

func (h *Handler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := h.runSvc.Get(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRunResponse(run))
}

// LatestRun returns the most recently started run of the named experiment.
func (h *Handler) LatestRun(c *gin.Context) {
	experiment := c.Query("experiment")
	if experiment == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidExperimentName.Error()})
		return
	}

	run, err := h.runSvc.Latest(c.Request.Context(), experiment)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRunResponse(run))
}

func (h *Handler) ListRuns(c *gin.Context) {
	experimentID, err := uuid.Parse(c.Query("experiment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid experiment id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := ports.RunListFilter{
		ExperimentID: experimentID,
		Status:       c.Query("status"),
		Limit:        limit,
		Offset:       offset,
	}

	runs, total, err := h.runSvc.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list runs failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.RunResponse, 0, len(runs))
	for _, run := range runs {
		items = append(items, dto.ToRunResponse(run))
	}

	c.JSON(http.StatusOK, dto.ListRunsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) LogMetrics(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	var req dto.LogMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.runSvc.LogMetrics(c.Request.Context(), id, req.Metrics); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) LogArtifact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxArtifactSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read artifact body: " + err.Error()})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "artifact body is empty"})
		return
	}

	uri, err := h.runSvc.LogArtifact(c.Request.Context(), id, data)
	if err != nil {
		log.WithError(err).Error("log artifact failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.LogArtifactResponse{ArtifactURI: uri})
}

func (h *Handler) GetArtifact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	data, err := h.runSvc.GetArtifact(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}

func (h *Handler) FinishRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	var req dto.FinishRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.runSvc.Finish(c.Request.Context(), id, req.Failed); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
