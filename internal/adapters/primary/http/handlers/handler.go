package handlers

import (
	"mltrack/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	expSvc       *services.ExperimentService
	runSvc       *services.RunService
	registrySvc  *services.RegistryService
	predictorSvc *services.PredictorService
}

func New(
	expSvc *services.ExperimentService,
	runSvc *services.RunService,
	registrySvc *services.RegistryService,
	predictorSvc *services.PredictorService,
) *Handler {
	return &Handler{
		expSvc:       expSvc,
		runSvc:       runSvc,
		registrySvc:  registrySvc,
		predictorSvc: predictorSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Experiments
	r.POST("/experiments", h.CreateExperiment)
	r.GET("/experiments", h.ListExperiments)
	r.GET("/experiment", h.GetExperimentByName)

	// Runs
	r.POST("/runs", h.CreateRun)
	r.GET("/runs", h.ListRuns)
	r.GET("/runs/latest", h.LatestRun)
	r.GET("/runs/:id", h.GetRun)
	r.POST("/runs/:id/metrics", h.LogMetrics)
	r.POST("/runs/:id/artifact", h.LogArtifact)
	r.GET("/runs/:id/artifact", h.GetArtifact)
	r.POST("/runs/:id/finish", h.FinishRun)

	// Registry
	r.GET("/models", h.ListModels)
	r.GET("/models/:name", h.GetModel)
	r.POST("/models/:name/promote", h.Promote)
	r.GET("/models/:name/versions", h.ListVersions)
	r.GET("/models/:name/versions/latest", h.LatestVersion)
	r.GET("/models/:name/versions/:number", h.GetVersion)

	// Online prediction
	r.POST("/models/:name/predict", h.Predict)
}
