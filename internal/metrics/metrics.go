package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mltrack_runs_created_total",
		Help: "Number of training runs created.",
	})

	Promotions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mltrack_promotions_total",
		Help: "Number of model versions promoted, per model.",
	}, []string{"model"})

	PromotionsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mltrack_promotions_skipped_total",
		Help: "Number of promotion attempts below the improvement margin, per model.",
	}, []string{"model"})

	PredictionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mltrack_predictions_total",
		Help: "Number of online predictions served, per model.",
	}, []string{"model"})
)
