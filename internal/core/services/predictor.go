package services

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"mltrack/internal/core/domain"
	ports "mltrack/internal/core/ports/output"
	"mltrack/internal/metrics"
	"mltrack/internal/ml"
	"mltrack/internal/schema"
)

// PredictorService serves online predictions from the latest registered
// version of a model. Loaded forests are cached per version id, so repeated
// requests do not re-read the artifact store.
type PredictorService struct {
	registry  *RegistryService
	artifacts ports.ArtifactStore

	mu    sync.RWMutex
	cache map[string]*ml.Forest
}

type Prediction struct {
	ModelName string `json:"model_name"`
	Version   int    `json:"version"`
	Class     int    `json:"class"`
	Label     string `json:"label"`
}

func NewPredictorService(registry *RegistryService, artifacts ports.ArtifactStore) *PredictorService {
	return &PredictorService{
		registry:  registry,
		artifacts: artifacts,
		cache:     map[string]*ml.Forest{},
	}
}

// Predict validates the raw request, loads the model's latest registered
// version and classifies the record.
func (s *PredictorService) Predict(ctx context.Context, modelName string, raw map[string]interface{}) (*Prediction, error) {
	input, err := schema.Parse(raw)
	if err != nil {
		return nil, err
	}

	version, err := s.registry.LatestVersion(ctx, modelName)
	if err != nil {
		return nil, err
	}

	forest, err := s.loadForest(ctx, version)
	if err != nil {
		return nil, err
	}

	class, err := forest.Predict(input.Features())
	if err != nil {
		return nil, err
	}

	label := fmt.Sprintf("%d", class)
	if class >= 0 && class < len(ml.ClassNames) {
		label = ml.ClassNames[class]
	}

	metrics.PredictionsServed.WithLabelValues(modelName).Inc()
	log.WithFields(log.Fields{
		"model":   modelName,
		"version": version.Version,
		"class":   class,
	}).Debug("prediction served")

	return &Prediction{
		ModelName: modelName,
		Version:   version.Version,
		Class:     class,
		Label:     label,
	}, nil
}

func (s *PredictorService) loadForest(ctx context.Context, version *domain.ModelVersion) (*ml.Forest, error) {
	cacheKey := version.ID.String()
	s.mu.RLock()
	forest, ok := s.cache[cacheKey]
	s.mu.RUnlock()
	if ok {
		return forest, nil
	}

	key := fmt.Sprintf("runs/%s/model.json", version.RunID)
	data, err := s.artifacts.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	forest, err = ml.UnmarshalForest(data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[cacheKey] = forest
	s.mu.Unlock()
	return forest, nil
}
