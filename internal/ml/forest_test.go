package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func irisForest(t *testing.T, params Hyperparams) (*Forest, *Dataset) {
	t.Helper()
	train, valid, err := LoadIris(0.2, 42)
	assert.NoError(t, err)
	forest := NewForest(params)
	assert.NoError(t, forest.Fit(train))
	return forest, valid
}

func TestNewForest_Defaults(t *testing.T) {
	forest := NewForest(Hyperparams{})
	assert.Equal(t, 100, forest.Params.Trees)
	assert.Equal(t, 3, forest.Params.MaxDepth)
}

func TestForest_FitAndAccuracy(t *testing.T) {
	forest, valid := irisForest(t, Hyperparams{Trees: 50, MaxDepth: 3, Seed: 42})

	predicted, err := forest.PredictBatch(valid.Features)
	assert.NoError(t, err)

	eval, err := Evaluate(predicted, valid.Labels)
	assert.NoError(t, err)
	// iris is nearly separable, a forest should do far better than chance
	assert.Greater(t, eval.Accuracy, 0.85)
}

func TestForest_DeterministicForSeed(t *testing.T) {
	a, valid := irisForest(t, Hyperparams{Trees: 20, MaxDepth: 3, Seed: 7})
	b, _ := irisForest(t, Hyperparams{Trees: 20, MaxDepth: 3, Seed: 7})

	predA, err := a.PredictBatch(valid.Features)
	assert.NoError(t, err)
	predB, err := b.PredictBatch(valid.Features)
	assert.NoError(t, err)
	assert.Equal(t, predA, predB)
}

func TestForest_MarshalRoundTrip(t *testing.T) {
	forest, valid := irisForest(t, Hyperparams{Trees: 20, MaxDepth: 3, Seed: 42})

	blob, err := forest.Marshal()
	assert.NoError(t, err)

	restored, err := UnmarshalForest(blob)
	assert.NoError(t, err)
	assert.Equal(t, forest.Params, restored.Params)

	want, err := forest.PredictBatch(valid.Features)
	assert.NoError(t, err)
	got, err := restored.PredictBatch(valid.Features)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestForest_PredictBeforeFit(t *testing.T) {
	forest := NewForest(Hyperparams{})
	_, err := forest.Predict([]float64{5.1, 3.5, 1.4, 0.2})
	assert.ErrorIs(t, err, ErrNotTrained)
	_, err = forest.Marshal()
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestForest_FitEmpty(t *testing.T) {
	forest := NewForest(Hyperparams{Trees: 5})
	assert.ErrorIs(t, forest.Fit(&Dataset{}), ErrEmptyDataset)
}

func TestUnmarshalForest_Garbage(t *testing.T) {
	_, err := UnmarshalForest([]byte("not json"))
	assert.Error(t, err)

	_, err = UnmarshalForest([]byte(`{"params":{},"trees":[]}`))
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestHyperparams_Map(t *testing.T) {
	m := Hyperparams{Trees: 150, MaxDepth: 4, Seed: 42}.Map()
	assert.Equal(t, map[string]string{"trees": "150", "max_depth": "4", "seed": "42"}, m)
}
