package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// a trivially separable two-class set: feature 0 below 1.0 is class 0
func separable() ([][]float64, []int) {
	features := [][]float64{
		{0.1, 5}, {0.3, 2}, {0.5, 9}, {0.7, 1},
		{2.0, 4}, {2.2, 6}, {2.8, 3}, {3.0, 7},
	}
	labels := []int{0, 0, 0, 0, 1, 1, 1, 1}
	return features, labels
}

func TestDecisionTree_FitSeparable(t *testing.T) {
	features, labels := separable()
	var tree DecisionTree
	assert.NoError(t, tree.Fit(features, labels, 3))

	for i, row := range features {
		label, err := tree.Predict(row)
		assert.NoError(t, err)
		assert.Equal(t, labels[i], label, "row %d", i)
	}
}

func TestDecisionTree_PredictUnseen(t *testing.T) {
	features, labels := separable()
	var tree DecisionTree
	assert.NoError(t, tree.Fit(features, labels, 3))

	label, err := tree.Predict([]float64{0.2, 100})
	assert.NoError(t, err)
	assert.Equal(t, 0, label)

	label, err = tree.Predict([]float64{5.0, -3})
	assert.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestDecisionTree_DepthOneIsStump(t *testing.T) {
	features, labels := separable()
	var tree DecisionTree
	assert.NoError(t, tree.Fit(features, labels, 1))

	// a stump is one split node and two leaves
	assert.Len(t, tree.Nodes, 3)
}

func TestDecisionTree_PureInputIsLeaf(t *testing.T) {
	features := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	labels := []int{1, 1, 1}
	var tree DecisionTree
	assert.NoError(t, tree.Fit(features, labels, 5))

	assert.Len(t, tree.Nodes, 1)
	label, err := tree.Predict([]float64{9, 9})
	assert.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestDecisionTree_FitErrors(t *testing.T) {
	var tree DecisionTree

	err := tree.Fit(nil, nil, 3)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	err = tree.Fit([][]float64{{1}}, []int{0, 1}, 3)
	assert.ErrorIs(t, err, ErrSizeMismatch)

	err = tree.Fit([][]float64{{1}}, []int{-2}, 3)
	assert.ErrorIs(t, err, ErrInvalidLabels)
}

func TestDecisionTree_PredictBeforeFit(t *testing.T) {
	var tree DecisionTree
	_, err := tree.Predict([]float64{1, 2})
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestGini(t *testing.T) {
	assert.Equal(t, 0.0, gini([]int{1, 1, 1}))
	assert.InDelta(t, 0.5, gini([]int{0, 1, 0, 1}), 1e-9)
}

func TestMajorityLabel_TiesToSmallerIndex(t *testing.T) {
	assert.Equal(t, 0, majorityLabel([]int{1, 0, 1, 0}))
	assert.Equal(t, 2, majorityLabel([]int{2, 2, 1}))
}
