package ml

import (
	"errors"
	"math"
	"sort"
)

// DecisionTree is a CART classifier stored as a flat node slice. Node 0 is
// the root; children are addressed by slice index, so the trained tree
// round-trips through JSON without pointer fixups.
type DecisionTree struct {
	Nodes []TreeNode `json:"nodes"`
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	Left       int     `json:"left"`
	Right      int     `json:"right"`
	Label      int     `json:"label"`
	IsLeaf     bool    `json:"is_leaf"`
}

var (
	ErrNotTrained    = errors.New("model not trained")
	ErrEmptyDataset  = errors.New("dataset is empty")
	ErrSizeMismatch  = errors.New("features and labels size mismatch")
	ErrFeatureWidth  = errors.New("feature vector width mismatch")
	ErrInvalidLabels = errors.New("labels contain negative class index")
)

func (t *DecisionTree) Fit(features [][]float64, labels []int, maxDepth int) error {
	if len(features) == 0 || len(labels) == 0 {
		return ErrEmptyDataset
	}
	if len(features) != len(labels) {
		return ErrSizeMismatch
	}
	for _, l := range labels {
		if l < 0 {
			return ErrInvalidLabels
		}
	}
	if maxDepth <= 0 {
		maxDepth = 3
	}

	t.Nodes = buildSubtree(features, labels, 0, maxDepth)
	return nil
}

func (t *DecisionTree) Predict(features []float64) (int, error) {
	if len(t.Nodes) == 0 {
		return 0, ErrNotTrained
	}
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.IsLeaf {
			return node.Label, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, ErrFeatureWidth
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx <= 0 || idx >= len(t.Nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
}

func buildSubtree(features [][]float64, labels []int, depth, maxDepth int) []TreeNode {
	label := majorityLabel(labels)
	leaf := []TreeNode{{FeatureIdx: -1, Left: -1, Right: -1, Label: label, IsLeaf: true}}

	if depth >= maxDepth || isPure(labels) {
		return leaf
	}

	feature, threshold, ok := bestSplit(features, labels)
	if !ok {
		return leaf
	}

	var (
		leftFeatures, rightFeatures [][]float64
		leftLabels, rightLabels     []int
	)
	for i, f := range features {
		if f[feature] <= threshold {
			leftFeatures = append(leftFeatures, f)
			leftLabels = append(leftLabels, labels[i])
		} else {
			rightFeatures = append(rightFeatures, f)
			rightLabels = append(rightLabels, labels[i])
		}
	}
	if len(leftLabels) == 0 || len(rightLabels) == 0 {
		return leaf
	}

	left := buildSubtree(leftFeatures, leftLabels, depth+1, maxDepth)
	right := buildSubtree(rightFeatures, rightLabels, depth+1, maxDepth)

	nodes := make([]TreeNode, 0, 1+len(left)+len(right))
	nodes = append(nodes, TreeNode{
		FeatureIdx: feature,
		Threshold:  threshold,
		Left:       1,
		Right:      1 + len(left),
		Label:      label,
	})
	// child indices inside a subtree are relative to its own slice
	nodes = appendShifted(nodes, left, 1)
	nodes = appendShifted(nodes, right, 1+len(left))
	return nodes
}

func appendShifted(dst, subtree []TreeNode, offset int) []TreeNode {
	for _, n := range subtree {
		if !n.IsLeaf {
			n.Left += offset
			n.Right += offset
		}
		dst = append(dst, n)
	}
	return dst
}

// bestSplit scans every feature and every midpoint between adjacent distinct
// values, minimizing weighted gini impurity. Deterministic: ties keep the
// first candidate found.
func bestSplit(features [][]float64, labels []int) (int, float64, bool) {
	width := len(features[0])
	bestFeature := -1
	bestThreshold := 0.0
	bestImpurity := math.MaxFloat64

	for f := 0; f < width; f++ {
		values := make([]float64, len(features))
		for i := range features {
			values[i] = features[i][f]
		}
		sort.Float64s(values)

		for i := 1; i < len(values); i++ {
			if values[i] == values[i-1] {
				continue
			}
			threshold := (values[i] + values[i-1]) / 2

			var leftLabels, rightLabels []int
			for j, row := range features {
				if row[f] <= threshold {
					leftLabels = append(leftLabels, labels[j])
				} else {
					rightLabels = append(rightLabels, labels[j])
				}
			}
			if len(leftLabels) == 0 || len(rightLabels) == 0 {
				continue
			}

			impurity := weightedGini(leftLabels, rightLabels)
			if impurity < bestImpurity {
				bestImpurity = impurity
				bestFeature = f
				bestThreshold = threshold
			}
		}
	}
	if bestFeature == -1 {
		return -1, 0, false
	}
	return bestFeature, bestThreshold, true
}

func weightedGini(left, right []int) float64 {
	lw := float64(len(left))
	rw := float64(len(right))
	total := lw + rw
	return (lw/total)*gini(left) + (rw/total)*gini(right)
}

func gini(labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}
	counts := map[int]int{}
	for _, l := range labels {
		counts[l]++
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(len(labels))
		impurity -= p * p
	}
	return impurity
}

func majorityLabel(labels []int) int {
	counts := map[int]int{}
	for _, l := range labels {
		counts[l]++
	}
	best, bestCount := 0, -1
	for l, c := range counts {
		if c > bestCount || (c == bestCount && l < best) {
			best, bestCount = l, c
		}
	}
	return best
}

func isPure(labels []int) bool {
	for _, l := range labels[1:] {
		if l != labels[0] {
			return false
		}
	}
	return true
}
