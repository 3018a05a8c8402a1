package ml

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// Hyperparams are the tunable knobs of the forest trainer. String keys in
// run params use the same names ("trees", "max_depth", "seed").
type Hyperparams struct {
	Trees    int   `json:"trees"`
	MaxDepth int   `json:"max_depth"`
	Seed     int64 `json:"seed"`
}

func (h Hyperparams) Map() map[string]string {
	return map[string]string{
		"trees":     fmt.Sprintf("%d", h.Trees),
		"max_depth": fmt.Sprintf("%d", h.MaxDepth),
		"seed":      fmt.Sprintf("%d", h.Seed),
	}
}

// Forest is a random forest classifier: bagged CART trees with majority
// vote. Training is deterministic for a given seed.
type Forest struct {
	Params Hyperparams    `json:"params"`
	Trees  []DecisionTree `json:"trees"`
}

func NewForest(params Hyperparams) *Forest {
	if params.Trees <= 0 {
		params.Trees = 100
	}
	if params.MaxDepth <= 0 {
		params.MaxDepth = 3
	}
	return &Forest{Params: params}
}

func (f *Forest) Fit(train *Dataset) error {
	if train == nil || train.Len() == 0 {
		return ErrEmptyDataset
	}

	rng := rand.New(rand.NewSource(f.Params.Seed))
	f.Trees = make([]DecisionTree, f.Params.Trees)

	n := train.Len()
	for t := range f.Trees {
		features := make([][]float64, n)
		labels := make([]int, n)
		for i := 0; i < n; i++ {
			j := rng.Intn(n)
			features[i] = train.Features[j]
			labels[i] = train.Labels[j]
		}
		if err := f.Trees[t].Fit(features, labels, f.Params.MaxDepth); err != nil {
			return fmt.Errorf("fit tree %d: %w", t, err)
		}
	}
	return nil
}

// Predict returns the majority-vote class index. Vote ties resolve to the
// smaller class index, so prediction is deterministic.
func (f *Forest) Predict(features []float64) (int, error) {
	if len(f.Trees) == 0 {
		return 0, ErrNotTrained
	}

	votes := map[int]int{}
	for i := range f.Trees {
		label, err := f.Trees[i].Predict(features)
		if err != nil {
			return 0, err
		}
		votes[label]++
	}

	best, bestVotes := 0, -1
	for label, count := range votes {
		if count > bestVotes || (count == bestVotes && label < best) {
			best, bestVotes = label, count
		}
	}
	return best, nil
}

func (f *Forest) PredictBatch(features [][]float64) ([]int, error) {
	out := make([]int, len(features))
	for i, row := range features {
		label, err := f.Predict(row)
		if err != nil {
			return nil, err
		}
		out[i] = label
	}
	return out, nil
}

// Marshal serializes the trained forest as the run artifact payload.
func (f *Forest) Marshal() ([]byte, error) {
	if len(f.Trees) == 0 {
		return nil, ErrNotTrained
	}
	return json.Marshal(f)
}

func UnmarshalForest(data []byte) (*Forest, error) {
	var f Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal forest: %w", err)
	}
	if len(f.Trees) == 0 {
		return nil, ErrNotTrained
	}
	return &f, nil
}
