package ml

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"math/rand"
	"strconv"
)

//go:embed iris.csv
var irisCSV []byte

// FeatureNames is the canonical iris feature order.
var FeatureNames = [4]string{"sepal_length", "sepal_width", "petal_length", "petal_width"}

// ClassNames maps a class index to its species name.
var ClassNames = [3]string{"setosa", "versicolor", "virginica"}

// Dataset holds one labeled partition: Features[i] is the feature vector for
// Labels[i].
type Dataset struct {
	Features [][]float64
	Labels   []int
}

func (d *Dataset) Len() int { return len(d.Labels) }

// LoadIris parses the embedded iris table and returns a stratified
// train/validation split. The split is deterministic for a given seed: each
// class is shuffled with its own derived seed and the tail testFrac of every
// class goes to the validation partition.
func LoadIris(testFrac float64, seed int64) (train, valid *Dataset, err error) {
	if testFrac <= 0 || testFrac >= 1 {
		return nil, nil, fmt.Errorf("test fraction %v outside (0, 1)", testFrac)
	}

	reader := csv.NewReader(bytes.NewReader(irisCSV))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse iris csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("iris csv is empty")
	}

	byClass := map[int]*Dataset{}
	for _, rec := range records[1:] {
		if len(rec) != 5 {
			return nil, nil, fmt.Errorf("iris csv row has %d columns, want 5", len(rec))
		}
		features := make([]float64, 4)
		for i := 0; i < 4; i++ {
			features[i], err = strconv.ParseFloat(rec[i], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("parse feature %s: %w", FeatureNames[i], err)
			}
		}
		label, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, nil, fmt.Errorf("parse label: %w", err)
		}
		if label < 0 || label >= len(ClassNames) {
			return nil, nil, fmt.Errorf("label %d out of range", label)
		}

		cls := byClass[label]
		if cls == nil {
			cls = &Dataset{}
			byClass[label] = cls
		}
		cls.Features = append(cls.Features, features)
		cls.Labels = append(cls.Labels, label)
	}

	train, valid = &Dataset{}, &Dataset{}
	for label := 0; label < len(ClassNames); label++ {
		cls := byClass[label]
		if cls == nil {
			continue
		}

		rng := rand.New(rand.NewSource(seed + int64(label)))
		perm := rng.Perm(cls.Len())

		nValid := int(float64(cls.Len()) * testFrac)
		if nValid < 1 {
			nValid = 1
		}
		cut := cls.Len() - nValid

		for i, j := range perm {
			dst := train
			if i >= cut {
				dst = valid
			}
			dst.Features = append(dst.Features, cls.Features[j])
			dst.Labels = append(dst.Labels, cls.Labels[j])
		}
	}
	return train, valid, nil
}
