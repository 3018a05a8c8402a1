package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadIris_SplitSizes(t *testing.T) {
	train, valid, err := LoadIris(0.2, 42)
	assert.NoError(t, err)
	assert.Equal(t, 120, train.Len())
	assert.Equal(t, 30, valid.Len())
}

func TestLoadIris_Stratified(t *testing.T) {
	_, valid, err := LoadIris(0.2, 42)
	assert.NoError(t, err)

	counts := map[int]int{}
	for _, label := range valid.Labels {
		counts[label]++
	}
	for label := 0; label < len(ClassNames); label++ {
		assert.Equal(t, 10, counts[label], "class %d", label)
	}
}

func TestLoadIris_Deterministic(t *testing.T) {
	trainA, validA, err := LoadIris(0.2, 42)
	assert.NoError(t, err)
	trainB, validB, err := LoadIris(0.2, 42)
	assert.NoError(t, err)

	assert.Equal(t, trainA.Features, trainB.Features)
	assert.Equal(t, trainA.Labels, trainB.Labels)
	assert.Equal(t, validA.Features, validB.Features)
	assert.Equal(t, validA.Labels, validB.Labels)
}

func TestLoadIris_SeedChangesSplit(t *testing.T) {
	trainA, _, err := LoadIris(0.2, 42)
	assert.NoError(t, err)
	trainB, _, err := LoadIris(0.2, 7)
	assert.NoError(t, err)

	assert.NotEqual(t, trainA.Features, trainB.Features)
}

func TestLoadIris_BadFraction(t *testing.T) {
	_, _, err := LoadIris(0, 42)
	assert.Error(t, err)
	_, _, err = LoadIris(1, 42)
	assert.Error(t, err)
}
