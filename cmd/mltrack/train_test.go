package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mltrack/internal/client"
)

func TestRunTrain_UnknownMetric(t *testing.T) {
	// metric validation happens before any server call, so an unreachable
	// address proves nothing was contacted
	cli := client.New("http://127.0.0.1:1", time.Second)

	err := runTrain(context.Background(), cli, []string{"--metric", "f1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `unknown metric "f1"`)
}
