package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"mltrack/internal/client"
)

// runRegister asks the registry to promote the latest run of an experiment.
// A promotion skipped for insufficient improvement is a normal outcome and
// exits zero; only tracking-server failures are errors.
func runRegister(ctx context.Context, cli *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	experiment := fs.String("experiment", "iris-exp", "experiment name")
	metric := fs.String("metric", "f1_score", "metric compared against the registered version")
	minImprove := fs.Float64("min-improve", 0.0, "minimum improvement required to promote")
	modelName := fs.String("model-name", "iris-classifier", "registered model name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	run, err := cli.LatestRun(ctx, *experiment)
	if err != nil {
		return err
	}

	value, ok := run.Metrics[*metric]
	if !ok {
		return fmt.Errorf("metric %q not found on latest run %s", *metric, run.ID)
	}
	log.WithFields(log.Fields{
		"run_id": run.ID,
		"metric": *metric,
		"value":  value,
	}).Info("latest run")

	result, err := cli.Promote(ctx, *modelName, run.ID, *metric, *minImprove)
	if err != nil {
		return err
	}

	if !result.Promoted {
		fmt.Printf("promotion skipped: %s\n", result.Reason)
		return nil
	}

	fmt.Printf("registered model version: name=%s version=%d %s=%.4f\n",
		result.Version.ModelName, result.Version.Version, *metric, result.Version.MetricValue)
	return nil
}
