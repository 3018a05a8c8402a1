package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"mltrack/internal/client"
	"mltrack/internal/ml"
)

// searchGrid is the hyperparameter grid tried by --search.
var searchGrid = []ml.Hyperparams{
	{Trees: 100, MaxDepth: 5},
	{Trees: 150, MaxDepth: 3},
	{Trees: 200, MaxDepth: 4},
}

func runTrain(ctx context.Context, cli *client.Client, args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	experiment := fs.String("experiment", "iris-exp", "experiment name")
	trees := fs.Int("trees", 100, "number of trees in the forest")
	maxDepth := fs.Int("max-depth", 3, "maximum tree depth")
	seed := fs.Int64("seed", 42, "random seed for split and bagging")
	testFrac := fs.Float64("test-frac", 0.2, "validation fraction of the dataset")
	metric := fs.String("metric", "f1_score", "metric used to pick the best run with --search")
	search := fs.Bool("search", false, "train the whole hyperparameter grid and report the best run")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch *metric {
	case "accuracy", "f1_score":
	default:
		return fmt.Errorf("unknown metric %q (expected accuracy or f1_score)", *metric)
	}

	train, valid, err := ml.LoadIris(*testFrac, *seed)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	log.WithFields(log.Fields{"train": train.Len(), "valid": valid.Len()}).Info("dataset loaded")

	exp, err := cli.CreateExperiment(ctx, *experiment)
	if err != nil {
		return err
	}

	grid := []ml.Hyperparams{{Trees: *trees, MaxDepth: *maxDepth, Seed: *seed}}
	if *search {
		grid = make([]ml.Hyperparams, len(searchGrid))
		for i, params := range searchGrid {
			params.Seed = *seed
			grid[i] = params
		}
	}

	var (
		bestRunID string
		bestValue = -1.0
	)
	for _, params := range grid {
		run, err := cli.CreateRun(ctx, exp.ID, "", params.Map())
		if err != nil {
			return err
		}

		forest := ml.NewForest(params)
		if err := forest.Fit(train); err != nil {
			return fmt.Errorf("fit forest: %w", err)
		}

		predicted, err := forest.PredictBatch(valid.Features)
		if err != nil {
			return fmt.Errorf("predict validation set: %w", err)
		}
		eval, err := ml.Evaluate(predicted, valid.Labels)
		if err != nil {
			return fmt.Errorf("evaluate: %w", err)
		}

		if err := cli.LogMetrics(ctx, run.ID, eval.Metrics()); err != nil {
			return err
		}

		payload, err := forest.Marshal()
		if err != nil {
			return fmt.Errorf("serialize model: %w", err)
		}
		if _, err := cli.LogArtifact(ctx, run.ID, payload); err != nil {
			return err
		}
		if err := cli.FinishRun(ctx, run.ID, false); err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"run_id":    run.ID,
			"trees":     params.Trees,
			"max_depth": params.MaxDepth,
			"accuracy":  eval.Accuracy,
			"f1_score":  eval.MacroF1,
		}).Info("run finished")

		value := eval.Metrics()[*metric]
		if value > bestValue {
			bestValue = value
			bestRunID = run.ID.String()
		}
	}

	fmt.Printf("best run: %s  %s=%.4f\n", bestRunID, *metric, bestValue)
	return nil
}
