package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"mltrack/internal/client"
	"mltrack/internal/ml"
)

// runEvaluate re-scores the latest run's artifact against the validation
// partition. The split parameters are taken from the run itself, so scoring
// the same artifact twice yields identical metrics.
func runEvaluate(ctx context.Context, cli *client.Client, args []string) error {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	experiment := fs.String("experiment", "iris-exp", "experiment name")
	testFrac := fs.Float64("test-frac", 0.2, "validation fraction of the dataset")
	out := fs.String("out", "artifacts/classification_report.txt", "classification report path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	run, err := cli.LatestRun(ctx, *experiment)
	if err != nil {
		return err
	}

	data, err := cli.GetArtifact(ctx, run.ID)
	if err != nil {
		return err
	}
	forest, err := ml.UnmarshalForest(data)
	if err != nil {
		return err
	}

	seed := forest.Params.Seed
	if s, ok := run.Params["seed"]; ok {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			seed = parsed
		}
	}

	_, valid, err := ml.LoadIris(*testFrac, seed)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	predicted, err := forest.PredictBatch(valid.Features)
	if err != nil {
		return fmt.Errorf("predict validation set: %w", err)
	}
	eval, err := ml.Evaluate(predicted, valid.Labels)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	report := eval.Report(ml.ClassNames[:])
	fmt.Print(report)

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(*out, []byte(report), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	log.WithFields(log.Fields{
		"run_id":   run.ID,
		"accuracy": eval.Accuracy,
		"f1_score": eval.MacroF1,
		"report":   *out,
	}).Info("evaluation finished")
	return nil
}
