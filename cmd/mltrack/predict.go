package main

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"mltrack/internal/client"
	"mltrack/internal/ml"
	"mltrack/internal/schema"
)

// runPredict classifies one record with the latest registered model version.
// The record is validated before any artifact is fetched.
func runPredict(ctx context.Context, cli *client.Client, args []string) error {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	modelName := fs.String("model-name", "iris-classifier", "registered model name")
	sepalLength := fs.Float64("sepal-length", 0, "sepal length (cm)")
	sepalWidth := fs.Float64("sepal-width", 0, "sepal width (cm)")
	petalLength := fs.Float64("petal-length", 0, "petal length (cm)")
	petalWidth := fs.Float64("petal-width", 0, "petal width (cm)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	record := map[string]interface{}{}
	for _, name := range []string{"sepal-length", "sepal-width", "petal-length", "petal-width"} {
		if !fs.Changed(name) {
			return fmt.Errorf("flag --%s is required", name)
		}
	}
	record["sepal_length"] = *sepalLength
	record["sepal_width"] = *sepalWidth
	record["petal_length"] = *petalLength
	record["petal_width"] = *petalWidth

	input, err := schema.Parse(record)
	if err != nil {
		return err
	}

	version, err := cli.LatestVersion(ctx, *modelName)
	if err != nil {
		return err
	}

	data, err := cli.GetArtifact(ctx, version.RunID)
	if err != nil {
		return err
	}
	forest, err := ml.UnmarshalForest(data)
	if err != nil {
		return err
	}

	class, err := forest.Predict(input.Features())
	if err != nil {
		return err
	}

	label := fmt.Sprintf("%d", class)
	if class >= 0 && class < len(ml.ClassNames) {
		label = ml.ClassNames[class]
	}
	fmt.Printf("%d %s (model=%s version=%d)\n", class, label, version.ModelName, version.Version)
	return nil
}
