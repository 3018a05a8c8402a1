// Command mltrack is the workflow CLI: train models against the tracking
// server, evaluate the latest run, register it in the model registry, and
// predict with the latest registered version.
package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"mltrack/internal/client"
	"mltrack/internal/config"
)

const usage = `usage: mltrack <command> [flags]

commands:
  train      train the iris classifier and log the run(s)
  evaluate   re-evaluate the latest run's artifact
  register   promote the latest run to the model registry
  predict    classify one record with the latest registered model

environment:
  TRACKING_URL      tracking server base URL (default http://localhost:8080)
  TRACKING_TIMEOUT  request timeout (default 30s)
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	initLogger(cfg)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cli := client.New(cfg.Tracking.URL, cfg.Tracking.Timeout)
	ctx := context.Background()

	switch os.Args[1] {
	case "train":
		err = runTrain(ctx, cli, os.Args[2:])
	case "evaluate":
		err = runEvaluate(ctx, cli, os.Args[2:])
	case "register":
		err = runRegister(ctx, cli, os.Args[2:])
	case "predict":
		err = runPredict(ctx, cli, os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	// Tracking/registry failures are fatal: no local recovery or retry.
	if err != nil {
		log.Fatal(err)
	}
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
