package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clanhub/hunt-stats/internal/app"
	"github.com/clanhub/hunt-stats/internal/config"
	"github.com/clanhub/hunt-stats/internal/platform/logging"
	"github.com/clanhub/hunt-stats/internal/platform/progress"
	"github.com/clanhub/hunt-stats/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	var stageFlag string
	flag.StringVar(&stageFlag, "stage", string(usecase.StageAll),
		"pipeline stage to run: all, sheet, stats or derive")
	flag.Parse()

	stage, err := usecase.ParseStage(stageFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logs go to stderr; stdout belongs to the progress line.
	renderer := progress.NewRenderer(os.Stdout)
	report := func(u usecase.ProgressUpdate) {
		renderer.Render(u.Current, u.Total, u.Elapsed, u.Remaining)
	}

	pipeline := app.NewPipeline(cfg, logger, report)

	err = pipeline.Run(ctx, stage)
	renderer.Finish()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("pipeline interrupted", "stage", string(stage))
			return 130
		}
		logger.Error("pipeline run failed", "stage", string(stage), "error", err)
		return 1
	}

	logger.Info("pipeline completed", "stage", string(stage), "store", cfg.StorePath())
	return 0
}
