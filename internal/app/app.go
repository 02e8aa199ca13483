package app

import (
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/clanhub/hunt-stats/external/gsheets"
	"github.com/clanhub/hunt-stats/external/wiseoldman"
	"github.com/clanhub/hunt-stats/internal/config"
	"github.com/clanhub/hunt-stats/internal/infrastructure/repository/jsonfile"
	"github.com/clanhub/hunt-stats/internal/platform/logging"
	"github.com/clanhub/hunt-stats/internal/platform/resilience"
	"github.com/clanhub/hunt-stats/internal/usecase"
)

// NewPipeline assembles the full processing pipeline from configuration:
// external clients, the canonical store repository, and every stage service.
func NewPipeline(cfg config.Config, logger *logging.Logger, progress usecase.ProgressFunc) *usecase.Pipeline {
	womClient := wiseoldman.NewClient(wiseoldman.ClientConfig{
		HTTPClient: newHTTPClient(cfg, cfg.WOMTimeout),
		BaseURL:    cfg.WOMBaseURL,
		Timeout:    cfg.WOMTimeout,
		MaxRetries: cfg.WOMMaxRetries,
		Logger:     logger,
		RateLimit: resilience.RateLimitConfig{
			Requests: cfg.WOMRateLimitRequests,
			Window:   cfg.WOMRateLimitWindow,
		},
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.WOMCircuitEnabled,
			FailureThreshold: cfg.WOMCircuitFailureCount,
			OpenTimeout:      cfg.WOMCircuitOpenTimeout,
		},
	})

	sheetClient := gsheets.NewClient(gsheets.ClientConfig{
		HTTPClient:    newHTTPClient(cfg, cfg.SheetTimeout),
		BaseURL:       cfg.SheetBaseURL,
		SpreadsheetID: cfg.SheetID,
		APIKey:        cfg.SheetAPIKey,
		Timeout:       cfg.SheetTimeout,
		Logger:        logger,
	})

	repo := jsonfile.NewRepository(cfg.StorePath(), logger)

	pipelineCfg := usecase.PipelineConfig{
		CompetitionID: cfg.WOMCompetitionID,
		SheetName:     cfg.SheetName,
		TeamOne:       cfg.TeamOne,
		TeamTwo:       cfg.TeamTwo,
	}

	return usecase.NewPipeline(pipelineCfg, usecase.PipelineDeps{
		Repo:         repo,
		Retrieval:    usecase.NewRetrievalService(womClient, progress, logger),
		Grid:         sheetClient,
		Normalizer:   usecase.NewSheetNormalizer(usecase.DefaultSheetLayout(cfg.TeamOne, cfg.TeamTwo), logger),
		Ingestor:     usecase.NewDropIngestor(logger),
		Aggregator:   usecase.NewStatAggregator(logger),
		Reconciler:   usecase.NewReconciler(logger),
		Derived:      usecase.NewDerivedMetrics(logger),
		Logger:       logger,
		StoreMissing: func(err error) bool { return errors.Is(err, jsonfile.ErrStoreMissing) },
	})
}

func newHTTPClient(cfg config.Config, timeout time.Duration) *http.Client {
	client := &http.Client{Timeout: timeout}
	if cfg.TracingEnabled {
		client.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	return client
}
