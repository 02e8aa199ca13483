package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/clanhub/hunt-stats/internal/domain/hunt"
	"github.com/clanhub/hunt-stats/internal/platform/logging"
)

// Stage selects how much of the pipeline a run executes.
type Stage string

const (
	StageAll    Stage = "all"
	StageSheet  Stage = "sheet"
	StageStats  Stage = "stats"
	StageDerive Stage = "derive"
)

func ParseStage(v string) (Stage, error) {
	switch Stage(v) {
	case StageAll, StageSheet, StageStats, StageDerive:
		return Stage(v), nil
	default:
		return "", fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, v)
	}
}

// PipelineConfig carries the per-hunt knobs the stages need.
type PipelineConfig struct {
	CompetitionID int64
	SheetName     string
	TeamOne       string
	TeamTwo       string
}

// Pipeline runs the stages strictly in sequence over an exclusively owned
// store: retrieval, normalization, ingestion, reconciliation, derivation,
// save. Recovery from partial failure is re-running; every fold is keyed by
// identity and every rollup is a full recompute.
type Pipeline struct {
	cfg PipelineConfig

	repo       hunt.Repository
	retrieval  *RetrievalService
	grid       GridProvider
	normalizer *SheetNormalizer
	ingestor   *DropIngestor
	aggregator *StatAggregator
	reconciler *Reconciler
	derived    *DerivedMetrics
	logger     *logging.Logger

	storeMissing func(error) bool
}

type PipelineDeps struct {
	Repo         hunt.Repository
	Retrieval    *RetrievalService
	Grid         GridProvider
	Normalizer   *SheetNormalizer
	Ingestor     *DropIngestor
	Aggregator   *StatAggregator
	Reconciler   *Reconciler
	Derived      *DerivedMetrics
	Logger       *logging.Logger
	StoreMissing func(error) bool
}

func NewPipeline(cfg PipelineConfig, deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	missing := deps.StoreMissing
	if missing == nil {
		missing = func(error) bool { return false }
	}
	return &Pipeline{
		cfg:          cfg,
		repo:         deps.Repo,
		retrieval:    deps.Retrieval,
		grid:         deps.Grid,
		normalizer:   deps.Normalizer,
		ingestor:     deps.Ingestor,
		aggregator:   deps.Aggregator,
		reconciler:   deps.Reconciler,
		derived:      deps.Derived,
		logger:       logger,
		storeMissing: missing,
	}
}

func (p *Pipeline) Run(ctx context.Context, stage Stage) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.Pipeline.Run")
	defer span.End()

	p.logger.InfoContext(ctx, "pipeline run starting", "stage", string(stage))

	var store *hunt.Store
	var err error

	switch stage {
	case StageSheet, StageAll:
		// The sheet is re-read whole every run; ingesting into a loaded
		// store would double-count the fold.
		store = hunt.NewStore(p.cfg.TeamOne, p.cfg.TeamTwo)
	case StageStats, StageDerive:
		store, err = p.loadStore(ctx)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, stage)
	}

	if stage == StageSheet || stage == StageAll {
		if err := p.runSheet(ctx, store); err != nil {
			return err
		}
	}

	p.reconciler.Reconcile(ctx, store)

	if stage == StageStats || stage == StageAll {
		if err := p.runStats(ctx, store); err != nil {
			return err
		}
	}

	if stage == StageDerive || stage == StageAll {
		p.derived.Recompute(ctx, store)
	}

	if err := p.repo.Save(ctx, store); err != nil {
		return fmt.Errorf("persist canonical store: %w", err)
	}

	p.logger.InfoContext(ctx, "pipeline run finished", "stage", string(stage))
	return nil
}

func (p *Pipeline) loadStore(ctx context.Context) (*hunt.Store, error) {
	store, err := p.repo.Load(ctx)
	if err != nil {
		if p.storeMissing(err) {
			return nil, fmt.Errorf("%w: %v", ErrStoreMissing, err)
		}
		return nil, fmt.Errorf("load canonical store: %w", err)
	}
	return store, nil
}

func (p *Pipeline) runSheet(ctx context.Context, store *hunt.Store) error {
	grid, err := p.grid.FetchGrid(ctx, p.cfg.SheetName)
	if err != nil {
		return fmt.Errorf("fetch submissions sheet %q: %w", p.cfg.SheetName, err)
	}

	for _, teamRows := range p.normalizer.Normalize(ctx, grid) {
		team := store.EnsureTeam(teamRows.Team)
		p.ingestor.Ingest(ctx, team, teamRows.Rows)
	}
	return nil
}

func (p *Pipeline) runStats(ctx context.Context, store *hunt.Store) error {
	result, err := p.retrieval.FetchAll(ctx, p.cfg.CompetitionID)
	if err != nil {
		if errors.Is(err, ErrRosterUnavailable) {
			return err
		}
		return fmt.Errorf("retrieve external stats: %w", err)
	}

	p.aggregator.Apply(ctx, store, result.Competition, result.Gains)
	return nil
}
