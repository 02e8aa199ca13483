package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clanhub/hunt-stats/internal/platform/logging"
)

// RetrievalResult is the outcome of one full retrieval batch. Players whose
// gains could not be fetched appear in Failed and are absent from Gains.
type RetrievalResult struct {
	Competition CompetitionDetails
	Gains       map[string]PlayerGains
	Failed      []string
}

// RetrievalService drives the rate-limited stats API batch: roster first,
// then one gains request per participant. A roster failure is fatal; a
// per-player failure only costs that player's payload.
type RetrievalService struct {
	provider StatsProvider
	progress ProgressFunc
	logger   *logging.Logger
	now      func() time.Time
}

func NewRetrievalService(provider StatsProvider, progress ProgressFunc, logger *logging.Logger) *RetrievalService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RetrievalService{
		provider: provider,
		progress: progress,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *RetrievalService) FetchAll(ctx context.Context, competitionID int64) (RetrievalResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RetrievalService.FetchAll")
	defer span.End()

	comp, err := s.provider.FetchCompetition(ctx, competitionID)
	if err != nil {
		return RetrievalResult{}, fmt.Errorf("%w: %v", ErrRosterUnavailable, err)
	}
	if comp.StartsAt.IsZero() || comp.EndsAt.IsZero() {
		return RetrievalResult{}, fmt.Errorf("%w: competition %d missing timestamps", ErrRosterUnavailable, competitionID)
	}

	usernames := make([]string, 0, len(comp.Participants))
	for _, participant := range comp.Participants {
		if name := strings.TrimSpace(participant.DisplayName); name != "" {
			usernames = append(usernames, name)
		}
	}

	s.logger.InfoContext(ctx, "competition roster fetched",
		"competition_id", competitionID,
		"participants", len(usernames),
	)

	result := RetrievalResult{
		Competition: comp,
		Gains:       make(map[string]PlayerGains, len(usernames)),
	}

	started := s.now()
	total := len(usernames)
	for i, username := range usernames {
		gains, err := s.provider.FetchPlayerGains(ctx, username, comp.StartsAt, comp.EndsAt)
		if err != nil {
			if ctx.Err() != nil {
				return RetrievalResult{}, ctx.Err()
			}
			// Per-item failure: skip this player, keep the batch going.
			result.Failed = append(result.Failed, username)
			s.logger.WarnContext(ctx, "player gains fetch failed, skipping",
				"player", username,
				"error", err,
			)
		} else {
			result.Gains[username] = gains
		}

		s.report(i+1, total, started)
	}

	s.logger.InfoContext(ctx, "player gains batch done",
		"fetched", len(result.Gains),
		"failed", len(result.Failed),
	)
	return result, nil
}

func (s *RetrievalService) report(current, total int, started time.Time) {
	if s.progress == nil || total == 0 {
		return
	}

	elapsed := s.now().Sub(started)
	avg := elapsed / time.Duration(current)
	s.progress(ProgressUpdate{
		Current:   current,
		Total:     total,
		Elapsed:   elapsed,
		Remaining: avg * time.Duration(total-current),
	})
}
