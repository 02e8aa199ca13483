package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/clanhub/hunt-stats/internal/domain/hunt"
	"github.com/clanhub/hunt-stats/internal/platform/logging"
)

// Category name fragments of the upstream metric keys. Substring matching
// keeps variant modes (e.g. challenge-mode raids) inside the same bucket.
const (
	fragmentCox     = "chambers_of_xeric"
	fragmentTob     = "theatre_of_blood"
	fragmentToa     = "tombs_of_amascut"
	fragmentBarrows = "barrows_chests"
)

var clueFragments = []struct {
	fragment string
	bucket   func(*hunt.ClueStats) *int
}{
	{"clue_scrolls_all", func(c *hunt.ClueStats) *int { return &c.Total }},
	{"clue_scrolls_beginner", func(c *hunt.ClueStats) *int { return &c.Beginner }},
	{"clue_scrolls_easy", func(c *hunt.ClueStats) *int { return &c.Easy }},
	{"clue_scrolls_medium", func(c *hunt.ClueStats) *int { return &c.Medium }},
	{"clue_scrolls_hard", func(c *hunt.ClueStats) *int { return &c.Hard }},
	{"clue_scrolls_elite", func(c *hunt.ClueStats) *int { return &c.Elite }},
	{"clue_scrolls_master", func(c *hunt.ClueStats) *int { return &c.Master }},
}

// AggregationReport counts the data-quality findings of one aggregation
// pass. These are reported, never raised.
type AggregationReport struct {
	Matched          int
	MissingFromStore []string
	WithoutGains     []string
}

// StatAggregator folds per-player API gains into the external-stats
// sub-record of already-ingested players.
type StatAggregator struct {
	logger *logging.Logger
}

func NewStatAggregator(logger *logging.Logger) *StatAggregator {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatAggregator{logger: logger}
}

// Apply attaches an external-stats sub-record to every roster player that
// both exists in the store and has a retrieved gains payload. Roster players
// absent from the store, and players whose gains could not be fetched, are
// reported and left untouched.
func (s *StatAggregator) Apply(ctx context.Context, store *hunt.Store, comp CompetitionDetails, gains map[string]PlayerGains) AggregationReport {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatAggregator.Apply")
	defer span.End()

	var report AggregationReport
	for _, participant := range comp.Participants {
		// Gains are keyed by the trimmed display name, matching the
		// retrieval batch.
		username := strings.TrimSpace(participant.DisplayName)
		identity := strings.ToLower(username)
		if identity == "" {
			continue
		}

		_, player, ok := store.FindPlayer(identity)
		if !ok {
			report.MissingFromStore = append(report.MissingFromStore, username)
			continue
		}

		payload, ok := gains[username]
		if !ok {
			report.WithoutGains = append(report.WithoutGains, username)
			continue
		}

		player.External = foldGains(participant.EHBGained, payload)
		report.Matched++
	}

	s.logger.InfoContext(ctx, "external stats aggregated",
		"matched", report.Matched,
		"missing_from_store", len(report.MissingFromStore),
		"without_gains", len(report.WithoutGains),
	)
	for _, name := range report.MissingFromStore {
		s.logger.WarnContext(ctx, "roster player has no drop-log record", "player", name)
	}
	return report
}

func foldGains(ehb float64, payload PlayerGains) *hunt.ExternalStats {
	ext := &hunt.ExternalStats{EHB: ehb, XPGained: payload.OverallXP}

	// Sorted iteration keeps the most-killed tie-break repeatable across
	// runs: ties keep the alphabetically first boss.
	for _, boss := range sortedKeys(payload.Bosses) {
		kills := payload.Bosses[boss]
		ext.BossKills += kills

		switch {
		case strings.Contains(boss, fragmentCox):
			ext.Cox += kills
			ext.Raids += kills
		case strings.Contains(boss, fragmentTob):
			ext.Tob += kills
			ext.Raids += kills
		case strings.Contains(boss, fragmentToa):
			ext.Toa += kills
			ext.Raids += kills
		case strings.Contains(boss, fragmentBarrows):
			ext.Barrows += kills
		}

		if kills > ext.MostKilledBoss.Kills {
			ext.MostKilledBoss = hunt.BossTally{Boss: boss, Kills: kills}
		}
	}

	for _, activity := range sortedKeys(payload.Activities) {
		gained := payload.Activities[activity]
		for _, tier := range clueFragments {
			if strings.Contains(activity, tier.fragment) {
				*tier.bucket(&ext.Clues) += gained
				break
			}
		}
	}

	return ext
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
