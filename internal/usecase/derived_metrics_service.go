package usecase

import (
	"context"
	"math"

	"github.com/clanhub/hunt-stats/internal/domain/hunt"
	"github.com/clanhub/hunt-stats/internal/platform/logging"
)

// DerivedMetrics computes every ratio and rollup purely from the canonical
// store. Totals are fully recomputed on each pass from player records and
// the team's unattributed credit, so running it twice over an unchanged
// store yields identical output.
type DerivedMetrics struct {
	logger *logging.Logger
}

func NewDerivedMetrics(logger *logging.Logger) *DerivedMetrics {
	if logger == nil {
		logger = logging.Default()
	}
	return &DerivedMetrics{logger: logger}
}

func (s *DerivedMetrics) Recompute(ctx context.Context, store *hunt.Store) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DerivedMetrics.Recompute")
	defer span.End()

	for _, name := range store.TeamOrder {
		team := store.Teams[name]
		recomputePlayerRatios(team)
		recomputeTeamTotals(team)
	}
	store.HuntTotals = rollupHunt(store)

	s.logger.InfoContext(ctx, "derived metrics recomputed",
		"teams", len(store.TeamOrder),
		"participants", store.HuntTotals.Participants,
	)
}

// ratioPerEHB guards the zero denominator: no EHB means a flat 0.0 ratio,
// never a division error.
func ratioPerEHB(metric, ehb float64) float64 {
	if ehb <= 0 {
		return 0
	}
	return math.Round(metric/ehb*100) / 100
}

func playerEHB(p *hunt.Player) float64 {
	if p.External == nil {
		return 0
	}
	return p.External.EHB
}

func recomputePlayerRatios(team *hunt.Team) {
	for _, identity := range team.Order {
		p := team.Players[identity]
		ehb := playerEHB(p)
		p.PointsPerEHB = ratioPerEHB(p.TotalPoints, ehb)
		p.CoinsPerEHB = ratioPerEHB(p.TotalCoins, ehb)
		p.DropsPerEHB = ratioPerEHB(float64(p.TotalDrops), ehb)
	}
}

// recomputeTeamTotals rebuilds the totals cache from scratch: the sum over
// player records plus the team's unattributed credit. Best-performer picks
// use strict greater-than over insertion order, so the first player to reach
// a value keeps the title on ties.
func recomputeTeamTotals(team *hunt.Team) {
	totals := hunt.TeamTotals{
		TotalPoints: team.UnattributedPoints,
		TotalCoins:  team.UnattributedCoins,
	}

	for _, identity := range team.Order {
		p := team.Players[identity]

		totals.TotalDrops += p.TotalDrops
		totals.TotalPoints += p.TotalPoints
		totals.TotalCoins += p.TotalCoins
		totals.BossPets += p.BossPets
		totals.Jars += p.Jars
		totals.MegaRares += p.MegaRares

		if p.PointsPerEHB > totals.BestPointsPerEHB.Value {
			totals.BestPointsPerEHB = hunt.BestPlayer{Player: identity, Value: p.PointsPerEHB}
		}
		if p.CoinsPerEHB > totals.BestCoinsPerEHB.Value {
			totals.BestCoinsPerEHB = hunt.BestPlayer{Player: identity, Value: p.CoinsPerEHB}
		}
		if p.DropsPerEHB > totals.BestDropsPerEHB.Value {
			totals.BestDropsPerEHB = hunt.BestPlayer{Player: identity, Value: p.DropsPerEHB}
		}

		ext := p.External
		if ext == nil {
			continue
		}
		totals.TotalEHB += ext.EHB
		totals.BossKills += ext.BossKills
		totals.Raids += ext.Raids
		totals.CluesCompleted += ext.Clues.Total
		totals.XPGained += ext.XPGained

		if ext.MostKilledBoss.Kills > totals.MostKilledBoss.Kills {
			totals.MostKilledBoss = ext.MostKilledBoss
		}
	}

	team.Totals = totals
}

func rollupHunt(store *hunt.Store) hunt.HuntTotals {
	totals := hunt.HuntTotals{}

	takeMax := func(best *hunt.PlayerTally, identity string, value int) {
		if value > best.Total {
			*best = hunt.PlayerTally{Player: identity, Total: value}
		}
	}

	for _, teamName := range store.TeamOrder {
		team := store.Teams[teamName]
		for _, identity := range team.Order {
			p := team.Players[identity]
			totals.Participants++

			ext := p.External
			if ext == nil {
				continue
			}

			totals.TotalEHB += ext.EHB
			if ext.EHB > totals.MostEHB.Value {
				totals.MostEHB = hunt.BestPlayer{Player: identity, Value: ext.EHB}
			}

			totals.BossKills += ext.BossKills
			takeMax(&totals.MostBossKills, identity, ext.BossKills)

			totals.Raids += ext.Raids
			totals.Cox += ext.Cox
			totals.Tob += ext.Tob
			totals.Toa += ext.Toa
			takeMax(&totals.MostRaids, identity, ext.Raids)

			totals.Barrows += ext.Barrows
			takeMax(&totals.MostBarrows, identity, ext.Barrows)

			totals.Clues.Total += ext.Clues.Total
			totals.Clues.Beginner += ext.Clues.Beginner
			totals.Clues.Easy += ext.Clues.Easy
			totals.Clues.Medium += ext.Clues.Medium
			totals.Clues.Hard += ext.Clues.Hard
			totals.Clues.Elite += ext.Clues.Elite
			totals.Clues.Master += ext.Clues.Master
			takeMax(&totals.MostClues, identity, ext.Clues.Total)

			totals.XPGained += ext.XPGained
			if ext.XPGained > int64(totals.MostXP.Total) {
				totals.MostXP = hunt.PlayerTally{Player: identity, Total: int(ext.XPGained)}
			}
		}
	}

	return totals
}
