package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clanhub/hunt-stats/internal/domain/drops"
	"github.com/clanhub/hunt-stats/internal/domain/hunt"
)

func derivedFixtureStore() *hunt.Store {
	store := hunt.NewStore("Team Red", "Team Gold")

	ash := store.Teams["Team Red"].EnsurePlayer("ash")
	ash.TotalDrops = 4
	ash.TotalPoints = 120
	ash.TotalCoins = 80_000_000
	ash.Jars = 1
	ash.External = &hunt.ExternalStats{
		EHB:            16,
		BossKills:      200,
		Raids:          40,
		Cox:            40,
		Barrows:        12,
		Clues:          hunt.ClueStats{Total: 7, Hard: 5, Master: 2},
		XPGained:       2_000_000,
		MostKilledBoss: hunt.BossTally{Boss: "chambers_of_xeric", Kills: 40},
	}

	misty := store.Teams["Team Gold"].EnsurePlayer("misty")
	misty.TotalDrops = 2
	misty.TotalPoints = 30
	misty.TotalCoins = 10_000_000

	return store
}

func TestRecomputeDerivesRatiosAndTotals(t *testing.T) {
	t.Parallel()

	store := derivedFixtureStore()
	NewDerivedMetrics(nil).Recompute(context.Background(), store)

	ash := store.Teams["Team Red"].Players["ash"]
	require.Equal(t, 7.5, ash.PointsPerEHB)
	require.Equal(t, 5_000_000.0, ash.CoinsPerEHB)
	require.Equal(t, 0.25, ash.DropsPerEHB)

	red := store.Teams["Team Red"].Totals
	require.Equal(t, 4, red.TotalDrops)
	require.Equal(t, 120.0, red.TotalPoints)
	require.Equal(t, 16.0, red.TotalEHB)
	require.Equal(t, 200, red.BossKills)
	require.Equal(t, 7, red.CluesCompleted)
	require.Equal(t, hunt.BestPlayer{Player: "ash", Value: 7.5}, red.BestPointsPerEHB)
	require.Equal(t, hunt.BossTally{Boss: "chambers_of_xeric", Kills: 40}, red.MostKilledBoss)

	require.Equal(t, 2, store.HuntTotals.Participants)
	require.Equal(t, 16.0, store.HuntTotals.TotalEHB)
	require.Equal(t, hunt.BestPlayer{Player: "ash", Value: 16}, store.HuntTotals.MostEHB)
	require.Equal(t, hunt.PlayerTally{Player: "ash", Total: 40}, store.HuntTotals.MostRaids)
	require.Equal(t, int64(2_000_000), store.HuntTotals.XPGained)
}

func TestRecomputeZeroEHBYieldsZeroRatios(t *testing.T) {
	t.Parallel()

	store := derivedFixtureStore()
	NewDerivedMetrics(nil).Recompute(context.Background(), store)

	// No external record at all: ratios stay 0.0, no division happens.
	misty := store.Teams["Team Gold"].Players["misty"]
	require.Equal(t, 0.0, misty.PointsPerEHB)
	require.Equal(t, 0.0, misty.CoinsPerEHB)
	require.Equal(t, 0.0, misty.DropsPerEHB)

	gold := store.Teams["Team Gold"].Totals
	require.Equal(t, hunt.BestPlayer{}, gold.BestPointsPerEHB)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	t.Parallel()

	store := derivedFixtureStore()
	svc := NewDerivedMetrics(nil)

	svc.Recompute(context.Background(), store)
	first := *store.Teams["Team Red"]
	firstTotals := store.HuntTotals

	svc.Recompute(context.Background(), store)
	require.Equal(t, first.Totals, store.Teams["Team Red"].Totals)
	require.Equal(t, firstTotals, store.HuntTotals)
}

func TestRecomputeKeepsUnattributedTeamCredit(t *testing.T) {
	t.Parallel()

	store := hunt.NewStore("Team Red")
	team := store.Teams["Team Red"]

	NewDropIngestor(nil).Ingest(context.Background(), team, []drops.Row{
		{Category: "bounty daily", Points: 15},
		{Category: "drop", Item: "Dragon claws", Player: "Ash", Points: 5},
	})
	require.Equal(t, 20.0, team.Totals.TotalPoints)

	svc := NewDerivedMetrics(nil)
	svc.Recompute(context.Background(), store)
	require.Equal(t, 20.0, team.Totals.TotalPoints)

	// The credit is source data, not a one-shot cache: it survives any
	// number of recomputes.
	svc.Recompute(context.Background(), store)
	require.Equal(t, 20.0, team.Totals.TotalPoints)
}

func TestRecomputeBestPickTieKeepsFirstSeen(t *testing.T) {
	t.Parallel()

	store := hunt.NewStore("Team Red")
	team := store.Teams["Team Red"]

	a := team.EnsurePlayer("adam")
	a.TotalPoints = 50
	a.External = &hunt.ExternalStats{EHB: 10}
	b := team.EnsurePlayer("zoe")
	b.TotalPoints = 50
	b.External = &hunt.ExternalStats{EHB: 10}

	NewDerivedMetrics(nil).Recompute(context.Background(), store)
	require.Equal(t, "adam", team.Totals.BestPointsPerEHB.Player)
}

func TestRatioPerEHBRoundsToTwoDecimals(t *testing.T) {
	t.Parallel()

	require.Equal(t, 3.33, ratioPerEHB(10, 3))
	require.Equal(t, 0.0, ratioPerEHB(10, 0))
	require.Equal(t, 0.0, ratioPerEHB(10, -1))
}
