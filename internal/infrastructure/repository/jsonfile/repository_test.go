package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clanhub/hunt-stats/internal/domain/hunt"
)

func TestFormatFloat_GroupsThousands(t *testing.T) {
	t.Parallel()

	if got := formatFloat(500000000, 0); got != "500,000,000" {
		t.Fatalf("coins format mismatch: %q", got)
	}
	if got := formatFloat(50, 1); got != "50.0" {
		t.Fatalf("points format mismatch: %q", got)
	}
	if got := formatFloat(1234.567, 2); got != "1,234.57" {
		t.Fatalf("ratio format mismatch: %q", got)
	}
}

func TestParseFloat_StripsGroupingAndFallsBackToZero(t *testing.T) {
	t.Parallel()

	if got := parseFloat("500,000,000"); got != 500000000 {
		t.Fatalf("parse mismatch: %v", got)
	}
	if got := parseFloat(" 1,234.5 "); got != 1234.5 {
		t.Fatalf("parse mismatch: %v", got)
	}
	if got := parseFloat(""); got != 0 {
		t.Fatalf("empty should read as zero, got %v", got)
	}
	if got := parseFloat("n/a"); got != 0 {
		t.Fatalf("malformed should read as zero, got %v", got)
	}
}

func TestRepository_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hunt_metrics.json")
	repo := NewRepository(path, nil)

	store := hunt.NewStore("Team Red", "Team Gold")
	team := store.Teams["Team Red"]
	ash := team.EnsurePlayer("ash")
	ash.TotalDrops = 2
	ash.TotalPoints = 50
	ash.TotalCoins = 500000000
	ash.Jars = 1
	ash.MegaRares = 1
	ash.MostExpensiveDrop = hunt.ItemValue{Item: "Twisted bow", Value: 500000000}
	ash.MostPointsItem = hunt.ItemPoints{Item: "Twisted bow", Points: 50}
	ash.PointsPerEHB = 2.5
	ash.External = &hunt.ExternalStats{
		EHB:            20,
		BossKills:      140,
		Raids:          12,
		Cox:            12,
		Clues:          hunt.ClueStats{Total: 9, Hard: 9},
		XPGained:       1234567,
		MostKilledBoss: hunt.BossTally{Boss: "chambers_of_xeric", Kills: 12},
	}
	team.Totals.TotalDrops = 2
	team.Totals.TotalCoins = 500000000
	team.Totals.TotalPoints = 65
	team.UnattributedPoints = 15
	store.HuntTotals.Participants = 1
	store.HuntTotals.TotalEHB = 20
	store.HuntTotals.MostEHB = hunt.BestPlayer{Player: "ash", Value: 20}

	require.NoError(t, repo.Save(context.Background(), store))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)

	got, ok := loaded.Teams["Team Red"].Lookup("ash")
	require.True(t, ok)
	require.Equal(t, 2, got.TotalDrops)
	require.Equal(t, 50.0, got.TotalPoints)
	require.Equal(t, 500000000.0, got.TotalCoins)
	require.Equal(t, "Twisted bow", got.MostExpensiveDrop.Item)
	require.Equal(t, 500000000.0, got.MostExpensiveDrop.Value)
	require.Equal(t, 2.5, got.PointsPerEHB)
	require.NotNil(t, got.External)
	require.Equal(t, 140, got.External.BossKills)
	require.Equal(t, 9, got.External.Clues.Hard)
	require.Equal(t, "chambers_of_xeric", got.External.MostKilledBoss.Boss)

	require.Equal(t, 500000000.0, loaded.Teams["Team Red"].Totals.TotalCoins)
	require.Equal(t, 65.0, loaded.Teams["Team Red"].Totals.TotalPoints)
	require.Equal(t, 15.0, loaded.Teams["Team Red"].UnattributedPoints)
	require.Equal(t, 1, loaded.HuntTotals.Participants)
	require.Equal(t, "ash", loaded.HuntTotals.MostEHB.Player)

	// A player never touched by the stats source stays without a wom record.
	gold := loaded.Teams["Team Gold"]
	require.Empty(t, gold.Players)
}

func TestRepository_SaveIsDeterministic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hunt_metrics.json")
	repo := NewRepository(path, nil)

	store := hunt.NewStore("Team Red", "Team Gold")
	store.Teams["Team Gold"].EnsurePlayer("zezima").TotalDrops = 3

	require.NoError(t, repo.Save(context.Background(), store))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), store))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
}

func TestRepository_LoadMissingFile(t *testing.T) {
	t.Parallel()

	repo := NewRepository(filepath.Join(t.TempDir(), "nope.json"), nil)

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrStoreMissing)
}

func TestRepository_FileCarriesFormattedStrings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hunt_metrics.json")
	repo := NewRepository(path, nil)

	store := hunt.NewStore("Team Red")
	p := store.Teams["Team Red"].EnsurePlayer("ash")
	p.TotalCoins = 1234567
	store.Teams["Team Red"].Totals.TotalCoins = 1234567

	require.NoError(t, repo.Save(context.Background(), store))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"total_coins": "1,234,567"`)
}
