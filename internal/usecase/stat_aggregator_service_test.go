package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clanhub/hunt-stats/internal/domain/hunt"
)

func TestApplyAttachesExternalStats(t *testing.T) {
	t.Parallel()

	store := hunt.NewStore("Team Red")
	store.Teams["Team Red"].EnsurePlayer("ash")

	comp := CompetitionDetails{
		Participants: []Participant{{DisplayName: "Ash", EHBGained: 12.5}},
	}
	gains := map[string]PlayerGains{
		"Ash": {
			Bosses: map[string]int{
				"chambers_of_xeric":                40,
				"chambers_of_xeric_challenge_mode": 2,
				"theatre_of_blood":                 10,
				"tombs_of_amascut_expert":          5,
				"barrows_chests":                   30,
				"zulrah":                           120,
			},
			Activities: map[string]int{
				"clue_scrolls_all":    9,
				"clue_scrolls_master": 2,
				"clue_scrolls_hard":   7,
				"league_points":       500,
			},
			OverallXP: 1_250_000,
		},
	}

	report := NewStatAggregator(nil).Apply(context.Background(), store, comp, gains)
	require.Equal(t, 1, report.Matched)
	require.Empty(t, report.MissingFromStore)
	require.Empty(t, report.WithoutGains)

	player, _ := store.Teams["Team Red"].Lookup("ash")
	ext := player.External
	require.NotNil(t, ext)

	require.Equal(t, 12.5, ext.EHB)
	require.Equal(t, 207, ext.BossKills)
	require.Equal(t, 42, ext.Cox)
	require.Equal(t, 10, ext.Tob)
	require.Equal(t, 5, ext.Toa)
	require.Equal(t, 57, ext.Raids)
	require.Equal(t, 30, ext.Barrows)
	require.Equal(t, hunt.BossTally{Boss: "zulrah", Kills: 120}, ext.MostKilledBoss)

	require.Equal(t, 9, ext.Clues.Total)
	require.Equal(t, 2, ext.Clues.Master)
	require.Equal(t, 7, ext.Clues.Hard)
	require.Equal(t, 0, ext.Clues.Easy)

	require.Equal(t, int64(1_250_000), ext.XPGained)
}

func TestApplyReportsRosterPlayersMissingFromStore(t *testing.T) {
	t.Parallel()

	store := hunt.NewStore("Team Red")
	store.Teams["Team Red"].EnsurePlayer("ash")

	comp := CompetitionDetails{
		Participants: []Participant{
			{DisplayName: "Ash"},
			{DisplayName: "Lurker"},
		},
	}
	gains := map[string]PlayerGains{"Ash": {}}

	report := NewStatAggregator(nil).Apply(context.Background(), store, comp, gains)
	require.Equal(t, 1, report.Matched)
	require.Equal(t, []string{"Lurker"}, report.MissingFromStore)
}

func TestApplySkipsPlayersWithoutGainsPayload(t *testing.T) {
	t.Parallel()

	store := hunt.NewStore("Team Red")
	store.Teams["Team Red"].EnsurePlayer("ash")

	comp := CompetitionDetails{
		Participants: []Participant{{DisplayName: "Ash", EHBGained: 40}},
	}

	report := NewStatAggregator(nil).Apply(context.Background(), store, comp, nil)
	require.Equal(t, 0, report.Matched)
	require.Equal(t, []string{"Ash"}, report.WithoutGains)

	// No payload means no sub-record at all, not a zeroed one.
	player, _ := store.Teams["Team Red"].Lookup("ash")
	require.Nil(t, player.External)
}

func TestApplyMatchesPaddedDisplayNames(t *testing.T) {
	t.Parallel()

	store := hunt.NewStore("Team Red")
	store.Teams["Team Red"].EnsurePlayer("ash")

	comp := CompetitionDetails{
		Participants: []Participant{{DisplayName: " Ash ", EHBGained: 3}},
	}
	// The retrieval batch keys gains by the trimmed name.
	gains := map[string]PlayerGains{"Ash": {OverallXP: 777}}

	report := NewStatAggregator(nil).Apply(context.Background(), store, comp, gains)
	require.Equal(t, 1, report.Matched)
	require.Empty(t, report.WithoutGains)

	player, _ := store.Teams["Team Red"].Lookup("ash")
	require.NotNil(t, player.External)
	require.Equal(t, int64(777), player.External.XPGained)
}

func TestFoldGainsMostKilledTieKeepsAlphabeticalFirst(t *testing.T) {
	t.Parallel()

	ext := foldGains(0, PlayerGains{
		Bosses: map[string]int{"zulrah": 50, "kraken": 50},
	})
	require.Equal(t, hunt.BossTally{Boss: "kraken", Kills: 50}, ext.MostKilledBoss)
}
