package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clanhub/hunt-stats/internal/domain/drops"
)

func testGrid(rows ...[]string) [][]string {
	grid := [][]string{
		{"Team Red", "", "", "", "", "", "", "", "", "Team Gold"},
		{"Content", "Item", "Player", "Notes", "Coins", "Points", "", "", "", "Content", "Item", "Player", "Notes", "Coins", "Points"},
	}
	return append(grid, rows...)
}

func TestNormalizeSplitsColumnGroups(t *testing.T) {
	t.Parallel()

	n := NewSheetNormalizer(DefaultSheetLayout("Team Red", "Team Gold"), nil)

	grid := testGrid(
		[]string{"drop", "Twisted bow", "Ash", "", "1,500,000,000", "50", "", "", "", "drop", "Elder maul", "Zulrah Fan", "", "80000000", "25"},
	)

	got := n.Normalize(context.Background(), grid)
	require.Len(t, got, 2)

	require.Equal(t, "Team Red", got[0].Team)
	require.Equal(t, []drops.Row{
		{Category: "drop", Item: "Twisted bow", Player: "Ash", Coins: 1500000000, Points: 50},
	}, got[0].Rows)

	require.Equal(t, "Team Gold", got[1].Team)
	require.Equal(t, []drops.Row{
		{Category: "drop", Item: "Elder maul", Player: "Zulrah Fan", Coins: 80000000, Points: 25},
	}, got[1].Rows)
}

func TestNormalizePadsShortRows(t *testing.T) {
	t.Parallel()

	n := NewSheetNormalizer(DefaultSheetLayout("Team Red", "Team Gold"), nil)

	// Trailing empty cells are trimmed by the sheet provider, so a row may
	// stop mid-block.
	grid := testGrid(
		[]string{"drop", "Dragon pickaxe", "Ash"},
	)

	got := n.Normalize(context.Background(), grid)
	require.Equal(t, []drops.Row{
		{Category: "drop", Item: "Dragon pickaxe", Player: "Ash", Coins: 0, Points: 0},
	}, got[0].Rows)
	require.Empty(t, got[1].Rows)
}

func TestNormalizeRetainsPointsOnlyRows(t *testing.T) {
	t.Parallel()

	n := NewSheetNormalizer(DefaultSheetLayout("Team Red", "Team Gold"), nil)

	grid := testGrid(
		[]string{"bounty daily", "", "", "", "", "10"},
		[]string{"", "", "", "", "", ""},
	)

	got := n.Normalize(context.Background(), grid)
	require.Len(t, got[0].Rows, 1)
	require.Equal(t, drops.Row{Category: "bounty daily", Points: 10}, got[0].Rows[0])
	require.Empty(t, got[1].Rows)
}

func TestNormalizeSkipsHeaderBlock(t *testing.T) {
	t.Parallel()

	n := NewSheetNormalizer(DefaultSheetLayout("Team Red", "Team Gold"), nil)

	// Only the header rows: nothing to keep, and the header text itself must
	// not leak through as data.
	got := n.Normalize(context.Background(), testGrid())
	require.Empty(t, got[0].Rows)
	require.Empty(t, got[1].Rows)
}

func TestCoerceNumericCell(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cell string
		want float64
	}{
		{"1,234,567", 1234567},
		{" 42.5 ", 42.5},
		{"", 0},
		{"null", 0},
		{"None", 0},
		{"NaN", 0},
		{"pending", 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, coerceNumericCell(tc.cell), "cell %q", tc.cell)
	}
}
