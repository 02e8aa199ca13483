package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/clanhub/hunt-stats/internal/domain/drops"
	"github.com/clanhub/hunt-stats/internal/platform/logging"
)

// ColumnGroup maps one team's block of sheet columns. Columns are indexes
// into the padded row for content, item, player, coins, points in that order.
type ColumnGroup struct {
	Team    string
	Width   int
	Columns [5]int
}

// SheetLayout is the fixed offset contract of the submissions sheet: a team
// label row and a header row, then two parallel team blocks.
type SheetLayout struct {
	HeaderRows int
	Groups     []ColumnGroup
}

// DefaultSheetLayout matches the established hunt submissions sheet: team one
// in columns A-F (with D unused), team two in columns J-O (with M unused).
func DefaultSheetLayout(teamOne, teamTwo string) SheetLayout {
	return SheetLayout{
		HeaderRows: 2,
		Groups: []ColumnGroup{
			{Team: teamOne, Width: 6, Columns: [5]int{0, 1, 2, 4, 5}},
			{Team: teamTwo, Width: 15, Columns: [5]int{9, 10, 11, 13, 14}},
		},
	}
}

// TeamRows is the normalized output for one team, in sheet order.
type TeamRows struct {
	Team string
	Rows []drops.Row
}

// SheetNormalizer converts a raw cell grid into typed, cleaned rows per team.
type SheetNormalizer struct {
	layout SheetLayout
	logger *logging.Logger
}

func NewSheetNormalizer(layout SheetLayout, logger *logging.Logger) *SheetNormalizer {
	if logger == nil {
		logger = logging.Default()
	}
	return &SheetNormalizer{layout: layout, logger: logger}
}

// Normalize skips the header rows, splits the grid into the configured team
// blocks, pads short rows, coerces numeric cells, and drops blank filler
// rows. Rows with a non-empty points cell are always retained: a submitted
// point value counts for the team even when the other cells are sparse.
func (n *SheetNormalizer) Normalize(ctx context.Context, grid [][]string) []TeamRows {
	ctx, span := startUsecaseSpan(ctx, "usecase.SheetNormalizer.Normalize")
	defer span.End()

	out := make([]TeamRows, len(n.layout.Groups))
	for i, group := range n.layout.Groups {
		out[i].Team = group.Team
	}

	if len(grid) <= n.layout.HeaderRows {
		n.logger.WarnContext(ctx, "sheet grid shorter than header block", "rows", len(grid))
		return out
	}

	kept := 0
	for _, raw := range grid[n.layout.HeaderRows:] {
		for i, group := range n.layout.Groups {
			row, ok := extractRow(raw, group)
			if !ok {
				continue
			}
			out[i].Rows = append(out[i].Rows, row)
			kept++
		}
	}

	n.logger.InfoContext(ctx, "sheet grid normalized",
		"input_rows", len(grid)-n.layout.HeaderRows,
		"kept_rows", kept,
	)
	return out
}

func extractRow(raw []string, group ColumnGroup) (drops.Row, bool) {
	padded := raw
	if len(padded) < group.Width {
		padded = make([]string, group.Width)
		copy(padded, raw)
	}

	pointsCell := strings.TrimSpace(padded[group.Columns[4]])
	row := drops.Row{
		Category: strings.TrimSpace(padded[group.Columns[0]]),
		Item:     strings.TrimSpace(padded[group.Columns[1]]),
		Player:   strings.TrimSpace(padded[group.Columns[2]]),
		Coins:    coerceNumericCell(padded[group.Columns[3]]),
		Points:   coerceNumericCell(pointsCell),
	}

	if row.Item == "" && row.Player == "" && pointsCell == "" {
		return drops.Row{}, false
	}
	return row, true
}

// numericPlaceholders are spreadsheet artifacts that mean "no value".
var numericPlaceholders = map[string]struct{}{
	"":     {},
	"null": {},
	"none": {},
	"nan":  {},
}

// coerceNumericCell strips grouping separators and whitespace, then parses.
// Anything unparseable reads as zero rather than failing the row.
func coerceNumericCell(cell string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(cell, ",", ""))
	if _, ok := numericPlaceholders[strings.ToLower(cleaned)]; ok {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
