package usecase

import (
	"context"

	"github.com/clanhub/hunt-stats/internal/domain/drops"
	"github.com/clanhub/hunt-stats/internal/domain/hunt"
	"github.com/clanhub/hunt-stats/internal/platform/logging"
)

// DropIngestor folds normalized spreadsheet rows into a team's player
// records. It is a fold, not a set-union: the caller must not ingest the
// same rows twice into one store.
type DropIngestor struct {
	logger *logging.Logger
}

func NewDropIngestor(logger *logging.Logger) *DropIngestor {
	if logger == nil {
		logger = logging.Default()
	}
	return &DropIngestor{logger: logger}
}

// Ingest applies rows to team in sheet order. Points and coins always count
// for the team, even on rows too sparse to attribute to a player.
func (s *DropIngestor) Ingest(ctx context.Context, team *hunt.Team, rows []drops.Row) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DropIngestor.Ingest")
	defer span.End()

	ingested := 0
	teamOnly := 0
	for _, row := range rows {
		if row.Player == "" || row.Item == "" {
			// Sparse row: still worth its points and coins to the team.
			// Recorded separately so a later totals recompute keeps them.
			team.UnattributedPoints += row.Points
			team.UnattributedCoins += row.Coins
			team.Totals.TotalPoints += row.Points
			team.Totals.TotalCoins += row.Coins
			teamOnly++
			continue
		}

		s.ingestRow(team, row)
		ingested++
	}

	s.logger.InfoContext(ctx, "drop rows ingested",
		"team", team.Name,
		"rows", ingested,
		"team_only_rows", teamOnly,
		"players", len(team.Players),
	)
}

func (s *DropIngestor) ingestRow(team *hunt.Team, row drops.Row) {
	player := team.EnsurePlayer(row.Player)
	cats := drops.Classify(row.Item)

	if cats.Drop {
		player.TotalDrops++
		team.Totals.TotalDrops++
	}
	if cats.BossPet {
		player.BossPets++
		team.Totals.BossPets++
	}
	if cats.Jar {
		player.Jars++
		team.Totals.Jars++
	}
	if cats.MegaRare {
		player.MegaRares++
		team.Totals.MegaRares++
	}

	player.TotalPoints += row.Points
	player.TotalCoins += row.Coins
	team.Totals.TotalPoints += row.Points
	team.Totals.TotalCoins += row.Coins

	// Strict greater-than: ties keep the first-seen entry.
	if row.Coins > player.MostExpensiveDrop.Value {
		player.MostExpensiveDrop = hunt.ItemValue{Item: row.Item, Value: row.Coins}
	}
	if row.Points > player.MostPointsItem.Points {
		player.MostPointsItem = hunt.ItemPoints{Item: row.Item, Points: row.Points}
	}
}
