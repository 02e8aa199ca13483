package usecase

import (
	"context"
	"time"
)

// Participant is one roster entry of the competition, with the EHB gained
// over the competition window.
type Participant struct {
	DisplayName string
	TeamName    string
	EHBGained   float64
}

// CompetitionDetails is the roster/metadata payload the whole run depends on.
type CompetitionDetails struct {
	ID               int64
	Title            string
	StartsAt         time.Time
	EndsAt           time.Time
	ParticipantCount int
	Participants     []Participant
}

// PlayerGains is one player's per-category deltas over the competition
// window. Bosses map boss name to kills gained, Activities map activity name
// to score gained; absent upstream keys are simply absent here.
type PlayerGains struct {
	Bosses     map[string]int
	Activities map[string]int
	OverallXP  int64
}

// ProgressUpdate describes batch retrieval progress. Purely observational:
// it never influences pipeline output.
type ProgressUpdate struct {
	Current   int
	Total     int
	Elapsed   time.Duration
	Remaining time.Duration
}

// ProgressFunc receives progress updates during a retrieval batch.
type ProgressFunc func(ProgressUpdate)

// StatsProvider is the external gameplay-statistics API.
type StatsProvider interface {
	FetchCompetition(ctx context.Context, competitionID int64) (CompetitionDetails, error)
	FetchPlayerGains(ctx context.Context, username string, startsAt, endsAt time.Time) (PlayerGains, error)
}

// GridProvider is the external spreadsheet source, exposed as a raw 2D cell
// grid. Authentication and transport belong to the implementation.
type GridProvider interface {
	FetchGrid(ctx context.Context, sheetName string) ([][]string, error)
}
