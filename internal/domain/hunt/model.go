package hunt

import "fmt"

// ItemValue records the single most expensive submission seen for a player.
type ItemValue struct {
	Item  string
	Value float64
}

// ItemPoints records the single highest-scoring submission seen for a player.
type ItemPoints struct {
	Item   string
	Points float64
}

// BossTally names a boss together with its kill count.
type BossTally struct {
	Boss  string
	Kills int
}

// BestPlayer names a player together with the value that made them best.
type BestPlayer struct {
	Player string
	Value  float64
}

// PlayerTally names a player together with an integer total.
type PlayerTally struct {
	Player string
	Total  int
}

// ClueStats breaks clue scroll completions down by tier. Total is tracked by
// the upstream API independently of the tier counters, not derived from them.
type ClueStats struct {
	Total    int
	Beginner int
	Easy     int
	Medium   int
	Hard     int
	Elite    int
	Master   int
}

// ExternalStats is the per-player sub-record fed from the WiseOldMan API.
// A nil *ExternalStats on a Player means the player's gains could not be
// retrieved; consumers treat that as all-zero.
type ExternalStats struct {
	EHB            float64
	BossKills      int
	Raids          int
	Cox            int
	Tob            int
	Toa            int
	Barrows        int
	Clues          ClueStats
	XPGained       int64
	MostKilledBoss BossTally
}

// Player holds everything attributed to one competitor: drop-log metrics from
// the spreadsheet, API gains, and the ratio metrics derived from both.
type Player struct {
	TotalDrops        int
	TotalPoints       float64
	TotalCoins        float64
	BossPets          int
	Jars              int
	MegaRares         int
	MostExpensiveDrop ItemValue
	MostPointsItem    ItemPoints

	PointsPerEHB float64
	CoinsPerEHB  float64
	DropsPerEHB  float64

	External *ExternalStats
}

// NewPlayer returns a player with the zeroed defaults expected on first sight.
func NewPlayer() *Player {
	return &Player{}
}

// TeamTotals caches team-wide sums and "best X" picks. It is fully
// recomputable from the owned players and is never treated as authoritative.
type TeamTotals struct {
	TotalDrops  int
	TotalPoints float64
	TotalCoins  float64
	BossPets    int
	Jars        int
	MegaRares   int

	TotalEHB       float64
	BossKills      int
	Raids          int
	CluesCompleted int
	XPGained       int64

	BestPointsPerEHB BestPlayer
	BestCoinsPerEHB  BestPlayer
	BestDropsPerEHB  BestPlayer
	MostKilledBoss   BossTally
}

// Team owns its players exclusively. Order preserves first-seen player order;
// tie-breaks on "best X" picks depend on it being stable.
//
// UnattributedPoints and UnattributedCoins hold credit from submissions too
// sparse to tie to a player. They are source data, not derived: totals are
// recomputed from players plus these.
type Team struct {
	Name               string
	Totals             TeamTotals
	UnattributedPoints float64
	UnattributedCoins  float64
	Players            map[string]*Player
	Order              []string
}

func NewTeam(name string) *Team {
	return &Team{
		Name:    name,
		Players: make(map[string]*Player),
	}
}

func (t *Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

// EnsurePlayer returns the record for identity, creating a zeroed one on
// first sight. Creation order is recorded for deterministic iteration.
func (t *Team) EnsurePlayer(identity string) *Player {
	if p, ok := t.Players[identity]; ok {
		return p
	}
	p := NewPlayer()
	t.Players[identity] = p
	t.Order = append(t.Order, identity)
	return p
}

// Lookup finds a player by identity without creating one.
func (t *Team) Lookup(identity string) (*Player, bool) {
	p, ok := t.Players[identity]
	return p, ok
}

// HuntTotals is the competition-wide rollup across every team.
type HuntTotals struct {
	Participants int
	TotalEHB     float64
	MostEHB      BestPlayer

	BossKills     int
	MostBossKills PlayerTally

	Raids     int
	Cox       int
	Tob       int
	Toa       int
	MostRaids PlayerTally

	Barrows     int
	MostBarrows PlayerTally

	Clues     ClueStats
	MostClues PlayerTally

	XPGained int64
	MostXP   PlayerTally
}

// Store is the canonical merged state for one hunt: every team keyed by name
// plus the hunt-wide rollup. TeamOrder preserves creation order so repeated
// passes iterate identically.
type Store struct {
	Teams      map[string]*Team
	TeamOrder  []string
	HuntTotals HuntTotals
}

// NewStore creates a store pre-seeded with one zeroed team per name, in the
// given order.
func NewStore(teamNames ...string) *Store {
	s := &Store{Teams: make(map[string]*Team, len(teamNames))}
	for _, name := range teamNames {
		s.EnsureTeam(name)
	}
	return s
}

func (s *Store) EnsureTeam(name string) *Team {
	if t, ok := s.Teams[name]; ok {
		return t
	}
	t := NewTeam(name)
	s.Teams[name] = t
	s.TeamOrder = append(s.TeamOrder, name)
	return t
}

// FindPlayer searches every team for identity and returns the owning team.
func (s *Store) FindPlayer(identity string) (*Team, *Player, bool) {
	for _, name := range s.TeamOrder {
		team := s.Teams[name]
		if p, ok := team.Players[identity]; ok {
			return team, p, true
		}
	}
	return nil, nil, false
}
