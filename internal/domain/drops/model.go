package drops

// Row is one normalized spreadsheet submission: a drop, bounty, or challenge
// attributed to a player on a team.
type Row struct {
	Category string
	Item     string
	Player   string
	Coins    float64
	Points   float64
}

// Empty reports whether the row carries nothing attributable at all.
func (r Row) Empty() bool {
	return r.Item == "" && r.Player == "" && r.Points == 0 && r.Coins == 0
}
