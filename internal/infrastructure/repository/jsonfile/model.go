package jsonfile

import (
	"github.com/clanhub/hunt-stats/internal/domain/hunt"
)

// Document shapes for the canonical hunt metrics file. Float-valued metrics
// travel as thousands-grouped strings and are parsed back on load; counters
// stay plain numbers, matching the established file layout.

const (
	coinDecimals  = 0
	pointDecimals = 1
	ratioDecimals = 2
)

type teamDoc struct {
	TeamTotals         teamTotalsDoc        `json:"team_totals"`
	UnattributedPoints string               `json:"unattributed_points"`
	UnattributedCoins  string               `json:"unattributed_coins"`
	Players            map[string]playerDoc `json:"players"`
}

type teamTotalsDoc struct {
	TotalDrops     int     `json:"total_drops"`
	TotalPoints    string  `json:"total_points"`
	TotalCoins     string  `json:"total_coins"`
	BossPets       int     `json:"boss_pets"`
	Jars           int     `json:"jars"`
	MegaRares      int     `json:"mega_rares"`
	TotalEHB       string  `json:"total_ehb"`
	BossKills      int     `json:"boss_kills"`
	Raids          int     `json:"raids"`
	CluesCompleted int     `json:"clues_completed"`
	XPGained       int64   `json:"xp_gained"`
	BestPoints     bestDoc `json:"best_points_per_ehb"`
	BestCoins      bestDoc `json:"best_coins_per_ehb"`
	BestDrops      bestDoc `json:"best_drops_per_ehb"`
	MostKilledBoss bossDoc `json:"most_killed_boss"`
}

type playerDoc struct {
	TotalDrops        int           `json:"total_drops"`
	TotalPoints       string        `json:"total_points"`
	TotalCoins        string        `json:"total_coins"`
	BossPets          int           `json:"boss_pets"`
	Jars              int           `json:"jars"`
	MegaRares         int           `json:"mega_rares"`
	MostExpensiveDrop itemValueDoc  `json:"most_expensive_drop"`
	MostPointsItem    itemPointsDoc `json:"most_points_item"`
	PointsPerEHB      string        `json:"points_per_ehb"`
	CoinsPerEHB       string        `json:"coins_per_ehb"`
	DropsPerEHB       string        `json:"drops_per_ehb"`
	Wom               *womDoc       `json:"wom,omitempty"`
}

type itemValueDoc struct {
	Item  *string `json:"item"`
	Value string  `json:"value"`
}

type itemPointsDoc struct {
	Item   *string `json:"item"`
	Points string  `json:"points"`
}

type womDoc struct {
	EHB            float64  `json:"ehb"`
	BossKills      int      `json:"boss_kills"`
	Raids          int      `json:"raids"`
	Cox            int      `json:"cox"`
	Tob            int      `json:"tob"`
	Toa            int      `json:"toa"`
	Barrows        int      `json:"barrows"`
	Clues          clueDoc  `json:"clues"`
	XPGained       int64    `json:"xp_gained"`
	MostKilledBoss *bossDoc `json:"most_killed_boss,omitempty"`
}

type clueDoc struct {
	Total    int `json:"total"`
	Beginner int `json:"beginner"`
	Easy     int `json:"easy"`
	Medium   int `json:"medium"`
	Hard     int `json:"hard"`
	Elite    int `json:"elite"`
	Master   int `json:"master"`
}

type bossDoc struct {
	Boss  string `json:"boss"`
	Kills int    `json:"kills"`
}

type bestDoc struct {
	Player string `json:"player"`
	Value  string `json:"value"`
}

type tallyDoc struct {
	Player string `json:"player"`
	Total  int    `json:"total"`
}

type huntTotalsDoc struct {
	Participants  int      `json:"participants"`
	TotalEHB      string   `json:"total_ehb"`
	MostEHB       bestDoc  `json:"most_ehb"`
	BossKills     int      `json:"boss_kills"`
	MostBossKills tallyDoc `json:"most_boss_kills"`
	Raids         int      `json:"raids"`
	Cox           int      `json:"cox"`
	Tob           int      `json:"tob"`
	Toa           int      `json:"toa"`
	MostRaids     tallyDoc `json:"most_raids"`
	Barrows       int      `json:"barrows"`
	MostBarrows   tallyDoc `json:"most_barrows"`
	Clues         clueDoc  `json:"clues"`
	MostClues     tallyDoc `json:"most_clues"`
	XPGained      int64    `json:"xp_gained"`
	MostXP        tallyDoc `json:"most_xp"`
}

func optionalItem(item string) *string {
	if item == "" {
		return nil
	}
	return &item
}

func itemOrEmpty(item *string) string {
	if item == nil {
		return ""
	}
	return *item
}

func toTeamDoc(team *hunt.Team) teamDoc {
	players := make(map[string]playerDoc, len(team.Players))
	for identity, p := range team.Players {
		players[identity] = toPlayerDoc(p)
	}
	return teamDoc{
		TeamTotals:         toTeamTotalsDoc(team.Totals),
		UnattributedPoints: formatFloat(team.UnattributedPoints, pointDecimals),
		UnattributedCoins:  formatFloat(team.UnattributedCoins, coinDecimals),
		Players:            players,
	}
}

func toTeamTotalsDoc(t hunt.TeamTotals) teamTotalsDoc {
	return teamTotalsDoc{
		TotalDrops:     t.TotalDrops,
		TotalPoints:    formatFloat(t.TotalPoints, pointDecimals),
		TotalCoins:     formatFloat(t.TotalCoins, coinDecimals),
		BossPets:       t.BossPets,
		Jars:           t.Jars,
		MegaRares:      t.MegaRares,
		TotalEHB:       formatFloat(t.TotalEHB, ratioDecimals),
		BossKills:      t.BossKills,
		Raids:          t.Raids,
		CluesCompleted: t.CluesCompleted,
		XPGained:       t.XPGained,
		BestPoints:     toBestDoc(t.BestPointsPerEHB),
		BestCoins:      toBestDoc(t.BestCoinsPerEHB),
		BestDrops:      toBestDoc(t.BestDropsPerEHB),
		MostKilledBoss: bossDoc(t.MostKilledBoss),
	}
}

func toBestDoc(b hunt.BestPlayer) bestDoc {
	return bestDoc{Player: b.Player, Value: formatFloat(b.Value, ratioDecimals)}
}

func toPlayerDoc(p *hunt.Player) playerDoc {
	doc := playerDoc{
		TotalDrops:  p.TotalDrops,
		TotalPoints: formatFloat(p.TotalPoints, pointDecimals),
		TotalCoins:  formatFloat(p.TotalCoins, coinDecimals),
		BossPets:    p.BossPets,
		Jars:        p.Jars,
		MegaRares:   p.MegaRares,
		MostExpensiveDrop: itemValueDoc{
			Item:  optionalItem(p.MostExpensiveDrop.Item),
			Value: formatFloat(p.MostExpensiveDrop.Value, coinDecimals),
		},
		MostPointsItem: itemPointsDoc{
			Item:   optionalItem(p.MostPointsItem.Item),
			Points: formatFloat(p.MostPointsItem.Points, pointDecimals),
		},
		PointsPerEHB: formatFloat(p.PointsPerEHB, ratioDecimals),
		CoinsPerEHB:  formatFloat(p.CoinsPerEHB, ratioDecimals),
		DropsPerEHB:  formatFloat(p.DropsPerEHB, ratioDecimals),
	}

	if p.External != nil {
		doc.Wom = toWomDoc(p.External)
	}
	return doc
}

func toWomDoc(e *hunt.ExternalStats) *womDoc {
	doc := &womDoc{
		EHB:       e.EHB,
		BossKills: e.BossKills,
		Raids:     e.Raids,
		Cox:       e.Cox,
		Tob:       e.Tob,
		Toa:       e.Toa,
		Barrows:   e.Barrows,
		Clues:     clueDoc(e.Clues),
		XPGained:  e.XPGained,
	}
	if e.MostKilledBoss.Boss != "" {
		boss := bossDoc(e.MostKilledBoss)
		doc.MostKilledBoss = &boss
	}
	return doc
}

func toHuntTotalsDoc(h hunt.HuntTotals) huntTotalsDoc {
	return huntTotalsDoc{
		Participants:  h.Participants,
		TotalEHB:      formatFloat(h.TotalEHB, ratioDecimals),
		MostEHB:       toBestDoc(h.MostEHB),
		BossKills:     h.BossKills,
		MostBossKills: tallyDoc(h.MostBossKills),
		Raids:         h.Raids,
		Cox:           h.Cox,
		Tob:           h.Tob,
		Toa:           h.Toa,
		MostRaids:     tallyDoc(h.MostRaids),
		Barrows:       h.Barrows,
		MostBarrows:   tallyDoc(h.MostBarrows),
		Clues:         clueDoc(h.Clues),
		MostClues:     tallyDoc(h.MostClues),
		XPGained:      h.XPGained,
		MostXP:        tallyDoc(h.MostXP),
	}
}

func fromTeamDoc(name string, doc teamDoc, order []string) *hunt.Team {
	team := hunt.NewTeam(name)
	team.Totals = fromTeamTotalsDoc(doc.TeamTotals)
	team.UnattributedPoints = parseFloat(doc.UnattributedPoints)
	team.UnattributedCoins = parseFloat(doc.UnattributedCoins)
	for _, identity := range order {
		team.Players[identity] = fromPlayerDoc(doc.Players[identity])
		team.Order = append(team.Order, identity)
	}
	return team
}

func fromTeamTotalsDoc(doc teamTotalsDoc) hunt.TeamTotals {
	return hunt.TeamTotals{
		TotalDrops:       doc.TotalDrops,
		TotalPoints:      parseFloat(doc.TotalPoints),
		TotalCoins:       parseFloat(doc.TotalCoins),
		BossPets:         doc.BossPets,
		Jars:             doc.Jars,
		MegaRares:        doc.MegaRares,
		TotalEHB:         parseFloat(doc.TotalEHB),
		BossKills:        doc.BossKills,
		Raids:            doc.Raids,
		CluesCompleted:   doc.CluesCompleted,
		XPGained:         doc.XPGained,
		BestPointsPerEHB: fromBestDoc(doc.BestPoints),
		BestCoinsPerEHB:  fromBestDoc(doc.BestCoins),
		BestDropsPerEHB:  fromBestDoc(doc.BestDrops),
		MostKilledBoss:   hunt.BossTally(doc.MostKilledBoss),
	}
}

func fromBestDoc(doc bestDoc) hunt.BestPlayer {
	return hunt.BestPlayer{Player: doc.Player, Value: parseFloat(doc.Value)}
}

func fromPlayerDoc(doc playerDoc) *hunt.Player {
	p := &hunt.Player{
		TotalDrops:  doc.TotalDrops,
		TotalPoints: parseFloat(doc.TotalPoints),
		TotalCoins:  parseFloat(doc.TotalCoins),
		BossPets:    doc.BossPets,
		Jars:        doc.Jars,
		MegaRares:   doc.MegaRares,
		MostExpensiveDrop: hunt.ItemValue{
			Item:  itemOrEmpty(doc.MostExpensiveDrop.Item),
			Value: parseFloat(doc.MostExpensiveDrop.Value),
		},
		MostPointsItem: hunt.ItemPoints{
			Item:   itemOrEmpty(doc.MostPointsItem.Item),
			Points: parseFloat(doc.MostPointsItem.Points),
		},
		PointsPerEHB: parseFloat(doc.PointsPerEHB),
		CoinsPerEHB:  parseFloat(doc.CoinsPerEHB),
		DropsPerEHB:  parseFloat(doc.DropsPerEHB),
	}

	if doc.Wom != nil {
		p.External = fromWomDoc(doc.Wom)
	}
	return p
}

func fromWomDoc(doc *womDoc) *hunt.ExternalStats {
	e := &hunt.ExternalStats{
		EHB:       doc.EHB,
		BossKills: doc.BossKills,
		Raids:     doc.Raids,
		Cox:       doc.Cox,
		Tob:       doc.Tob,
		Toa:       doc.Toa,
		Barrows:   doc.Barrows,
		Clues:     hunt.ClueStats(doc.Clues),
		XPGained:  doc.XPGained,
	}
	if doc.MostKilledBoss != nil {
		e.MostKilledBoss = hunt.BossTally(*doc.MostKilledBoss)
	}
	return e
}

func fromHuntTotalsDoc(doc huntTotalsDoc) hunt.HuntTotals {
	return hunt.HuntTotals{
		Participants:  doc.Participants,
		TotalEHB:      parseFloat(doc.TotalEHB),
		MostEHB:       fromBestDoc(doc.MostEHB),
		BossKills:     doc.BossKills,
		MostBossKills: hunt.PlayerTally(doc.MostBossKills),
		Raids:         doc.Raids,
		Cox:           doc.Cox,
		Tob:           doc.Tob,
		Toa:           doc.Toa,
		MostRaids:     hunt.PlayerTally(doc.MostRaids),
		Barrows:       doc.Barrows,
		MostBarrows:   hunt.PlayerTally(doc.MostBarrows),
		Clues:         hunt.ClueStats(doc.Clues),
		MostClues:     hunt.PlayerTally(doc.MostClues),
		XPGained:      doc.XPGained,
		MostXP:        hunt.PlayerTally(doc.MostXP),
	}
}
