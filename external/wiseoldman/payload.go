package wiseoldman

import (
	"time"

	"github.com/clanhub/hunt-stats/internal/usecase"
)

// Envelope shapes for the provider's competition and gained endpoints. Only
// the fields the pipeline consumes are declared; everything else is ignored
// on decode.

type competitionEnvelope struct {
	ID               int64              `json:"id"`
	Title            string             `json:"title"`
	StartsAt         time.Time          `json:"startsAt"`
	EndsAt           time.Time          `json:"endsAt"`
	ParticipantCount int                `json:"participantCount"`
	Participations   []participationDoc `json:"participations"`
}

type participationDoc struct {
	TeamName string      `json:"teamName"`
	Player   playerDoc   `json:"player"`
	Progress progressDoc `json:"progress"`
}

type playerDoc struct {
	DisplayName string `json:"displayName"`
}

type progressDoc struct {
	Gained float64 `json:"gained"`
}

type gainsEnvelope struct {
	Data gainsDataDoc `json:"data"`
}

type gainsDataDoc struct {
	Bosses     map[string]bossGainsDoc     `json:"bosses"`
	Activities map[string]activityGainsDoc `json:"activities"`
	Skills     map[string]skillGainsDoc    `json:"skills"`
}

type bossGainsDoc struct {
	Kills deltaDoc `json:"kills"`
}

type activityGainsDoc struct {
	Score deltaDoc `json:"score"`
}

type skillGainsDoc struct {
	Experience deltaDoc `json:"experience"`
}

type deltaDoc struct {
	Gained float64 `json:"gained"`
}

func mapCompetition(env competitionEnvelope) usecase.CompetitionDetails {
	out := usecase.CompetitionDetails{
		ID:               env.ID,
		Title:            env.Title,
		StartsAt:         env.StartsAt,
		EndsAt:           env.EndsAt,
		ParticipantCount: env.ParticipantCount,
		Participants:     make([]usecase.Participant, 0, len(env.Participations)),
	}

	for _, item := range env.Participations {
		if item.Player.DisplayName == "" {
			continue
		}
		out.Participants = append(out.Participants, usecase.Participant{
			DisplayName: item.Player.DisplayName,
			TeamName:    item.TeamName,
			EHBGained:   item.Progress.Gained,
		})
	}

	return out
}

// mapGains flattens the nested payload. Absent keys simply never appear in
// the maps, which downstream folds read as zero.
func mapGains(env gainsEnvelope) usecase.PlayerGains {
	out := usecase.PlayerGains{
		Bosses:     make(map[string]int, len(env.Data.Bosses)),
		Activities: make(map[string]int, len(env.Data.Activities)),
	}

	for boss, doc := range env.Data.Bosses {
		out.Bosses[boss] = int(doc.Kills.Gained)
	}
	for activity, doc := range env.Data.Activities {
		out.Activities[activity] = int(doc.Score.Gained)
	}
	if overall, ok := env.Data.Skills["overall"]; ok {
		out.OverallXP = int64(overall.Experience.Gained)
	}

	return out
}
