package usecase

import (
	"context"
	"strings"

	"github.com/clanhub/hunt-stats/internal/domain/hunt"
	"github.com/clanhub/hunt-stats/internal/platform/logging"
)

// Collision records two distinct identities that folded to the same key.
// The first-encountered record wins; the later one is dropped, not merged.
type Collision struct {
	Team    string
	Kept    string
	Dropped string
}

// Reconciler case-folds player identities so both data sources merge under
// one key regardless of how submitters typed a name.
type Reconciler struct {
	logger *logging.Logger
}

func NewReconciler(logger *logging.Logger) *Reconciler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Reconciler{logger: logger}
}

// Reconcile rewrites every team's player map in place with lower-cased keys,
// preserving first-seen order, and reports collisions.
func (r *Reconciler) Reconcile(ctx context.Context, store *hunt.Store) []Collision {
	ctx, span := startUsecaseSpan(ctx, "usecase.Reconciler.Reconcile")
	defer span.End()

	var collisions []Collision
	for _, name := range store.TeamOrder {
		collisions = append(collisions, r.reconcileTeam(store.Teams[name])...)
	}

	for _, c := range collisions {
		r.logger.WarnContext(ctx, "player identity collision, keeping first record",
			"team", c.Team,
			"kept", c.Kept,
			"dropped", c.Dropped,
		)
	}
	return collisions
}

func (r *Reconciler) reconcileTeam(team *hunt.Team) []Collision {
	folded := make(map[string]*hunt.Player, len(team.Players))
	order := make([]string, 0, len(team.Order))
	firstSeen := make(map[string]string, len(team.Order))

	var collisions []Collision
	for _, identity := range team.Order {
		key := strings.ToLower(identity)
		if _, exists := folded[key]; exists {
			collisions = append(collisions, Collision{
				Team:    team.Name,
				Kept:    firstSeen[key],
				Dropped: identity,
			})
			continue
		}
		folded[key] = team.Players[identity]
		firstSeen[key] = identity
		order = append(order, key)
	}

	team.Players = folded
	team.Order = order
	return collisions
}
