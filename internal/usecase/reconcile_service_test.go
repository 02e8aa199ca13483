package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clanhub/hunt-stats/internal/domain/hunt"
)

func TestReconcileFoldsCaseVariants(t *testing.T) {
	t.Parallel()

	store := hunt.NewStore("Team Red")
	team := store.Teams["Team Red"]
	first := team.EnsurePlayer("Zezima")
	first.TotalDrops = 3
	second := team.EnsurePlayer("zezima")
	second.TotalDrops = 99

	collisions := NewReconciler(nil).Reconcile(context.Background(), store)

	require.Equal(t, []Collision{
		{Team: "Team Red", Kept: "Zezima", Dropped: "zezima"},
	}, collisions)

	require.Len(t, team.Players, 1)
	require.Equal(t, []string{"zezima"}, team.Order)

	kept, ok := team.Lookup("zezima")
	require.True(t, ok)
	require.Equal(t, 3, kept.TotalDrops)
}

func TestReconcileLeavesDistinctIdentitiesAlone(t *testing.T) {
	t.Parallel()

	store := hunt.NewStore("Team Red", "Team Gold")
	store.Teams["Team Red"].EnsurePlayer("Ash")
	store.Teams["Team Gold"].EnsurePlayer("Misty")

	collisions := NewReconciler(nil).Reconcile(context.Background(), store)
	require.Empty(t, collisions)

	require.Equal(t, []string{"ash"}, store.Teams["Team Red"].Order)
	require.Equal(t, []string{"misty"}, store.Teams["Team Gold"].Order)
}

func TestReconcileIsIdempotent(t *testing.T) {
	t.Parallel()

	store := hunt.NewStore("Team Red")
	store.Teams["Team Red"].EnsurePlayer("Ash")
	store.Teams["Team Red"].EnsurePlayer("ash")

	r := NewReconciler(nil)
	r.Reconcile(context.Background(), store)
	collisions := r.Reconcile(context.Background(), store)

	require.Empty(t, collisions)
	require.Equal(t, []string{"ash"}, store.Teams["Team Red"].Order)
}
