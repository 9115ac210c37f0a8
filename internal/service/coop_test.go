package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"persona-tracker/internal/catalog"
	"persona-tracker/internal/model"
)

func seedCoopPoints(t *testing.T, env *testEnv, points int) model.Coop {
	t.Helper()
	ctx := context.Background()

	c, err := env.coops.Create(ctx, "Ryuji", model.CoopFriend, "")
	require.NoError(t, err)
	_, err = env.docs.Coops.Update(ctx, func(cs []model.Coop) ([]model.Coop, error) {
		cs[indexCoop(cs, c.ID)].Points = points
		return cs, nil
	})
	require.NoError(t, err)
	c.Points = points
	return c
}

func TestCoopService_GiftCrossesFirstThreshold(t *testing.T) {
	env := newTestEnv()
	c := seedCoopPoints(t, env, 3)

	result, err := env.coops.ApplyInteraction(context.Background(), c.ID, catalog.InteractionGift)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Coop.Points)
	assert.Equal(t, 0, result.OldRank)
	assert.Equal(t, 1, result.NewRank)
	assert.True(t, result.RankUp)

	require.Len(t, result.Coop.Logs, 1)
	assert.Equal(t, "gift", result.Coop.Logs[0].ActionID)
	assert.Equal(t, 2, result.Coop.Logs[0].Points)
	assert.Equal(t, testStart, result.Coop.Logs[0].Timestamp)
}

func TestCoopService_NoRankUpWithinLevel(t *testing.T) {
	env := newTestEnv()
	c := seedCoopPoints(t, env, 5)

	result, err := env.coops.ApplyInteraction(context.Background(), c.ID, catalog.InteractionMeet)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Coop.Points)
	assert.False(t, result.RankUp)
}

func TestCoopService_ApplyInteractionNotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	c := seedCoopPoints(t, env, 0)

	_, err := env.coops.ApplyInteraction(ctx, "coop_missing", catalog.InteractionMeet)
	assert.ErrorIs(t, err, ErrCoopNotFound)

	_, err = env.coops.ApplyInteraction(ctx, c.ID, "dance")
	assert.ErrorIs(t, err, ErrInteractionNotFound)

	got, err := env.coops.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Points)
	assert.Empty(t, got.Logs)
}

func TestCoopService_LogIsNewestFirstAndCapped(t *testing.T) {
	env := newTestEnvWithLimits(500, 100)
	ctx := context.Background()
	c := seedCoopPoints(t, env, 0)

	for i := 0; i < 101; i++ {
		_, err := env.coops.ApplyInteraction(ctx, c.ID, catalog.InteractionContact)
		require.NoError(t, err)
		env.clock.Advance(time.Minute)
	}

	got, err := env.coops.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 101, got.Points)
	require.Len(t, got.Logs, 100)
	assert.Equal(t, testStart.Add(100*time.Minute), got.Logs[0].Timestamp)
	// The very first interaction was evicted.
	assert.Equal(t, testStart.Add(time.Minute), got.Logs[99].Timestamp)
}

func TestCoopService_CreateRejectsUnknownCategory(t *testing.T) {
	env := newTestEnv()
	_, err := env.coops.Create(context.Background(), "X", "rival", "")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCoopService_NoteDeleteAndDeleteAll(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	a, err := env.coops.Create(ctx, "Ann", model.CoopFriend, "")
	require.NoError(t, err)
	b, err := env.coops.Create(ctx, "Sojiro", model.CoopFamily, "coffee")
	require.NoError(t, err)

	updated, err := env.coops.UpdateNote(ctx, a.ID, "photos")
	require.NoError(t, err)
	assert.Equal(t, "photos", updated.Note)

	_, err = env.coops.UpdateNote(ctx, "coop_missing", "x")
	assert.ErrorIs(t, err, ErrCoopNotFound)

	require.NoError(t, env.coops.Delete(ctx, a.ID))
	assert.ErrorIs(t, env.coops.Delete(ctx, a.ID), ErrCoopNotFound)

	list, err := env.coops.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	require.NoError(t, env.coops.DeleteAll(ctx))
	list, err = env.coops.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCoopService_Ranking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	low := seedCoopPoints(t, env, 3)
	high := seedCoopPoints(t, env, 40)
	mid := seedCoopPoints(t, env, 12)

	top, err := env.coops.Ranking(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, high.ID, top[0].ID)
	assert.Equal(t, mid.ID, top[1].ID)

	all, err := env.coops.Ranking(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, low.ID, all[2].ID)
}

func TestCoopRankHelpers(t *testing.T) {
	assert.Equal(t, 0, CoopRankOf(4))
	assert.Equal(t, 1, CoopRankOf(6))
	assert.Equal(t, "Rank MAX", CoopRankName(500))

	p := CoopProgressOf(7)
	assert.InDelta(t, 2.0/7.0*100, p.Percent, 0.0001)
	assert.Equal(t, 5, p.Remaining)
	assert.Equal(t, "Rank 3", p.NextRankLabel)

	p = CoopProgressOf(165)
	assert.True(t, p.AtMax)
	assert.Empty(t, p.NextRankLabel)

	env := newTestEnv()
	assert.Len(t, env.coops.Catalog(), 5)
	assert.Len(t, env.coops.Categories(), 4)
}

// TestCoopLogBoundProperty: after any number of interactions the log holds
// min(n, limit) entries and points equal the sum of interaction values.
func TestCoopLogBoundProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 10).Draw(t, "limit")
		kinds := rapid.SliceOfN(rapid.SampledFrom([]catalog.InteractionKind{
			catalog.InteractionContact,
			catalog.InteractionMeet,
			catalog.InteractionHelp,
			catalog.InteractionGift,
			catalog.InteractionEvent,
		}), 0, 25).Draw(t, "kinds")

		env := newTestEnvWithLimits(500, limit)
		ctx := context.Background()
		c, err := env.coops.Create(ctx, "X", model.CoopOther, "")
		if err != nil {
			t.Fatal(err)
		}

		want := 0
		for _, k := range kinds {
			it, _ := catalog.GetInteraction(k)
			before := want
			want += it.Points
			res, err := env.coops.ApplyInteraction(ctx, c.ID, k)
			if err != nil {
				t.Fatal(err)
			}
			if res.RankUp != (CoopRankOf(want) > CoopRankOf(before)) {
				t.Fatalf("rankUp mismatch at %d -> %d", before, want)
			}
		}

		got, err := env.coops.Get(ctx, c.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Points != want {
			t.Fatalf("points %d, want %d", got.Points, want)
		}
		if len(got.Logs) != min(len(kinds), limit) {
			t.Fatalf("log length %d, want %d", len(got.Logs), min(len(kinds), limit))
		}
	})
}
