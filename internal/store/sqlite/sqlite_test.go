package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thoughtfolio/backend/internal/model"
	"github.com/thoughtfolio/backend/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := New(context.Background(), filepath.Join(t.TempDir(), "folio.db"))
	require.NoError(t, err)
	return st
}

func seedUser(t *testing.T, st store.Store) string {
	t.Helper()
	_, err := st.Users().Create(context.Background(), &model.User{
		UserID: "u1", Email: "u1@example.com", TimeZone: "UTC",
	})
	require.NoError(t, err)
	return "u1"
}

func TestThoughtLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	uid := seedUser(t, st)

	created, err := st.Thoughts().Create(ctx, &model.Thought{UserID: uid, Content: "praise in public"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ThoughtID)

	got, err := st.Thoughts().GetByID(ctx, uid, created.ThoughtID)
	require.NoError(t, err)
	require.Equal(t, "praise in public", got.Content)
	require.Zero(t, got.ApplicationCount)
	require.Nil(t, got.LastAppliedTime)

	at := time.Now().UTC().Truncate(time.Second)
	applied, err := st.Thoughts().RecordApplication(ctx, uid, created.ThoughtID, at)
	require.NoError(t, err)
	require.Equal(t, 1, applied.ApplicationCount)
	require.NotNil(t, applied.LastAppliedTime)

	require.NoError(t, st.Thoughts().Delete(ctx, uid, created.ThoughtID))
	_, err = st.Thoughts().GetByID(ctx, uid, created.ThoughtID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestThoughtListKeepsCreationOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	uid := seedUser(t, st)

	for _, content := range []string{"first", "second", "third"} {
		_, err := st.Thoughts().Create(ctx, &model.Thought{UserID: uid, Content: content})
		require.NoError(t, err)
	}

	list, err := st.Thoughts().List(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "first", list[0].Content)
	require.Equal(t, "third", list[2].Content)
}

func TestActiveListFlagAndCount(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	uid := seedUser(t, st)

	a, err := st.Thoughts().Create(ctx, &model.Thought{UserID: uid, Content: "a"})
	require.NoError(t, err)
	_, err = st.Thoughts().Create(ctx, &model.Thought{UserID: uid, Content: "b"})
	require.NoError(t, err)

	require.NoError(t, st.Thoughts().SetOnActiveList(ctx, uid, a.ThoughtID, true))

	n, err := st.Thoughts().CountActive(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	active, err := st.Thoughts().ListActive(ctx, uid)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, a.ThoughtID, active[0].ThoughtID)
}

func TestLeastRecentlyAppliedPrefersNeverApplied(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	uid := seedUser(t, st)

	applied, err := st.Thoughts().Create(ctx, &model.Thought{UserID: uid, Content: "applied"})
	require.NoError(t, err)
	fresh, err := st.Thoughts().Create(ctx, &model.Thought{UserID: uid, Content: "fresh"})
	require.NoError(t, err)

	_, err = st.Thoughts().RecordApplication(ctx, uid, applied.ThoughtID, time.Now().UTC().Add(-48*time.Hour))
	require.NoError(t, err)

	got, err := st.Thoughts().LeastRecentlyApplied(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, fresh.ThoughtID, got.ThoughtID)
}

func createMomentWithMatch(t *testing.T, st store.Store, uid string) *model.Moment {
	t.Helper()
	th, err := st.Thoughts().Create(context.Background(), &model.Thought{UserID: uid, Content: "listen first"})
	require.NoError(t, err)

	m, err := st.Moments().Create(context.Background(), &model.Moment{
		UserID:      uid,
		Description: "difficult feedback conversation",
		Status:      model.MomentStatusOpen,
		MatchedThoughts: []*model.MomentThought{
			{ThoughtID: th.ThoughtID, Content: th.Content, RelevanceScore: 0.8,
				RelevanceReason: "shares feedback", MatchedTerms: []string{"feedback"},
				MatchSource: model.MatchSourceStatic},
		},
	})
	require.NoError(t, err)
	return m
}

func TestMomentRoundTripWithMatches(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	uid := seedUser(t, st)

	m := createMomentWithMatch(t, st, uid)

	got, err := st.Moments().GetByID(ctx, uid, m.MomentID)
	require.NoError(t, err)
	require.Len(t, got.MatchedThoughts, 1)
	require.Equal(t, []string{"feedback"}, got.MatchedThoughts[0].MatchedTerms)
	require.False(t, got.MatchedThoughts[0].WasReviewed)
	require.Nil(t, got.MatchedThoughts[0].WasHelpful)
}

func TestMomentMatchesKeepRankOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	uid := seedUser(t, st)

	// Equal scores; retrieval must preserve insertion order.
	m, err := st.Moments().Create(ctx, &model.Moment{
		UserID: uid, Description: "planning", Status: model.MomentStatusOpen,
		MatchedThoughts: []*model.MomentThought{
			{ThoughtID: "t1", RelevanceScore: 0.9},
			{ThoughtID: "t2", RelevanceScore: 0.4},
			{ThoughtID: "t3", RelevanceScore: 0.9},
		},
	})
	require.NoError(t, err)

	got, err := st.Moments().GetByID(ctx, uid, m.MomentID)
	require.NoError(t, err)
	require.Len(t, got.MatchedThoughts, 3)
	require.Equal(t, "t1", got.MatchedThoughts[0].ThoughtID)
	require.Equal(t, "t2", got.MatchedThoughts[1].ThoughtID)
	require.Equal(t, "t3", got.MatchedThoughts[2].ThoughtID)
}

func TestReviewMonotonicFlags(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	uid := seedUser(t, st)

	m := createMomentWithMatch(t, st, uid)
	thoughtID := m.MatchedThoughts[0].ThoughtID

	no := false
	mt, err := st.Moments().Review(ctx, uid, m.MomentID, thoughtID, &no)
	require.NoError(t, err)
	require.True(t, mt.WasReviewed)
	require.NotNil(t, mt.WasHelpful)
	require.False(t, *mt.WasHelpful)

	// A later helpful=true must not reverse the earlier false.
	yes := true
	mt, err = st.Moments().Review(ctx, uid, m.MomentID, thoughtID, &yes)
	require.NoError(t, err)
	require.True(t, mt.WasReviewed)
	require.False(t, *mt.WasHelpful)
}

func TestReviewUnknownThoughtReturnsNotFound(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	uid := seedUser(t, st)

	m := createMomentWithMatch(t, st, uid)
	yes := true
	_, err := st.Moments().Review(ctx, uid, m.MomentID, "ghost", &yes)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestReplaceMatchesDropsReviewFlags(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	uid := seedUser(t, st)

	m := createMomentWithMatch(t, st, uid)
	thoughtID := m.MatchedThoughts[0].ThoughtID
	yes := true
	_, err := st.Moments().Review(ctx, uid, m.MomentID, thoughtID, &yes)
	require.NoError(t, err)

	err = st.Moments().ReplaceMatches(ctx, uid, m.MomentID, []*model.MomentThought{
		{ThoughtID: thoughtID, RelevanceScore: 0.9, MatchSource: model.MatchSourceLearned},
	})
	require.NoError(t, err)

	got, err := st.Moments().GetByID(ctx, uid, m.MomentID)
	require.NoError(t, err)
	require.Len(t, got.MatchedThoughts, 1)
	require.False(t, got.MatchedThoughts[0].WasReviewed)
	require.Nil(t, got.MatchedThoughts[0].WasHelpful)
}

func TestSetUserContext(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	uid := seedUser(t, st)

	m := createMomentWithMatch(t, st, uid)
	err := st.Moments().SetUserContext(ctx, uid, m.MomentID, "giving feedback - reorg week", model.MomentStatusEnriched)
	require.NoError(t, err)

	got, err := st.Moments().GetByID(ctx, uid, m.MomentID)
	require.NoError(t, err)
	require.NotNil(t, got.UserContext)
	require.Equal(t, "giving feedback - reorg week", *got.UserContext)
	require.Equal(t, model.MomentStatusEnriched, got.Status)
}

func TestLearningWeightsAccumulate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	uid := seedUser(t, st)

	require.NoError(t, st.Learning().AdjustWeight(ctx, uid, "t1", "feedback", 0.1))
	require.NoError(t, st.Learning().AdjustWeight(ctx, uid, "t1", "feedback", 0.1))
	require.NoError(t, st.Learning().AdjustWeight(ctx, uid, "t1", "standup", -0.15))

	weights, err := st.Learning().WeightsForUser(ctx, uid)
	require.NoError(t, err)
	require.InDelta(t, 0.2, weights["t1"]["feedback"], 1e-9)
	require.InDelta(t, -0.15, weights["t1"]["standup"], 1e-9)
}

func TestNotesUpdateBumpsUpdateTime(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	uid := seedUser(t, st)

	n, err := st.Notes().Create(ctx, &model.Note{UserID: uid, Title: "Reading notes", Body: "first draft"})
	require.NoError(t, err)

	n.Body = "second draft"
	updated, err := st.Notes().Update(ctx, n)
	require.NoError(t, err)
	require.Equal(t, "second draft", updated.Body)
	require.False(t, updated.UpdateTime.Before(n.CreationTime))
}
