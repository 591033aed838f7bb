package services

import (
	"context"
	"time"

	"github.com/thoughtfolio/backend/internal/model"
	"github.com/thoughtfolio/backend/internal/store"
)

// memStore is a minimal in-memory store for service tests. Only the
// operations the tests exercise are implemented; the rest panic.
type memStore struct {
	thoughts map[string]*model.Thought
	order    []string
	moments  map[string]*model.Moment
}

func newMemStore() *memStore {
	return &memStore{
		thoughts: map[string]*model.Thought{},
		moments:  map[string]*model.Moment{},
	}
}

func (m *memStore) Users() store.Users       { panic("unused") }
func (m *memStore) Contexts() store.Contexts { panic("unused") }
func (m *memStore) Sources() store.Sources   { panic("unused") }
func (m *memStore) Notes() store.Notes       { panic("unused") }
func (m *memStore) Thoughts() store.Thoughts { return memThoughts{m} }
func (m *memStore) Moments() store.Moments   { return memMoments{m} }
func (m *memStore) Learning() store.Learning { panic("unused") }

type memThoughts struct{ m *memStore }

func (t memThoughts) Create(_ context.Context, th *model.Thought) (*model.Thought, error) {
	t.m.thoughts[th.ThoughtID] = th
	t.m.order = append(t.m.order, th.ThoughtID)
	return th, nil
}

func (t memThoughts) GetByID(_ context.Context, _, thoughtID string) (*model.Thought, error) {
	th, ok := t.m.thoughts[thoughtID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return th, nil
}

func (t memThoughts) List(_ context.Context, _ string) ([]*model.Thought, error) {
	out := make([]*model.Thought, 0, len(t.m.order))
	for _, id := range t.m.order {
		out = append(out, t.m.thoughts[id])
	}
	return out, nil
}

func (t memThoughts) Delete(_ context.Context, _, thoughtID string) error {
	delete(t.m.thoughts, thoughtID)
	return nil
}

func (t memThoughts) RecordApplication(_ context.Context, _, thoughtID string, at time.Time) (*model.Thought, error) {
	th, ok := t.m.thoughts[thoughtID]
	if !ok {
		return nil, model.ErrNotFound
	}
	th.ApplicationCount++
	th.LastAppliedTime = &at
	return th, nil
}

func (t memThoughts) SetOnActiveList(_ context.Context, _, thoughtID string, on bool) error {
	th, ok := t.m.thoughts[thoughtID]
	if !ok {
		return model.ErrNotFound
	}
	th.OnActiveList = on
	return nil
}

func (t memThoughts) ListActive(_ context.Context, _ string) ([]*model.Thought, error) {
	var out []*model.Thought
	for _, id := range t.m.order {
		if t.m.thoughts[id].OnActiveList {
			out = append(out, t.m.thoughts[id])
		}
	}
	return out, nil
}

func (t memThoughts) CountActive(_ context.Context, _ string) (int, error) {
	n := 0
	for _, th := range t.m.thoughts {
		if th.OnActiveList {
			n++
		}
	}
	return n, nil
}

func (t memThoughts) LeastRecentlyApplied(_ context.Context, _ string) (*model.Thought, error) {
	var best *model.Thought
	for _, id := range t.m.order {
		th := t.m.thoughts[id]
		if th.OnActiveList {
			continue
		}
		if best == nil {
			best = th
			continue
		}
		switch {
		case th.LastAppliedTime == nil && best.LastAppliedTime != nil:
			best = th
		case th.LastAppliedTime != nil && best.LastAppliedTime != nil &&
			th.LastAppliedTime.Before(*best.LastAppliedTime):
			best = th
		}
	}
	if best == nil {
		return nil, model.ErrNotFound
	}
	return best, nil
}

type memMoments struct{ m *memStore }

func (mm memMoments) Create(_ context.Context, mo *model.Moment) (*model.Moment, error) {
	mm.m.moments[mo.MomentID] = mo
	return mo, nil
}

func (mm memMoments) GetByID(_ context.Context, _, momentID string) (*model.Moment, error) {
	mo, ok := mm.m.moments[momentID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return mo, nil
}

func (mm memMoments) List(_ context.Context, _ string) ([]*model.Moment, error) {
	var out []*model.Moment
	for _, mo := range mm.m.moments {
		out = append(out, mo)
	}
	return out, nil
}

func (mm memMoments) SetUserContext(_ context.Context, _, momentID, userContext, status string) error {
	mo, ok := mm.m.moments[momentID]
	if !ok {
		return model.ErrNotFound
	}
	mo.UserContext = &userContext
	mo.Status = status
	return nil
}

func (mm memMoments) ReplaceMatches(_ context.Context, _, momentID string, matches []*model.MomentThought) error {
	mo, ok := mm.m.moments[momentID]
	if !ok {
		return model.ErrNotFound
	}
	mo.MatchedThoughts = matches
	return nil
}

func (mm memMoments) Review(_ context.Context, _, momentID, thoughtID string, helpful *bool) (*model.MomentThought, error) {
	mo, ok := mm.m.moments[momentID]
	if !ok {
		return nil, model.ErrNotFound
	}
	for _, mt := range mo.MatchedThoughts {
		if mt.ThoughtID != thoughtID {
			continue
		}
		mt.WasReviewed = true
		if mt.WasHelpful == nil || *mt.WasHelpful {
			mt.WasHelpful = helpful
		}
		return mt, nil
	}
	return nil, model.ErrNotFound
}

// cannedRanker returns a fixed ranking regardless of input.
type cannedRanker struct {
	hits []*model.MomentThought
	err  error
}

func (r *cannedRanker) Rank(context.Context, string, string, string) ([]*model.MomentThought, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.hits, nil
}
