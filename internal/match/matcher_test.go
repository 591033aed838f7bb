package match

import (
	"context"
	"testing"
	"time"

	"github.com/thoughtfolio/backend/internal/model"
	"github.com/thoughtfolio/backend/internal/store"
)

// --- Fakes ---

type fakeStore struct {
	thoughts []*model.Thought
	contexts []*model.Context
	weights  map[string]map[string]float64
}

func (f *fakeStore) Users() store.Users       { panic("unused") }
func (f *fakeStore) Sources() store.Sources   { panic("unused") }
func (f *fakeStore) Notes() store.Notes       { panic("unused") }
func (f *fakeStore) Moments() store.Moments   { panic("unused") }
func (f *fakeStore) Contexts() store.Contexts { return fakeContexts{f} }
func (f *fakeStore) Thoughts() store.Thoughts { return fakeThoughts{f} }
func (f *fakeStore) Learning() store.Learning { return fakeLearning{f} }

type fakeContexts struct{ f *fakeStore }

func (c fakeContexts) Create(context.Context, *model.Context) (*model.Context, error) {
	panic("unused")
}
func (c fakeContexts) GetByID(context.Context, string, string) (*model.Context, error) {
	panic("unused")
}
func (c fakeContexts) List(context.Context, string) ([]*model.Context, error) {
	return c.f.contexts, nil
}
func (c fakeContexts) Delete(context.Context, string, string) error { panic("unused") }

type fakeThoughts struct{ f *fakeStore }

func (t fakeThoughts) Create(context.Context, *model.Thought) (*model.Thought, error) {
	panic("unused")
}
func (t fakeThoughts) GetByID(context.Context, string, string) (*model.Thought, error) {
	panic("unused")
}
func (t fakeThoughts) List(context.Context, string) ([]*model.Thought, error) {
	return t.f.thoughts, nil
}
func (t fakeThoughts) Delete(context.Context, string, string) error { panic("unused") }
func (t fakeThoughts) RecordApplication(context.Context, string, string, time.Time) (*model.Thought, error) {
	panic("unused")
}
func (t fakeThoughts) SetOnActiveList(context.Context, string, string, bool) error { panic("unused") }
func (t fakeThoughts) ListActive(context.Context, string) ([]*model.Thought, error) {
	panic("unused")
}
func (t fakeThoughts) CountActive(context.Context, string) (int, error) { panic("unused") }
func (t fakeThoughts) LeastRecentlyApplied(context.Context, string) (*model.Thought, error) {
	panic("unused")
}

type fakeLearning struct{ f *fakeStore }

func (l fakeLearning) AdjustWeight(context.Context, string, string, string, float64) error {
	panic("unused")
}
func (l fakeLearning) WeightsForUser(context.Context, string) (map[string]map[string]float64, error) {
	if l.f.weights == nil {
		return map[string]map[string]float64{}, nil
	}
	return l.f.weights, nil
}

func thought(id, content string) *model.Thought {
	return &model.Thought{ThoughtID: id, UserID: "u1", Content: content}
}

// --- Tests ---

func TestRankScoresOverlap(t *testing.T) {
	fs := &fakeStore{thoughts: []*model.Thought{
		thought("t1", "ask open questions before offering feedback"),
		thought("t2", "always bring an agenda"),
		thought("t3", "completely unrelated idea about cooking pasta"),
	}}
	m := New(fs, 0.2, 10)

	hits, err := m.Rank(context.Background(), "u1", "giving difficult feedback to a report", "")
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].ThoughtID != "t1" {
		t.Fatalf("top hit = %s, want t1", hits[0].ThoughtID)
	}
	if hits[0].MatchSource != model.MatchSourceStatic {
		t.Fatalf("match source = %s, want static", hits[0].MatchSource)
	}
	if hits[0].RelevanceScore <= 0 || hits[0].RelevanceScore > 1 {
		t.Fatalf("score out of range: %v", hits[0].RelevanceScore)
	}
}

func TestRankStableOrderOnTies(t *testing.T) {
	// t1 and t3 match identically; t2 matches less. Ties must keep store
	// (creation) order: t1 before t3.
	fs := &fakeStore{thoughts: []*model.Thought{
		thought("t1", "delegation means trusting outcomes"),
		thought("t2", "delegation alone"),
		thought("t3", "delegation means trusting outcomes"),
	}}
	m := New(fs, 0.0, 10)

	hits, err := m.Rank(context.Background(), "u1", "delegation trusting outcomes", "")
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0].ThoughtID != "t1" || hits[1].ThoughtID != "t3" || hits[2].ThoughtID != "t2" {
		t.Fatalf("order = [%s %s %s], want [t1 t3 t2]", hits[0].ThoughtID, hits[1].ThoughtID, hits[2].ThoughtID)
	}
}

func TestRankLearnedWeightChangesSource(t *testing.T) {
	fs := &fakeStore{
		thoughts: []*model.Thought{thought("t1", "listen more than you talk")},
		weights:  map[string]map[string]float64{"t1": {"interview": 0.5}},
	}
	m := New(fs, 0.2, 10)

	hits, err := m.Rank(context.Background(), "u1", "interview prep", "")
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected learned hit, got %d", len(hits))
	}
	if hits[0].MatchSource != model.MatchSourceLearned {
		t.Fatalf("match source = %s, want learned", hits[0].MatchSource)
	}
}

func TestRankNotHelpfulWeightSuppresses(t *testing.T) {
	fs := &fakeStore{
		thoughts: []*model.Thought{thought("t1", "interview candidates fairly")},
		weights:  map[string]map[string]float64{"t1": {"interview": -0.9}},
	}
	m := New(fs, 0.2, 10)

	hits, err := m.Rank(context.Background(), "u1", "interview tomorrow", "")
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected suppressed hit, got %d", len(hits))
	}
}

func TestRankContextTagBonus(t *testing.T) {
	ctxID := "c1"
	fs := &fakeStore{
		thoughts: []*model.Thought{
			{ThoughtID: "t1", UserID: "u1", Content: "slow down and breathe", ContextID: &ctxID},
		},
		contexts: []*model.Context{{ContextID: ctxID, UserID: "u1", Name: "presentations"}},
	}
	m := New(fs, 0.1, 10)

	hits, err := m.Rank(context.Background(), "u1", "big presentations next week", "")
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected tag-bonus hit, got %d", len(hits))
	}
}

func TestRankEmptyQuery(t *testing.T) {
	fs := &fakeStore{thoughts: []*model.Thought{thought("t1", "anything")}}
	m := New(fs, 0.2, 10)

	hits, err := m.Rank(context.Background(), "u1", "", "")
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits for empty query, got %d", len(hits))
	}
}

func TestRankRespectsLimit(t *testing.T) {
	fs := &fakeStore{}
	for i := 0; i < 20; i++ {
		fs.thoughts = append(fs.thoughts, thought(string(rune('a'+i)), "negotiation tactics"))
	}
	m := New(fs, 0.0, 5)

	hits, err := m.Rank(context.Background(), "u1", "negotiation", "")
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(hits) != 5 {
		t.Fatalf("expected 5 hits, got %d", len(hits))
	}
}
