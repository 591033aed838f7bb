package learning

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/thoughtfolio/backend/internal/events"
	"github.com/thoughtfolio/backend/internal/store"
)

type recordingStore struct {
	mu      sync.Mutex
	weights map[string]float64 // thoughtID + "/" + keyword -> accumulated delta
}

func (r *recordingStore) Users() store.Users       { panic("unused") }
func (r *recordingStore) Contexts() store.Contexts { panic("unused") }
func (r *recordingStore) Sources() store.Sources   { panic("unused") }
func (r *recordingStore) Thoughts() store.Thoughts { panic("unused") }
func (r *recordingStore) Notes() store.Notes       { panic("unused") }
func (r *recordingStore) Moments() store.Moments   { panic("unused") }
func (r *recordingStore) Learning() store.Learning { return recordingLearning{r} }

type recordingLearning struct{ r *recordingStore }

func (l recordingLearning) AdjustWeight(_ context.Context, _, thoughtID, keyword string, delta float64) error {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()
	if l.r.weights == nil {
		l.r.weights = map[string]float64{}
	}
	l.r.weights[thoughtID+"/"+keyword] += delta
	return nil
}

func (l recordingLearning) WeightsForUser(context.Context, string) (map[string]map[string]float64, error) {
	panic("unused")
}

func (r *recordingStore) get(key string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.weights[key]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestLearnerAppliesHelpfulDelta(t *testing.T) {
	rs := &recordingStore{}
	bus := events.NewBus(8)
	l := New(rs, bus, zerolog.Nop(), 0.1, 0.15)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	bus.Publish(events.LearningEvent{
		Kind: events.KindHelpful, UserID: "u1", ThoughtID: "t1",
		Terms: []string{"feedback", "difficult"},
	})

	waitFor(t, func() bool {
		return rs.get("t1/feedback") == 0.1 && rs.get("t1/difficult") == 0.1
	})
}

func TestLearnerAppliesNotHelpfulCut(t *testing.T) {
	rs := &recordingStore{}
	bus := events.NewBus(8)
	l := New(rs, bus, zerolog.Nop(), 0.1, 0.15)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	bus.Publish(events.LearningEvent{
		Kind: events.KindNotHelpful, UserID: "u1", ThoughtID: "t1",
		Terms: []string{"standup"},
	})

	waitFor(t, func() bool { return rs.get("t1/standup") == -0.15 })
}

func TestLearnerStopsOnBusClose(t *testing.T) {
	rs := &recordingStore{}
	bus := events.NewBus(1)
	l := New(rs, bus, zerolog.Nop(), 0.1, 0.15)

	done := make(chan struct{})
	go func() {
		l.Run(context.Background())
		close(done)
	}()
	bus.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("learner did not stop after bus close")
	}
}
