// Package learning turns review feedback into persistent per-keyword
// weight adjustments that bias future rankings.
package learning

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/thoughtfolio/backend/internal/events"
	"github.com/thoughtfolio/backend/internal/store"
)

// Learner consumes feedback events and applies weight deltas. Failures
// are logged and swallowed; a lost adjustment costs a little ranking
// quality, never a request.
type Learner struct {
	store         store.Store
	bus           *events.Bus
	log           zerolog.Logger
	helpfulDelta  float64
	notHelpfulCut float64
}

// New wires a Learner to the bus. helpfulDelta is added per matched term
// on helpful feedback; notHelpfulCut is subtracted on not-helpful.
func New(s store.Store, bus *events.Bus, log zerolog.Logger, helpfulDelta, notHelpfulCut float64) *Learner {
	return &Learner{
		store:         s,
		bus:           bus,
		log:           log.With().Str("component", "learner").Logger(),
		helpfulDelta:  helpfulDelta,
		notHelpfulCut: notHelpfulCut,
	}
}

// Run consumes events until the context is cancelled or the bus closes.
// Intended to be started as a goroutine during service boot.
func (l *Learner) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-l.bus.Subscribe():
			if !ok {
				return
			}
			l.apply(ctx, evt)
		}
	}
}

func (l *Learner) apply(ctx context.Context, evt events.LearningEvent) {
	delta := l.helpfulDelta
	if evt.Kind == events.KindNotHelpful {
		delta = -l.notHelpfulCut
	}
	for _, term := range evt.Terms {
		if err := l.store.Learning().AdjustWeight(ctx, evt.UserID, evt.ThoughtID, term, delta); err != nil {
			l.log.Error().Err(err).
				Str("userId", evt.UserID).
				Str("thoughtId", evt.ThoughtID).
				Str("keyword", term).
				Msg("weight adjustment failed")
			continue
		}
	}
	l.log.Debug().
		Str("kind", string(evt.Kind)).
		Str("thoughtId", evt.ThoughtID).
		Int("terms", len(evt.Terms)).
		Msg("applied feedback")
}
