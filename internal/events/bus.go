// Package events carries review feedback from the request path to the
// learner as best-effort, at-most-once notifications: a full buffer drops
// the event rather than blocking or failing the request.
package events

// Kind labels the feedback carried by a LearningEvent.
type Kind string

const (
	KindHelpful    Kind = "helpful"
	KindNotHelpful Kind = "not_helpful"
)

// LearningEvent links one piece of review feedback to the terms that
// produced the match. Only IDs and terms are carried; the learner derives
// weight deltas itself.
type LearningEvent struct {
	Kind      Kind
	UserID    string
	ThoughtID string
	Terms     []string
}

// Bus is a lightweight in-process pub-sub backed by a buffered channel.
type Bus struct {
	ch chan LearningEvent
}

// NewBus creates a bus with the given buffer size.
func NewBus(buffer int) *Bus {
	return &Bus{ch: make(chan LearningEvent, buffer)}
}

// Publish attempts to enqueue the event without blocking.
// Returns true if published, false if the buffer is full.
func (b *Bus) Publish(evt LearningEvent) bool {
	select {
	case b.ch <- evt:
		return true
	default:
		return false
	}
}

// Subscribe returns the consumer channel.
func (b *Bus) Subscribe() <-chan LearningEvent {
	return b.ch
}

// Close closes the consumer channel; Publish must not be called after.
func (b *Bus) Close() { close(b.ch) }
