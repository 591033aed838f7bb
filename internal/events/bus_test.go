package events

import "testing"

func TestPublishAndSubscribe(t *testing.T) {
	b := NewBus(4)
	ok := b.Publish(LearningEvent{Kind: KindHelpful, UserID: "u1", ThoughtID: "t1", Terms: []string{"feedback"}})
	if !ok {
		t.Fatal("Publish returned false on empty buffer")
	}
	got := <-b.Subscribe()
	if got.Kind != KindHelpful || got.ThoughtID != "t1" {
		t.Fatalf("received %+v", got)
	}
}

func TestPublishDropsWhenFull(t *testing.T) {
	b := NewBus(1)
	if !b.Publish(LearningEvent{Kind: KindHelpful}) {
		t.Fatal("first publish should succeed")
	}
	if b.Publish(LearningEvent{Kind: KindNotHelpful}) {
		t.Fatal("second publish should drop, not block")
	}
}

func TestCloseEndsSubscription(t *testing.T) {
	b := NewBus(1)
	b.Close()
	if _, ok := <-b.Subscribe(); ok {
		t.Fatal("expected closed channel")
	}
}
