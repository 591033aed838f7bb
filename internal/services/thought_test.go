package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thoughtfolio/backend/internal/model"
)

func seedThought(t *testing.T, svc *ThoughtService, content string) *model.Thought {
	t.Helper()
	th, err := svc.CreateThought(context.Background(), &model.Thought{UserID: "u1", Content: content})
	if err != nil {
		t.Fatalf("CreateThought: %v", err)
	}
	return th
}

func TestActiveListCapReturnsConflict(t *testing.T) {
	st := newMemStore()
	svc := NewThoughtService(st, 2)

	a := seedThought(t, svc, "one")
	b := seedThought(t, svc, "two")
	c := seedThought(t, svc, "three")

	if err := svc.AddToActiveList(context.Background(), "u1", a.ThoughtID); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if err := svc.AddToActiveList(context.Background(), "u1", b.ThoughtID); err != nil {
		t.Fatalf("add b: %v", err)
	}
	err := svc.AddToActiveList(context.Background(), "u1", c.ThoughtID)
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestActiveListAddIsIdempotent(t *testing.T) {
	st := newMemStore()
	svc := NewThoughtService(st, 1)

	a := seedThought(t, svc, "one")
	if err := svc.AddToActiveList(context.Background(), "u1", a.ThoughtID); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Re-adding the same thought must not count against the cap.
	if err := svc.AddToActiveList(context.Background(), "u1", a.ThoughtID); err != nil {
		t.Fatalf("re-add: %v", err)
	}
}

func TestRemoveFromActiveListFreesSlot(t *testing.T) {
	st := newMemStore()
	svc := NewThoughtService(st, 1)

	a := seedThought(t, svc, "one")
	b := seedThought(t, svc, "two")

	if err := svc.AddToActiveList(context.Background(), "u1", a.ThoughtID); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if err := svc.RemoveFromActiveList(context.Background(), "u1", a.ThoughtID); err != nil {
		t.Fatalf("remove a: %v", err)
	}
	if err := svc.AddToActiveList(context.Background(), "u1", b.ThoughtID); err != nil {
		t.Fatalf("add b after free: %v", err)
	}
}

func TestApplyThoughtIncrementsCount(t *testing.T) {
	st := newMemStore()
	svc := NewThoughtService(st, 5)

	a := seedThought(t, svc, "one")
	got, err := svc.ApplyThought(context.Background(), "u1", a.ThoughtID)
	if err != nil {
		t.Fatalf("ApplyThought: %v", err)
	}
	if got.ApplicationCount != 1 || got.LastAppliedTime == nil {
		t.Fatalf("application not recorded: %+v", got)
	}
}

func TestDiscoverPrefersNeverApplied(t *testing.T) {
	st := newMemStore()
	svc := NewThoughtService(st, 5)

	a := seedThought(t, svc, "applied long ago")
	fresh := seedThought(t, svc, "never applied")
	past := time.Now().UTC().Add(-24 * time.Hour)
	if _, err := st.Thoughts().RecordApplication(context.Background(), "u1", a.ThoughtID, past); err != nil {
		t.Fatalf("RecordApplication: %v", err)
	}

	got, err := svc.Discover(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got.ThoughtID != fresh.ThoughtID {
		t.Fatalf("Discover = %s, want never-applied %s", got.ThoughtID, fresh.ThoughtID)
	}
}

func TestDiscoverSkipsActiveList(t *testing.T) {
	st := newMemStore()
	svc := NewThoughtService(st, 5)

	a := seedThought(t, svc, "on the list")
	b := seedThought(t, svc, "off the list")
	if err := svc.AddToActiveList(context.Background(), "u1", a.ThoughtID); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := svc.Discover(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got.ThoughtID != b.ThoughtID {
		t.Fatalf("Discover = %s, want %s", got.ThoughtID, b.ThoughtID)
	}
}
