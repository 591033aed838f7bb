package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestExtractThoughts(t *testing.T) {
	srv := completionServer(t, `["delegate outcomes, not tasks", "praise in public"]`)
	defer srv.Close()

	e := NewExtractor(srv.URL, "test-model", "")
	got, err := e.ExtractThoughts(context.Background(), "some book excerpt", 5)
	if err != nil {
		t.Fatalf("ExtractThoughts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Content != "delegate outcomes, not tasks" {
		t.Fatalf("first candidate = %q", got[0].Content)
	}
}

func TestExtractThoughtsStripsCodeFence(t *testing.T) {
	srv := completionServer(t, "```json\n[\"one insight\"]\n```")
	defer srv.Close()

	e := NewExtractor(srv.URL, "test-model", "")
	got, err := e.ExtractThoughts(context.Background(), "text", 5)
	if err != nil {
		t.Fatalf("ExtractThoughts: %v", err)
	}
	if len(got) != 1 || got[0].Content != "one insight" {
		t.Fatalf("candidates = %+v", got)
	}
}

func TestExtractThoughtsRespectsMax(t *testing.T) {
	srv := completionServer(t, `["a", "b", "c", "d"]`)
	defer srv.Close()

	e := NewExtractor(srv.URL, "test-model", "")
	got, err := e.ExtractThoughts(context.Background(), "text", 2)
	if err != nil {
		t.Fatalf("ExtractThoughts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
}

func TestExtractThoughtsEmptyText(t *testing.T) {
	e := NewExtractor("http://unused", "test-model", "")
	if _, err := e.ExtractThoughts(context.Background(), "   ", 5); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestExtractThoughtsBadReply(t *testing.T) {
	srv := completionServer(t, "not json at all")
	defer srv.Close()

	e := NewExtractor(srv.URL, "test-model", "")
	if _, err := e.ExtractThoughts(context.Background(), "text", 5); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestExtractThoughtsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := NewExtractor(srv.URL, "test-model", "")
	if _, err := e.ExtractThoughts(context.Background(), "text", 5); err == nil {
		t.Fatal("expected upstream error")
	}
}
