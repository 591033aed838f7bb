package match

import (
	"reflect"
	"testing"
)

func TestTokenizeDropsStopwordsAndDuplicates(t *testing.T) {
	got := Tokenize("The feedback on the feedback was about Feedback")
	want := []string{"feedback", "about"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeKeepsColonTokens(t *testing.T) {
	got := Tokenize("1:1 with Sam")
	want := []string{"1:1", "sam"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize("  ,,, "); len(got) != 0 {
		t.Fatalf("Tokenize = %v, want empty", got)
	}
}

func TestOverlapPreservesQueryOrder(t *testing.T) {
	got := Overlap([]string{"b", "a", "c"}, []string{"a", "b"})
	want := []string{"b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Overlap = %v, want %v", got, want)
	}
}
