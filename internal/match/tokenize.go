package match

import (
	"strings"
	"unicode"
)

// stopwords are excluded from scoring; they carry no matching signal.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "had": {}, "has": {},
	"have": {}, "how": {}, "i": {}, "in": {}, "is": {}, "it": {}, "its": {},
	"my": {}, "of": {}, "on": {}, "or": {}, "our": {}, "so": {}, "that": {},
	"the": {}, "their": {}, "them": {}, "then": {}, "there": {}, "this": {},
	"to": {}, "up": {}, "was": {}, "we": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "who": {}, "will": {}, "with": {}, "you": {},
	"your": {},
}

// Tokenize lowercases s and splits it into stopword-free terms. ':' is kept
// inside tokens so patterns like "1:1" survive as a single term.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ':'
	})
	out := make([]string, 0, len(fields))
	seen := map[string]struct{}{}
	for _, f := range fields {
		f = strings.Trim(f, ":")
		if len(f) < 2 && f != "i" {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Overlap returns the terms of query that also occur in doc, preserving
// query order.
func Overlap(query, doc []string) []string {
	set := make(map[string]struct{}, len(doc))
	for _, d := range doc {
		set[d] = struct{}{}
	}
	var out []string
	for _, q := range query {
		if _, ok := set[q]; ok {
			out = append(out, q)
		}
	}
	return out
}
