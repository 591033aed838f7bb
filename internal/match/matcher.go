// Package match ranks a user's stored thoughts against a moment's
// description and enrichment context. Scoring is keyword overlap plus
// learned per-(thought, keyword) weight adjustments from prior feedback;
// there is no model call on this path.
package match

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/thoughtfolio/backend/internal/model"
	"github.com/thoughtfolio/backend/internal/store"
)

// contextTagBonus rewards a thought whose context tag name overlaps the
// query even when the thought text itself does not mention the term.
const contextTagBonus = 0.15

// Ranker is the consumer-side contract; services depend on this, not on
// the concrete Matcher, so tests can substitute a canned ranking.
type Ranker interface {
	Rank(ctx context.Context, userID, description, userContext string) ([]*model.MomentThought, error)
}

// Matcher scores thoughts from the store.
type Matcher struct {
	store     store.Store
	threshold float64
	limit     int
}

// New returns a Matcher that drops hits below threshold and returns at
// most limit results.
func New(s store.Store, threshold float64, limit int) *Matcher {
	if limit <= 0 {
		limit = 10
	}
	return &Matcher{store: s, threshold: threshold, limit: limit}
}

// Rank matches the user's thoughts against description + userContext and
// returns them sorted descending by relevance. The sort is stable: equal
// scores keep store order, so repeated calls produce identical rankings.
func (m *Matcher) Rank(ctx context.Context, userID, description, userContext string) ([]*model.MomentThought, error) {
	query := Tokenize(description + " " + userContext)
	if len(query) == 0 {
		return []*model.MomentThought{}, nil
	}

	thoughts, err := m.store.Thoughts().List(ctx, userID)
	if err != nil {
		return nil, err
	}
	weights, err := m.store.Learning().WeightsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	contextNames, err := m.contextNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	hits := make([]*model.MomentThought, 0, len(thoughts))
	for _, th := range thoughts {
		hit := m.score(th, query, weights[th.ThoughtID], contextNames)
		if hit != nil && hit.RelevanceScore >= m.threshold {
			hits = append(hits, hit)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].RelevanceScore > hits[j].RelevanceScore
	})
	if len(hits) > m.limit {
		hits = hits[:m.limit]
	}
	return hits, nil
}

func (m *Matcher) contextNames(ctx context.Context, userID string) (map[string][]string, error) {
	ctxs, err := m.store.Contexts().List(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[string][]string, len(ctxs))
	for _, c := range ctxs {
		names[c.ContextID] = Tokenize(c.Name)
	}
	return names, nil
}

// score computes one thought's relevance. A nil return means no signal at
// all (no overlap and no learned weight).
func (m *Matcher) score(th *model.Thought, query []string, learned map[string]float64, contextNames map[string][]string) *model.MomentThought {
	doc := Tokenize(th.Content)
	matched := Overlap(query, doc)

	base := float64(len(matched)) / float64(len(query))

	tagBonus := 0.0
	if th.ContextID != nil {
		if tagTerms := Overlap(query, contextNames[*th.ContextID]); len(tagTerms) > 0 {
			tagBonus = contextTagBonus
			for _, t := range tagTerms {
				if !contains(matched, t) {
					matched = append(matched, t)
				}
			}
		}
	}

	learnedAdj := 0.0
	for _, q := range query {
		learnedAdj += learned[q]
	}

	score := clamp01(base + tagBonus + learnedAdj)
	if len(matched) == 0 && learnedAdj == 0 {
		return nil
	}

	source := model.MatchSourceStatic
	if learnedAdj != 0 {
		source = model.MatchSourceLearned
	}

	return &model.MomentThought{
		ThoughtID:       th.ThoughtID,
		Content:         th.Content,
		RelevanceScore:  score,
		RelevanceReason: reason(matched, learnedAdj),
		MatchedTerms:    matched,
		MatchSource:     source,
	}
}

func reason(matched []string, learnedAdj float64) string {
	switch {
	case len(matched) > 0 && learnedAdj > 0:
		return fmt.Sprintf("shares %s; boosted by your past feedback", strings.Join(matched, ", "))
	case len(matched) > 0:
		return "shares " + strings.Join(matched, ", ")
	case learnedAdj > 0:
		return "you found this helpful in similar moments"
	default:
		return "weak match"
	}
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
