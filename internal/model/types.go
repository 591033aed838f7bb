package model

import "time"

// User represents an account in the system.
type User struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	DisplayName  *string   `json:"displayName,omitempty"`
	TimeZone     string    `json:"timeZone"`
	Status       string    `json:"status"`
	CreationTime time.Time `json:"creationTime"`
}

// Context is a user-defined tag applied to thoughts, notes and sources.
type Context struct {
	ContextID    string    `json:"contextId"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Source kinds.
const (
	SourceKindBook         = "book"
	SourceKindArticle      = "article"
	SourceKindPodcast      = "podcast"
	SourceKindVideo        = "video"
	SourceKindConversation = "conversation"
	SourceKindOther        = "other"
)

// Source is a book/article/podcast record thoughts and notes attribute to.
type Source struct {
	SourceID     string    `json:"sourceId"`
	UserID       string    `json:"userId"`
	Kind         string    `json:"kind"`
	Title        string    `json:"title"`
	Author       *string   `json:"author,omitempty"`
	URL          *string   `json:"url,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Thought is a short user-captured insight.
type Thought struct {
	ThoughtID        string     `json:"thoughtId"`
	UserID           string     `json:"userId"`
	ContextID        *string    `json:"contextId,omitempty"`
	SourceID         *string    `json:"sourceId,omitempty"`
	Content          string     `json:"content"`
	ApplicationCount int        `json:"applicationCount"`
	OnActiveList     bool       `json:"onActiveList"`
	LastAppliedTime  *time.Time `json:"lastAppliedTime,omitempty"`
	CreationTime     time.Time  `json:"creationTime"`
}

// Note is a long-form text record, optionally attributed to a source.
type Note struct {
	NoteID       string    `json:"noteId"`
	UserID       string    `json:"userId"`
	SourceID     *string   `json:"sourceId,omitempty"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}

// Moment statuses.
const (
	MomentStatusOpen     = "OPEN"
	MomentStatusEnriched = "ENRICHED"
)

// Moment is a preparation session tied to an upcoming event or free-text
// description, against which stored thoughts are matched.
type Moment struct {
	MomentID           string           `json:"momentId"`
	UserID             string           `json:"userId"`
	Description        string           `json:"description"`
	CalendarEventTitle *string          `json:"calendarEventTitle,omitempty"`
	CalendarEventStart *time.Time       `json:"calendarEventStart,omitempty"`
	UserContext        *string          `json:"userContext,omitempty"`
	Status             string           `json:"status"`
	MatchedThoughts    []*MomentThought `json:"matchedThoughts"`
	CreationTime       time.Time        `json:"creationTime"`
}

// NeedsContext reports whether the moment matched nothing and has not been
// enriched yet; clients use it to open the enrichment prompt.
func (m *Moment) NeedsContext() bool {
	return len(m.MatchedThoughts) == 0 && m.UserContext == nil
}

// Match sources for a MomentThought.
const (
	MatchSourceStatic  = "static"
	MatchSourceLearned = "learned"
)

// MomentThought links a moment to a matched thought with ranking metadata
// and the user's review feedback.
//
// WasReviewed is monotonic: once true it stays true. WasHelpful is monotonic
// once set to false; there is no path back to unset.
type MomentThought struct {
	MomentID        string   `json:"momentId"`
	ThoughtID       string   `json:"thoughtId"`
	Content         string   `json:"content"`
	RelevanceScore  float64  `json:"relevanceScore"`
	RelevanceReason string   `json:"relevanceReason"`
	MatchedTerms    []string `json:"matchedTerms,omitempty"`
	MatchSource     string   `json:"matchSource"`
	WasReviewed     bool     `json:"wasReviewed"`
	WasHelpful      *bool    `json:"wasHelpful,omitempty"`
}
