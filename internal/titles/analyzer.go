// Package titles classifies free-text event titles into a fixed set of
// event types and decides whether a title is too generic to match well.
// Everything here is pure and synchronous; unmatched input degrades to
// EventTypeUnknown rather than failing.
package titles

import "strings"

// Event types assignable by Analyze.
const (
	EventTypeOneOnOne     = "1:1"
	EventTypeTeamMeeting  = "team_meeting"
	EventTypeInterview    = "interview"
	EventTypePresentation = "presentation"
	EventTypePlanning     = "planning"
	EventTypeReview       = "review"
	EventTypeCustomerCall = "customer_call"
	EventTypeAllHands     = "all_hands"
	EventTypeUnknown      = "unknown"
)

// Generic reasons, in detection priority order.
const (
	GenericReasonCommonPattern = "common_pattern"
	GenericReasonShort         = "short"
	GenericReasonNoDescription = "no_description"
)

// shortTitleThreshold is the normalized-title length below which a title is
// considered too short to carry matchable signal.
const shortTitleThreshold = 12

// Analysis is the result of analyzing one event title. It is a value
// object: regenerated on every call, never stored.
type Analysis struct {
	DetectedEventType  string   `json:"detectedEventType"`
	IsGeneric          bool     `json:"isGeneric"`
	GenericReason      string   `json:"genericReason,omitempty"`
	SuggestedQuestions []string `json:"suggestedQuestions"`
}

// typeRule maps keywords to an event type. Rules are evaluated in
// declaration order; the first rule with a matching keyword wins.
type typeRule struct {
	eventType string
	keywords  []string
}

var typeRules = []typeRule{
	{EventTypeOneOnOne, []string{"1:1", "1-1", "one on one", "one-on-one", "check-in", "check in", "catch up", "catchup"}},
	{EventTypeAllHands, []string{"all hands", "all-hands", "town hall", "townhall", "company meeting"}},
	{EventTypeInterview, []string{"interview", "screening", "hiring panel", "debrief"}},
	{EventTypePresentation, []string{"presentation", "demo", "keynote", "talk", "pitch"}},
	{EventTypePlanning, []string{"planning", "roadmap", "sprint", "kickoff", "kick-off"}},
	{EventTypeReview, []string{"review", "retro", "retrospective", "postmortem", "post-mortem", "feedback"}},
	{EventTypeCustomerCall, []string{"customer", "client", "prospect", "sales call", "discovery call"}},
	{EventTypeTeamMeeting, []string{"team meeting", "team sync", "standup", "stand-up", "staff meeting", "sync", "weekly", "huddle"}},
}

// commonPatterns are titles that are, on their own, too generic to match
// against: the bare title with no qualifier says nothing about content.
var commonPatterns = []string{
	"1:1", "1-1", "sync", "standup", "stand-up", "meeting", "call",
	"chat", "catch up", "catchup", "check-in", "check in", "weekly", "huddle",
}

// suggestedQuestions holds 0-3 follow-up questions per event type, offered
// when the title alone is too generic.
var suggestedQuestions = map[string][]string{
	EventTypeOneOnOne: {
		"Who are you meeting with?",
		"Is there a topic you want to bring up?",
		"Any recent feedback to discuss?",
	},
	EventTypeTeamMeeting: {
		"What is the main agenda item?",
		"Are you presenting or listening?",
	},
	EventTypeInterview: {
		"What role is the interview for?",
		"Are you the interviewer or the candidate?",
	},
	EventTypePresentation: {
		"What are you presenting?",
		"Who is the audience?",
	},
	EventTypePlanning: {
		"What are you planning?",
		"What decisions need to be made?",
	},
	EventTypeReview: {
		"What is being reviewed?",
	},
	EventTypeCustomerCall: {
		"Which customer is it?",
		"What stage is the conversation at?",
	},
	EventTypeAllHands: {
		"Is there a topic you expect to come up?",
	},
	EventTypeUnknown: {
		"What is this event about?",
		"What outcome would make it a success?",
	},
}

// Analyze classifies title into an event type and decides whether it is too
// generic to match well. description may be empty. Analyze never fails;
// every string input yields a valid Analysis.
func Analyze(title, description string) Analysis {
	normalized := strings.ToLower(strings.TrimSpace(title))

	a := Analysis{
		DetectedEventType:  detectEventType(normalized),
		SuggestedQuestions: []string{},
	}

	// Priority order is fixed: a recognized bare pattern outranks the
	// length check, which outranks a missing description.
	switch {
	case isCommonPattern(normalized):
		a.IsGeneric = true
		a.GenericReason = GenericReasonCommonPattern
	case len(normalized) < shortTitleThreshold:
		a.IsGeneric = true
		a.GenericReason = GenericReasonShort
	case strings.TrimSpace(description) == "":
		a.IsGeneric = true
		a.GenericReason = GenericReasonNoDescription
	}

	if a.IsGeneric {
		if qs, ok := suggestedQuestions[a.DetectedEventType]; ok {
			a.SuggestedQuestions = append(a.SuggestedQuestions, qs...)
		}
	}
	return a
}

func detectEventType(normalized string) string {
	if normalized == "" {
		return EventTypeUnknown
	}
	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.eventType
			}
		}
	}
	return EventTypeUnknown
}

func isCommonPattern(normalized string) bool {
	for _, p := range commonPatterns {
		if normalized == p {
			return true
		}
	}
	return false
}
