package titles

import "strings"

// Chip is a topic suggestion the enrichment prompt can offer for an event
// type. The master list is static; retrieval is a linear filter.
type Chip struct {
	Label     string `json:"label"`
	EventType string `json:"eventType"`
}

var masterChips = []Chip{
	{"career growth", EventTypeOneOnOne},
	{"giving feedback", EventTypeOneOnOne},
	{"receiving feedback", EventTypeOneOnOne},
	{"delegation", EventTypeOneOnOne},
	{"difficult conversation", EventTypeOneOnOne},
	{"priorities", EventTypeTeamMeeting},
	{"status update", EventTypeTeamMeeting},
	{"unblocking the team", EventTypeTeamMeeting},
	{"decision making", EventTypeTeamMeeting},
	{"behavioral questions", EventTypeInterview},
	{"telling my story", EventTypeInterview},
	{"evaluating candidates", EventTypeInterview},
	{"storytelling", EventTypePresentation},
	{"handling questions", EventTypePresentation},
	{"executive audience", EventTypePresentation},
	{"estimating work", EventTypePlanning},
	{"saying no", EventTypePlanning},
	{"scope cutting", EventTypePlanning},
	{"constructive criticism", EventTypeReview},
	{"lessons learned", EventTypeReview},
	{"active listening", EventTypeCustomerCall},
	{"objection handling", EventTypeCustomerCall},
	{"pricing conversation", EventTypeCustomerCall},
	{"asking good questions", EventTypeAllHands},
	{"first impressions", EventTypeUnknown},
	{"staying present", EventTypeUnknown},
	{"negotiation", EventTypeUnknown},
}

// ChipsForEventType returns the chips registered for the given event type.
// Unknown types get the EventTypeUnknown chips.
func ChipsForEventType(eventType string) []Chip {
	out := make([]Chip, 0, 4)
	for _, c := range masterChips {
		if c.EventType == eventType {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		for _, c := range masterChips {
			if c.EventType == EventTypeUnknown {
				out = append(out, c)
			}
		}
	}
	return out
}

// SearchChips returns chips whose label contains query as a case-insensitive
// substring. When eventType is non-empty the search is restricted to that
// type's chips. An empty query returns every candidate.
func SearchChips(query, eventType string) []Chip {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Chip, 0, 8)
	for _, c := range masterChips {
		if eventType != "" && c.EventType != eventType {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(c.Label), q) {
			out = append(out, c)
		}
	}
	return out
}
