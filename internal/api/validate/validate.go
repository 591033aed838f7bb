package validate

import (
	"fmt"
	"regexp"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserID must be lowercase letters, digits, underscore or hyphen, 1-36 chars
var userIdRx = regexp.MustCompile(`^[a-z0-9_\-]{1,36}$`)

// FreeTextLimit caps the enrichment free-text field.
const FreeTextLimit = 200

func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

// -------- Request specific helpers ----------

// CreateUser validates input for creating a new user. UserID is mandatory.
func CreateUser(userId, email string, displayName *string) error {
	if userId == "" {
		return fmt.Errorf("userId is required")
	}
	if !userIdRx.MatchString(userId) {
		return fmt.Errorf("userId must match %s", userIdRx.String())
	}
	if err := Email(email); err != nil {
		return err
	}
	return MaxLen("displayName", displayName, 100)
}

// CreateContext validates a context tag.
func CreateContext(name string, description *string) error {
	if err := NonEmpty("name", name); err != nil {
		return err
	}
	if len(name) > 50 {
		return fmt.Errorf("name exceeds 50 characters")
	}
	return MaxLen("description", description, 500)
}

// CreateSource validates a source record against the known kinds.
func CreateSource(kind, title string) error {
	switch kind {
	case "book", "article", "podcast", "video", "conversation", "other":
	default:
		return fmt.Errorf("kind must be one of book, article, podcast, video, conversation, other")
	}
	if err := NonEmpty("title", title); err != nil {
		return err
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds 200 characters")
	}
	return nil
}

// CreateThought validates a captured thought.
func CreateThought(content string) error {
	if err := NonEmpty("content", content); err != nil {
		return err
	}
	if len(content) > 1000 {
		return fmt.Errorf("content exceeds 1000 characters")
	}
	return nil
}

// CreateNote validates a long-form note.
func CreateNote(title, body string) error {
	if err := NonEmpty("title", title); err != nil {
		return err
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds 200 characters")
	}
	return NonEmpty("body", body)
}

// CreateMoment validates a moment description.
func CreateMoment(description string) error {
	if err := NonEmpty("description", description); err != nil {
		return err
	}
	if len(description) > 500 {
		return fmt.Errorf("description exceeds 500 characters")
	}
	return nil
}

// EnrichMoment validates enrichment input. Chips are optional but each must
// be non-empty; free text is optional and capped at FreeTextLimit bytes.
func EnrichMoment(chips []string, freeText string) error {
	if len(chips) == 0 && freeText == "" {
		return fmt.Errorf("at least one chip or free text is required")
	}
	for _, c := range chips {
		if c == "" {
			return fmt.Errorf("chips must not be empty strings")
		}
	}
	if len(freeText) > FreeTextLimit {
		return fmt.Errorf("freeText exceeds %d characters", FreeTextLimit)
	}
	return nil
}

// Review validates learning feedback input.
func Review(momentId, thoughtId string) error {
	if err := NonEmpty("momentId", momentId); err != nil {
		return err
	}
	return NonEmpty("thoughtId", thoughtId)
}
