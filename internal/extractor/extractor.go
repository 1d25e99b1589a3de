// internal/extractor/extractor.go
package extractor

import (
	"regexp"
	"strconv"
	"strings"

	appErrors "github.com/openchurch/campaign-service/internal/errors"
	"github.com/openchurch/campaign-service/internal/model"
)

// Extraction modes.
const (
	ModeEmail = "email"
	ModePhone = "phone"
)

var (
	emailRegex = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRegex = regexp.MustCompile(`[0-9+][0-9 +\-()]{7,}`)
	digitRegex = regexp.MustCompile(`[0-9]`)
)

// Extractor turns raw pasted text (one entry per line) into a deduplicated
// contact list, capped at Limit.
type Extractor struct {
	Limit int
}

func New() *Extractor {
	return &Extractor{Limit: model.MaxRecipients}
}

// Extract parses the given text in the given mode. Lines with no match are
// silently skipped. When the deduplicated result would exceed the limit the
// extraction fails fast and reports the detected count against the limit.
func (e *Extractor) Extract(text, mode string) ([]model.Contact, error) {
	var contacts []model.Contact
	switch mode {
	case ModeEmail:
		contacts = extractEmails(text)
	case ModePhone:
		contacts = extractPhones(text)
	default:
		return nil, appErrors.NewInvalidArgument("unknown extraction mode: %q", mode)
	}

	contacts = model.DedupContacts(contacts)
	if len(contacts) > e.Limit {
		return nil, appErrors.NewInvalidArgument(
			"detected %d contacts, limit is %d", len(contacts), e.Limit)
	}
	return contacts, nil
}

func extractEmails(text string) []model.Contact {
	var contacts []model.Contact
	for i, line := range strings.Split(text, "\n") {
		loc := emailRegex.FindStringIndex(line)
		if loc == nil {
			continue
		}
		email := line[loc[0]:loc[1]]
		first, last := nameFromPrefix(line[:loc[0]], i+1)
		contacts = append(contacts, model.Contact{
			FirstName: first,
			LastName:  last,
			Email:     email,
		})
	}
	return contacts
}

// nameFromPrefix derives a contact name from the text preceding the email
// match. Lines carrying only an address get a positional placeholder name.
func nameFromPrefix(prefix string, lineNo int) (string, string) {
	tokens := strings.Fields(prefix)
	switch len(tokens) {
	case 0:
		return "Contact", strconv.Itoa(lineNo)
	case 1:
		return tokens[0], ""
	default:
		return tokens[0], strings.Join(tokens[1:], " ")
	}
}

func extractPhones(text string) []model.Contact {
	var contacts []model.Contact
	for i, line := range strings.Split(text, "\n") {
		raw := phoneRegex.FindString(line)
		if raw == "" {
			continue
		}
		phone := model.NormalizePhone(raw)
		if len(digitRegex.FindAllString(phone, -1)) < 8 {
			continue
		}
		loc := phoneRegex.FindStringIndex(line)
		first, last := nameFromPrefix(line[:loc[0]], i+1)
		contacts = append(contacts, model.Contact{
			FirstName: first,
			LastName:  last,
			Phone:     phone,
		})
	}
	return contacts
}
