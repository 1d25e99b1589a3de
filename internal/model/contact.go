// internal/model/contact.go
package model

import (
	"regexp"
	"strings"
)

// Contact is one recipient. Email or phone is populated depending on the
// channel the contact was collected for.
type Contact struct {
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email,omitempty"`
	Phone     string `db:"phone" json:"phone,omitempty"`
}

var nonPhoneChars = regexp.MustCompile(`[^0-9+]`)

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips everything except digits and a leading +.
func NormalizePhone(phone string) string {
	p := nonPhoneChars.ReplaceAllString(phone, "")
	if i := strings.LastIndex(p, "+"); i > 0 {
		p = strings.ReplaceAll(p, "+", "")
	}
	return p
}

// Key returns the identity key used for dedup and RSVP matching:
// the normalized email when present, otherwise the normalized phone.
func (c Contact) Key() string {
	if c.Email != "" {
		return NormalizeEmail(c.Email)
	}
	return NormalizePhone(c.Phone)
}

// DedupContacts keeps the first occurrence of each identity key, preserving
// input order.
func DedupContacts(contacts []Contact) []Contact {
	seen := make(map[string]bool, len(contacts))
	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		k := c.Key()
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}
