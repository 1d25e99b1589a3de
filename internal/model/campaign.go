// internal/model/campaign.go
package model

import "time"

// Channel values a campaign can be sent over.
const (
	ChannelEmail    = "email"
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// Campaign statuses. Transitions only move forward:
// draft -> sent -> archived.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusArchived = "archived"
)

// MaxRecipients is the hard cap on recipients per campaign.
const MaxRecipients = 300

// SMSAdvisoryLength is the advisory single-segment SMS body length.
// Longer bodies are accepted but flagged with a warning, never blocked.
const SMSAdvisoryLength = 160

type Campaign struct {
	ID           int        `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Body         string     `db:"body" json:"body"`
	Channel      string     `db:"channel" json:"channel"`
	Status       string     `db:"status" json:"status"`
	ImageURL     string     `db:"image_url" json:"image_url,omitempty"`
	TemplateID   string     `db:"template_id" json:"template_id,omitempty"`
	RSVPEnabled  bool       `db:"rsvp_enabled" json:"rsvp_enabled"`
	SuccessCount *int       `db:"success_count" json:"success_count,omitempty"`
	FailCount    *int       `db:"fail_count" json:"fail_count,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	SentAt       *time.Time `db:"sent_at" json:"sent_at,omitempty"`

	// Recipients is the snapshot taken at creation time. Loaded on demand,
	// not by list queries.
	Recipients []Contact `json:"recipients,omitempty"`
}

func ValidChannel(c string) bool {
	return c == ChannelEmail || c == ChannelSMS || c == ChannelWhatsApp
}
