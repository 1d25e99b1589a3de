// internal/dispatch/sender.go
package dispatch

import (
	"context"

	"github.com/openchurch/campaign-service/internal/model"
)

// Message is the rendered payload handed to a channel adapter.
type Message struct {
	Subject string
	Body    string
	// ImageURL is honored by the email adapter (inline image) and ignored
	// by SMS.
	ImageURL string
	// TemplateID is a pre-approved WhatsApp template used in place of the
	// free-text body when set.
	TemplateID string
}

// Sender is the single capability a channel provider adapter exposes.
// One implementation exists per channel; fakes substitute for tests.
type Sender interface {
	Send(ctx context.Context, to model.Contact, msg Message) error
}
