// internal/model/event.go
package model

import (
	"encoding/json"
	"time"
)

// Campaign lifecycle event types published on the event bus.
const (
	EventCampaignSent     = "campaign.sent"
	EventCampaignArchived = "campaign.archived"
	EventCampaignDeleted  = "campaign.deleted"
	EventRSVPRecorded     = "rsvp.recorded"
)

// CampaignEvent is the message published to RabbitMQ and persisted by the
// worker into the audit table.
type CampaignEvent struct {
	ID         int             `db:"id" json:"id,omitempty"`
	Type       string          `db:"event_type" json:"type"`
	CampaignID int             `db:"campaign_id" json:"campaign_id"`
	Payload    json.RawMessage `db:"payload" json:"payload,omitempty"`
	OccurredAt time.Time       `db:"occurred_at" json:"occurred_at"`
}
