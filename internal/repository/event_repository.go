package repository

import (
	"database/sql"
	"time"

	"github.com/openchurch/campaign-service/internal/model"
)

// EventRepository persists campaign lifecycle events consumed off the bus
// into the audit table.
type EventRepository struct {
	DB *sql.DB
}

func (r *EventRepository) Insert(e *model.CampaignEvent) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	var payload interface{}
	if len(e.Payload) > 0 {
		payload = []byte(e.Payload)
	}
	query := `
        INSERT INTO campaign_events (event_type, campaign_id, payload, occurred_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	return r.DB.QueryRow(query, e.Type, e.CampaignID, payload, e.OccurredAt).Scan(&e.ID)
}
