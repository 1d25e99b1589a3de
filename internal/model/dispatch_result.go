// internal/model/dispatch_result.go
package model

import "time"

// Dispatch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// DispatchResult records one send attempt for one recipient. Results are
// append-only and outlive the campaign for audit purposes.
type DispatchResult struct {
	ID           int       `db:"id" json:"id"`
	CampaignID   int       `db:"campaign_id" json:"campaign_id"`
	BatchID      string    `db:"batch_id" json:"batch_id"`
	RecipientKey string    `db:"recipient_key" json:"recipient_key"`
	Channel      string    `db:"channel" json:"channel"`
	Outcome      string    `db:"outcome" json:"outcome"`
	Error        string    `db:"error" json:"error,omitempty"`
	Timestamp    time.Time `db:"created_at" json:"timestamp"`
}
