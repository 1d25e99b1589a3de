// internal/model/rsvp.go
package model

import "time"

// RSVP response values, as submitted by the public form.
const (
	RSVPYes   = "oui"
	RSVPNo    = "non"
	RSVPMaybe = "peut_etre"
)

// RSVPResponse is unique per (campaign, contact). A second submission from
// the same contact replaces the first; no history is kept.
type RSVPResponse struct {
	CampaignID  int       `db:"campaign_id" json:"campaign_id"`
	ContactKey  string    `db:"contact_key" json:"contact_key"`
	Response    string    `db:"response" json:"response"`
	RespondedAt time.Time `db:"responded_at" json:"responded_at"`
}

func ValidRSVPResponse(r string) bool {
	return r == RSVPYes || r == RSVPNo || r == RSVPMaybe
}

// RSVPStats groups the current responses of one campaign.
type RSVPStats struct {
	Total int `json:"total"`
	Yes   int `json:"yes"`
	No    int `json:"no"`
	Maybe int `json:"maybe"`
}
