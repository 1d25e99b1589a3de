package repository

import (
	"database/sql"
	"time"

	"github.com/openchurch/campaign-service/internal/model"
)

type RSVPRepositoryInterface interface {
	Upsert(resp *model.RSVPResponse) error
	ListByCampaign(campaignID int) ([]model.RSVPResponse, error)
	Stats(campaignID int) (*model.RSVPStats, error)
}

type RSVPRepository struct {
	DB *sql.DB
}

// Upsert records a response, replacing any prior one from the same contact.
// Last write wins; concurrent submissions need no extra coordination.
func (r *RSVPRepository) Upsert(resp *model.RSVPResponse) error {
	if resp.RespondedAt.IsZero() {
		resp.RespondedAt = time.Now()
	}
	query := `
        INSERT INTO rsvp_responses (campaign_id, contact_key, response, responded_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (campaign_id, contact_key)
        DO UPDATE SET response=EXCLUDED.response, responded_at=EXCLUDED.responded_at
    `
	_, err := r.DB.Exec(query, resp.CampaignID, resp.ContactKey, resp.Response, resp.RespondedAt)
	return err
}

func (r *RSVPRepository) ListByCampaign(campaignID int) ([]model.RSVPResponse, error) {
	rows, err := r.DB.Query(`
        SELECT campaign_id, contact_key, response, responded_at
        FROM rsvp_responses WHERE campaign_id=$1
        ORDER BY responded_at DESC
    `, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []model.RSVPResponse{}
	for rows.Next() {
		var resp model.RSVPResponse
		if err := rows.Scan(&resp.CampaignID, &resp.ContactKey, &resp.Response, &resp.RespondedAt); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func (r *RSVPRepository) Stats(campaignID int) (*model.RSVPStats, error) {
	rows, err := r.DB.Query(`
        SELECT response, COUNT(*)
        FROM rsvp_responses WHERE campaign_id=$1
        GROUP BY response
    `, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &model.RSVPStats{}
	for rows.Next() {
		var response string
		var count int
		if err := rows.Scan(&response, &count); err != nil {
			return nil, err
		}
		switch response {
		case model.RSVPYes:
			stats.Yes = count
		case model.RSVPNo:
			stats.No = count
		case model.RSVPMaybe:
			stats.Maybe = count
		}
		stats.Total += count
	}
	return stats, rows.Err()
}

var _ RSVPRepositoryInterface = (*RSVPRepository)(nil)
