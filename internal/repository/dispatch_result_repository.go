package repository

import (
	"database/sql"
	"time"

	"github.com/openchurch/campaign-service/internal/model"
)

type DispatchResultRepositoryInterface interface {
	Insert(res *model.DispatchResult) error
	ListByCampaign(campaignID int) ([]model.DispatchResult, error)
}

type DispatchResultRepository struct {
	DB *sql.DB
}

// Insert appends one dispatch result. Results are never updated or deleted.
func (r *DispatchResultRepository) Insert(res *model.DispatchResult) error {
	if res.Timestamp.IsZero() {
		res.Timestamp = time.Now()
	}
	query := `
        INSERT INTO dispatch_results (campaign_id, batch_id, recipient_key, channel, outcome, error, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		res.CampaignID, res.BatchID, res.RecipientKey, res.Channel,
		res.Outcome, res.Error, res.Timestamp,
	).Scan(&res.ID)
}

func (r *DispatchResultRepository) ListByCampaign(campaignID int) ([]model.DispatchResult, error) {
	rows, err := r.DB.Query(`
        SELECT id, campaign_id, batch_id, recipient_key, channel, outcome, error, created_at
        FROM dispatch_results WHERE campaign_id=$1
        ORDER BY id
    `, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.DispatchResult{}
	for rows.Next() {
		var res model.DispatchResult
		if err := rows.Scan(
			&res.ID, &res.CampaignID, &res.BatchID, &res.RecipientKey,
			&res.Channel, &res.Outcome, &res.Error, &res.Timestamp,
		); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

var _ DispatchResultRepositoryInterface = (*DispatchResultRepository)(nil)
