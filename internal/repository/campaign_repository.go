package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/openchurch/campaign-service/internal/errors"
	"github.com/openchurch/campaign-service/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(c *model.Campaign) error
	GetByID(id int) (*model.Campaign, error)
	GetRecipients(campaignID int) ([]model.Contact, error)
	ListCampaigns(offset, limit int, channel, status string) ([]*model.Campaign, int, error)

	// TransitionStatus atomically moves a campaign from one status to the
	// next. Returns false when the campaign was not in the expected status,
	// which is how concurrent send() calls are serialized.
	TransitionStatus(campaignID int, from, to string) (bool, error)
	SetSendCounts(campaignID, successCount, failCount int) error
	Delete(campaignID int) (bool, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.StatusDraft
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO campaigns (title, body, channel, status, image_url, template_id, rsvp_enabled, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	err = tx.QueryRow(query, c.Title, c.Body, c.Channel, c.Status, c.ImageURL, c.TemplateID, c.RSVPEnabled, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return err
	}

	for _, rc := range c.Recipients {
		_, err = tx.Exec(`
            INSERT INTO campaign_recipients (campaign_id, recipient_key, first_name, last_name, email, phone)
            VALUES ($1, $2, $3, $4, $5, $6)
        `, c.ID, rc.Key(), rc.FirstName, rc.LastName, rc.Email, rc.Phone)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `
        SELECT id, title, body, channel, status, image_url, template_id, rsvp_enabled,
               success_count, fail_count, created_at, sent_at
        FROM campaigns WHERE id=$1
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.Title, &c.Body, &c.Channel, &c.Status, &c.ImageURL, &c.TemplateID,
		&c.RSVPEnabled, &c.SuccessCount, &c.FailCount, &c.CreatedAt, &c.SentAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) GetRecipients(campaignID int) ([]model.Contact, error) {
	rows, err := r.DB.Query(`
        SELECT first_name, last_name, email, phone
        FROM campaign_recipients WHERE campaign_id=$1
        ORDER BY recipient_key
    `, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.FirstName, &c.LastName, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, channel, status string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `
        SELECT id, title, body, channel, status, image_url, template_id, rsvp_enabled,
               success_count, fail_count, created_at, sent_at
        FROM campaigns WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if channel != "" {
		query += fmt.Sprintf(" AND channel=$%d", argPos)
		args = append(args, channel)
		argPos++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Body, &c.Channel, &c.Status, &c.ImageURL, &c.TemplateID,
			&c.RSVPEnabled, &c.SuccessCount, &c.FailCount, &c.CreatedAt, &c.SentAt,
		); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}

	countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	argsCount := []interface{}{}
	argPosCount := 1
	if channel != "" {
		countQuery += fmt.Sprintf(" AND channel=$%d", argPosCount)
		argsCount = append(argsCount, channel)
		argPosCount++
	}
	if status != "" {
		countQuery += fmt.Sprintf(" AND status=$%d", argPosCount)
		argsCount = append(argsCount, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (r *CampaignRepository) TransitionStatus(campaignID int, from, to string) (bool, error) {
	query := `UPDATE campaigns SET status=$1 WHERE id=$2 AND status=$3`
	args := []interface{}{to, campaignID, from}
	if to == model.StatusSent {
		query = `UPDATE campaigns SET status=$1, sent_at=$2 WHERE id=$3 AND status=$4`
		args = []interface{}{to, time.Now(), campaignID, from}
	}

	res, err := r.DB.Exec(query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *CampaignRepository) SetSendCounts(campaignID, successCount, failCount int) error {
	query := `UPDATE campaigns SET success_count=$1, fail_count=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, successCount, failCount, campaignID)
	return err
}

// Delete removes the campaign and its recipient snapshot. Dispatch results
// and RSVP responses are kept for audit.
func (r *CampaignRepository) Delete(campaignID int) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM campaigns WHERE id=$1`, campaignID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
