package repository_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchurch/campaign-service/internal/model"
	"github.com/openchurch/campaign-service/internal/repository"
)

func TestRSVPUpsertUsesOnConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.RSVPRepository{DB: db}

	mock.ExpectExec("INSERT INTO rsvp_responses (.+) ON CONFLICT \\(campaign_id, contact_key\\)").
		WithArgs(1, "jean@test.com", model.RSVPYes, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Upsert(&model.RSVPResponse{
		CampaignID: 1,
		ContactKey: "jean@test.com",
		Response:   model.RSVPYes,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRSVPStatsGroupsByResponse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.RSVPRepository{DB: db}

	mock.ExpectQuery("SELECT response, COUNT\\(\\*\\)").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"response", "count"}).
			AddRow(model.RSVPYes, 4).
			AddRow(model.RSVPNo, 2).
			AddRow(model.RSVPMaybe, 1))

	stats, err := repo.Stats(1)
	require.NoError(t, err)
	assert.Equal(t, &model.RSVPStats{Total: 7, Yes: 4, No: 2, Maybe: 1}, stats)
}
