package repository_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/openchurch/campaign-service/internal/errors"
	"github.com/openchurch/campaign-service/internal/model"
	"github.com/openchurch/campaign-service/internal/repository"
)

func TestTransitionStatusCAS(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.CampaignRepository{DB: db}

	// Winner of the race: one row updated.
	mock.ExpectExec("UPDATE campaigns SET status=(.+), sent_at=(.+) WHERE id=(.+) AND status=(.+)").
		WithArgs(model.StatusSent, sqlmock.AnyArg(), 1, model.StatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.TransitionStatus(1, model.StatusDraft, model.StatusSent)
	require.NoError(t, err)
	assert.True(t, ok)

	// Loser: status already moved on, zero rows updated.
	mock.ExpectExec("UPDATE campaigns SET status=(.+), sent_at=(.+) WHERE id=(.+) AND status=(.+)").
		WithArgs(model.StatusSent, sqlmock.AnyArg(), 1, model.StatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.TransitionStatus(1, model.StatusDraft, model.StatusSent)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatusArchiveDoesNotTouchSentAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.CampaignRepository{DB: db}

	mock.ExpectExec("UPDATE campaigns SET status=(.+) WHERE id=(.+) AND status=(.+)").
		WithArgs(model.StatusArchived, 3, model.StatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.TransitionStatus(3, model.StatusSent, model.StatusArchived)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.CampaignRepository{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM campaigns WHERE id=(.+)").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(42)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestDeleteReportsMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.CampaignRepository{DB: db}

	mock.ExpectExec("DELETE FROM campaigns WHERE id=(.+)").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateInsertsCampaignAndRecipients(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.CampaignRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO campaigns").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec("INSERT INTO campaign_recipients").
		WithArgs(5, "jean@test.com", "Jean", "Dupont", "jean@test.com", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c := &model.Campaign{
		Title: "t", Body: "b", Channel: model.ChannelEmail,
		Recipients: []model.Contact{{FirstName: "Jean", LastName: "Dupont", Email: "jean@test.com"}},
	}
	require.NoError(t, repo.Create(c))
	assert.Equal(t, 5, c.ID)
	assert.Equal(t, model.StatusDraft, c.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
