package persistence

import (
	"context"
	"testing"
	"time"

	"ttphotos/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_id", "is_active", "posting_times", "last_title", "last_song", "last_hashtags",
		"last_image_urls", "last_scheduled_at", "last_status", "last_publish_id", "last_error",
		"created_at", "updated_at",
	})
}

func TestUpsertSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO posting_schedules").
		WithArgs("user1", true, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewScheduleRepository(db)
	err = repo.UpsertSchedule(context.Background(), &model.ScheduleRecord{
		UserID:       "user1",
		IsActive:     true,
		PostingTimes: []string{"21:00", "06:00"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetScheduleNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM posting_schedules WHERE user_id").
		WithArgs("missing").
		WillReturnRows(scheduleRows())

	repo := NewScheduleRepository(db)
	rec, err := repo.GetSchedule(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetScheduleWithLastPost(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := scheduleRows().AddRow(
		"user1", true, pq.StringArray{"21:00"}, "Catchy title", "Night Drive", "#music #fyp",
		pq.StringArray{"http://x/slide?a=1"}, now, model.PostStatusPosted, "pub-123", nil,
		now, now,
	)
	mock.ExpectQuery("SELECT .+ FROM posting_schedules WHERE user_id").
		WithArgs("user1").
		WillReturnRows(rows)

	repo := NewScheduleRepository(db)
	rec, err := repo.GetSchedule(context.Background(), "user1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.LastPost)
	assert.Equal(t, "Night Drive", rec.LastPost.Song)
	assert.Equal(t, model.PostStatusPosted, rec.LastPost.Status)
	require.NotNil(t, rec.LastPost.PublishID)
	assert.Equal(t, "pub-123", *rec.LastPost.PublishID)
	assert.Nil(t, rec.LastPost.Error)
}

// The claim predicate must treat PENDING and POSTING rows in the current hour
// like POSTED ones: two overlapping trigger runs would otherwise both pass
// the guard while the first attempt is still publishing.
const claimSlotPattern = `UPDATE posting_schedules.+NOT \(last_status IN \(\$3,\$4,\$5\)`

func TestClaimSlotSucceeds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 5, 1, 9, 15, 0, 0, time.UTC)
	mock.ExpectExec(claimSlotPattern).
		WithArgs("user1", at, model.PostStatusPending, model.PostStatusPosting, model.PostStatusPosted).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewScheduleRepository(db)
	claimed, err := repo.ClaimSlot(context.Background(), "user1", at)
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimSlotRefusedWhenAlreadyPosted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 5, 1, 9, 45, 0, 0, time.UTC)
	mock.ExpectExec(claimSlotPattern).
		WithArgs("user1", at, model.PostStatusPending, model.PostStatusPosting, model.PostStatusPosted).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewScheduleRepository(db)
	claimed, err := repo.ClaimSlot(context.Background(), "user1", at)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestClaimSlotRefusedWhileAttemptInFlight(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Second trigger hits while the first claim of the hour is still
	// PENDING/POSTING; the row does not match and no claim is granted.
	at := time.Date(2026, 5, 1, 9, 0, 3, 0, time.UTC)
	mock.ExpectExec(claimSlotPattern).
		WithArgs("user1", at, model.PostStatusPending, model.PostStatusPosting, model.PostStatusPosted).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewScheduleRepository(db)
	claimed, err := repo.ClaimSlot(context.Background(), "user1", at)
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordOutcome(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	publishID := "pub-9"
	mock.ExpectExec("UPDATE posting_schedules").
		WithArgs("user1", "Title", "Song", "#a #b", sqlmock.AnyArg(),
			sqlmock.AnyArg(), model.PostStatusPosted, sqlmock.AnyArg(), nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewScheduleRepository(db)
	err = repo.RecordOutcome(context.Background(), "user1", &model.LastPost{
		Title:       "Title",
		Song:        "Song",
		Hashtags:    "#a #b",
		ImageURLs:   []string{"http://x/1"},
		ScheduledAt: time.Now(),
		Status:      model.PostStatusPosted,
		PublishID:   &publishID,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetActiveTimes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE posting_schedules SET posting_times").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewScheduleRepository(db)
	n, err := repo.ResetActiveTimes(context.Background(), []string{"21:00"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
