package persistence

import (
	"context"
	"database/sql"
	"time"

	"ttphotos/domain/model"

	"github.com/lib/pq"
)

// ScheduleRepository persists posting schedules in PostgreSQL, one row per
// user. The retained last post lives on the same row so every mutation is a
// single upsert keyed by user id.
type ScheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) *ScheduleRepository { return &ScheduleRepository{db: db} }

const scheduleColumns = `user_id, is_active, posting_times, last_title, last_song, last_hashtags,
	last_image_urls, last_scheduled_at, last_status, last_publish_id, last_error, created_at, updated_at`

func (r *ScheduleRepository) UpsertSchedule(ctx context.Context, rec *model.ScheduleRecord) error {
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	q := `INSERT INTO posting_schedules (user_id, is_active, posting_times, created_at, updated_at)
		  VALUES ($1,$2,$3,$4,$5)
		  ON CONFLICT (user_id) DO UPDATE SET
			is_active=EXCLUDED.is_active,
			posting_times=EXCLUDED.posting_times,
			updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, rec.UserID, rec.IsActive, pq.Array(rec.PostingTimes), rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (r *ScheduleRepository) Deactivate(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posting_schedules SET is_active=false, updated_at=$2 WHERE user_id=$1`,
		userID, time.Now().UTC())
	return err
}

func (r *ScheduleRepository) GetSchedule(ctx context.Context, userID string) (*model.ScheduleRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM posting_schedules WHERE user_id=$1`, userID)
	rec, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

func (r *ScheduleRepository) ListActive(ctx context.Context) ([]*model.ScheduleRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+scheduleColumns+` FROM posting_schedules WHERE is_active=true ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.ScheduleRecord
	for rows.Next() {
		rec, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// ClaimSlot atomically marks the user's last post PENDING for this attempt.
// The WHERE clause refuses the claim when the same hour of the same calendar
// day already holds a POSTED outcome or an in-flight attempt (PENDING or
// POSTING), so overlapping triggers within one slot cannot both publish.
// A FAILED row never blocks; the next trigger in the hour may retry.
func (r *ScheduleRepository) ClaimSlot(ctx context.Context, userID string, at time.Time) (bool, error) {
	at = at.UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE posting_schedules
		SET last_status=$3, last_scheduled_at=$2, last_publish_id=NULL, last_error=NULL, updated_at=$2
		WHERE user_id=$1
		  AND NOT (last_status IN ($3,$4,$5) AND date_trunc('hour', last_scheduled_at)=date_trunc('hour', $2::timestamptz))`,
		userID, at, model.PostStatusPending, model.PostStatusPosting, model.PostStatusPosted)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ScheduleRepository) RecordOutcome(ctx context.Context, userID string, post *model.LastPost) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE posting_schedules
		SET last_title=$2, last_song=$3, last_hashtags=$4, last_image_urls=$5,
			last_scheduled_at=$6, last_status=$7, last_publish_id=$8, last_error=$9, updated_at=$10
		WHERE user_id=$1`,
		userID, post.Title, post.Song, post.Hashtags, pq.Array(post.ImageURLs),
		post.ScheduledAt.UTC(), post.Status, post.PublishID, post.Error, time.Now().UTC())
	return err
}

func (r *ScheduleRepository) ResetActiveTimes(ctx context.Context, times []string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posting_schedules SET posting_times=$1, updated_at=$2 WHERE is_active=true`,
		pq.Array(times), time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*model.ScheduleRecord, error) {
	rec := &model.ScheduleRecord{}
	var times pq.StringArray
	var imageURLs pq.StringArray
	var title, song, hashtags, status, publishID, errMsg sql.NullString
	var scheduledAt sql.NullTime
	if err := row.Scan(&rec.UserID, &rec.IsActive, &times, &title, &song, &hashtags,
		&imageURLs, &scheduledAt, &status, &publishID, &errMsg, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.PostingTimes = []string(times)
	if status.Valid {
		post := &model.LastPost{
			Title:     title.String,
			Song:      song.String,
			Hashtags:  hashtags.String,
			ImageURLs: []string(imageURLs),
			Status:    status.String,
		}
		if scheduledAt.Valid {
			post.ScheduledAt = scheduledAt.Time
		}
		if publishID.Valid {
			v := publishID.String
			post.PublishID = &v
		}
		if errMsg.Valid {
			v := errMsg.String
			post.Error = &v
		}
		rec.LastPost = post
	}
	return rec, nil
}
