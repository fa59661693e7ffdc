package repository

import (
	"context"
	"time"

	"ttphotos/domain/model"
)

// ISchedule defines persistence operations for posting schedules.
// Every mutation is an upsert keyed by user id; ClaimSlot is the atomic
// idempotency guard against duplicate triggers within one hour slot.
type ISchedule interface {
	UpsertSchedule(ctx context.Context, rec *model.ScheduleRecord) error
	Deactivate(ctx context.Context, userID string) error
	GetSchedule(ctx context.Context, userID string) (*model.ScheduleRecord, error)
	ListActive(ctx context.Context) ([]*model.ScheduleRecord, error)

	// ClaimSlot marks the user's last post PENDING for the given instant.
	// It returns false without modifying anything when the same hour of the
	// same calendar day already holds a POSTED outcome or an in-flight
	// PENDING/POSTING attempt. A FAILED row does not block a retry.
	ClaimSlot(ctx context.Context, userID string, at time.Time) (bool, error)

	// RecordOutcome overwrites the retained last post for the user.
	RecordOutcome(ctx context.Context, userID string, post *model.LastPost) error

	// ResetActiveTimes rewrites posting times on all active schedules,
	// returning the number of schedules updated.
	ResetActiveTimes(ctx context.Context, times []string) (int64, error)
}

// IOAuthToken stores platform OAuth credentials per user
type IOAuthToken interface {
	UpsertToken(ctx context.Context, t *model.OAuthToken) error
	GetToken(ctx context.Context, userID, platform string) (*model.OAuthToken, error)
}
