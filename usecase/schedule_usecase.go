package usecase

import (
	"context"
	"fmt"
	"time"

	"ttphotos/domain/model"
	"ttphotos/domain/repository"
)

type IScheduleUsecase interface {
	Start(ctx context.Context, sess *model.SessionData) (*model.ScheduleRecord, error)
	Stop(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (*model.ScheduleRecord, error)
	ResetTimes(ctx context.Context) (int64, error)
}

// ScheduleUsecase manages per-user posting schedules. Starting a schedule
// also persists the session's tokens so the cron path can post without a
// browser present.
type ScheduleUsecase struct {
	schedules repository.ISchedule
	tokens    repository.IOAuthToken
	times     []string
}

func NewScheduleUsecase(schedules repository.ISchedule, tokens repository.IOAuthToken, times []string) IScheduleUsecase {
	return &ScheduleUsecase{schedules: schedules, tokens: tokens, times: times}
}

func (u *ScheduleUsecase) Start(ctx context.Context, sess *model.SessionData) (*model.ScheduleRecord, error) {
	if sess.UserID == "" {
		return nil, fmt.Errorf("session has no user id")
	}
	expiresAt := time.UnixMilli(sess.ExpiresAt)
	if err := u.tokens.UpsertToken(ctx, &model.OAuthToken{
		UserID:       sess.UserID,
		Platform:     "tiktok",
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    &expiresAt,
		Scopes:       sess.Scope,
	}); err != nil {
		return nil, fmt.Errorf("persisting tokens: %w", err)
	}

	rec := &model.ScheduleRecord{
		UserID:       sess.UserID,
		IsActive:     true,
		PostingTimes: u.times,
	}
	if err := u.schedules.UpsertSchedule(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving schedule: %w", err)
	}
	return u.schedules.GetSchedule(ctx, sess.UserID)
}

func (u *ScheduleUsecase) Stop(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("session has no user id")
	}
	return u.schedules.Deactivate(ctx, userID)
}

func (u *ScheduleUsecase) Get(ctx context.Context, userID string) (*model.ScheduleRecord, error) {
	return u.schedules.GetSchedule(ctx, userID)
}

// ResetTimes rewrites the posting times on every active schedule to the
// configured slot set.
func (u *ScheduleUsecase) ResetTimes(ctx context.Context) (int64, error) {
	return u.schedules.ResetActiveTimes(ctx, u.times)
}
