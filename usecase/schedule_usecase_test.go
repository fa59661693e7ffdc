package usecase

import (
	"context"
	"testing"
	"time"

	"ttphotos/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var defaultTimes = []string{"21:00", "06:00", "09:00", "12:00", "15:00"}

func TestStartPersistsTokensAndSchedule(t *testing.T) {
	schedules := &mockSchedule{}
	tokens := &mockTokens{}
	uc := NewScheduleUsecase(schedules, tokens, defaultTimes)

	sess := &model.SessionData{
		UserID:       "open-1",
		AccessToken:  "act-1",
		RefreshToken: "rft-1",
		ExpiresAt:    time.Now().Add(24 * time.Hour).UnixMilli(),
		Scope:        "video.publish",
	}

	tokens.On("UpsertToken", mock.Anything, mock.MatchedBy(func(tok *model.OAuthToken) bool {
		return tok.UserID == "open-1" && tok.Platform == "tiktok" &&
			tok.AccessToken == "act-1" && tok.ExpiresAt != nil
	})).Return(nil)
	schedules.On("UpsertSchedule", mock.Anything, mock.MatchedBy(func(rec *model.ScheduleRecord) bool {
		return rec.UserID == "open-1" && rec.IsActive &&
			len(rec.PostingTimes) == len(defaultTimes)
	})).Return(nil)
	stored := &model.ScheduleRecord{UserID: "open-1", IsActive: true, PostingTimes: defaultTimes}
	schedules.On("GetSchedule", mock.Anything, "open-1").Return(stored, nil)

	rec, err := uc.Start(context.Background(), sess)
	require.NoError(t, err)
	assert.True(t, rec.IsActive)
	tokens.AssertExpectations(t)
	schedules.AssertExpectations(t)
}

func TestStartRequiresUserID(t *testing.T) {
	uc := NewScheduleUsecase(&mockSchedule{}, &mockTokens{}, defaultTimes)
	_, err := uc.Start(context.Background(), &model.SessionData{})
	assert.Error(t, err)
}

func TestStopDeactivates(t *testing.T) {
	schedules := &mockSchedule{}
	uc := NewScheduleUsecase(schedules, &mockTokens{}, defaultTimes)

	schedules.On("Deactivate", mock.Anything, "open-1").Return(nil)
	require.NoError(t, uc.Stop(context.Background(), "open-1"))
	schedules.AssertExpectations(t)
}

func TestResetTimes(t *testing.T) {
	schedules := &mockSchedule{}
	uc := NewScheduleUsecase(schedules, &mockTokens{}, defaultTimes)

	schedules.On("ResetActiveTimes", mock.Anything, defaultTimes).Return(int64(4), nil)
	n, err := uc.ResetTimes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
