package session

import (
	"testing"
	"time"

	"ttphotos/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndVerifyRoundTrip(t *testing.T) {
	mgr := NewManager("test-secret", false)
	now := time.Now()
	data := model.SessionData{
		AccessToken:  "act-123",
		RefreshToken: "rft-456",
		ExpiresAt:    now.Add(24 * time.Hour).UnixMilli(),
		Scope:        "user.info.basic,video.publish",
		UserID:       "open-id-1",
	}

	token, err := mgr.CreateToken(data, now)
	require.NoError(t, err)

	got, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, data, *got)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	now := time.Now()
	token, err := NewManager("secret-a", false).CreateToken(model.SessionData{UserID: "u"}, now)
	require.NoError(t, err)

	_, err = NewManager("secret-b", false).Verify(token)
	assert.Error(t, err)
}

func TestCreateTokenRequiresSecret(t *testing.T) {
	_, err := NewManager("", false).CreateToken(model.SessionData{}, time.Now())
	assert.Error(t, err)
}

func TestNeedsRefreshWindow(t *testing.T) {
	now := time.Now()

	soon := model.SessionData{ExpiresAt: now.Add(30 * time.Minute).UnixMilli()}
	assert.True(t, soon.NeedsRefresh(now))
	assert.True(t, soon.IsValid(now))

	later := model.SessionData{ExpiresAt: now.Add(2 * time.Hour).UnixMilli()}
	assert.False(t, later.NeedsRefresh(now))

	expired := model.SessionData{ExpiresAt: now.Add(-time.Minute).UnixMilli()}
	assert.False(t, expired.IsValid(now))
	assert.True(t, expired.NeedsRefresh(now))
}
