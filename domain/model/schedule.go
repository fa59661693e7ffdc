package model

import "time"

// Post lifecycle statuses for the retained last post of a schedule
const (
	PostStatusPending = "PENDING"
	PostStatusPosting = "POSTING"
	PostStatusPosted  = "POSTED"
	PostStatusFailed  = "FAILED"
)

// LastPost is the single retained outcome per user. Each attempt overwrites
// the previous one; the system keeps no full posting log.
type LastPost struct {
	Title       string    `json:"title"`
	Song        string    `json:"song"`
	Hashtags    string    `json:"hashtags"`
	ImageURLs   []string  `json:"image_urls"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	PublishID   *string   `json:"publish_id,omitempty"`
	Error       *string   `json:"error,omitempty"`
}

// ScheduleRecord is the per-user posting schedule, keyed by user id
type ScheduleRecord struct {
	UserID       string    `json:"user_id"`
	IsActive     bool      `json:"is_active"`
	PostingTimes []string  `json:"posting_times"` // "HH:MM", UTC
	LastPost     *LastPost `json:"last_post,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OAuthToken stores platform OAuth credentials per user
type OAuthToken struct {
	ID           int64      `json:"id"`
	UserID       string     `json:"user_id"`
	Platform     string     `json:"platform"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Scopes       string     `json:"scopes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// MatchesHour reports whether any posting slot falls in the given wall-clock hour
func (s *ScheduleRecord) MatchesHour(now time.Time) bool {
	for _, slot := range s.PostingTimes {
		if len(slot) >= 2 && slot[:2] == now.UTC().Format("15") {
			return true
		}
	}
	return false
}
