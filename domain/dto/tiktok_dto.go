package dto

// CarouselPost describes a photo carousel submission built by the poster
type CarouselPost struct {
	Title     string
	Song      string
	Hashtags  []string
	ImageURLs []string
}

// PublishPayload is the body of POST /v2/post/publish/content/init/
type PublishPayload struct {
	MediaType  string     `json:"media_type"`
	PostMode   string     `json:"post_mode"`
	PostInfo   PostInfo   `json:"post_info"`
	SourceInfo SourceInfo `json:"source_info"`
}

type PostInfo struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	PrivacyLevel   string `json:"privacy_level"`
	DisableComment bool   `json:"disable_comment"`
	AutoAddMusic   bool   `json:"auto_add_music"`
}

type SourceInfo struct {
	Source          string   `json:"source"`
	PhotoImages     []string `json:"photo_images"`
	PhotoCoverIndex int      `json:"photo_cover_index"`
}

// TokenResponse is the body of POST /v2/oauth/token/ for both the
// authorization_code and refresh_token grants
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
	OpenID           string `json:"open_id"`
	Scope            string `json:"scope"`
	TokenType        string `json:"token_type"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// VendorError is the structured error envelope TikTok attaches to responses
type VendorError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	LogID   string `json:"log_id,omitempty"`
}

// PublishResponse is the body of the publish init endpoint
type PublishResponse struct {
	Data struct {
		PublishID string `json:"publish_id"`
	} `json:"data"`
	Error VendorError `json:"error"`
}

// Publish status values reported by the status fetch endpoint
const (
	PublishStatusProcessing = "PROCESSING"
	PublishStatusPublished  = "PUBLISHED"
	PublishStatusFailed     = "FAILED"
	PublishStatusCancelled  = "CANCELLED"
)

// PublishStatusResponse is the body of the status fetch endpoint
type PublishStatusResponse struct {
	Data struct {
		Status     string `json:"status"`
		PublishID  string `json:"publish_id"`
		FailReason string `json:"fail_reason,omitempty"`
	} `json:"data"`
	Error VendorError `json:"error"`
}

// IsTerminal reports whether polling can stop for this status
func IsTerminalPublishStatus(status string) bool {
	switch status {
	case PublishStatusPublished, PublishStatusFailed, PublishStatusCancelled:
		return true
	}
	return false
}
