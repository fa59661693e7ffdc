package tiktok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ttphotos/domain/dto"
	"ttphotos/domain/repository"
	"ttphotos/infrastructure/logger"

	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"
)

const authorizeURL = "https://www.tiktok.com/v2/auth/authorize/"

// Config represents TikTok open API configuration
type Config struct {
	ClientKey    string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
	PrivacyLevel string
	BaseURL      string // api host, injectable for tests
	PollAttempts int
	PollBackoff  time.Duration
}

// Client talks to the TikTok open API: OAuth token grants, carousel publish
// init and publish status fetch.
type Client struct {
	conf       *Config
	httpClient *http.Client
}

func NewTikTokClient(conf *Config) repository.ITikTok {
	if conf.BaseURL == "" {
		conf.BaseURL = "https://open.tiktokapis.com"
	}
	if conf.PollAttempts == 0 {
		conf.PollAttempts = 4
	}
	if conf.PollBackoff == 0 {
		conf.PollBackoff = 2 * time.Second
	}
	return &Client{
		conf:       conf,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError carries the vendor's structured error payload for a failed call.
type APIError struct {
	StatusCode int
	Vendor     dto.VendorError
}

func (e *APIError) Error() string {
	if e.Vendor.Message != "" {
		return fmt.Sprintf("tiktok api error (%d): %s: %s", e.StatusCode, e.Vendor.Code, e.Vendor.Message)
	}
	return fmt.Sprintf("tiktok api error (%d)", e.StatusCode)
}

type authorizeParams struct {
	ClientKey    string `url:"client_key"`
	ResponseType string `url:"response_type"`
	Scope        string `url:"scope"`
	RedirectURI  string `url:"redirect_uri"`
	State        string `url:"state"`
}

// AuthorizeURL builds the browser redirect target for the OAuth dance.
func (c *Client) AuthorizeURL(state string) string {
	v, _ := query.Values(authorizeParams{
		ClientKey:    c.conf.ClientKey,
		ResponseType: "code",
		Scope:        strings.Join(c.conf.Scopes, ","),
		RedirectURI:  c.conf.RedirectURI,
		State:        state,
	})
	return authorizeURL + "?" + v.Encode()
}

// ExchangeCode trades an authorization code for a token pair.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*dto.TokenResponse, error) {
	form := url.Values{}
	form.Set("client_key", c.conf.ClientKey)
	form.Set("client_secret", c.conf.ClientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", c.conf.RedirectURI)
	return c.tokenRequest(ctx, form)
}

// RefreshToken runs the refresh grant. A vendor rejection is an error; the
// session is invalid from then on.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	form := url.Values{}
	form.Set("client_key", c.conf.ClientKey)
	form.Set("client_secret", c.conf.ClientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return c.tokenRequest(ctx, form)
}

func (c *Client) tokenRequest(ctx context.Context, form url.Values) (*dto.TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.conf.BaseURL+"/v2/oauth/token/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	var tok dto.TokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || tok.AccessToken == "" {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Vendor:     dto.VendorError{Code: tok.Error, Message: tok.ErrorDescription},
		}
	}
	return &tok, nil
}

// OAuthToken normalizes a token grant into the oauth2 representation used for
// expiry math by the session and the poster.
func OAuthToken(t *dto.TokenResponse) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Duration(t.ExpiresIn) * time.Second),
	}
}

// PublishCarousel submits a photo carousel referencing three publicly
// reachable slide URLs. Retry policy lives in the caller.
func (c *Client) PublishCarousel(ctx context.Context, accessToken string, post *dto.CarouselPost) (*dto.PublishResponse, error) {
	payload := dto.PublishPayload{
		MediaType: "PHOTO",
		PostMode:  "MEDIA_UPLOAD",
		PostInfo: dto.PostInfo{
			Title:          post.Title,
			Description:    fmt.Sprintf("🎵 %s\n\n%s", post.Song, strings.Join(post.Hashtags, " ")),
			PrivacyLevel:   c.conf.PrivacyLevel,
			DisableComment: false,
			AutoAddMusic:   true,
		},
		SourceInfo: dto.SourceInfo{
			Source:          "PULL_FROM_URL",
			PhotoImages:     post.ImageURLs,
			PhotoCoverIndex: 0,
		},
	}

	var out dto.PublishResponse
	status, err := c.postJSON(ctx, "/v2/post/publish/content/init/", accessToken, payload, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || out.Data.PublishID == "" {
		return nil, &APIError{StatusCode: status, Vendor: out.Error}
	}
	return &out, nil
}

// FetchPublishStatus performs a single lookup against the status fetch
// endpoint.
func (c *Client) FetchPublishStatus(ctx context.Context, accessToken, publishID string) (string, error) {
	var out dto.PublishStatusResponse
	status, err := c.postJSON(ctx, "/v2/post/publish/status/fetch/",
		accessToken, map[string]string{"publish_id": publishID}, &out)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &APIError{StatusCode: status, Vendor: out.Error}
	}
	return out.Data.Status, nil
}

// PollPublishStatus polls the status fetch endpoint until a terminal status
// or the attempt budget runs out. Budget exhaustion yields PROCESSING.
func (c *Client) PollPublishStatus(ctx context.Context, accessToken, publishID string) (string, error) {
	for attempt := 0; attempt < c.conf.PollAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.conf.PollBackoff):
			}
		}

		status, err := c.FetchPublishStatus(ctx, accessToken, publishID)
		if err != nil {
			return "", err
		}
		logger.GetLogger().
			WithField("publish_id", publishID).
			WithField("status", status).
			Info("Publish status check")
		if dto.IsTerminalPublishStatus(status) {
			return status, nil
		}
	}
	return dto.PublishStatusProcessing, nil
}

func (c *Client) postJSON(ctx context.Context, path, accessToken string, payload interface{}, out interface{}) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.conf.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("parsing response from %s: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}
