package repository

import (
	"context"

	"ttphotos/domain/dto"
)

// ITikTok defines the interface for the TikTok open API client
type ITikTok interface {
	// AuthorizeURL builds the browser redirect target for the OAuth dance.
	AuthorizeURL(state string) string

	// ExchangeCode trades an authorization code for a token pair.
	ExchangeCode(ctx context.Context, code string) (*dto.TokenResponse, error)

	// RefreshToken runs the refresh grant. A vendor rejection is returned
	// as an error; there is no fallback path.
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)

	// PublishCarousel submits a photo carousel. A missing publish_id or a
	// non-success HTTP status is a hard failure for this attempt.
	PublishCarousel(ctx context.Context, accessToken string, post *dto.CarouselPost) (*dto.PublishResponse, error)

	// FetchPublishStatus performs a single status lookup for a publish id.
	FetchPublishStatus(ctx context.Context, accessToken, publishID string) (string, error)

	// PollPublishStatus polls the status fetch endpoint with fixed backoff
	// until a terminal status or the attempt budget is exhausted. Exhaustion
	// yields PROCESSING, not an error.
	PollPublishStatus(ctx context.Context, accessToken, publishID string) (string, error)
}
