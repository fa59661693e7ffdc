package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ttphotos/domain/dto"
	"ttphotos/domain/model"
	"ttphotos/domain/repository"
	"ttphotos/infrastructure/cache"
	tiktokclient "ttphotos/infrastructure/clients/tiktok"
	"ttphotos/infrastructure/logger"
	"ttphotos/infrastructure/pubsub"

	"github.com/google/go-querystring/query"
)

const slidesPerPost = 3

type IPosterUsecase interface {
	RunDuePosts(ctx context.Context, now time.Time) (*dto.TriggerSummary, error)
}

// PosterUsecase runs one posting attempt for every active schedule whose slot
// matches the current hour. A failing user never blocks the others, and the
// slot claim makes repeated triggers within one hour post at most once.
type PosterUsecase struct {
	schedules repository.ISchedule
	tokens    repository.IOAuthToken
	tiktok    repository.ITikTok
	library   repository.ISongLibrary
	photos    repository.IPhotoStore
	guard     *cache.Cache
	outcomes  *pubsub.OutcomePublisher
	baseURL   string
	hashtags  int
}

func NewPosterUsecase(
	schedules repository.ISchedule,
	tokens repository.IOAuthToken,
	tiktok repository.ITikTok,
	library repository.ISongLibrary,
	photos repository.IPhotoStore,
	guard *cache.Cache,
	outcomes *pubsub.OutcomePublisher,
	baseURL string,
	hashtags int,
) IPosterUsecase {
	return &PosterUsecase{
		schedules: schedules,
		tokens:    tokens,
		tiktok:    tiktok,
		library:   library,
		photos:    photos,
		guard:     guard,
		outcomes:  outcomes,
		baseURL:   baseURL,
		hashtags:  hashtags,
	}
}

func (u *PosterUsecase) RunDuePosts(ctx context.Context, now time.Time) (*dto.TriggerSummary, error) {
	schedules, err := u.schedules.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active schedules: %w", err)
	}

	summary := &dto.TriggerSummary{}
	for _, rec := range schedules {
		res := u.processUser(ctx, now, rec)
		summary.Processed++
		switch res.Status {
		case model.PostStatusPosted:
			summary.Posted++
		case model.PostStatusFailed:
			summary.Failed++
		default:
			summary.Skipped++
		}
		summary.Results = append(summary.Results, res)
	}
	logger.GetLogger().
		WithField("processed", summary.Processed).
		WithField("posted", summary.Posted).
		WithField("failed", summary.Failed).
		WithField("skipped", summary.Skipped).
		Info("Trigger run finished")
	return summary, nil
}

func (u *PosterUsecase) processUser(ctx context.Context, now time.Time, rec *model.ScheduleRecord) dto.TriggerResult {
	log := logger.GetLogger().WithField("user_id", rec.UserID)

	if !rec.MatchesHour(now) {
		return dto.TriggerResult{UserID: rec.UserID, Status: "SKIPPED", Reason: "outside posting slots"}
	}
	if !u.guard.ClaimPostSlot(ctx, rec.UserID, now) {
		return dto.TriggerResult{UserID: rec.UserID, Status: "SKIPPED", Reason: "already attempted this hour"}
	}
	claimed, err := u.schedules.ClaimSlot(ctx, rec.UserID, now)
	if err != nil {
		log.WithField("error", err).Error("Slot claim failed")
		return dto.TriggerResult{UserID: rec.UserID, Status: model.PostStatusFailed, Reason: err.Error()}
	}
	if !claimed {
		return dto.TriggerResult{UserID: rec.UserID, Status: "SKIPPED", Reason: "already posted this hour"}
	}

	tok, err := u.tokens.GetToken(ctx, rec.UserID, "tiktok")
	if err != nil || tok == nil {
		return u.fail(ctx, now, rec.UserID, &model.LastPost{ScheduledAt: now}, "no stored token for user")
	}

	access := tok.AccessToken
	if tok.ExpiresAt != nil && tok.ExpiresAt.Before(now.Add(time.Hour)) {
		refreshed, err := u.refreshToken(ctx, rec.UserID, tok)
		if err != nil {
			return u.fail(ctx, now, rec.UserID, &model.LastPost{ScheduledAt: now},
				fmt.Sprintf("token refresh failed: %v", err))
		}
		access = refreshed
	}

	last := ""
	if rec.LastPost != nil {
		last = rec.LastPost.Song
	}
	song := u.library.RandomSongExcept(last)
	tags := u.library.RandomHashtags(u.hashtags)
	backgrounds, err := u.photos.RandomDistinct(slidesPerPost)
	if err != nil {
		return u.fail(ctx, now, rec.UserID, &model.LastPost{ScheduledAt: now},
			fmt.Sprintf("picking backgrounds: %v", err))
	}

	post := &dto.CarouselPost{
		Title:     u.library.RandomTitle(),
		Song:      song.Name,
		Hashtags:  tags,
		ImageURLs: BuildSlideURLs(u.baseURL, song, backgrounds),
	}
	attempt := &model.LastPost{
		Title:       post.Title,
		Song:        post.Song,
		Hashtags:    strings.Join(tags, " "),
		ImageURLs:   post.ImageURLs,
		ScheduledAt: now,
		Status:      model.PostStatusPosting,
	}
	if err := u.schedules.RecordOutcome(ctx, rec.UserID, attempt); err != nil {
		log.WithField("error", err).Error("Recording POSTING state failed")
	}

	resp, err := u.tiktok.PublishCarousel(ctx, access, post)
	if err != nil {
		var apiErr *tiktokclient.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			// Refresh for the next run only; the current attempt stays failed
			// so one trigger never doubles its vendor calls.
			if _, rerr := u.refreshToken(ctx, rec.UserID, tok); rerr != nil {
				log.WithField("error", rerr).Warn("Post-rejection token refresh failed")
			} else {
				log.Info("Access token rejected, refreshed for next run")
			}
		}
		return u.fail(ctx, now, rec.UserID, attempt, fmt.Sprintf("publish failed: %v", err))
	}

	publishID := resp.Data.PublishID
	attempt.PublishID = &publishID
	status, err := u.tiktok.PollPublishStatus(ctx, access, publishID)
	if err != nil {
		log.WithField("error", err).WithField("publish_id", publishID).Warn("Status poll failed, treating as processing")
		status = dto.PublishStatusProcessing
	}
	if status == dto.PublishStatusFailed || status == dto.PublishStatusCancelled {
		return u.fail(ctx, now, rec.UserID, attempt, "publish ended "+status)
	}

	// PROCESSING after the poll budget counts as posted: the submission was
	// accepted and the vendor finishes asynchronously.
	attempt.Status = model.PostStatusPosted
	attempt.Error = nil
	if err := u.schedules.RecordOutcome(ctx, rec.UserID, attempt); err != nil {
		log.WithField("error", err).Error("Recording POSTED outcome failed")
	}
	u.outcomes.PublishOutcome(ctx, pubsub.OutcomeEvent{
		UserID:    rec.UserID,
		Status:    model.PostStatusPosted,
		Song:      post.Song,
		PublishID: publishID,
		At:        now,
	})
	log.WithField("song", post.Song).WithField("publish_id", publishID).Info("Carousel posted")
	return dto.TriggerResult{UserID: rec.UserID, Status: model.PostStatusPosted, Song: post.Song, PublishID: publishID}
}

// refreshToken runs the refresh grant and persists the new pair. It returns
// the new access token.
func (u *PosterUsecase) refreshToken(ctx context.Context, userID string, tok *model.OAuthToken) (string, error) {
	resp, err := u.tiktok.RefreshToken(ctx, tok.RefreshToken)
	if err != nil {
		return "", err
	}
	normalized := tiktokclient.OAuthToken(resp)
	if err := u.tokens.UpsertToken(ctx, &model.OAuthToken{
		UserID:       userID,
		Platform:     "tiktok",
		AccessToken:  normalized.AccessToken,
		RefreshToken: normalized.RefreshToken,
		ExpiresAt:    &normalized.Expiry,
		Scopes:       resp.Scope,
	}); err != nil {
		return "", fmt.Errorf("persisting refreshed token: %w", err)
	}
	tok.AccessToken = normalized.AccessToken
	tok.RefreshToken = normalized.RefreshToken
	tok.ExpiresAt = &normalized.Expiry
	return normalized.AccessToken, nil
}

// fail records the FAILED outcome, frees the fast-path slot so a later
// trigger in the same hour can retry, and emits the outcome event.
func (u *PosterUsecase) fail(ctx context.Context, now time.Time, userID string, attempt *model.LastPost, reason string) dto.TriggerResult {
	logger.GetLogger().WithField("user_id", userID).WithField("reason", reason).Error("Posting attempt failed")
	attempt.ScheduledAt = now
	attempt.Status = model.PostStatusFailed
	attempt.Error = &reason
	if err := u.schedules.RecordOutcome(ctx, userID, attempt); err != nil {
		logger.GetLogger().WithField("user_id", userID).WithField("error", err).Error("Recording FAILED outcome failed")
	}
	u.guard.ReleasePostSlot(ctx, userID, now)
	u.outcomes.PublishOutcome(ctx, pubsub.OutcomeEvent{
		UserID: userID,
		Status: model.PostStatusFailed,
		Song:   attempt.Song,
		Error:  reason,
		At:     now,
	})
	return dto.TriggerResult{UserID: userID, Status: model.PostStatusFailed, Reason: reason, Song: attempt.Song}
}

type slideParams struct {
	Variant    string `url:"variant"`
	Background string `url:"bg"`
	Song       string `url:"song,omitempty"`
	Lyrics     string `url:"lyrics,omitempty"`
}

// BuildSlideURLs produces the three publicly reachable slide links the vendor
// pulls: intro, song reveal, lyrics. One distinct background each.
func BuildSlideURLs(baseURL string, song model.Song, backgrounds []string) []string {
	params := []slideParams{
		{Variant: "intro", Background: backgrounds[0]},
		{Variant: "song", Background: backgrounds[1], Song: song.Name},
		{Variant: "lyrics", Background: backgrounds[2], Song: song.Name, Lyrics: song.Lyrics},
	}
	urls := make([]string, 0, len(params))
	for _, p := range params {
		v, _ := query.Values(p)
		urls = append(urls, baseURL+"/slide?"+v.Encode())
	}
	return urls
}
