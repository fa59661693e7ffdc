package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"ttphotos/infrastructure/cache"
	tiktokclient "ttphotos/infrastructure/clients/tiktok"
	"ttphotos/infrastructure/configuration"
	"ttphotos/infrastructure/content"
	"ttphotos/infrastructure/logger"
	"ttphotos/infrastructure/persistence"
	"ttphotos/infrastructure/photos"
	"ttphotos/infrastructure/pubsub"
	"ttphotos/infrastructure/render"
	"ttphotos/infrastructure/session"
	handlers "ttphotos/interfaces/http"
	"ttphotos/server"
	"ttphotos/usecase"
)

func main() {
	configuration.LoadEnvFromFile("config.env", ".env")
	configuration.Reload()
	conf := configuration.C
	log := logger.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := persistence.NewPostgreSQLDB()
	if err != nil {
		log.WithField("error", err).Fatal("Database connection failed")
	}
	defer db.Close()
	if err := persistence.EnsureScheduleSchema(db); err != nil {
		log.WithField("error", err).Fatal("Schema setup failed")
	}

	scheduleRepo := persistence.NewScheduleRepository(db)
	tokenRepo := persistence.NewOAuthTokenRepository(db)

	guard := cache.NewCache(ctx)
	defer guard.Close()
	outcomes := pubsub.NewOutcomePublisher(ctx, conf.Pubsub.ProjectID, conf.Pubsub.Topic)
	defer outcomes.Close()

	tiktok := tiktokclient.NewTikTokClient(&tiktokclient.Config{
		ClientKey:    conf.TikTok.ClientKey,
		ClientSecret: conf.TikTok.ClientSecret,
		RedirectURI:  conf.TikTok.RedirectURI,
		Scopes:       conf.TikTok.Scopes,
		PrivacyLevel: conf.TikTok.PrivacyLevel,
		BaseURL:      conf.TikTok.BaseURL,
		PollAttempts: conf.Posting.PollAttempts,
		PollBackoff:  time.Duration(conf.Posting.PollBackoffSec) * time.Second,
	})

	library := content.NewLibrary()
	photoStore := photos.NewStore(conf.Content.PhotosDir)
	gemPath := filepath.Join(filepath.Dir(conf.Content.PhotosDir), "gem.png")
	renderer := render.NewRenderer(photoStore, library, conf.Content.FontsDir, gemPath)

	sessions := session.NewManager(conf.App.SessionSecret, strings.HasPrefix(conf.App.BaseURL, "https://"))

	scheduleUsecase := usecase.NewScheduleUsecase(scheduleRepo, tokenRepo, conf.Posting.Times)
	posterUsecase := usecase.NewPosterUsecase(
		scheduleRepo, tokenRepo, tiktok, library, photoStore,
		guard, outcomes, conf.App.BaseURL, conf.Posting.HashtagsPerPost)

	router := server.NewRouter(
		sessions,
		conf.App.CronSecret,
		handlers.NewAuthHandler(tiktok, sessions, library, photoStore, conf.App.BaseURL),
		handlers.NewSlideHandler(renderer),
		handlers.NewScheduleHandler(scheduleUsecase),
		handlers.NewTriggerHandler(posterUsecase),
		handlers.NewPublishStatusHandler(tiktok),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", conf.App.Port),
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("port", conf.App.Port).Info("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})

	// Optional in-process trigger for deployments without an external cron.
	if minutes := conf.Posting.TriggerMinutes; minutes > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(time.Duration(minutes) * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case now := <-ticker.C:
					if _, err := posterUsecase.RunDuePosts(gctx, now); err != nil {
						log.WithField("error", err).Error("Scheduled trigger run failed")
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		log.WithField("error", err).Error("Server exited with error")
	}
}
