package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/charmed/internal/history"
	"github.com/desertthunder/charmed/internal/services"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Watch polls the clock and triggers due alarms until interrupted.
//
// Each alarm fires at most once per minute: the loop remembers the last
// minute it serviced each alarm, so polling several times inside the same
// minute does not restart playback.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	interval := time.Duration(cmd.Int("interval")) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}

	r.connectSavedSession(ctx)

	histLog, err := r.openHistory()
	if err != nil {
		r.logger.Warn("history database unavailable, triggers will not be recorded", "error", err)
	} else {
		defer histLog.Close()
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.writePlain("Watching %d alarm(s), polling every %s. Press Ctrl+C to stop.\n", r.registry.Count(), interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastFired := make(map[string]string)
	r.tick(sigCtx, lastFired, histLog)

	for {
		select {
		case <-sigCtx.Done():
			r.dispatcher.Stop()
			r.writePlain("\nStopping watcher.\n")
			return nil
		case <-ticker.C:
			r.tick(sigCtx, lastFired, histLog)
		}
	}
}

// tick services at most one due alarm for the current instant.
func (r *Runner) tick(ctx context.Context, lastFired map[string]string, histLog *history.Log) {
	now := r.clock.Now()

	due := r.registry.FindDue(now)
	if due == nil {
		return
	}

	key := now.Format("2006-01-02 15:04")
	if lastFired[due.ID] == key {
		return
	}
	lastFired[due.ID] = key

	r.logger.Info("alarm due", "id", due.ID, "time", due.Time, "playlist", due.PlaylistName)

	result, err := r.dispatcher.Trigger(ctx, *due)
	if err != nil {
		r.logger.Error("failed to service alarm", "id", due.ID, "error", err)
	}

	switch {
	case err != nil:
		r.writeWarning("Alarm %s could not be serviced: %v", due.Time, err)
	case result.Detail != "":
		r.writeWarning("Alarm %s rang the fallback tone (%s)", due.Time, result.Detail)
	default:
		r.writeSuccess("Alarm %s started playback of %s", due.Time, due.PlaylistName)
	}

	if histLog != nil {
		if recordErr := histLog.Record(*due, result, now); recordErr != nil {
			r.logger.Warn("failed to record trigger", "error", recordErr)
		}
	}
}

// connectSavedSession authenticates the service with tokens saved in the
// config, registering a refresh hook so renewed tokens survive restarts.
func (r *Runner) connectSavedSession(ctx context.Context) {
	oauthSrv, ok := r.spotify.(services.OAuthService)
	if !ok {
		return
	}

	token := r.config.Credentials.Spotify.Token()
	if token == nil {
		r.logger.Warn("no saved tokens, alarms will ring the fallback tone until you run: charmed auth login")
		return
	}

	oauthSrv.SetTokenRefreshCallback(func(refreshed *oauth2.Token) {
		if err := r.saveTokens(refreshed); err != nil {
			r.logger.Warn("failed to persist refreshed token", "error", err)
		}
	})

	if err := oauthSrv.OAuthenticate(ctx, token); err != nil {
		r.logger.Warn("failed to restore saved session", "error", err)
	}
}
