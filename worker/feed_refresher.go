package worker

import (
	"context"
	"log/slog"
	"time"

	"newsdesk/internal/feed"
	"newsdesk/internal/session"
)

// FeedRefresher periodically refetches the feed for one mode and installs
// the fresh item set into the session. Fallback results are installed
// too; the warning makes the degraded state visible rather than silent.
type FeedRefresher struct {
	Source   *feed.Source
	Session  *session.Session
	Mode     feed.Mode
	Interval time.Duration
}

func (w *FeedRefresher) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 10 * time.Minute
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	// initial run
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *FeedRefresher) runOnce(ctx context.Context) {
	res := w.Source.Fetch(ctx, w.Mode)
	if res.Fallback {
		slog.Warn("feed refresher: showing built-in dataset, remote source unavailable",
			"mode", w.Mode, "cause", res.Cause)
	}
	w.Session.Install(res.Items, res.LatestUpdate)
	slog.Info("feed refresher: item set replaced",
		"mode", w.Mode, "items", len(res.Items), "latest", res.LatestUpdate, "fallback", res.Fallback)
}
