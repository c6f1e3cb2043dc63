package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsdesk/internal/bookmark"
	"newsdesk/internal/realtime"
	"newsdesk/internal/redisclient"
	"newsdesk/internal/session"
	"newsdesk/internal/storage"
	"newsdesk/worker"

	"github.com/spf13/cobra"
)

var serveFeedMode string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the session workers (feed refresher, realtime sync)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		interval, err := time.ParseDuration(cfg.Sheets.FetchInterval)
		if err != nil {
			return err
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb, cfg.Insight.Namespace)

		bm := bookmark.Open(cfg.Bookmarks.Path)
		sess := session.New(bm)

		refresher := &worker.FeedRefresher{
			Source:   newSource(cfg),
			Session:  sess,
			Mode:     mode(serveFeedMode),
			Interval: interval,
		}
		metricsSync := realtime.New(store)

		slog.Info("serve: starting workers", "mode", serveFeedMode, "interval", interval, "namespace", cfg.Insight.Namespace)
		mgr := worker.NewManager(refresher, metricsSync)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveFeedMode, "mode", "standard", "feed mode: standard or deep")
}
