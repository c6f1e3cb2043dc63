package cmd

import (
	"context"
	"fmt"
	"time"

	"newsdesk/internal/bookmark"
	"newsdesk/internal/feed"

	"github.com/spf13/cobra"
)

var (
	fetchFeedMode string
	fetchTab      string
	fetchKeyword  string
)

// fetchCmd does a one-shot fetch → normalize → filter run and prints the
// date-grouped digest. It is the text-mode stand-in for the rendering
// surface.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the feed once and print the grouped view",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		src := newSource(cfg)

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		res := src.Fetch(ctx, mode(fetchFeedMode))
		if res.Fallback {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: remote source unavailable (%v); showing built-in dataset\n", res.Cause)
		}

		bm := bookmark.Open(cfg.Bookmarks.Path)
		now := time.Now()
		g := feed.Select(res.Items, feed.Selection{
			Tab:        feed.Tab(fetchTab),
			Keyword:    fetchKeyword,
			Bookmarked: bm.Has,
			Now:        now,
		})

		fmt.Fprintf(cmd.OutOrStdout(), "latest update: %s\n", res.LatestUpdate)
		if fetchTab == string(feed.TabAll) {
			fmt.Fprintf(cmd.OutOrStdout(), "keywords: %v\n", feed.Keywords(res.Items, now))
		}
		for _, date := range g.Dates {
			fmt.Fprintf(cmd.OutOrStdout(), "\n== %s ==\n", date)
			for _, it := range g.ByDate[date] {
				marker := " "
				if bm.Has(it.ID) {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  (%s)\n  id: %s\n", marker, it.Title, it.Source, it.ID)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchFeedMode, "mode", "standard", "feed mode: standard or deep")
	fetchCmd.Flags().StringVar(&fetchTab, "tab", "all", "tab: all, recommended, bookmarks, subscribe, deep")
	fetchCmd.Flags().StringVar(&fetchKeyword, "keyword", "", "keyword filter (all tab only)")
}
