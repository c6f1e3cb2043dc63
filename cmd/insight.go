package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/internal/insight"
	"newsdesk/internal/redisclient"
	"newsdesk/internal/storage"

	"github.com/spf13/cobra"
)

var insightFeedMode string

// insightCmd fetches the feed, locates one item by identifier and runs a
// one-shot insight generation for it, printing the current vote tally.
var insightCmd = &cobra.Command{
	Use:   "insight <item-id>",
	Short: "Generate AI commentary for one item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID := args[0]
		cfg := GetConfig()

		gen := newGenerator(cfg)
		if gen == nil {
			return fmt.Errorf("openai config missing: set openai.api_key in config.yaml")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		res := newSource(cfg).Fetch(ctx, mode(insightFeedMode))
		idx := -1
		for i := range res.Items {
			if res.Items[i].ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("item not found in %s feed: %s", insightFeedMode, itemID)
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb, cfg.Insight.Namespace)
		orch := insight.New(store, gen, cfg.Insight.UserAuthor, cfg.Insight.ReplyAuthor)

		// Generation runs to completion; no per-request cancellation.
		text, err := orch.Request(context.Background(), res.Items[idx])
		if err != nil && !errors.Is(err, insight.ErrAlreadyRequested) {
			// The failure text is what the user would see in place of the
			// insight; print it and report the error.
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)

		vctx, vcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer vcancel()
		if vc, err := store.Votes(vctx, itemID); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "votes: +%d / -%d\n", vc.Upvotes, vc.Downvotes)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightCmd)
	insightCmd.Flags().StringVar(&insightFeedMode, "mode", "standard", "feed mode: standard or deep")
}
