package cmd

import (
	"context"
	"fmt"
	"time"

	"newsdesk/internal/insight"
	"newsdesk/internal/redisclient"
	"newsdesk/internal/storage"

	"github.com/spf13/cobra"
)

var commentFeedMode string

// commentCmd appends a comment on an item and prints the AI reply. The
// user comment is persisted even when reply generation fails.
var commentCmd = &cobra.Command{
	Use:   "comment <item-id> <text>",
	Short: "Comment on an item and get an AI reply",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, text := args[0], args[1]
		cfg := GetConfig()

		gen := newGenerator(cfg)
		if gen == nil {
			return fmt.Errorf("openai config missing: set openai.api_key in config.yaml")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		res := newSource(cfg).Fetch(ctx, mode(commentFeedMode))
		title := itemID
		for _, it := range res.Items {
			if it.ID == itemID {
				title = it.Title
				break
			}
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb, cfg.Insight.Namespace)
		orch := insight.New(store, gen, cfg.Insight.UserAuthor, cfg.Insight.ReplyAuthor)

		user, reply, err := orch.AddComment(context.Background(), itemID, title, text)
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", user.AuthorID, user.Text)
		if err != nil {
			// The user comment above is already persisted.
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", reply.AuthorID, reply.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commentCmd)
	commentCmd.Flags().StringVar(&commentFeedMode, "mode", "standard", "feed mode: standard or deep")
}
