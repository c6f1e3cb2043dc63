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

// voteCmd casts one up/down vote on an item's insight.
var voteCmd = &cobra.Command{
	Use:   "vote <item-id> <up|down>",
	Short: "Upvote or downvote an item's insight",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, dir := args[0], insight.Direction(args[1])
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb, cfg.Insight.Namespace)
		orch := insight.New(store, nil, cfg.Insight.UserAuthor, cfg.Insight.ReplyAuthor)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		vc, err := orch.Vote(ctx, itemID, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "votes: +%d / -%d\n", vc.Upvotes, vc.Downvotes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(voteCmd)
}
