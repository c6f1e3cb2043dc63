package cmd

import (
	"fmt"

	"newsdesk/internal/feed"

	"github.com/spf13/cobra"
)

// debugCmd groups debug helpers.
var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debug utilities",
}

// debugIDCmd prints the derived identifier for a title/date pair, useful
// for chasing join-key questions across bookmarks, votes and comments.
var debugIDCmd = &cobra.Command{
	Use:   "id <title> <date>",
	Short: "Print the derived item identifier",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), feed.DeriveID(args[0], args[1]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugIDCmd)
}
