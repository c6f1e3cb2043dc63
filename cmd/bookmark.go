package cmd

import (
	"fmt"

	"newsdesk/internal/bookmark"

	"github.com/spf13/cobra"
)

// bookmarkCmd toggles one item's membership in the local bookmark set, or
// lists it when called without arguments.
var bookmarkCmd = &cobra.Command{
	Use:   "bookmark [item-id]",
	Short: "Toggle a bookmark, or list bookmarks",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		bm := bookmark.Open(cfg.Bookmarks.Path)

		if len(args) == 0 {
			for _, id := range bm.IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		}
		added, err := bm.Toggle(args[0])
		if err != nil {
			return fmt.Errorf("write bookmarks: %w", err)
		}
		if added {
			fmt.Fprintf(cmd.OutOrStdout(), "bookmarked: %s\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "removed: %s\n", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bookmarkCmd)
}
