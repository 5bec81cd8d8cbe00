package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [deck-id]",
	Short: "Start a listening exercise",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckID := ""
		if len(args) == 1 {
			deckID = args[0]
		}
		return runApp(cmd, deckID)
	},
}
