package cmd

import (
	"fmt"
	"strings"

	"github.com/listenly/listenly/internal/speech"
	"github.com/spf13/cobra"
)

var speakCmd = &cobra.Command{
	Use:   "speak <text>...",
	Short: "Speak a sentence aloud (checks the TTS setup)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("lang")
		text := strings.Join(args, " ")

		sy, err := speech.NewFromEnv()
		if err != nil {
			return fmt.Errorf("TTS not configured: %w", err)
		}

		speaker := speech.NewSpeaker(sy)
		if err := speaker.Speak(cmd.Context(), text, speech.Options{Lang: lang}); err != nil {
			return fmt.Errorf("speak: %w", err)
		}
		return nil
	},
}

func init() {
	speakCmd.Flags().StringP("lang", "l", "en-US", "Language of the text (BCP 47 tag)")
}
