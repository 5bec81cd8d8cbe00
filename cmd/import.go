package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/listenly/listenly/internal/deck"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a deck from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := deck.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("load deck: %w", err)
		}
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("invalid deck: %w", err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Decks().Put(cmd.Context(), d); err != nil {
			return fmt.Errorf("store deck: %w", err)
		}

		fmt.Printf("Imported %q (%d pairs, %s → %s) as %s\n",
			d.Name, len(d.Pairs), d.SourceLang, d.TargetLang, d.ID)
		return nil
	},
}
