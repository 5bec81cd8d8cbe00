package cmd

import (
	"fmt"
	"os"

	"github.com/listenly/listenly/internal/app"
	"github.com/listenly/listenly/internal/deck"
	"github.com/listenly/listenly/internal/speech"
	"github.com/listenly/listenly/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// A non-empty deckID skips the menus and starts that deck's exercise.
func runApp(cmd *cobra.Command, deckID string) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	deps := app.Deps{
		Store:   st,
		Speaker: buildSpeaker(),
	}

	if deckID != "" {
		d, err := loadDeck(cmd, st, deckID)
		if err != nil {
			return err
		}
		deps.Deck = d
	}

	return app.Run(deps)
}

// loadDeck resolves a deck ID to a deck, treating "starter" as the
// built-in deck.
func loadDeck(cmd *cobra.Command, st *store.Store, id string) (*deck.Deck, error) {
	if id == "starter" {
		return deck.Starter(), nil
	}
	d, err := st.Decks().Get(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("load deck %q: %w", id, err)
	}
	return d, nil
}

// buildSpeaker wires the TTS backend from the environment. A failure
// here degrades to a silent exercise rather than blocking launch.
func buildSpeaker() *speech.Speaker {
	sy, err := speech.NewFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "TTS not configured:", err)
		fmt.Fprintln(os.Stderr, "Sentences will not be spoken aloud.")
		sy = speech.NoopSynthesizer{}
	}
	return speech.NewSpeaker(sy)
}
