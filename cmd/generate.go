package cmd

import (
	"context"
	"fmt"

	"github.com/listenly/listenly/internal/deckgen"
	"github.com/listenly/listenly/internal/llm"
	"github.com/listenly/listenly/internal/store"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new deck with an LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		target, _ := cmd.Flags().GetString("target")
		topic, _ := cmd.Flags().GetString("topic")
		level, _ := cmd.Flags().GetString("level")
		count, _ := cmd.Flags().GetInt("count")

		switch deckgen.Level(level) {
		case deckgen.LevelBeginner, deckgen.LevelIntermediate, deckgen.LevelAdvanced:
		default:
			return fmt.Errorf("invalid level %q: want beginner, intermediate, or advanced", level)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProviderFromEnv(ctx, s.LLMEvents())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		avoid, err := collectSources(ctx, s.Decks(), source)
		if err != nil {
			return fmt.Errorf("collect existing sentences: %w", err)
		}

		gen := deckgen.New(provider, deckgen.DefaultConfig())

		fmt.Printf("Generating %d %s sentences (%s → %s)...\n", count, level, source, target)
		d, err := gen.Generate(ctx, deckgen.GenerateInput{
			SourceLang:   source,
			TargetLang:   target,
			Topic:        topic,
			Level:        deckgen.Level(level),
			Count:        count,
			AvoidSources: avoid,
		})
		if err != nil {
			return fmt.Errorf("generate deck: %w", err)
		}

		if err := s.Decks().Put(ctx, d); err != nil {
			return fmt.Errorf("store deck: %w", err)
		}

		fmt.Printf("Created %q (%d pairs) as %s\n", d.Name, len(d.Pairs), d.ID)
		return nil
	},
}

// collectSources gathers source sentences from library decks in the
// same source language, so generation avoids repeating them.
func collectSources(ctx context.Context, repo store.DeckRepo, sourceLang string) ([]string, error) {
	infos, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, info := range infos {
		if info.SourceLang != sourceLang {
			continue
		}
		d, err := repo.Get(ctx, info.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range d.Pairs {
			out = append(out, p.Source)
		}
	}
	return out, nil
}

func init() {
	generateCmd.Flags().StringP("source", "s", "es-ES", "Language being learned (BCP 47 tag)")
	generateCmd.Flags().StringP("target", "t", "en-US", "Your own language (BCP 47 tag)")
	generateCmd.Flags().String("topic", "", "Topic to steer sentence content (e.g. \"ordering food\")")
	generateCmd.Flags().StringP("level", "l", "beginner", "Difficulty: beginner, intermediate, or advanced")
	generateCmd.Flags().IntP("count", "n", 10, "Number of sentence pairs")
}
