package cmd

import (
	"fmt"
	"strings"

	"github.com/listenly/listenly/internal/store"
	"github.com/spf13/cobra"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "Manage the deck library",
}

var decksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks in the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		infos, err := s.Decks().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list decks: %w", err)
		}

		if len(infos) == 0 {
			fmt.Println("No decks in the library. Try `listenly generate` or `listenly import`.")
			return nil
		}

		fmt.Printf("%-36s  %-24s  %-8s  %-8s  %6s  %s\n",
			"ID", "Name", "Source", "Target", "Pairs", "Created")
		fmt.Println(strings.Repeat("─", 100))

		for _, info := range infos {
			name := info.Name
			if len(name) > 24 {
				name = name[:24]
			}
			fmt.Printf("%-36s  %-24s  %-8s  %-8s  %6d  %s\n",
				info.ID,
				name,
				info.SourceLang,
				info.TargetLang,
				info.PairCount,
				info.CreatedAt.Local().Format("2006-01-02 15:04"),
			)
		}
		return nil
	},
}

var decksShowCmd = &cobra.Command{
	Use:   "show <deck-id>",
	Short: "Show a deck's sentence pairs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		d, err := loadDeck(cmd, s, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s → %s, %d pairs)\n", d.Name, d.SourceLang, d.TargetLang, len(d.Pairs))
		fmt.Println(strings.Repeat("─", 72))
		for i, p := range d.Pairs {
			fmt.Printf("%3d. %s\n     %s\n", i+1, p.Source, p.Target)
		}
		return nil
	},
}

var decksDeleteCmd = &cobra.Command{
	Use:   "delete <deck-id>",
	Short: "Delete a deck from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Decks().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete deck: %w", err)
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	decksCmd.AddCommand(decksListCmd)
	decksCmd.AddCommand(decksShowCmd)
	decksCmd.AddCommand(decksDeleteCmd)
}
