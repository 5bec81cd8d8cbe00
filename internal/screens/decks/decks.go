package decks

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/listenly/listenly/internal/deck"
	"github.com/listenly/listenly/internal/router"
	"github.com/listenly/listenly/internal/screen"
	exercisescreen "github.com/listenly/listenly/internal/screens/exercise"
	"github.com/listenly/listenly/internal/speech"
	"github.com/listenly/listenly/internal/store"
	"github.com/listenly/listenly/internal/ui/components"
	"github.com/listenly/listenly/internal/ui/layout"
	"github.com/listenly/listenly/internal/ui/theme"
)

// starterID marks the built-in deck entry, which lives in the binary
// rather than the library.
const starterID = "starter"

// decksLoadedMsg carries the library listing.
type decksLoadedMsg struct {
	infos []store.DeckInfo
	err   error
}

// deckReadyMsg carries a fully loaded deck to start practicing.
type deckReadyMsg struct {
	deck *deck.Deck
	err  error
}

// deckDeletedMsg reports a delete outcome.
type deckDeletedMsg struct {
	err error
}

// DecksScreen is the deck library picker.
type DecksScreen struct {
	repo    store.DeckRepo
	speaker *speech.Speaker

	infos    []store.DeckInfo
	selected int
	loaded   bool
	errMsg   string

	filtering bool
	filter    components.TextInput
}

var _ screen.Screen = (*DecksScreen)(nil)
var _ screen.KeyHintProvider = (*DecksScreen)(nil)

// New creates the deck picker. The repo may be nil; the starter deck is
// always available.
func New(repo store.DeckRepo, speaker *speech.Speaker) *DecksScreen {
	return &DecksScreen{
		repo:    repo,
		speaker: speaker,
		filter:  components.NewTextInput("Type to filter...", 40),
	}
}

func (s *DecksScreen) Init() tea.Cmd {
	return s.loadDecks()
}

func (s *DecksScreen) Title() string {
	return "Decks"
}

func (s *DecksScreen) KeyHints() []layout.KeyHint {
	if s.filtering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Practice"},
		{Key: "/", Description: "Filter"},
		{Key: "X", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DecksScreen) loadDecks() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		if repo == nil {
			return decksLoadedMsg{}
		}
		infos, err := repo.List(context.Background())
		return decksLoadedMsg{infos: infos, err: err}
	}
}

// entries returns the visible listing: starter first, then the library
// filtered by the current filter text.
func (s *DecksScreen) entries() []store.DeckInfo {
	starter := deck.Starter()
	all := []store.DeckInfo{{
		ID:         starterID,
		Name:       starter.Name,
		SourceLang: starter.SourceLang,
		TargetLang: starter.TargetLang,
		PairCount:  starter.Len(),
	}}
	all = append(all, s.infos...)

	q := strings.ToLower(strings.TrimSpace(s.filter.Value()))
	if q == "" {
		return all
	}
	var out []store.DeckInfo
	for _, info := range all {
		if strings.Contains(strings.ToLower(info.Name), q) ||
			strings.Contains(strings.ToLower(info.SourceLang), q) {
			out = append(out, info)
		}
	}
	return out
}

func (s *DecksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case decksLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.infos = msg.infos
		return s, nil

	case deckReadyMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		speaker := s.speaker
		d := msg.deck
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: exercisescreen.New(d, speaker)}
		}

	case deckDeletedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		return s, s.loadDecks()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *DecksScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		s.errMsg = ""
		return s, nil
	}

	if s.filtering {
		switch msg.String() {
		case "enter", "esc":
			s.filtering = false
			s.selected = 0
			return s, nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.selected = 0
		return s, cmd
	}

	entries := s.entries()

	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(entries)-1 {
			s.selected++
		}
	case "/":
		s.filtering = true
		s.filter.Reset()
		return s, s.filter.Init()
	case "enter":
		if s.selected < len(entries) {
			return s, s.openDeck(entries[s.selected].ID)
		}
	case "x":
		if s.selected < len(entries) && entries[s.selected].ID != starterID && s.repo != nil {
			id := entries[s.selected].ID
			repo := s.repo
			s.selected = 0
			return s, func() tea.Msg {
				return deckDeletedMsg{err: repo.Delete(context.Background(), id)}
			}
		}
	}

	return s, nil
}

// openDeck loads the full deck and hands it to an exercise screen.
func (s *DecksScreen) openDeck(id string) tea.Cmd {
	if id == starterID {
		return func() tea.Msg {
			return deckReadyMsg{deck: deck.Starter()}
		}
	}
	repo := s.repo
	return func() tea.Msg {
		d, err := repo.Get(context.Background(), id)
		return deckReadyMsg{deck: d, err: err}
	}
}

func (s *DecksScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to continue.", s.errMsg))
	}

	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Loading decks...")
	}

	var b strings.Builder
	b.WriteString("\n")

	if s.filtering || s.filter.Value() != "" {
		b.WriteString("  Filter: " + s.filter.View())
		b.WriteString("\n\n")
	}

	entries := s.entries()
	if len(entries) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No decks match."))
		return b.String()
	}

	for i, info := range entries {
		label := fmt.Sprintf("%s  %s → %s  (%d sentences)",
			info.Name, info.SourceLang, info.TargetLang, info.PairCount)
		if info.ID == starterID {
			label += "  [built-in]"
		}

		if i == s.selected && !s.filtering {
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render("  ▸ "+label) + "\n")
		} else {
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("    "+label) + "\n")
		}
	}

	return b.String()
}
