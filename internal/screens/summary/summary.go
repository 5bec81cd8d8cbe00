package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/listenly/listenly/internal/router"
	"github.com/listenly/listenly/internal/screen"
	"github.com/listenly/listenly/internal/ui/components"
	"github.com/listenly/listenly/internal/ui/layout"
	"github.com/listenly/listenly/internal/ui/theme"
)

// Result carries the outcome of a finished run.
type Result struct {
	DeckName string
	Total    int

	// FirstTry counts sentences answered correctly on the first pick.
	FirstTry int
}

// SummaryScreen shows the result of a finished exercise run.
type SummaryScreen struct {
	result Result
	menu   components.Menu
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen. The again factory builds a fresh
// exercise screen for the same deck.
func New(result Result, again func() screen.Screen) *SummaryScreen {
	items := []components.MenuItem{
		{Label: "PRACTICE AGAIN", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: again()}
			}
		}},
		{Label: "BACK", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &SummaryScreen{
		result: result,
		menu:   components.NewMenu(items),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Deck complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(s.result.DeckName))
	b.WriteString("\n\n")

	score := fmt.Sprintf("%d sentences — %d right on the first try", s.result.Total, s.result.FirstTry)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(score))
	b.WriteString("\n\n")

	if s.result.FirstTry == s.result.Total {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("Perfect run!"))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	return b.String()
}
