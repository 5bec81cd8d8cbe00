package home

import (
	"context"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/listenly/listenly/internal/deck"
	"github.com/listenly/listenly/internal/router"
	"github.com/listenly/listenly/internal/screen"
	"github.com/listenly/listenly/internal/screens/decks"
	exercisescreen "github.com/listenly/listenly/internal/screens/exercise"
	"github.com/listenly/listenly/internal/speech"
	"github.com/listenly/listenly/internal/store"
	"github.com/listenly/listenly/internal/ui/components"
	"github.com/listenly/listenly/internal/ui/theme"
)

const logo = `
 █   █ ▄▀▀ ▀█▀ ██▀ █▄ █ █   ▀▄▀
 █▄▄ █ ▄██  █  █▄▄ █ ▀█ █▄▄  █
`

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu      components.Menu
	deckCount int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. The repo may be nil when the library
// database could not be opened; practice still works with the built-in
// starter deck.
func New(repo store.DeckRepo, speaker *speech.Speaker) *HomeScreen {
	deckCount := 1 // starter
	if repo != nil {
		if infos, err := repo.List(context.Background()); err == nil {
			deckCount += len(infos)
		}
	}

	items := []components.MenuItem{
		{Label: "PRACTICE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: decks.New(repo, speaker)}
			}
		}},
		{Label: "QUICK START", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: exercisescreen.New(deck.Starter(), speaker),
				}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:      components.NewMenu(items),
		deckCount: deckCount,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(strings.TrimRight(logo, "\n")))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("listen, then choose the meaning"))
	b.WriteString("\n\n")

	plural := "decks"
	if h.deckCount == 1 {
		plural = "deck"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(formatCount(h.deckCount, plural)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func formatCount(n int, noun string) string {
	return lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(n)) + " " + noun + " in your library"
}
