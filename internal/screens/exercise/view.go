package exercise

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	ex "github.com/listenly/listenly/internal/exercise"
	"github.com/listenly/listenly/internal/ui/components"
	"github.com/listenly/listenly/internal/ui/theme"
)

func (s *ExerciseScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", s.errMsg))
	}

	run := s.machine.Run()

	var b strings.Builder

	// Position line with a progress bar underneath.
	posLine := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Sentence %d of %d", run.Position+1, s.deck.Len()))
	b.WriteString(posLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", float64(run.Completed)/float64(s.deck.Len()), false, width-8)
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	// Audio status.
	audioStyle := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if run.AudioPlaying {
		b.WriteString(audioStyle.Foreground(theme.Accent).Render("♪ Playing..."))
	} else {
		b.WriteString(audioStyle.Foreground(theme.TextDim).Render("♪ (press R to replay)"))
	}
	b.WriteString("\n\n")

	if !run.Revealed {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Bold(true).
			Render("Listen to the sentence."))
		b.WriteString("\n\n")
		hint := "Press Space to see the answer options"
		if run.AudioPlaying {
			hint = "Options unlock when the audio finishes"
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(hint))
		return b.String()
	}

	// Options.
	prompt := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("What does it mean?")
	b.WriteString(prompt)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.options.View()))
	b.WriteString("\n")

	// Feedback line.
	switch run.Feedback {
	case ex.FeedbackCorrect:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	case ex.FeedbackWrong:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite — try again"))
	}

	return b.String()
}
