package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/listenly/listenly/internal/ui/theme"
)

// OptionList renders the answer options for a listening exercise.
// Unlike a one-shot multiple choice, wrong picks stay visible and the
// learner keeps choosing until they find the right translation.
type OptionList struct {
	Options  []string
	Selected int

	// WrongPicks marks options the learner already tried and got wrong.
	WrongPicks map[int]bool

	// Resolved highlights CorrectIndex once the right option was chosen.
	Resolved     bool
	CorrectIndex int
}

// NewOptionList creates an option list for the given options.
func NewOptionList(options []string) OptionList {
	return OptionList{
		Options:      options,
		WrongPicks:   make(map[int]bool),
		CorrectIndex: -1,
	}
}

// Init returns nil.
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles arrow-key navigation. Choosing is the screen's job.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Resolved {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	}

	return o, nil
}

// MarkWrong records a wrong pick so it stays dimmed out.
func (o *OptionList) MarkWrong(index int) {
	o.WrongPicks[index] = true
}

// Resolve highlights the correct option and freezes navigation.
func (o *OptionList) Resolve(correctIndex int) {
	o.Resolved = true
	o.CorrectIndex = correctIndex
}

// View renders the options.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected && !o.Resolved {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		switch {
		case o.Resolved && i == o.CorrectIndex:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case o.WrongPicks[i]:
			s += lipgloss.NewStyle().Foreground(theme.Error).Strikethrough(true).Render(line) + "\n"
		case o.Resolved:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == o.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
