package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdrill/internal/ui/theme"
)

// OptionLabels are the letters shown next to answer options.
var OptionLabels = []string{"A", "B", "C", "D", "E", "F"}

// OptionLabel returns the letter for option i.
func OptionLabel(i int) string {
	if i >= 0 && i < len(OptionLabels) {
		return OptionLabels[i]
	}
	return fmt.Sprint(i + 1)
}

// MultiChoice renders a question's options with a cursor and the
// recorded choice. When Reveal is set the correct option is highlighted
// instead of the cursor.
type MultiChoice struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when nothing is recorded
	Correct int
	Reveal  bool
}

// NewMultiChoice creates a selector with the cursor on the recorded choice
// when there is one.
func NewMultiChoice(options []string, chosen int) MultiChoice {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	}
	return MultiChoice{Options: options, Cursor: cursor, Chosen: chosen, Correct: -1}
}

// Move shifts the cursor by delta, clamped to the option list.
func (m *MultiChoice) Move(delta int) {
	m.Cursor += delta
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor > len(m.Options)-1 {
		m.Cursor = len(m.Options) - 1
	}
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if !m.Reveal && i == m.Cursor {
			prefix = "▸ "
		}
		mark := " "
		if i == m.Chosen {
			mark = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, OptionLabel(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Reveal && i == m.Correct:
			style = theme.Correct
		case m.Reveal && i == m.Chosen:
			style = theme.Incorrect
		case m.Reveal:
			style = style.Foreground(theme.TextDim)
		case i == m.Chosen:
			style = style.Foreground(theme.Secondary).Bold(true)
		case i == m.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
