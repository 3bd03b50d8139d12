package components

import (
	"fmt"
	"strconv"
	"unicode"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdrill/internal/ui/theme"
)

// NumberInput is a focused textinput that accepts a number in 1..Max.
// The exam screen uses it for jump-to-question.
type NumberInput struct {
	input   textinput.Model
	Max     int
	invalid bool
}

func NewNumberInput(maxValue int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("1-%d", maxValue)
	ti.CharLimit = len(strconv.Itoa(maxValue))
	ti.Focus()
	return NumberInput{input: ti, Max: maxValue}
}

func (n NumberInput) Init() tea.Cmd {
	return n.input.Focus()
}

// Update forwards msg to the textinput, dropping any printable key that is
// not a digit.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.Text != "" {
		for _, r := range k.Text {
			if !unicode.IsDigit(r) {
				return n, nil
			}
		}
	}
	n.invalid = false
	var cmd tea.Cmd
	n.input, cmd = n.input.Update(msg)
	return n, cmd
}

// Number reports the entered value when it is within range.
func (n NumberInput) Number() (int, bool) {
	v, err := strconv.Atoi(n.input.Value())
	if err != nil || v < 1 || v > n.Max {
		return 0, false
	}
	return v, true
}

// Reject clears the entry and shows the accepted range until the next key.
func (n *NumberInput) Reject() {
	n.input.SetValue("")
	n.invalid = true
}

func (n NumberInput) Value() string { return n.input.Value() }

func (n NumberInput) View() string {
	if !n.invalid {
		return n.input.View()
	}
	return n.input.View() + "  " +
		lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("enter 1-%d", n.Max))
}
