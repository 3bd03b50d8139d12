package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdrill/internal/ui/theme"
)

// ProgressBar is a one-line meter: optional label, a filled track and an
// optional percentage.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Fill        color.Color // nil means theme.Secondary
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

// NewTimerBar shows remaining out of limit seconds. It turns amber below
// half and red for the last five seconds.
func NewTimerBar(remaining, limit, width int) ProgressBar {
	b := ProgressBar{Label: fmt.Sprintf("%2ds", remaining), Width: width}
	if limit > 0 {
		b.Percent = float64(remaining) / float64(limit)
	}
	if remaining <= 5 {
		b.Fill = theme.Error
	} else if b.Percent < 0.5 {
		b.Fill = theme.Accent
	}
	return b
}

func (p ProgressBar) View() string {
	var label, suffix string
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	if p.ShowPercent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %3d%%", int(p.Percent*100)))
	}

	track := max(p.Width-lipgloss.Width(label)-lipgloss.Width(suffix), 4)
	filled := min(max(int(float64(track)*p.Percent), 0), track)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	return label +
		lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", track-filled)) +
		suffix
}
