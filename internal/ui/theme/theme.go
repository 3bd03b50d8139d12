// Package theme holds the colors and shared styles of the exam TUI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette: slate surfaces, blue focus, amber for anything time-sensitive.
var (
	Primary   = lipgloss.Color("#2563EB")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Warning   = lipgloss.Color("#EAB308")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Selected  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Question navigator cells. Each question number is drawn as a padded chip
// colored by its status.
var (
	NavUnvisited = chip(TextDim, nil)
	NavAnswered  = chip(BgDark, Success)
	NavMarked    = chip(BgDark, Accent)
	NavSkipped   = chip(Text, Border)
	NavCurrent   = chip(Text, Primary).Bold(true)
)

var (
	ButtonActive = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

func chip(fg, bg color.Color) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(fg).Padding(0, 1)
	if bg != nil {
		s = s.Background(bg)
	}
	return s
}
