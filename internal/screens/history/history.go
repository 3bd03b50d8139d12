// Package history lists stored quiz results.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strconv"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdrill/internal/quiz"
	"github.com/abhisek/examdrill/internal/router"
	"github.com/abhisek/examdrill/internal/screen"
	"github.com/abhisek/examdrill/internal/store"
	"github.com/abhisek/examdrill/internal/ui/layout"
	"github.com/abhisek/examdrill/internal/ui/theme"
)

const maxResults = 50

var columns = []table.Column{
	{Title: "Completed", Width: 12},
	{Title: "Category", Width: 24},
	{Title: "Score", Width: 7},
	{Title: "Acc", Width: 5},
	{Title: "Time", Width: 6},
}

// tableWidth fits every column plus the one-cell padding on each side.
var tableWidth = func() int {
	w := 0
	for _, c := range columns {
		w += c.Width + 2
	}
	return w
}()

type resultsLoadedMsg struct {
	results []*quiz.Result
	err     error
}

// HistoryScreen shows past results newest first. Enter toggles the answer
// breakdown of the highlighted row.
type HistoryScreen struct {
	deps    *screen.Deps
	table   table.Model
	results []*quiz.Result
	details bool
	loaded  bool
	loadErr error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(deps *screen.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:  deps,
		table: table.New(
			table.WithColumns(columns),
			table.WithFocused(true),
			table.WithWidth(tableWidth),
			table.WithHeight(10),
		),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.deps.Results
	return func() tea.Msg {
		if repo == nil {
			return resultsLoadedMsg{}
		}
		res, err := repo.QueryResults(context.Background(), store.QueryOpts{Limit: maxResults})
		return resultsLoadedMsg{results: res, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		s.loaded, s.loadErr, s.results = true, msg.err, msg.results
		rows := make([]table.Row, 0, len(s.results))
		for _, r := range s.results {
			rows = append(rows, s.row(r))
		}
		s.table.SetRows(rows)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back
		case "enter":
			s.details = !s.details
			return s, nil
		}
		prev := s.table.Cursor()
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		if s.table.Cursor() != prev {
			s.details = false
		}
		return s, cmd
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.loadErr != nil:
		return center.Foreground(theme.Error).Render("\n\nError: " + s.loadErr.Error())
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case len(s.results) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\nNo quizzes yet. Pick a category to start!")
	}

	s.table.SetWidth(min(tableWidth, width))
	s.table.SetHeight(max(min(len(s.results)+2, height-4), 3))
	out := "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, s.table.View())

	if i := s.table.Cursor(); s.details && i >= 0 && i < len(s.results) {
		r := s.results[i]
		detail := fmt.Sprintf("%d correct · %d wrong · %d skipped of %d",
			r.CorrectCount, r.WrongCount, r.SkippedCount, r.TotalQuestions)
		out += "\n\n" + center.Foreground(accuracyColor(r.Accuracy())).Render(detail)
	}
	return out
}

func (s *HistoryScreen) row(r *quiz.Result) table.Row {
	return table.Row{
		r.CompletedAt.Local().Format("Jan 02 15:04"),
		s.label(r),
		fmt.Sprintf("%d/%d", r.Score, r.MaxScore()),
		strconv.Itoa(int(r.Accuracy()+0.5)) + "%",
		layout.FormatClock(r.TimeSpent),
	}
}

// label is the category display name plus the sub-topic, if any.
func (s *HistoryScreen) label(r *quiz.Result) string {
	name := r.Category
	if s.deps.Catalog != nil {
		if cat, ok := s.deps.Catalog.Category(r.Category); ok {
			name = cat.Name
		}
	}
	if r.SubTopic != "" {
		name += " · " + r.SubTopic
	}
	return name
}

func accuracyColor(pct float64) color.Color {
	if pct >= 80 {
		return theme.Success
	}
	if pct >= 50 {
		return theme.Accent
	}
	return theme.Error
}
