// Package summary shows a completed quiz: score, per-question review and
// the optional AI analysis.
package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdrill/internal/analysis"
	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/quiz"
	"github.com/abhisek/examdrill/internal/router"
	"github.com/abhisek/examdrill/internal/screen"
	"github.com/abhisek/examdrill/internal/ui/components"
	"github.com/abhisek/examdrill/internal/ui/layout"
	"github.com/abhisek/examdrill/internal/ui/theme"
)

type savedMsg struct {
	Err error
}

type analysisMsg struct {
	Report *analysis.Report
}

type analysisState int

const (
	analysisIdle analysisState = iota
	analysisRunning
	analysisDone
)

// SummaryScreen displays a quiz result.
type SummaryScreen struct {
	deps      *screen.Deps
	result    *quiz.Result
	questions []catalog.Question
	answers   map[string]quiz.UserAnswer

	saveErr error
	saved   bool
	review  bool
	offset  int
	state   analysisState
	report  *analysis.Report
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. questions is the session's frozen sequence.
func New(deps *screen.Deps, result *quiz.Result, questions []catalog.Question) *SummaryScreen {
	answers := make(map[string]quiz.UserAnswer, len(result.Answers))
	for _, a := range result.Answers {
		answers[a.QuestionID] = a
	}
	return &SummaryScreen{deps: deps, result: result, questions: questions, answers: answers}
}

// Init persists the result when a result store is configured.
func (s *SummaryScreen) Init() tea.Cmd {
	if s.deps.Results == nil {
		return nil
	}
	repo, res := s.deps.Results, s.result
	return func() tea.Msg {
		return savedMsg{Err: repo.SaveResult(context.Background(), res)}
	}
}

func (s *SummaryScreen) Title() string {
	return "Result"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "R", Description: "Review answers"},
	}
	if s.deps.Analyzer != nil && s.state == analysisIdle {
		hints = append(hints, layout.KeyHint{Key: "A", Description: "AI analysis"})
	}
	if s.review {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Scroll"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saved = msg.Err == nil
		s.saveErr = msg.Err
		return s, nil

	case analysisMsg:
		s.state = analysisDone
		s.report = msg.Report
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, router.Home
		case "r":
			s.review = !s.review
			s.offset = 0
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.questions)-1 {
				s.offset++
			}
		case "a":
			return s, s.requestAnalysis()
		}
	}
	return s, nil
}

func (s *SummaryScreen) requestAnalysis() tea.Cmd {
	if s.deps.Analyzer == nil || s.state != analysisIdle {
		return nil
	}
	s.state = analysisRunning
	svc, qs, answers := s.deps.Analyzer, s.questions, s.result.Answers
	return func() tea.Msg {
		return analysisMsg{Report: svc.Analyze(context.Background(), qs, answers)}
	}
}

func (s *SummaryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, s.renderScore(cw))
	if s.review {
		sections = append(sections, s.renderReview(cw, height))
	}
	if a := s.renderAnalysis(cw); a != "" {
		sections = append(sections, a)
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n\n"))
}

func (s *SummaryScreen) renderScore(cw int) string {
	r := s.result
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Score %d / %d", r.Score, r.MaxScore())))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("%s   %s   %s",
		theme.Correct.Render(fmt.Sprintf("✓ %d correct", r.CorrectCount)),
		theme.Incorrect.Render(fmt.Sprintf("✗ %d wrong", r.WrongCount)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("– %d skipped", r.SkippedCount)))
	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(stats))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Accuracy", r.Accuracy()/100, true, cw-4)
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Time spent %s", layout.FormatClock(r.TimeSpent))))

	switch {
	case s.saveErr != nil:
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).
			Render("Could not save result: " + s.saveErr.Error()))
	case s.saved:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("   · saved"))
	}

	return components.Card(b.String(), cw)
}

// renderReview lists questions from the scroll offset with the chosen and
// correct options.
func (s *SummaryScreen) renderReview(cw, height int) string {
	var b strings.Builder
	perPage := height / 6
	if perPage < 1 {
		perPage = 1
	}
	end := s.offset + perPage
	if end > len(s.questions) {
		end = len(s.questions)
	}

	for i := s.offset; i < end; i++ {
		q := s.questions[i]
		a, ok := s.answers[q.ID]

		mark, style := "–", lipgloss.NewStyle().Foreground(theme.TextDim)
		yours := "skipped"
		if ok && a.Selected.Answered() {
			yours = components.OptionLabel(int(a.Selected)) + ") " + q.Options[a.Selected]
			if q.IsCorrect(int(a.Selected)) {
				mark, style = "✓", theme.Correct
			} else {
				mark, style = "✗", theme.Incorrect
			}
		}

		b.WriteString(style.Render(mark))
		b.WriteString(lipgloss.NewStyle().Width(cw-6).Foreground(theme.Text).
			Render(fmt.Sprintf(" %d. %s", i+1, q.Prompt)))
		b.WriteString("\n")
		fmt.Fprintf(&b, "   Yours: %s\n", yours)
		if !ok || !q.IsCorrect(int(a.Selected)) {
			fmt.Fprintf(&b, "   %s\n", theme.Correct.Render(
				"Answer: "+components.OptionLabel(q.Correct)+") "+q.Options[q.Correct]))
		}
		if q.Explanation != "" {
			b.WriteString(lipgloss.NewStyle().Width(cw-6).Foreground(theme.TextDim).Italic(true).
				Render("   " + q.Explanation))
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "\n%s", lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d-%d of %d", s.offset+1, end, len(s.questions))))
	return components.Card(b.String(), cw)
}

func (s *SummaryScreen) renderAnalysis(cw int) string {
	switch s.state {
	case analysisRunning:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Analyzing your answers...")
	case analysisIdle:
		return ""
	}
	if s.report == nil {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("AI analysis is unavailable right now.")
	}

	rep := s.report
	var b strings.Builder
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(title))
		b.WriteString("\n")
		for _, it := range items {
			b.WriteString("  • " + it + "\n")
		}
		b.WriteString("\n")
	}
	section("Strengths", rep.Strengths)
	section("Weaknesses", rep.Weaknesses)
	section("Patterns", rep.Patterns)
	if rep.TimeManagement != "" {
		section("Time management", []string{rep.TimeManagement})
	}
	section("Action plan", rep.ActionPlan)
	if rep.MotivationalMessage != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Italic(true).Render(rep.MotivationalMessage))
	}
	return components.Card(strings.TrimRight(b.String(), "\n"), cw)
}
