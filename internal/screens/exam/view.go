package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdrill/internal/quiz"
	"github.com/abhisek/examdrill/internal/ui/components"
	"github.com/abhisek/examdrill/internal/ui/theme"
)

func (s *ExamScreen) View(width, height int) string {
	if s.sess == nil {
		return renderNoContent(width, height, s.errMsg)
	}
	v := s.sess.Snapshot()
	switch {
	case s.quitting:
		return renderDialog(width, height, "Abandon this quiz?",
			"Your answers will not be scored or saved.", "Abandon", "Keep going")
	case v.Phase == quiz.PhaseAwaitingConfirmation:
		return s.renderConfirm(v, width, height)
	}
	return s.renderQuestion(v, width)
}

func (s *ExamScreen) renderQuestion(v quiz.SessionView, width int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	topic := v.Question.Label()
	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(topic)
	progress := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Answered %d/%d", v.Attempted, v.Total))
	if v.Marked {
		progress = lipgloss.NewStyle().Foreground(theme.Accent).Render("⚑ marked  ") + progress
	}
	gap := cw - lipgloss.Width(info) - lipgloss.Width(progress)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(info + strings.Repeat(" ", gap) + progress)
	b.WriteString("\n")

	if v.ShowTimer {
		b.WriteString(components.NewTimerBar(v.Remaining, v.Limit, cw).View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%d. %s", v.Position+1, v.Question.Prompt)))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())

	if v.HintVisible {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Accent).Italic(true).
			Render("Hint: " + v.Hint))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderNav(v.Nav, v.Position, cw))

	if s.jumping {
		b.WriteString("\n\nGo to question: ")
		b.WriteString(s.jump.View())
	}
	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(s.notice))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderNav draws the per-question status grid, wrapping at cw.
func renderNav(nav []quiz.NavStatus, current, cw int) string {
	var rows []string
	var row []string
	rowWidth := 0
	for i, st := range nav {
		style := theme.NavUnvisited
		switch st {
		case quiz.NavAnswered:
			style = theme.NavAnswered
		case quiz.NavMarked:
			style = theme.NavMarked
		case quiz.NavSkipped:
			style = theme.NavSkipped
		}
		if i == current {
			style = theme.NavCurrent
		}
		cell := style.Render(fmt.Sprintf("%2d", i+1))
		w := lipgloss.Width(cell) + 1
		if rowWidth+w > cw && len(row) > 0 {
			rows = append(rows, strings.Join(row, " "))
			row, rowWidth = nil, 0
		}
		row = append(row, cell)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n")
}

func (s *ExamScreen) renderConfirm(v quiz.SessionView, width, height int) string {
	var unanswered, marked int
	for _, st := range v.Nav {
		switch st {
		case quiz.NavMarked:
			marked++
		case quiz.NavUnvisited, quiz.NavSkipped:
			unanswered++
		}
	}
	detail := fmt.Sprintf("Answered %d of %d.", v.Attempted, v.Total)
	if unanswered > 0 {
		detail += fmt.Sprintf(" %d unanswered.", unanswered)
	}
	if marked > 0 {
		detail += fmt.Sprintf(" %d marked for review.", marked)
	}
	if s.notice != "" {
		detail = s.notice + "\n" + detail
	}
	return renderDialog(width, height, "Submit your answers?", detail, "Submit", "Review")
}

func renderDialog(width, height int, title, detail, yes, no string) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title) +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail) +
		"\n\n" +
		components.Button(yes+" (Y)", true) + "   " + components.Button(no+" (N)", false)

	card := components.Card(lipgloss.NewStyle().Align(lipgloss.Center).Render(body),
		components.ContentWidth(width))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func renderNoContent(width, height int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(msg + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Press any key to go back"))
}
