// Package topics lets the user pick a sub-topic within a category.
package topics

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdrill/internal/router"
	"github.com/abhisek/examdrill/internal/screen"
	"github.com/abhisek/examdrill/internal/screens/exam"
	"github.com/abhisek/examdrill/internal/ui/components"
	"github.com/abhisek/examdrill/internal/ui/layout"
	"github.com/abhisek/examdrill/internal/ui/theme"
)

// TopicsScreen lists a category's sub-topics. The first entry runs the
// whole category.
type TopicsScreen struct {
	deps     *screen.Deps
	category string
	name     string
	menu     components.Menu
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)

// New creates a TopicsScreen for category.
func New(deps *screen.Deps, category string) *TopicsScreen {
	s := &TopicsScreen{deps: deps, category: category, name: category}
	if cat, ok := deps.Catalog.Category(category); ok {
		s.name = cat.Name
	}

	counts := make(map[string]int)
	total := 0
	for _, q := range deps.Catalog.Questions {
		if q.Category == category {
			counts[q.SubTopic]++
			total++
		}
	}

	limit := deps.Settings.SubTopicLimit
	items := []components.MenuItem{{
		Label:  "All of " + s.name,
		Detail: fmt.Sprintf("%d questions", total),
		Action: s.start(""),
	}}
	for _, sub := range deps.Catalog.SubTopics(category) {
		detail := fmt.Sprintf("%d questions", counts[sub])
		if limit > 0 && counts[sub] > limit {
			detail = fmt.Sprintf("%d of %d questions", limit, counts[sub])
		}
		items = append(items, components.MenuItem{
			Label:  sub,
			Detail: detail,
			Action: s.start(sub),
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *TopicsScreen) start(subTopic string) func() tea.Cmd {
	return func() tea.Cmd {
		next := exam.New(s.deps, s.category, subTopic)
		return router.Open(next)
	}
}

func (s *TopicsScreen) Init() tea.Cmd {
	return nil
}

func (s *TopicsScreen) Title() string {
	return s.name
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *TopicsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Choose a topic")
	body := heading + "\n\n" + s.menu.View()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(body, cw))
}
