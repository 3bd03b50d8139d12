// Package home is the landing screen: a category picker plus result
// history.
package home

import (
	"context"
	"fmt"
	"log"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/router"
	"github.com/abhisek/examdrill/internal/screen"
	"github.com/abhisek/examdrill/internal/screens/exam"
	"github.com/abhisek/examdrill/internal/screens/history"
	"github.com/abhisek/examdrill/internal/screens/topics"
	"github.com/abhisek/examdrill/internal/store"
	"github.com/abhisek/examdrill/internal/ui/components"
	"github.com/abhisek/examdrill/internal/ui/layout"
)

type statsLoadedMsg struct {
	Stats []store.CategoryStat
	Err   error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps  *screen.Deps
	menu  components.Menu
	cats  []catalog.Category
	stats []store.CategoryStat
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps *screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, cats: sortedCategories(deps.Catalog)}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	counts := h.deps.Catalog.CountByCategory()
	byCategory := make(map[string]store.CategoryStat, len(h.stats))
	for _, st := range h.stats {
		byCategory[st.Category] = st
	}

	var items []components.MenuItem
	for _, cat := range h.cats {
		st, played := byCategory[cat.ID]
		items = append(items, components.MenuItem{
			Label:    cat.Name,
			Detail:   categoryDetail(counts[cat.ID], st, played),
			Disabled: counts[cat.ID] == 0,
			Action:   h.openCategory(cat.ID),
		})
	}

	items = append(items,
		components.MenuItem{
			Label:    "All Categories",
			Detail:   fmt.Sprintf("%d questions", len(h.deps.Catalog.Questions)),
			Disabled: len(h.deps.Catalog.Questions) == 0,
			Action:   h.openCategory(catalog.AllCategories),
		},
		components.MenuItem{
			Label:    "History",
			Disabled: h.deps.Results == nil,
			Action: func() tea.Cmd {
				return router.Open(history.New(h.deps))
			},
		},
		components.MenuItem{
			Label:  "Exit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	return items
}

// openCategory pushes the sub-topic picker when the category has
// sub-topics, otherwise starts the quiz directly.
func (h *HomeScreen) openCategory(id string) func() tea.Cmd {
	return func() tea.Cmd {
		var next screen.Screen
		if id != catalog.AllCategories && len(h.deps.Catalog.SubTopics(id)) > 0 {
			next = topics.New(h.deps, id)
		} else {
			next = exam.New(h.deps, id, "")
		}
		return router.Open(next)
	}
}

// Init loads per-category stats. It runs again whenever the router returns
// to this screen.
func (h *HomeScreen) Init() tea.Cmd {
	if h.deps.Results == nil {
		return nil
	}
	repo := h.deps.Results
	return func() tea.Msg {
		stats, err := repo.CategoryStats(context.Background())
		return statsLoadedMsg{Stats: stats, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err != nil {
			log.Printf("home: loading stats: %v", msg.Err)
			return h, nil
		}
		h.stats = msg.Stats
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.items())
		h.menu.Selected = selected
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 60
	cw := components.ContentWidth(width)

	sections := []string{
		renderBanner(cw, compact),
		renderStatsBar(h.stats, cw),
		h.menu.View(),
	}
	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
