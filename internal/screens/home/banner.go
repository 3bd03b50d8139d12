package home

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/store"
	"github.com/abhisek/examdrill/internal/ui/theme"
)

const bannerFull = ` ┌─┐─┐ ┬┌─┐┌┬┐  ┌┬┐┬─┐┬┬  ┬
 ├┤ ┌┴┬┘├─┤│││   ││├┬┘││  │
 └─┘┴ └─┴ ┴┴ ┴  ─┴┘┴└─┴┴─┘┴─┘`

const bannerCompact = "E X A M D R I L L"

const tagline = "Loksewa and banking exam practice"

func renderBanner(cw int, compact bool) string {
	art := bannerFull
	if compact {
		art = bannerCompact
	}
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art)
	sub := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(tagline)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n" + sub)
}

// renderStatsBar summarizes stored results across all categories.
func renderStatsBar(stats []store.CategoryStat, cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if len(stats) == 0 {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(dim.Render("No quizzes taken yet"))
	}

	var attempts int
	var accuracy float64
	for _, st := range stats {
		attempts += st.Attempts
		accuracy += st.AvgAccuracy * float64(st.Attempts)
	}
	accuracy /= float64(attempts)

	text := fmt.Sprintf("%s  %s",
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("◆ %d QUIZZES", attempts)),
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("✓ %.0f%% AVG", accuracy)))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

// categoryDetail is the dimmed menu text next to a category: the question
// count and, once played, the best stored score.
func categoryDetail(count int, st store.CategoryStat, played bool) string {
	parts := []string{fmt.Sprintf("%d questions", count)}
	if played {
		parts = append(parts, fmt.Sprintf("best %d", st.BestScore))
	}
	return strings.Join(parts, " · ")
}

// sortedCategories returns the catalog categories ordered by name.
func sortedCategories(c *catalog.Catalog) []catalog.Category {
	cats := append([]catalog.Category(nil), c.Categories...)
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats
}
