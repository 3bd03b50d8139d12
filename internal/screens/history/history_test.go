package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/quiz"
	"github.com/abhisek/examdrill/internal/router"
	"github.com/abhisek/examdrill/internal/screen"
	"github.com/abhisek/examdrill/internal/store"
)

type fakeResults struct {
	store.ResultRepo
	results []*quiz.Result
	err     error
	opts    store.QueryOpts
}

func (f *fakeResults) QueryResults(_ context.Context, opts store.QueryOpts) ([]*quiz.Result, error) {
	f.opts = opts
	return f.results, f.err
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected load command")
	}
	s.Update(cmd())
}

func TestHistoryScreen_List(t *testing.T) {
	repo := &fakeResults{results: []*quiz.Result{
		{SessionID: "s2", Category: "gk", Score: 6, TotalQuestions: 4, CorrectCount: 3, WrongCount: 1, TimeSpent: 75, CompletedAt: time.Now()},
		{SessionID: "s1", Category: "banking", SubTopic: "NRB", Score: 2, TotalQuestions: 2, CorrectCount: 1, SkippedCount: 1, CompletedAt: time.Now()},
	}}
	deps := &screen.Deps{
		Catalog: &catalog.Catalog{Categories: []catalog.Category{{ID: "gk", Name: "General Knowledge"}}},
		Results: repo,
	}
	s := New(deps)
	load(t, s)

	if repo.opts.Limit != maxResults {
		t.Errorf("Limit = %d, want %d", repo.opts.Limit, maxResults)
	}
	view := s.View(120, 30)
	for _, want := range []string{"General Knowledge", "banking · NRB", "6/8", "75%", "1:15"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "1 correct · 0 wrong · 1 skipped of 2") {
		t.Error("expected expanded details for the second result")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Esc")
	}
}

func TestHistoryScreen_States(t *testing.T) {
	s := New(&screen.Deps{Results: &fakeResults{}})
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading state")
	}
	load(t, s)
	if !strings.Contains(s.View(80, 24), "No quizzes yet") {
		t.Error("expected empty state")
	}

	s = New(&screen.Deps{Results: &fakeResults{err: errors.New("db locked")}})
	load(t, s)
	if !strings.Contains(s.View(80, 24), "db locked") {
		t.Error("expected error state")
	}
}

func TestHistoryScreen_RowsOnNarrowTerminal(t *testing.T) {
	repo := &fakeResults{results: []*quiz.Result{
		{SessionID: "s1", Category: "gk", Score: 3, TotalQuestions: 2, CorrectCount: 1, WrongCount: 1, TimeSpent: 40, CompletedAt: time.Now()},
	}}
	s := New(&screen.Deps{Results: repo})
	load(t, s)

	view := s.View(60, 20)
	if got := strings.Count(view, "\n"); got < 3 {
		t.Fatalf("expected header and a row, got %d lines:\n%s", got, view)
	}
	for _, want := range []string{"gk", "3/4", "50%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
