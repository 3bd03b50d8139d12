package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/quiz"
	"github.com/abhisek/examdrill/internal/screen"
	"github.com/abhisek/examdrill/internal/screens/exam"
	"github.com/abhisek/examdrill/internal/screens/home"
)

func testDeps() *screen.Deps {
	return &screen.Deps{
		Catalog: &catalog.Catalog{
			Categories: []catalog.Category{{ID: "gk", Name: "General Knowledge"}},
			Questions: []catalog.Question{
				{ID: "q1", Category: "gk", Prompt: "Highest peak?", Options: []string{"Everest", "K2"}},
			},
		},
		Settings: quiz.DefaultSettings(),
	}
}

// step applies msg and feeds back the message of any command it returns.
// None of the key paths used here return a tick.
func step(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd != nil {
		if out := cmd(); out != nil {
			next, _ = m.Update(out)
			m = next.(AppModel)
		}
	}
	return m
}

func TestAppModel_HomeRender(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps()})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("expected home screen, got %T", m.router.Active())
	}
	if m.render() != "" {
		t.Error("nothing should render before the first WindowSizeMsg")
	}

	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	out := m.render()
	for _, want := range []string{"ExamDrill", "General Knowledge", "Navigate"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	m = step(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "too small") {
		t.Error("expected min-size message")
	}
}

func TestAppModel_StartCategory(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps(), Category: "gk"})
	if m.router.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", m.router.Depth())
	}
	if _, ok := m.router.Active().(*exam.ExamScreen); !ok {
		t.Fatalf("expected exam screen, got %T", m.router.Active())
	}
	if m.Init() == nil {
		t.Error("expected init commands")
	}

	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if out := m.render(); !strings.Contains(out, "Q 1/1") {
		t.Error("expected quiz status in the header")
	}

	// A live quiz keeps Esc for its own quit confirmation.
	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 2 {
		t.Fatal("Esc must not pop a live quiz")
	}
	if !strings.Contains(m.render(), "Abandon this quiz?") {
		t.Error("expected quit confirmation")
	}

	m = step(t, m, tea.KeyPressMsg{Code: 'y', Text: "y"})
	if m.router.Depth() != 1 {
		t.Errorf("Depth = %d after abandoning, want 1", m.router.Depth())
	}
}

func TestAppModel_EscPopsOtherScreens(t *testing.T) {
	m := newAppModel(Options{Deps: testDeps(), Category: "missing"})
	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", m.router.Depth())
	}

	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Error("Esc at the root must be a no-op")
	}
}

func TestLogPath(t *testing.T) {
	if p, _ := logPath(Options{LogPath: "/tmp/x.log"}); p != "/tmp/x.log" {
		t.Errorf("explicit path ignored: %q", p)
	}

	t.Setenv("EXAMDRILL_LOG", "/tmp/env.log")
	if p, _ := logPath(Options{}); p != "/tmp/env.log" {
		t.Errorf("env path ignored: %q", p)
	}

	t.Setenv("EXAMDRILL_LOG", "")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if p, _ := logPath(Options{}); p != "/tmp/data/examdrill/examdrill.log" {
		t.Errorf("default path = %q", p)
	}
}
