package summary

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdrill/internal/analysis"
	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/llm"
	"github.com/abhisek/examdrill/internal/quiz"
	"github.com/abhisek/examdrill/internal/router"
	"github.com/abhisek/examdrill/internal/screen"
	"github.com/abhisek/examdrill/internal/store"
)

type fakeResults struct {
	store.ResultRepo
	saved []*quiz.Result
	err   error
}

func (f *fakeResults) SaveResult(_ context.Context, r *quiz.Result) error {
	f.saved = append(f.saved, r)
	return f.err
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var testQuestions = []catalog.Question{
	{ID: "q1", Category: "gk", Prompt: "Highest peak?", Options: []string{"Everest", "K2"}, Correct: 0},
	{ID: "q2", Category: "gk", Prompt: "Capital?", Options: []string{"Pokhara", "Kathmandu"}, Correct: 1, Explanation: "Kathmandu is the capital."},
	{ID: "q3", Category: "gk", Prompt: "Currency?", Options: []string{"Rupee", "Taka"}, Correct: 0},
}

func testResult() *quiz.Result {
	sheet := quiz.NewAnswerSheet()
	sheet.Put(quiz.UserAnswer{QuestionID: "q1", Selected: 0, TimeTaken: 4})
	sheet.Put(quiz.UserAnswer{QuestionID: "q2", Selected: 0, TimeTaken: 9})
	return quiz.Score("s1", "gk", "", testQuestions, sheet, 42, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
}

func TestSummaryScreen_SavesOnInit(t *testing.T) {
	repo := &fakeResults{}
	s := New(&screen.Deps{Results: repo}, testResult(), testQuestions)

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected save command")
	}
	s.Update(cmd())

	if len(repo.saved) != 1 || repo.saved[0].SessionID != "s1" {
		t.Fatalf("unexpected saves: %+v", repo.saved)
	}
	if !s.saved {
		t.Error("expected saved flag")
	}
	view := s.View(100, 40)
	for _, want := range []string{"Score 2 / 6", "1 correct", "1 wrong", "1 skipped", "0:42"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_SaveError(t *testing.T) {
	repo := &fakeResults{err: errors.New("disk full")}
	s := New(&screen.Deps{Results: repo}, testResult(), testQuestions)
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 40), "disk full") {
		t.Error("expected save error in view")
	}
}

func TestSummaryScreen_NoStore(t *testing.T) {
	s := New(&screen.Deps{}, testResult(), testQuestions)
	if s.Init() != nil {
		t.Error("expected no command without a result store")
	}
}

func TestSummaryScreen_Review(t *testing.T) {
	s := New(&screen.Deps{}, testResult(), testQuestions)

	s.Update(keyPress('r'))
	view := s.View(100, 60)
	for _, want := range []string{"Highest peak?", "Yours: A) Pokhara", "Answer: B) Kathmandu", "Kathmandu is the capital.", "Yours: skipped"} {
		if !strings.Contains(view, want) {
			t.Errorf("review missing %q", want)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.offset != 1 {
		t.Errorf("offset = %d, want 1", s.offset)
	}
}

func TestSummaryScreen_Analysis(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"strengths": ["Geography"], "weaknesses": ["Civics"], "patterns": [],
		"timeManagement": "Quick.", "actionPlan": ["Read the constitution"],
		"motivationalMessage": "Well done"}`)})
	deps := &screen.Deps{Analyzer: analysis.NewService(mock, analysis.DefaultConfig())}
	s := New(deps, testResult(), testQuestions)

	_, cmd := s.Update(keyPress('a'))
	if cmd == nil {
		t.Fatal("expected analysis command")
	}
	if !strings.Contains(s.View(100, 40), "Analyzing") {
		t.Error("expected in-progress message")
	}
	if _, again := s.Update(keyPress('a')); again != nil {
		t.Error("analysis should run once")
	}

	s.Update(cmd())
	view := s.View(100, 60)
	for _, want := range []string{"Strengths", "Geography", "Read the constitution", "Well done"} {
		if !strings.Contains(view, want) {
			t.Errorf("analysis missing %q", want)
		}
	}
}

func TestSummaryScreen_AnalysisUnavailable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("offline")})
	deps := &screen.Deps{Analyzer: analysis.NewService(mock, analysis.DefaultConfig())}
	s := New(deps, testResult(), testQuestions)

	_, cmd := s.Update(keyPress('a'))
	s.Update(cmd())
	if !strings.Contains(s.View(100, 40), "unavailable") {
		t.Error("expected unavailable message")
	}
}

func TestSummaryScreen_EnterGoesHome(t *testing.T) {
	s := New(&screen.Deps{}, testResult(), testQuestions)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}
