package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/llm"
	"github.com/abhisek/examdrill/internal/quiz"
)

var testQuestions = []catalog.Question{
	{ID: "q1", Category: "banking", SubTopic: "Monetary Policy", Prompt: "Who issues currency in Nepal?", Options: []string{"NRB", "MoF"}, Correct: 0},
	{ID: "q2", Category: "banking", Prompt: "What does CRR stand for?", Options: []string{"Cash Reserve Ratio", "Credit Risk Rating"}, Correct: 0, TimeLimit: 45},
	{ID: "q3", Category: "constitution", Prompt: "How many provinces?", Options: []string{"5", "7"}, Correct: 1},
}

var testAnswers = []quiz.UserAnswer{
	{QuestionID: "q1", Selected: 0, TimeTaken: 5},
	{QuestionID: "q2", Selected: 1, TimeTaken: 40},
	{QuestionID: "q3", Selected: quiz.NoSelection, TimeTaken: 0},
	{QuestionID: "missing", Selected: 0, TimeTaken: 3},
}

const validReport = `{
	"strengths": ["Central banking basics"],
	"weaknesses": ["Banking abbreviations"],
	"patterns": ["Skips constitution questions"],
	"timeManagement": "Pacing is fine on easy items.",
	"actionPlan": ["Revise NRB directives", "Practice timed sets"],
	"motivationalMessage": "Keep going!"
}`

func TestBuildPerformance(t *testing.T) {
	rows := BuildPerformance(testQuestions, testAnswers, 30)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (unknown question dropped), got %d", len(rows))
	}

	tests := []struct {
		idx       int
		correct   bool
		selected  int
		timeLimit int
	}{
		{0, true, 0, 30},
		{1, false, 1, 45},
		{2, false, -1, 30},
	}
	for _, tt := range tests {
		r := rows[tt.idx]
		if r.IsCorrect != tt.correct || r.Selected != tt.selected || r.TimeLimit != tt.timeLimit {
			t.Errorf("row %d = %+v", tt.idx, r)
		}
	}
	if rows[0].SubTopic != "Monetary Policy" {
		t.Errorf("SubTopic = %q", rows[0].SubTopic)
	}
}

func TestAnalyze_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validReport)})
	svc := NewService(mock, DefaultConfig())

	report := svc.Analyze(context.Background(), testQuestions, testAnswers)
	if report == nil {
		t.Fatal("expected report")
	}
	if len(report.ActionPlan) != 2 || report.MotivationalMessage != "Keep going!" {
		t.Errorf("unexpected report: %+v", report)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != ReportSchema {
		t.Error("expected ReportSchema on request")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{
		"Nepal exam student",
		"Attempted 2 of 3 questions, 1 correct",
		"Who issues currency in Nepal?",
		`"selectedOption": -1`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestAnalyze_FailuresReturnNil(t *testing.T) {
	tests := []struct {
		name    string
		resp    llm.MockResponse
		answers []quiz.UserAnswer
		calls   int
	}{
		{"provider error", llm.MockResponse{Err: errors.New("quota exceeded")}, testAnswers, 1},
		{"malformed response", llm.MockResponse{Content: json.RawMessage(`not json`)}, testAnswers, 1},
		{"no answers", llm.MockResponse{Content: json.RawMessage(validReport)}, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp)
			svc := NewService(mock, DefaultConfig())
			if r := svc.Analyze(context.Background(), testQuestions, tt.answers); r != nil {
				t.Fatalf("expected nil report, got %+v", r)
			}
			if mock.CallCount() != tt.calls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.calls)
			}
		})
	}
}

func TestAnalyze_NoProvider(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	if r := svc.Analyze(context.Background(), testQuestions, testAnswers); r != nil {
		t.Fatalf("expected nil report, got %+v", r)
	}
}
