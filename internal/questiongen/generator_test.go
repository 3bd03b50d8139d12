package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/llm"
)

const batchJSON = `{"questions": [
	{"question": "Which body regulates banks in Nepal?", "options": ["Nepal Rastra Bank", "SEBON", "Beema Samiti", "NEPSE"], "correctAnswer": 0, "explanation": "NRB is the central bank.", "difficulty": "Easy", "hint": "Central bank"},
	{"question": "Repeated option", "options": ["A", "a ", "B"], "correctAnswer": 2, "explanation": "x", "difficulty": "Medium"},
	{"question": "Index out of range", "options": ["A", "B"], "correctAnswer": 5, "explanation": "x", "difficulty": "Medium"},
	{"question": "  which body regulates   BANKS in Nepal? ", "options": ["A", "B"], "correctAnswer": 0, "explanation": "dup", "difficulty": "Easy"},
	{"question": "What is the full form of SLR?", "options": ["Statutory Liquidity Ratio", "Standard Lending Rate"], "correctAnswer": 0, "explanation": "SLR is a reserve rule.", "difficulty": ""}
]}`

func TestGenerate_FiltersInvalidAndDuplicates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(batchJSON)})
	g := New(mock, DefaultConfig())

	qs, err := g.Generate(context.Background(), "Banking", 5, catalog.DifficultyHard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 accepted questions, got %d", len(qs))
	}

	for _, q := range qs {
		if q.Category != catalog.AIGeneratedCategory {
			t.Errorf("category = %q", q.Category)
		}
		if q.SubTopic != "Banking" {
			t.Errorf("subTopic = %q", q.SubTopic)
		}
		if !strings.HasPrefix(q.ID, "ai-") {
			t.Errorf("id = %q", q.ID)
		}
		if err := catalog.ValidateQuestion(q); err != nil {
			t.Errorf("generated question invalid: %v", err)
		}
	}
	if qs[0].ID == qs[1].ID {
		t.Error("expected unique IDs")
	}
	if qs[0].Difficulty != catalog.DifficultyEasy || qs[0].Hint != "Central bank" {
		t.Errorf("first question = %+v", qs[0])
	}
	if qs[1].Difficulty != catalog.DifficultyHard {
		t.Errorf("missing difficulty should fall back to request, got %q", qs[1].Difficulty)
	}

	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Generate 5 high-quality Loksewa/Nepal Banking style MCQs about Banking at Hard level.") {
		t.Errorf("unexpected prompt:\n%s", msg)
	}
	if mock.Calls[0].Schema != BatchSchema {
		t.Error("expected BatchSchema on request")
	}
}

func TestGenerateRequest_Defaults(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(batchJSON)})
	cfg := DefaultConfig()
	cfg.MaxCount = 1
	g := New(mock, cfg)

	qs, err := g.GenerateRequest(context.Background(), Request{
		Topic: "Banking",
		Count: 10,
		Avoid: []string{"Which body regulates banks in Nepal?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 1 || !strings.HasPrefix(qs[0].Prompt, "What is the full form of SLR") {
		t.Fatalf("unexpected result: %+v", qs)
	}

	msg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"Generate 1 ", "at Medium level", "1. Which body regulates banks in Nepal?"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		resp  llm.MockResponse
		want  error
		calls int
	}{
		{"empty topic", "  ", llm.MockResponse{}, nil, 0},
		{"provider failure", "GK", llm.MockResponse{Err: &llm.ErrRateLimit{}}, &llm.ErrRateLimit{}, 1},
		{"malformed", "GK", llm.MockResponse{Content: json.RawMessage(`[`)}, nil, 1},
		{"all rejected", "GK", llm.MockResponse{Content: json.RawMessage(`{"questions":[{"question":"Q","options":["only"],"correctAnswer":0,"explanation":"x","difficulty":"Easy"}]}`)}, ErrNoValidQuestions, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp)
			_, err := New(mock, DefaultConfig()).Generate(context.Background(), tt.topic, 3, "")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want == ErrNoValidQuestions && !errors.Is(err, ErrNoValidQuestions) {
				t.Errorf("expected ErrNoValidQuestions, got %v", err)
			}
			if _, ok := tt.want.(*llm.ErrRateLimit); ok {
				var rl *llm.ErrRateLimit
				if !errors.As(err, &rl) {
					t.Errorf("expected wrapped ErrRateLimit, got %v", err)
				}
			}
			if mock.CallCount() != tt.calls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.calls)
			}
		})
	}
}

func TestValidators(t *testing.T) {
	base := catalog.Question{
		ID:       "ai-1",
		Category: catalog.AIGeneratedCategory,
		Prompt:   "Capital of Nepal?",
		Options:  []string{"Kathmandu", "Pokhara"},
	}

	tests := []struct {
		name      string
		mutate    func(q *catalog.Question)
		validator string
	}{
		{"valid", func(q *catalog.Question) {}, ""},
		{"empty prompt", func(q *catalog.Question) { q.Prompt = " " }, "structural"},
		{"long prompt", func(q *catalog.Question) { q.Prompt = strings.Repeat("a", 501) }, "structural"},
		{"single option", func(q *catalog.Question) { q.Options = []string{"x"} }, "structural"},
		{"blank option", func(q *catalog.Question) { q.Options = []string{"x", "  "} }, "options"},
		{"repeated option", func(q *catalog.Question) { q.Options = []string{"Kathmandu", "KATHMANDU"} }, "options"},
	}
	validators := DefaultConfig().Validators
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := base
			q.Options = append([]string(nil), base.Options...)
			tt.mutate(&q)

			var got *ValidationError
			for _, v := range validators {
				if got = v.Validate(q); got != nil {
					break
				}
			}
			if tt.validator == "" {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if got == nil || got.Validator != tt.validator {
				t.Fatalf("expected %s failure, got %v", tt.validator, got)
			}
		})
	}
}

func TestBuildDedup(t *testing.T) {
	if got := buildDedup(nil, 3); got != "None" {
		t.Errorf("got %q, want None", got)
	}
	got := buildDedup([]string{"a", "b", "c", "d"}, 2)
	if got != "1. c\n2. d" {
		t.Errorf("got %q", got)
	}
}

func TestAsCatalog(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(batchJSON)})
	qs, err := New(mock, DefaultConfig()).Generate(context.Background(), "Banking", 5, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := AsCatalog(qs)
	if err := c.Validate(); err != nil {
		t.Fatalf("generated catalog invalid: %v", err)
	}
	merged, err := catalog.Default().Merge(c)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged.CountByCategory()[catalog.AIGeneratedCategory] != 2 {
		t.Errorf("expected 2 generated questions after merge")
	}
}
