// Package analysis asks the configured LLM for a coaching report on a
// completed quiz. The report is advisory and never affects scoring.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/llm"
	"github.com/abhisek/examdrill/internal/quiz"
)

// Report is the narrative analysis of a completed quiz.
type Report struct {
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	Patterns            []string `json:"patterns"`
	TimeManagement      string   `json:"timeManagement"`
	ActionPlan          []string `json:"actionPlan"`
	MotivationalMessage string   `json:"motivationalMessage"`
}

// Performance is one answered question as presented to the model.
type Performance struct {
	Question  string `json:"question"`
	Category  string `json:"category"`
	SubTopic  string `json:"subTopic,omitempty"`
	Selected  int    `json:"selectedOption"`
	IsCorrect bool   `json:"isCorrect"`
	TimeTaken int    `json:"timeTaken"`
	TimeLimit int    `json:"timeLimit"`
}

// Config holds generation parameters for the analysis request.
type Config struct {
	MaxTokens   int
	Temperature float64

	// DefaultTimeLimit is reported for questions without their own limit.
	DefaultTimeLimit int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        1024,
		Temperature:      0.4,
		DefaultTimeLimit: catalog.DefaultTimeLimit,
	}
}

// Service produces analysis reports.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an analysis service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// BuildPerformance joins answers with their questions. Answers whose
// question is unknown are dropped.
func BuildPerformance(questions []catalog.Question, answers []quiz.UserAnswer, defaultLimit int) []Performance {
	byID := make(map[string]catalog.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	rows := make([]Performance, 0, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		rows = append(rows, Performance{
			Question:  q.Prompt,
			Category:  q.Category,
			SubTopic:  q.SubTopic,
			Selected:  int(a.Selected),
			IsCorrect: a.Selected.Answered() && q.IsCorrect(int(a.Selected)),
			TimeTaken: a.TimeTaken,
			TimeLimit: q.Limit(defaultLimit),
		})
	}
	return rows
}

// Analyze returns a report, or nil when the provider fails or returns
// something unusable. Failures are logged and never returned.
func (s *Service) Analyze(ctx context.Context, questions []catalog.Question, answers []quiz.UserAnswer) *Report {
	report, err := s.analyze(ctx, questions, answers)
	if err != nil {
		log.Printf("analysis: %v", err)
		return nil
	}
	return report
}

func (s *Service) analyze(ctx context.Context, questions []catalog.Question, answers []quiz.UserAnswer) (*Report, error) {
	if s == nil || s.provider == nil {
		return nil, llm.ErrNotConfigured
	}

	rows := BuildPerformance(questions, answers, s.cfg.DefaultTimeLimit)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no answers to analyze")
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeAnalysis)

	userMsg, err := buildUserMessage(rows)
	if err != nil {
		return nil, fmt.Errorf("build analysis prompt: %w", err)
	}

	req := llm.Ask(systemPrompt, userMsg, ReportSchema)
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature
	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analysis request: %w", err)
	}

	var report Report
	if err := json.Unmarshal(resp.Content, &report); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	return &report, nil
}
