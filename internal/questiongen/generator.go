// Package questiongen generates exam questions with an LLM and turns them
// into catalog questions.
package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/llm"
)

// DefaultCount is the batch size when none is given.
const DefaultCount = 5

// ErrNoValidQuestions is returned when every generated question was
// rejected.
var ErrNoValidQuestions = errors.New("no valid questions generated")

// Request describes a generation batch.
type Request struct {
	Topic      string
	Count      int
	Difficulty catalog.Difficulty

	// Avoid lists prompts already in the bank.
	Avoid []string
}

// Generator produces catalog questions using an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Hint          string   `json:"hint"`
	Difficulty    string   `json:"difficulty"`
}

// Generate produces up to count questions about topic.
func (g *Generator) Generate(ctx context.Context, topic string, count int, difficulty catalog.Difficulty) ([]catalog.Question, error) {
	return g.GenerateRequest(ctx, Request{Topic: topic, Count: count, Difficulty: difficulty})
}

// GenerateRequest runs one batch. Questions failing validation, or
// duplicating a prompt in req.Avoid or earlier in the batch, are dropped.
func (g *Generator) GenerateRequest(ctx context.Context, req Request) ([]catalog.Question, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if req.Count <= 0 {
		req.Count = DefaultCount
	}
	if g.config.MaxCount > 0 && req.Count > g.config.MaxCount {
		req.Count = g.config.MaxCount
	}
	if req.Difficulty == "" {
		req.Difficulty = catalog.DifficultyMedium
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	lreq := llm.Ask(systemPrompt, buildUserMessage(req, g.config), BatchSchema)
	lreq.MaxTokens = g.config.MaxTokens
	lreq.Temperature = g.config.Temperature
	resp, err := g.provider.Generate(ctx, lreq)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	seen := make(map[string]bool, len(req.Avoid)+len(raw.Questions))
	for _, p := range req.Avoid {
		seen[normalize(p)] = true
	}

	out := make([]catalog.Question, 0, len(raw.Questions))
	for _, r := range raw.Questions {
		q := r.toQuestion(req)
		if verr := g.validate(q); verr != nil {
			log.Printf("questiongen: dropping question %q: %v", q.Prompt, verr)
			continue
		}
		key := normalize(q.Prompt)
		if seen[key] {
			log.Printf("questiongen: dropping duplicate %q", q.Prompt)
			continue
		}
		seen[key] = true
		out = append(out, q)
		if len(out) == req.Count {
			break
		}
	}

	if len(out) == 0 {
		return nil, ErrNoValidQuestions
	}
	return out, nil
}

func (g *Generator) validate(q catalog.Question) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}

func (r questionOutput) toQuestion(req Request) catalog.Question {
	diff := catalog.Difficulty(r.Difficulty)
	if diff == "" {
		diff = req.Difficulty
	}
	options := make([]string, len(r.Options))
	for i, o := range r.Options {
		options[i] = strings.TrimSpace(o)
	}
	return catalog.Question{
		ID:          "ai-" + uuid.NewString(),
		Category:    catalog.AIGeneratedCategory,
		SubTopic:    req.Topic,
		Prompt:      strings.TrimSpace(r.Question),
		Options:     options,
		Correct:     r.CorrectAnswer,
		Explanation: r.Explanation,
		Difficulty:  diff,
		Hint:        r.Hint,
	}
}

// AsCatalog wraps generated questions in a catalog that declares the
// generated category, ready to be saved and merged.
func AsCatalog(qs []catalog.Question) *catalog.Catalog {
	return &catalog.Catalog{
		Categories: []catalog.Category{{
			ID:          catalog.AIGeneratedCategory,
			Name:        "AI Generated",
			Description: "Questions generated on demand",
		}},
		Questions: qs,
	}
}
