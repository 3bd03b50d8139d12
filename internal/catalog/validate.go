package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog: %s", strings.Join(e.Problems, "; "))
}

// ErrInvalidQuestion is wrapped by ValidateQuestion failures.
var ErrInvalidQuestion = errors.New("invalid question")

// Validate checks catalog-wide invariants: unique IDs, known categories and
// well-formed questions.
func (c *Catalog) Validate() error {
	var problems []string

	cats := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		switch {
		case cat.ID == "":
			problems = append(problems, "category with empty id")
		case cat.ID == AllCategories:
			problems = append(problems, fmt.Sprintf("category id %q is reserved", AllCategories))
		case cats[cat.ID]:
			problems = append(problems, fmt.Sprintf("duplicate category %q", cat.ID))
		}
		if cat.MaxQuestions < 0 {
			problems = append(problems, fmt.Sprintf("category %q: negative maxQuestions", cat.ID))
		}
		cats[cat.ID] = true
	}

	ids := make(map[string]bool, len(c.Questions))
	for _, q := range c.Questions {
		if ids[q.ID] {
			problems = append(problems, fmt.Sprintf("duplicate question id %q", q.ID))
		}
		ids[q.ID] = true

		if err := ValidateQuestion(q); err != nil {
			problems = append(problems, err.Error())
		}
		if len(cats) > 0 && !cats[q.Category] {
			problems = append(problems, fmt.Sprintf("question %q: unknown category %q", q.ID, q.Category))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ValidateQuestion checks a single question in isolation.
func ValidateQuestion(q Question) error {
	switch {
	case q.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidQuestion)
	case strings.TrimSpace(q.Prompt) == "":
		return fmt.Errorf("%w %q: empty prompt", ErrInvalidQuestion, q.ID)
	case len(q.Options) < 2:
		return fmt.Errorf("%w %q: needs at least 2 options, has %d", ErrInvalidQuestion, q.ID, len(q.Options))
	case q.Correct < 0 || q.Correct >= len(q.Options):
		return fmt.Errorf("%w %q: correct index %d out of range", ErrInvalidQuestion, q.ID, q.Correct)
	case q.TimeLimit < 0:
		return fmt.Errorf("%w %q: negative time limit", ErrInvalidQuestion, q.ID)
	}
	return nil
}
