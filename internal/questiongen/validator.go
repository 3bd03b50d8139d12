package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/examdrill/internal/catalog"
)

// Validator checks a generated question before it is accepted.
type Validator interface {
	Name() string
	Validate(q catalog.Question) *ValidationError
}

// ValidationError describes why a question was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator applies the catalog rules and length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q catalog.Question) *ValidationError {
	if err := catalog.ValidateQuestion(q); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if len(q.Prompt) > 500 {
		return &ValidationError{Validator: v.Name(), Message: "question exceeds 500 characters"}
	}
	if len(q.Explanation) > 1000 {
		return &ValidationError{Validator: v.Name(), Message: "explanation exceeds 1000 characters"}
	}
	return nil
}

// OptionsValidator rejects blank or repeated options.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q catalog.Question) *ValidationError {
	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		key := normalize(opt)
		if key == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %d is empty", i)}
		}
		if seen[key] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %q is repeated", opt)}
		}
		seen[key] = true
	}
	return nil
}

// normalize folds case and whitespace for comparisons.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
