package catalog

// DefaultTimeLimit is the per-question countdown, in seconds, used when a
// question does not carry its own limit.
const DefaultTimeLimit = 30

// AllCategories is the category identifier that selects the whole pool.
const AllCategories = "all"

// AIGeneratedCategory is the category assigned to generated questions.
const AIGeneratedCategory = "ai_generated"

// Difficulty is a free-form difficulty label ("Easy", "Medium", "Hard").
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Question is a single multiple-choice item. Questions are treated as
// immutable once loaded.
type Question struct {
	ID          string     `json:"id" yaml:"id"`
	Category    string     `json:"category" yaml:"category"`
	SubTopic    string     `json:"subTopic,omitempty" yaml:"subTopic,omitempty"`
	Prompt      string     `json:"question" yaml:"question"`
	Options     []string   `json:"options" yaml:"options"`
	Correct     int        `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation string     `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Hint        string     `json:"hint,omitempty" yaml:"hint,omitempty"`

	// TimeLimit is the countdown in seconds. Zero means "not set".
	TimeLimit int `json:"timeLimit,omitempty" yaml:"timeLimit,omitempty"`
}

// Limit returns the question's countdown in seconds, falling back to
// fallback (or DefaultTimeLimit when fallback is not positive).
func (q Question) Limit(fallback int) int {
	if q.TimeLimit > 0 {
		return q.TimeLimit
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultTimeLimit
}

// IsCorrect reports whether option is the correct index.
func (q Question) IsCorrect(option int) bool {
	return option == q.Correct
}

// Label returns the sub-topic if set, otherwise the category.
func (q Question) Label() string {
	if q.SubTopic != "" {
		return q.SubTopic
	}
	return q.Category
}

// Category describes a group of questions.
type Category struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// MaxQuestions caps category-scoped attempts. Zero defers to settings.
	MaxQuestions int `json:"maxQuestions,omitempty" yaml:"maxQuestions,omitempty"`
}
