package quiz

import (
	"math/rand/v2"

	"github.com/abhisek/examdrill/internal/catalog"
)

// FilterPool returns the questions of category, or the whole pool when
// category is catalog.AllCategories. A non-empty subTopic additionally
// requires an exact sub-topic match. The pool is never modified and an
// empty result is not an error.
func FilterPool(pool []catalog.Question, category, subTopic string) []catalog.Question {
	var out []catalog.Question
	for _, q := range pool {
		if category != catalog.AllCategories && q.Category != category {
			continue
		}
		if subTopic != "" && q.SubTopic != subTopic {
			continue
		}
		out = append(out, q)
	}
	return out
}

// ResolveLimit returns the maximum number of questions for an attempt.
// Sub-topic attempts use SubTopicLimit; otherwise the category's own cap wins
// over QuestionsPerQuiz.
func ResolveLimit(s Settings, cat catalog.Category, subTopic string) int {
	if subTopic != "" {
		return s.SubTopicLimit
	}
	if cat.MaxQuestions > 0 {
		return cat.MaxQuestions
	}
	return s.QuestionsPerQuiz
}

// Shuffle returns a uniformly shuffled copy of qs (Fisher-Yates).
func Shuffle(rng *rand.Rand, qs []catalog.Question) []catalog.Question {
	out := make([]catalog.Question, len(qs))
	copy(out, qs)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Freeze shuffles the candidates and keeps the first limit of them. A limit
// of zero or less keeps everything.
func Freeze(rng *rand.Rand, candidates []catalog.Question, limit int) []catalog.Question {
	seq := Shuffle(rng, candidates)
	if limit > 0 && len(seq) > limit {
		seq = seq[:limit]
	}
	return seq
}
