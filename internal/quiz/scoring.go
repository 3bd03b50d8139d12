package quiz

import (
	"context"
	"time"

	"github.com/abhisek/examdrill/internal/catalog"
)

// PointsPerCorrect is the score awarded for each correct answer.
const PointsPerCorrect = 2

// Result is the immutable report produced when a session is confirmed.
type Result struct {
	SessionID      string       `json:"sessionId"`
	Category       string       `json:"category"`
	SubTopic       string       `json:"subTopic,omitempty"`
	Score          int          `json:"score"`
	TotalQuestions int          `json:"totalQuestions"`
	CorrectCount   int          `json:"correctCount"`
	WrongCount     int          `json:"wrongCount"`
	SkippedCount   int          `json:"skippedCount"`
	TimeSpent      int          `json:"timeSpent"`
	CompletedAt    time.Time    `json:"completedAt"`
	Answers        []UserAnswer `json:"answers"`
}

// Accuracy returns the percentage of questions answered correctly.
func (r *Result) Accuracy() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(r.TotalQuestions) * 100
}

// MaxScore returns the score of a perfect attempt.
func (r *Result) MaxScore() int { return r.TotalQuestions * PointsPerCorrect }

// ResultSink receives completed results, e.g. for persistence.
type ResultSink interface {
	SaveResult(ctx context.Context, r *Result) error
}

// Score classifies every question in seq exactly once. A question without an
// answer, or answered with NoSelection, is skipped; otherwise it is correct or
// wrong. elapsed becomes TimeSpent.
func Score(sessionID, category, subTopic string, seq []catalog.Question, sheet *AnswerSheet, elapsed int, now time.Time) *Result {
	r := &Result{
		SessionID:      sessionID,
		Category:       category,
		SubTopic:       subTopic,
		TotalQuestions: len(seq),
		TimeSpent:      elapsed,
		CompletedAt:    now,
		Answers:        make([]UserAnswer, 0, sheet.Len()),
	}

	for _, q := range seq {
		a, ok := sheet.Get(q.ID)
		if ok {
			r.Answers = append(r.Answers, a)
		}
		switch {
		case !ok || !a.Selected.Answered():
			r.SkippedCount++
		case q.IsCorrect(int(a.Selected)):
			r.CorrectCount++
		default:
			r.WrongCount++
		}
	}

	r.Score = r.CorrectCount * PointsPerCorrect
	return r
}
