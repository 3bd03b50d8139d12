package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerRecord is the stored form of one answer.
type AnswerRecord struct {
	QuestionID string `json:"questionId"`
	Selected   int    `json:"selectedOption"`
	TimeTaken  int    `json:"timeTaken"`
}

// QuizResult stores one confirmed quiz attempt.
type QuizResult struct {
	ent.Schema
}

func (QuizResult) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizResult) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Unique().
			Immutable(),
		field.String("category").
			NotEmpty(),
		field.String("sub_topic").
			Default(""),
		field.Int("score"),
		field.Int("total_questions"),
		field.Int("correct_count"),
		field.Int("wrong_count"),
		field.Int("skipped_count"),
		field.Int("time_spent").
			Comment("Elapsed seconds from start to submission"),
		field.Time("completed_at"),
		field.JSON("answers", []AnswerRecord{}).
			Comment("Latest answer per question, skips included"),
	}
}

func (QuizResult) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("category"),
	}
}
