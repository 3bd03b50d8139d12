package questiongen

import "github.com/abhisek/examdrill/internal/llm"

// BatchSchema defines the JSON schema for a batch of generated questions.
// The array is wrapped in an object because tool-based structured output
// requires an object root.
var BatchSchema = &llm.Schema{
	Name:        "exam-questions",
	Description: "A batch of multiple choice exam questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, self-contained",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    2,
							"maxItems":    6,
							"description": "Answer options. Exactly one is correct.",
						},
						"correctAnswer": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "A nudge that does not give the answer away",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"Easy", "Medium", "Hard"},
						},
					},
					"required": []any{"question", "options", "correctAnswer", "explanation", "difficulty"},
				},
			},
		},
		"required": []any{"questions"},
	},
}
