package analysis

import "github.com/abhisek/examdrill/internal/llm"

func stringList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

// ReportSchema defines the JSON schema for performance analysis responses.
var ReportSchema = &llm.Schema{
	Name:        "performance-analysis",
	Description: "Coaching report on a completed practice exam",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"strengths":  stringList("Topics or skills the student handled well"),
			"weaknesses": stringList("Topics or skills that need more practice"),
			"patterns":   stringList("Recurring behaviours across answers, such as rushing or skipping"),
			"timeManagement": map[string]any{
				"type":        "string",
				"description": "One or two sentences on pacing against the per-question time limits",
			},
			"actionPlan": stringList("Concrete next steps, most important first"),
			"motivationalMessage": map[string]any{
				"type":        "string",
				"description": "A short encouraging closing line",
			},
		},
		"required": []any{
			"strengths", "weaknesses", "patterns",
			"timeManagement", "actionPlan", "motivationalMessage",
		},
	},
}
