package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple choice questions for Nepal public service (Loksewa) and banking entrance exams.

Rules:
- Every question has 4 options where exactly one is correct.
- Distractors must be plausible, not obviously wrong.
- Facts must be accurate as of your knowledge. Prefer settled facts over recent events.
- correctAnswer is the zero-based index into options.
- Keep questions short and self-contained. Use plain text.
- Do not repeat any question from the "already in the bank" list.`

// buildUserMessage constructs the user message for a generation request.
func buildUserMessage(req Request, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d high-quality Loksewa/Nepal Banking style MCQs about %s at %s level.\n",
		req.Count, req.Topic, req.Difficulty)

	b.WriteString("\nAlready in the bank:\n")
	b.WriteString(buildDedup(req.Avoid, cfg.MaxPriorQuestions))

	return b.String()
}

// buildDedup lists the most recent prompts to avoid, or "None".
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
