package analysis

import (
	"bytes"
	"encoding/json"
	"text/template"
)

const systemPrompt = `You are an experienced coach preparing students for Nepal public service (Loksewa) and banking exams. You review a finished practice test and give honest, specific feedback.

Instructions:
- Base every point on the answer data. Do not invent topics that were not tested.
- A selectedOption of -1 means the student skipped the question.
- timeTaken is in seconds. Compare it with timeLimit when judging pacing.
- Keep each list item to one sentence.`

var userTemplate = template.Must(template.New("analysis").Parse(`Analyze these results for a Nepal exam student.

Attempted {{.Attempted}} of {{.Total}} questions, {{.Correct}} correct.

Answers:
{{.JSON}}`))

type promptData struct {
	Total     int
	Attempted int
	Correct   int
	JSON      string
}

func buildUserMessage(rows []Performance) (string, error) {
	raw, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}

	d := promptData{Total: len(rows), JSON: string(raw)}
	for _, r := range rows {
		if r.Selected >= 0 {
			d.Attempted++
		}
		if r.IsCorrect {
			d.Correct++
		}
	}

	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
