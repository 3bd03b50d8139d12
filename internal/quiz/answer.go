package quiz

// Selection is the option index chosen for a question, or NoSelection for an
// explicit skip.
type Selection int

// NoSelection records that the question was skipped.
const NoSelection Selection = -1

// Answered reports whether s names a real option.
func (s Selection) Answered() bool { return s >= 0 }

// UserAnswer is the latest response recorded for one question.
type UserAnswer struct {
	QuestionID string    `json:"questionId"`
	Selected   Selection `json:"selectedOption"`

	// TimeTaken is the countdown time used, in seconds, when the selection
	// was made.
	TimeTaken int `json:"timeTaken"`
}

// AnswerSheet holds at most one answer per question ID.
type AnswerSheet struct {
	answers map[string]UserAnswer
}

// NewAnswerSheet returns an empty sheet.
func NewAnswerSheet() *AnswerSheet {
	return &AnswerSheet{answers: make(map[string]UserAnswer)}
}

// Put inserts or replaces the answer for a.QuestionID.
func (s *AnswerSheet) Put(a UserAnswer) {
	if s.answers == nil {
		s.answers = make(map[string]UserAnswer)
	}
	s.answers[a.QuestionID] = a
}

// Get returns the answer recorded for questionID.
func (s *AnswerSheet) Get(questionID string) (UserAnswer, bool) {
	a, ok := s.answers[questionID]
	return a, ok
}

// Len returns the number of recorded answers, skips included.
func (s *AnswerSheet) Len() int { return len(s.answers) }

// Attempted returns the number of answers with a real selection.
func (s *AnswerSheet) Attempted() int {
	n := 0
	for _, a := range s.answers {
		if a.Selected.Answered() {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (s *AnswerSheet) Clone() *AnswerSheet {
	c := NewAnswerSheet()
	for k, v := range s.answers {
		c.answers[k] = v
	}
	return c
}
