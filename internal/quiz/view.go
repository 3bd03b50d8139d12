package quiz

import "github.com/abhisek/examdrill/internal/catalog"

// NavStatus is the navigation-map state of one position.
type NavStatus int

const (
	NavUnvisited NavStatus = iota
	NavAnswered
	NavMarked
	NavSkipped
)

func (n NavStatus) String() string {
	switch n {
	case NavAnswered:
		return "answered"
	case NavMarked:
		return "marked"
	case NavSkipped:
		return "skipped"
	default:
		return "unvisited"
	}
}

// SessionView is a point-in-time copy of a session for rendering.
type SessionView struct {
	SessionID string
	Category  string
	SubTopic  string

	Phase    Phase
	Position int
	Total    int
	Question catalog.Question

	// Selected is the recorded selection for the current question;
	// HasAnswer is false when nothing was recorded.
	Selected  Selection
	HasAnswer bool
	Marked    bool

	Elapsed   int
	Remaining int
	Limit     int
	ShowTimer bool

	HintVisible bool
	Hint        string

	Attempted int
	Nav       []NavStatus
}

// IsLast reports whether the current position is the final one.
func (v SessionView) IsLast() bool { return v.Position == v.Total-1 }

// Snapshot returns a full copy of the observable session state.
func (s *Session) Snapshot() SessionView {
	q := s.seq[s.pos]
	v := SessionView{
		SessionID:   s.id,
		Category:    s.category,
		SubTopic:    s.subTopic,
		Phase:       s.phase,
		Position:    s.pos,
		Total:       len(s.seq),
		Question:    q,
		Selected:    NoSelection,
		Marked:      s.review[s.pos],
		Elapsed:     s.elapsed.Seconds(),
		Remaining:   s.countdown.Remaining(),
		Limit:       s.countdown.Limit(),
		ShowTimer:   s.settings.ShowTimer,
		HintVisible: s.hintVisible,
		Hint:        s.HintText(),
		Attempted:   s.sheet.Attempted(),
		Nav:         make([]NavStatus, len(s.seq)),
	}
	v.Question.Options = append([]string(nil), q.Options...)

	if a, ok := s.sheet.Get(q.ID); ok {
		v.Selected = a.Selected
		v.HasAnswer = true
	}

	for i, sq := range s.seq {
		a, ok := s.sheet.Get(sq.ID)
		switch {
		case ok && a.Selected.Answered():
			v.Nav[i] = NavAnswered
		case s.review[i]:
			v.Nav[i] = NavMarked
		case ok:
			v.Nav[i] = NavSkipped
		default:
			v.Nav[i] = NavUnvisited
		}
	}
	return v
}
