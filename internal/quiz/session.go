package quiz

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examdrill/internal/catalog"
)

// FallbackHint is shown when the current question carries no hint.
const FallbackHint = "Analyze all options carefully. One is logically superior to others."

// Phase is the lifecycle phase of a session.
type Phase int

const (
	PhaseActive               Phase = iota // Answering questions
	PhaseAwaitingConfirmation              // Submit requested, waiting for confirm or cancel
	PhaseCompleted                         // Confirmed and scored
	PhaseAbandoned                         // Exited without submission
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseAwaitingConfirmation:
		return "awaiting_confirmation"
	case PhaseCompleted:
		return "completed"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseAbandoned
}

// TickEvent describes what a Tick changed.
type TickEvent int

const (
	TickNone                 TickEvent = iota // Clocks moved, nothing else
	TickAdvanced                              // Countdown expired and the session moved on
	TickAwaitingConfirmation                  // Countdown expired on the last question
)

// Settings are the engine's tunables.
type Settings struct {
	// QuestionsPerQuiz caps category and "all" attempts when the category
	// has no cap of its own.
	QuestionsPerQuiz int

	// ShowTimer enables the per-question countdown.
	ShowTimer bool

	// SubTopicLimit caps sub-topic attempts.
	SubTopicLimit int

	// DefaultTimeLimit is the countdown, in seconds, for questions without
	// their own limit.
	DefaultTimeLimit int
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	return Settings{
		QuestionsPerQuiz: 10,
		ShowTimer:        true,
		SubTopicLimit:    50,
		DefaultTimeLimit: catalog.DefaultTimeLimit,
	}
}

// Config identifies a session.
type Config struct {
	// ID is the session identifier. A UUID is generated when empty.
	ID string

	Category string
	SubTopic string
	Settings Settings
}

// Session is a single timed attempt over a frozen question sequence.
// It is not safe for concurrent use; one goroutine drives it and readers
// take a Snapshot.
type Session struct {
	id       string
	category string
	subTopic string
	settings Settings

	seq    []catalog.Question
	pos    int
	sheet  *AnswerSheet
	review map[int]bool

	elapsed   Clock
	countdown Countdown

	phase       Phase
	hintVisible bool
	result      *Result
}

// New creates an Active session at position 0 over seq. An empty seq yields
// ErrNoContent and no session. Question IDs must be unique.
func New(cfg Config, seq []catalog.Question) (*Session, error) {
	if len(seq) == 0 {
		return nil, ErrNoContent
	}
	seen := make(map[string]bool, len(seq))
	for i, q := range seq {
		if seen[q.ID] {
			return nil, fmt.Errorf("%w: %q at position %d", ErrDuplicateQuestion, q.ID, i)
		}
		seen[q.ID] = true
	}

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}

	frozen := make([]catalog.Question, len(seq))
	copy(frozen, seq)

	s := &Session{
		id:       id,
		category: cfg.Category,
		subTopic: cfg.SubTopic,
		settings: cfg.Settings,
		seq:      frozen,
		sheet:    NewAnswerSheet(),
		review:   make(map[int]bool),
		phase:    PhaseActive,
	}
	s.moveTo(0)
	return s, nil
}

// Start filters the catalog, freezes a shuffled sequence capped by
// ResolveLimit and creates the session. A nil rng uses a randomly seeded one.
func Start(c *catalog.Catalog, category, subTopic string, settings Settings, rng *rand.Rand) (*Session, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	cat, _ := c.Category(category)
	candidates := FilterPool(c.Questions, category, subTopic)
	seq := Freeze(rng, candidates, ResolveLimit(settings, cat, subTopic))
	return New(Config{Category: category, SubTopic: subTopic, Settings: settings}, seq)
}

func (s *Session) moveTo(pos int) {
	s.pos = pos
	s.hintVisible = false
	s.countdown.Reset(s.seq[pos].Limit(s.settings.DefaultTimeLimit))
}

func (s *Session) require(op string, phase Phase) error {
	if s.phase != phase {
		return &TransitionError{Op: op, Phase: s.phase}
	}
	return nil
}

// Tick advances the clocks by one second. The elapsed clock runs until the
// session is terminal; the countdown runs only while Active with the timer
// shown. Countdown expiry moves to the next question, or to
// AwaitingConfirmation on the last one.
func (s *Session) Tick() TickEvent {
	if s.phase.Terminal() {
		return TickNone
	}
	s.elapsed.Tick()

	if s.phase != PhaseActive || !s.settings.ShowTimer {
		return TickNone
	}
	if !s.countdown.Tick() {
		return TickNone
	}
	if s.pos < len(s.seq)-1 {
		s.moveTo(s.pos + 1)
		return TickAdvanced
	}
	s.phase = PhaseAwaitingConfirmation
	return TickAwaitingConfirmation
}

// Select records sel for the current question, replacing any earlier answer.
func (s *Session) Select(sel Selection) error {
	if err := s.require("select", PhaseActive); err != nil {
		return err
	}
	q := s.seq[s.pos]
	if sel != NoSelection && (sel < 0 || int(sel) >= len(q.Options)) {
		return ErrInvalidOption
	}
	s.sheet.Put(UserAnswer{
		QuestionID: q.ID,
		Selected:   sel,
		TimeTaken:  s.countdown.Used(),
	})
	return nil
}

// Advance moves to the next question, or requests submission on the last.
func (s *Session) Advance() error {
	if err := s.require("advance", PhaseActive); err != nil {
		return err
	}
	if s.pos < len(s.seq)-1 {
		s.moveTo(s.pos + 1)
		return nil
	}
	s.phase = PhaseAwaitingConfirmation
	return nil
}

// Retreat moves to the previous question. It is a no-op at the first one.
func (s *Session) Retreat() error {
	if err := s.require("retreat", PhaseActive); err != nil {
		return err
	}
	if s.pos > 0 {
		s.moveTo(s.pos - 1)
	}
	return nil
}

// Skip records NoSelection unless the question already has an answer, then
// advances.
func (s *Session) Skip() error {
	if err := s.require("skip", PhaseActive); err != nil {
		return err
	}
	if _, ok := s.sheet.Get(s.seq[s.pos].ID); !ok {
		if err := s.Select(NoSelection); err != nil {
			return err
		}
	}
	return s.Advance()
}

// ToggleReview flips the mark-for-review flag of the current position.
func (s *Session) ToggleReview() error {
	if err := s.require("toggle review", PhaseActive); err != nil {
		return err
	}
	if s.review[s.pos] {
		delete(s.review, s.pos)
	} else {
		s.review[s.pos] = true
	}
	return nil
}

// Jump moves to pos. An out-of-range pos returns a *RangeError and leaves
// the session untouched.
func (s *Session) Jump(pos int) error {
	if err := s.require("jump", PhaseActive); err != nil {
		return err
	}
	if pos < 0 || pos >= len(s.seq) {
		return &RangeError{Position: pos, Len: len(s.seq)}
	}
	if pos != s.pos {
		s.moveTo(pos)
	}
	return nil
}

// ToggleHint shows or hides the current question's hint.
func (s *Session) ToggleHint() error {
	if err := s.require("toggle hint", PhaseActive); err != nil {
		return err
	}
	s.hintVisible = !s.hintVisible
	return nil
}

// RequestSubmission asks for confirmation before scoring.
func (s *Session) RequestSubmission() error {
	if err := s.require("request submission", PhaseActive); err != nil {
		return err
	}
	s.phase = PhaseAwaitingConfirmation
	return nil
}

// CancelSubmission returns to answering.
func (s *Session) CancelSubmission() error {
	if err := s.require("cancel submission", PhaseAwaitingConfirmation); err != nil {
		return err
	}
	s.phase = PhaseActive
	return nil
}

// ConfirmSubmission completes the session and scores it.
func (s *Session) ConfirmSubmission(now time.Time) (*Result, error) {
	if s.phase == PhaseCompleted {
		return nil, ErrAlreadySubmitted
	}
	if err := s.require("confirm submission", PhaseAwaitingConfirmation); err != nil {
		return nil, err
	}
	s.phase = PhaseCompleted
	s.hintVisible = false
	s.result = Score(s.id, s.category, s.subTopic, s.seq, s.sheet, s.elapsed.Seconds(), now)
	return s.result, nil
}

// Abandon ends the session without a result.
func (s *Session) Abandon() error {
	if s.phase.Terminal() {
		return &TransitionError{Op: "abandon", Phase: s.phase}
	}
	s.phase = PhaseAbandoned
	s.hintVisible = false
	return nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Position returns the current index into the sequence.
func (s *Session) Position() int { return s.pos }

// Len returns the sequence length.
func (s *Session) Len() int { return len(s.seq) }

// Current returns the question at the current position.
func (s *Session) Current() catalog.Question { return s.seq[s.pos] }

// Questions returns a copy of the frozen sequence.
func (s *Session) Questions() []catalog.Question {
	out := make([]catalog.Question, len(s.seq))
	copy(out, s.seq)
	return out
}

// Answers returns a copy of the answer sheet.
func (s *Session) Answers() *AnswerSheet { return s.sheet.Clone() }

// AttemptedCount returns the number of questions with a real selection.
func (s *Session) AttemptedCount() int { return s.sheet.Attempted() }

// Result returns the scored result once the session is completed.
func (s *Session) Result() *Result { return s.result }

// HintText returns the current question's hint, or FallbackHint.
func (s *Session) HintText() string {
	if h := s.seq[s.pos].Hint; h != "" {
		return h
	}
	return FallbackHint
}
