// Package exam is the screen that runs a quiz session.
package exam

import (
	"errors"
	"fmt"
	"log"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/quiz"
	"github.com/abhisek/examdrill/internal/router"
	"github.com/abhisek/examdrill/internal/screen"
	"github.com/abhisek/examdrill/internal/screens/summary"
	"github.com/abhisek/examdrill/internal/ui/components"
	"github.com/abhisek/examdrill/internal/ui/layout"
)

// ExamScreen drives a quiz.Session from key presses and a 1-second tick.
type ExamScreen struct {
	deps     *screen.Deps
	title    string
	sess     *quiz.Session
	choice   components.MultiChoice
	pos      int
	jump     components.NumberInput
	jumping  bool
	quitting bool
	notice   string
	errMsg   string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.StatusProvider = (*ExamScreen)(nil)
var _ screen.BackInterceptor = (*ExamScreen)(nil)

// New starts a session over category (or catalog.AllCategories) and an
// optional sub-topic. An empty pool yields the "No content available" view.
func New(deps *screen.Deps, category, subTopic string) *ExamScreen {
	s := &ExamScreen{deps: deps, title: titleFor(deps.Catalog, category, subTopic)}

	sess, err := quiz.Start(deps.Catalog, category, subTopic, deps.Settings, nil)
	switch {
	case errors.Is(err, quiz.ErrNoContent):
		s.errMsg = "No content available"
	case err != nil:
		s.errMsg = err.Error()
	default:
		s.attach(sess)
	}
	return s
}

func newWithSession(deps *screen.Deps, sess *quiz.Session) *ExamScreen {
	s := &ExamScreen{deps: deps, title: "Quiz"}
	s.attach(sess)
	return s
}

func (s *ExamScreen) attach(sess *quiz.Session) {
	s.sess = sess
	s.pos = sess.Position()
	s.resetChoice()
}

func titleFor(c *catalog.Catalog, category, subTopic string) string {
	name := "All Categories"
	if cat, ok := c.Category(category); ok {
		name = cat.Name
	}
	if subTopic != "" {
		return name + " · " + subTopic
	}
	return name
}

func (s *ExamScreen) Init() tea.Cmd {
	if s.sess == nil {
		return nil
	}
	return tickCmd()
}

func (s *ExamScreen) Title() string {
	return s.title
}

// InterceptsBack keeps Esc inside the screen while a session is live.
func (s *ExamScreen) InterceptsBack() bool {
	return s.live()
}

func (s *ExamScreen) live() bool {
	return s.sess != nil && !s.sess.Phase().Terminal()
}

// Status shows the position and elapsed clock in the header.
func (s *ExamScreen) Status() string {
	if s.sess == nil {
		return ""
	}
	v := s.sess.Snapshot()
	return fmt.Sprintf("Q %d/%d  ◷ %s", v.Position+1, v.Total, layout.FormatClock(v.Elapsed))
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.sess == nil:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.quitting:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.sess.Phase() == quiz.PhaseAwaitingConfirmation:
		return []layout.KeyHint{
			{Key: "Y/Enter", Description: "Submit"},
			{Key: "N/Esc", Description: "Review answers"},
		}
	case s.jumping:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-6/Enter", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "S", Description: "Skip"},
		{Key: "M", Description: "Mark"},
		{Key: "?", Description: "Hint"},
		{Key: "G", Description: "Go to"},
		{Key: "F", Description: "Finish"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.jumping {
		var cmd tea.Cmd
		s.jump, cmd = s.jump.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ExamScreen) handleTick() (screen.Screen, tea.Cmd) {
	if !s.live() {
		return s, nil
	}
	switch s.sess.Tick() {
	case quiz.TickAdvanced:
		s.notice = "Time's up. Moved to the next question."
		s.sync()
	case quiz.TickAwaitingConfirmation:
		s.notice = "Time's up on the last question."
		s.jumping = false
	}
	return s, tickCmd()
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.sess == nil {
		return s, router.Back
	}
	if !s.live() {
		return s, nil
	}

	if s.quitting {
		switch key {
		case "y", "Y":
			s.quitting = false
			s.check("abandon", s.sess.Abandon())
			return s, router.Back
		case "n", "N", "esc":
			s.quitting = false
		}
		return s, nil
	}

	if s.sess.Phase() == quiz.PhaseAwaitingConfirmation {
		switch key {
		case "y", "Y", "enter":
			return s.submit()
		case "n", "N", "esc":
			s.check("cancel", s.sess.CancelSubmission())
			s.notice = ""
			s.sync()
		}
		return s, nil
	}

	if s.jumping {
		return s.handleJumpKey(msg)
	}

	s.notice = ""
	switch key {
	case "esc", "q":
		s.quitting = true
	case "up", "k":
		s.choice.Move(-1)
	case "down", "j":
		s.choice.Move(1)
	case "enter", "space":
		s.selectOption(s.choice.Cursor)
	case "1", "2", "3", "4", "5", "6":
		s.selectOption(int(key[0] - '1'))
	case "backspace", "x":
		s.check("clear", s.sess.Select(quiz.NoSelection))
		s.choice.Chosen = int(quiz.NoSelection)
	case "right", "l", "n":
		s.check("next", s.sess.Advance())
	case "left", "h", "p":
		s.check("previous", s.sess.Retreat())
	case "s":
		s.check("skip", s.sess.Skip())
	case "m":
		s.check("mark", s.sess.ToggleReview())
	case "?":
		s.check("hint", s.sess.ToggleHint())
	case "f":
		s.check("finish", s.sess.RequestSubmission())
	case "g":
		s.jumping = true
		s.jump = components.NewNumberInput(s.sess.Len())
		return s, s.jump.Init()
	}
	s.sync()
	return s, nil
}

func (s *ExamScreen) handleJumpKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.jumping = false
		return s, nil
	case "enter":
		n, ok := s.jump.Number()
		if !ok || s.sess.Jump(n-1) != nil {
			s.jump.Reject()
			return s, nil
		}
		s.jumping = false
		s.sync()
		return s, nil
	}
	var cmd tea.Cmd
	s.jump, cmd = s.jump.Update(msg)
	return s, cmd
}

func (s *ExamScreen) selectOption(i int) {
	if i < 0 || i >= len(s.sess.Current().Options) {
		return
	}
	if err := s.sess.Select(quiz.Selection(i)); err != nil {
		s.check("select", err)
		return
	}
	s.choice.Cursor = i
	s.choice.Chosen = i
}

func (s *ExamScreen) submit() (screen.Screen, tea.Cmd) {
	res, err := s.sess.ConfirmSubmission(s.deps.Clock())
	if err != nil {
		s.check("submit", err)
		return s, nil
	}
	next := summary.New(s.deps, res, s.sess.Questions())
	return s, router.Swap(next)
}

// sync rebuilds the option list when the position changed.
func (s *ExamScreen) sync() {
	if s.sess.Position() != s.pos {
		s.pos = s.sess.Position()
		s.resetChoice()
	}
}

func (s *ExamScreen) resetChoice() {
	chosen := int(quiz.NoSelection)
	if v := s.sess.Snapshot(); v.HasAnswer {
		chosen = int(v.Selected)
	}
	s.choice = components.NewMultiChoice(s.sess.Current().Options, chosen)
}

// check logs engine errors. Key bindings only offer legal moves, so an
// error here means the screen and engine disagree.
func (s *ExamScreen) check(op string, err error) {
	if err != nil {
		log.Printf("exam: %s: %v", op, err)
	}
}
