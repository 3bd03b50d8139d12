package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContent is returned when the filtered question set is empty. It is
	// a defined outcome, not a failure: no session exists and nothing is scored.
	ErrNoContent = errors.New("no content available")

	// ErrOutOfRange is matched by RangeError.
	ErrOutOfRange = errors.New("position out of range")

	// ErrIllegalTransition is matched by TransitionError.
	ErrIllegalTransition = errors.New("illegal transition")

	// ErrAlreadySubmitted is returned when a completed session is confirmed again.
	ErrAlreadySubmitted = errors.New("session already submitted")

	// ErrInvalidOption is returned when a selection does not name an option of
	// the current question.
	ErrInvalidOption = errors.New("invalid option")

	// ErrDuplicateQuestion is returned by New when two questions in the
	// sequence share an ID. Answers are keyed by question ID.
	ErrDuplicateQuestion = errors.New("duplicate question id")
)

// RangeError reports a jump to a position outside the sequence.
type RangeError struct {
	Position int
	Len      int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("jump to %d: %v (0..%d)", e.Position, ErrOutOfRange, e.Len-1)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// TransitionError reports an operation attempted in a phase that does not
// allow it.
type TransitionError struct {
	Op    string
	Phase Phase
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %v in phase %s", e.Op, ErrIllegalTransition, e.Phase)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }
