package timekeeper

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("invalid input")
	// ErrWrongMode indicates a start call for a mode that is not selected.
	ErrWrongMode = errors.New("mode not active")
)

// User-facing validation messages.
const (
	MsgCountdownInput = "enter a number of seconds"
	MsgTabataInput    = "enter numbers"
)

// ValidationError reports malformed numeric input at a start call. The
// engine state is untouched when one is returned.
type ValidationError struct {
	Field   string
	Input   string
	Message string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", err.Field, err.Input, err.Message)
}

// Is makes errors.Is(err, ErrValidation) succeed.
func (err *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
