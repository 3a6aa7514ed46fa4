package payload

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTypeName = errors.New("empty payload type name")
	ErrNoStateStore  = errors.New("no state store configured")
)

// TransitionError reports a lifecycle change the transition table does
// not allow.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("no transition from %q to %q", e.From, e.To)
}

// IsTransitionError reports whether err is a *TransitionError.
func IsTransitionError(err error) bool {
	var e *TransitionError
	return errors.As(err, &e)
}
