package reducer

import (
	"fmt"

	"github.com/jsphweid/chordtrainer/model"
	"github.com/pkg/errors"
)

var ErrMalformedAction = errors.New("malformed action")

// MalformedActionError names the action and payload field that failed
// validation. errors.Is(err, ErrMalformedAction) holds for every value.
type MalformedActionError struct {
	Type   model.ActionType
	Field  string
	Reason string
}

func (e *MalformedActionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s: %s", ErrMalformedAction, e.Type, e.Reason)
	}
	return fmt.Sprintf("%v: %s.%s: %s", ErrMalformedAction, e.Type, e.Field, e.Reason)
}

func (e *MalformedActionError) Unwrap() error {
	return ErrMalformedAction
}

func malformed(t model.ActionType, field, reason string) error {
	return &MalformedActionError{Type: t, Field: field, Reason: reason}
}
