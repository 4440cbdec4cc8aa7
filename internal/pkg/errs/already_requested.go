package errs

import (
	"errors"
	"fmt"
)

var ErrAlreadyRequested = errors.New("already requested")

// AlreadyRequestedError is returned when an actor repeats a request that is
// still waiting for the other party.
type AlreadyRequestedError struct {
	What  string
	Actor string
}

func NewAlreadyRequestedError(what, actor string) *AlreadyRequestedError {
	return &AlreadyRequestedError{What: what, Actor: actor}
}

func (e *AlreadyRequestedError) Error() string {
	return fmt.Sprintf("%s: %s by %s is awaiting the other party", ErrAlreadyRequested, e.What, e.Actor)
}

func (e *AlreadyRequestedError) Unwrap() error {
	return ErrAlreadyRequested
}
