package errs

import (
	"errors"
	"fmt"
)

var ErrNotAuthorized = errors.New("not authorized")

// NotAuthorizedError reports an actor that lacks the role an operation needs.
type NotAuthorizedError struct {
	Actor     string
	Operation string
	Required  string
}

func NewNotAuthorizedError(actor, operation, required string) *NotAuthorizedError {
	return &NotAuthorizedError{
		Actor:     actor,
		Operation: operation,
		Required:  required,
	}
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("%s: actor %s cannot %s, requires %s", ErrNotAuthorized, e.Actor, e.Operation, e.Required)
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}
