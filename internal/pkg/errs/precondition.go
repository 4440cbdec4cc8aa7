package errs

import (
	"errors"
	"fmt"
)

// Preconditions checked inside tracking transitions. Each one has its own
// sentinel so callers can tell the user what is missing.
var (
	ErrPaymentRequired    = errors.New("payment is required")
	ErrInspectionRequired = errors.New("inspection photos are required")
	ErrDeliveryRequired   = errors.New("delivery is required")
)

// PreconditionError reports a transition blocked by a missing prerequisite.
// Unwrap returns one of ErrPaymentRequired, ErrInspectionRequired or
// ErrDeliveryRequired.
type PreconditionError struct {
	Kind   error
	Target string
	Detail string
}

func NewPaymentRequiredError(target, detail string) *PreconditionError {
	return &PreconditionError{Kind: ErrPaymentRequired, Target: target, Detail: detail}
}

func NewInspectionRequiredError(target, detail string) *PreconditionError {
	return &PreconditionError{Kind: ErrInspectionRequired, Target: target, Detail: detail}
}

func NewDeliveryRequiredError(target, detail string) *PreconditionError {
	return &PreconditionError{Kind: ErrDeliveryRequired, Target: target, Detail: detail}
}

func (e *PreconditionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s before %s: %s", e.Kind, e.Target, e.Detail)
	}
	return fmt.Sprintf("%s before %s", e.Kind, e.Target)
}

func (e *PreconditionError) Unwrap() error {
	return e.Kind
}
