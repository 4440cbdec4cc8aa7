package request

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// Status is the coarse lifecycle of a Request.
//
//	Pending ──┬──> Accepted  (semi-terminal, may still be cancelled)
//	          └──> Rejected  (terminal)
type Status int

const (
	UnknownStatus Status = iota
	Pending
	Accepted
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "unknown",
		Pending:       "pending",
		Accepted:      "accepted",
		Rejected:      "rejected",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(s string) (Status, error) {
	for st, str := range getStatusStrings() {
		if st != UnknownStatus && str == s {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Accept transitions Pending to Accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return UnknownStatus, errs.NewInvalidTransitionError("request", s.String(), Accepted.String())
	}
	return Accepted, nil
}

// Reject transitions Pending to Rejected.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return UnknownStatus, errs.NewInvalidTransitionError("request", s.String(), Rejected.String())
	}
	return Rejected, nil
}

// require fails with InvalidTransition unless s equals want. op names the
// attempted operation in the error.
func (s Status) require(want Status, op string) error {
	if s != want {
		return errs.NewInvalidTransitionErrorWithCause("request", s.String(), op,
			fmt.Errorf("request must be %s", want))
	}
	return nil
}
