package generalorder

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// Status represents the lifecycle state of a general order.
//
// State transitions:
//
//	New ──┬──> Claimed ──┬──> Matched ──> Completed
//	      │              └───────────────────^
//	      ├──> Matched
//	      └──> Cancelled
//
// New orders are visible to every traveler. The first traveler to claim wins.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// New is the initial status; the order is broadcast to all travelers.
	New

	// Matched means a Request referencing the order was created.
	Matched

	// Claimed means a traveler took the order.
	Claimed

	// Completed is final.
	Completed

	// Cancelled is final. Only the creator cancels, and only while New.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "unknown",
		New:           "new",
		Matched:       "matched",
		Claimed:       "claimed",
		Completed:     "completed",
		Cancelled:     "cancelled",
	}
}

// String returns the persisted name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStatus converts a persisted name back into a Status.
func ParseStatus(s string) (Status, error) {
	for st, str := range getStatusStrings() {
		if st != UnknownStatus && str == s {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s < New || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Claim transitions New to Claimed.
func (s Status) Claim() (Status, error) {
	if s != New {
		return UnknownStatus, errs.NewInvalidTransitionError("general order", s.String(), Claimed.String())
	}
	return Claimed, nil
}

// Match transitions New or Claimed to Matched.
func (s Status) Match() (Status, error) {
	if s != New && s != Claimed {
		return UnknownStatus, errs.NewInvalidTransitionError("general order", s.String(), Matched.String())
	}
	return Matched, nil
}

// Complete transitions Claimed or Matched to Completed.
func (s Status) Complete() (Status, error) {
	if s != Claimed && s != Matched {
		return UnknownStatus, errs.NewInvalidTransitionError("general order", s.String(), Completed.String())
	}
	return Completed, nil
}

// Cancel transitions New to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != New {
		return UnknownStatus, errs.NewInvalidTransitionError("general order", s.String(), Cancelled.String())
	}
	return Cancelled, nil
}
