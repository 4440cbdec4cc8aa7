package actor

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// Role is the capability an actor holds with respect to one record.
type Role int

const (
	// Unknown catches uninitialized roles.
	Unknown Role = iota

	// Sender owns the Request and the shipment details.
	Sender

	// Traveler owns the Trip the Request was made against, or has claimed a
	// GeneralOrder.
	Traveler

	// Admin confirms payments and may act as the traveler on item acceptance.
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Unknown:  "unknown",
		Sender:   "sender",
		Traveler: "traveler",
		Admin:    "admin",
	}
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

func (r Role) Validate() error {
	if r == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}
