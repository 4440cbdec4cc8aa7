package kernel

import (
	"errors"
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrRouteIsNotConstructed = errs.NewValueIsRequiredError("route must be created via NewRoute")

// Route is an origin/destination pair of country names or codes. Values are
// trimmed; comparison is case-insensitive.
//
// Example:
//
//	route, err := kernel.NewRoute("Spain", "Armenia")
//	route.Origin()      // "Spain"
//	route.String()      // "Spain -> Armenia"
type Route struct { //nolint:recvcheck //using for validation
	origin      string
	destination string
	guard       guard.ConstructorGuard
}

func NewRoute(origin, destination string) (Route, error) {
	r := Route{guard: guard.NewConstructorGuard()}

	if err := errors.Join(r.setOrigin(origin), r.setDestination(destination)); err != nil {
		return Route{}, err
	}

	if strings.EqualFold(r.origin, r.destination) {
		return Route{}, errs.NewValueIsInvalidErrorWithCause(
			"route", fmt.Errorf("origin and destination are both %s", r.origin))
	}

	return r, nil
}

func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r Route) Origin() string {
	return r.origin
}

func (r Route) Destination() string {
	return r.destination
}

func (r Route) String() string {
	return fmt.Sprintf("%s -> %s", r.origin, r.destination)
}

func (r *Route) setOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return errs.NewValueIsRequiredError("origin")
	}
	r.origin = origin
	return nil
}

func (r *Route) setDestination(destination string) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	r.destination = destination
	return nil
}
