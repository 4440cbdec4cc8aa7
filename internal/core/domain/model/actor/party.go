package actor

import (
	"strings"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

// Party is an actor together with the roles it holds for a single record.
// It is resolved once per operation and passed to every guarded method.
type Party struct {
	id    kernel.UUID
	roles map[Role]struct{}
}

// NewParty builds a party with an explicit role set. Unknown roles are ignored.
func NewParty(id kernel.UUID, roles ...Role) Party {
	p := Party{id: id, roles: make(map[Role]struct{}, len(roles))}
	for _, r := range roles {
		if r.Validate() == nil {
			p.roles[r] = struct{}{}
		}
	}
	return p
}

// Resolve derives the roles of actorID on a record owned by senderID and
// travelerID. travelerID may be the zero UUID when no traveler is known yet.
func Resolve(actorID kernel.UUID, isAdmin bool, senderID, travelerID kernel.UUID) Party {
	roles := make([]Role, 0, 3)
	if !senderID.IsZero() && actorID.IsEqual(senderID) {
		roles = append(roles, Sender)
	}
	if !travelerID.IsZero() && actorID.IsEqual(travelerID) {
		roles = append(roles, Traveler)
	}
	if isAdmin {
		roles = append(roles, Admin)
	}
	return NewParty(actorID, roles...)
}

func (p Party) ID() kernel.UUID {
	return p.id
}

func (p Party) Has(role Role) bool {
	_, ok := p.roles[role]
	return ok
}

// Require returns a NotAuthorizedError unless the party holds at least one of
// roles.
func (p Party) Require(operation string, roles ...Role) error {
	for _, r := range roles {
		if p.Has(r) {
			return nil
		}
	}

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	return errs.NewNotAuthorizedError(p.id.String(), operation, strings.Join(names, " or "))
}

// Side returns Sender or Traveler for a party that is one side of a
// bilateral protocol. When it holds neither, Unknown is returned.
func (p Party) Side() Role {
	switch {
	case p.Has(Sender):
		return Sender
	case p.Has(Traveler):
		return Traveler
	default:
		return Unknown
	}
}
