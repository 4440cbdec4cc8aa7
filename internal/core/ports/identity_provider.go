package ports

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
)

// IdentityProvider answers questions about authenticated actors. Sender and
// traveler roles come from the records themselves; only the admin flag is
// held externally.
type IdentityProvider interface {
	IsAdmin(ctx context.Context, actorID kernel.UUID) (bool, error)
}
