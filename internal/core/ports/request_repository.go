package ports

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
)

// RequestRepository persists requests with optimistic concurrency. Update
// and Delete succeed only when the stored version equals the aggregate's
// version and return an errs.ConflictError otherwise.
type RequestRepository interface {
	Add(ctx context.Context, aggregate *request.Request) error

	Update(ctx context.Context, aggregate *request.Request) error

	Delete(ctx context.Context, aggregate *request.Request) error

	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// GetAwaitingTrackingReconciliation returns accepted requests still at
	// waiting_approval, oldest first.
	GetAwaitingTrackingReconciliation(ctx context.Context, limit int) ([]*request.Request, error)
}
