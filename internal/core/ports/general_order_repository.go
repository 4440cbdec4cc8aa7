package ports

import (
	"context"

	"parcel/internal/core/domain/model/generalorder"
	"parcel/internal/core/domain/model/kernel"
)

// GeneralOrderRepository writes conditionally on the status the caller read.
// A write whose expected status no longer matches returns an
// errs.ConflictError.
type GeneralOrderRepository interface {
	Add(ctx context.Context, aggregate *generalorder.GeneralOrder) error

	Update(ctx context.Context, aggregate *generalorder.GeneralOrder, expected generalorder.Status) error

	Get(ctx context.Context, id kernel.UUID) (*generalorder.GeneralOrder, error)
}
