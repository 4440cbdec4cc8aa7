package queries

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/generalorder"
	"parcel/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListOpenGeneralOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOpenGeneralOrdersQueryHandler(db *gorm.DB) ListOpenGeneralOrdersQueryHandler {
	return ListOpenGeneralOrdersQueryHandler{db: db}
}

// Handle returns the newest orders first.
func (h ListOpenGeneralOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOpenGeneralOrdersQuery,
) ([]GeneralOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GeneralOrderView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sender_id,
			route_origin,
			route_destination,
			weight_grams,
			description,
			created_at
		FROM general_orders
		WHERE status = ? AND (? = '' OR route_origin = ?)
		ORDER BY created_at DESC, id
		LIMIT ?
	`, generalorder.New.String(), query.Origin(), query.Origin(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view                GeneralOrderView
			id, senderID        uuid.UUID
			origin, destination string
			weightGrams         int64
			createdAt           time.Time
		)

		if err = rows.Scan(&id, &senderID, &origin, &destination, &weightGrams, &view.Description, &createdAt); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.SenderID, err = kernel.UUIDFromBytes(senderID[:]); err != nil {
			return nil, err
		}
		if view.Route, err = kernel.NewRoute(origin, destination); err != nil {
			return nil, err
		}
		if view.Weight, err = kernel.NewWeight(weightGrams); err != nil {
			return nil, err
		}
		view.CreatedAt = createdAt
		orders = append(orders, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
