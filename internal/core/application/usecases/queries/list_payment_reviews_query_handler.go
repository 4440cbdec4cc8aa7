package queries

import (
	"context"

	"parcel/internal/core/domain/model/request"

	"gorm.io/gorm"
)

type ListPaymentReviewsQueryHandler struct {
	db *gorm.DB
}

func NewListPaymentReviewsQueryHandler(db *gorm.DB) ListPaymentReviewsQueryHandler {
	return ListPaymentReviewsQueryHandler{db: db}
}

func (h ListPaymentReviewsQueryHandler) Handle(
	ctx context.Context,
	query ListPaymentReviewsQuery,
) ([]RequestView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]RequestView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+requestColumns+`
		FROM requests r
		JOIN trips t ON t.id = r.trip_id
		WHERE r.status = ? AND r.payment_status = ?
		ORDER BY r.updated_at, r.id
		LIMIT ?
	`, request.Accepted.String(), request.PendingReview.String(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanRequestView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, *view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
