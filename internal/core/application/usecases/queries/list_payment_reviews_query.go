package queries

import (
	"errors"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

const maxPageSize = 200

var (
	ErrListPaymentReviewsQueryIsNotConstructed = errors.New(
		"ListPaymentReviewsQuery must be created via NewListPaymentReviewsQuery constructor",
	)
)

// ListPaymentReviewsQuery lists accepted requests whose payment proof waits
// for an admin decision, oldest first. Callers check the admin role.
type ListPaymentReviewsQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewListPaymentReviewsQuery(limit int) (ListPaymentReviewsQuery, error) {
	if limit <= 0 || limit > maxPageSize {
		return ListPaymentReviewsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageSize)
	}
	return ListPaymentReviewsQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPaymentReviewsQuery) Limit() int { return q.limit }

func (q ListPaymentReviewsQuery) Validate() error {
	return q.guard.Validate(ErrListPaymentReviewsQueryIsNotConstructed)
}
