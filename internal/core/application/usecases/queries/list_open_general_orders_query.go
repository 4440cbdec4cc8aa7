package queries

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var (
	ErrListOpenGeneralOrdersQueryIsNotConstructed = errors.New(
		"ListOpenGeneralOrdersQuery must be created via NewListOpenGeneralOrdersQuery constructor",
	)
)

// ListOpenGeneralOrdersQuery lists general orders still open for claiming,
// optionally narrowed to one origin city.
type ListOpenGeneralOrdersQuery struct {
	origin string
	limit  int

	guard guard.ConstructorGuard
}

func NewListOpenGeneralOrdersQuery(origin string, limit int) (ListOpenGeneralOrdersQuery, error) {
	if limit <= 0 || limit > maxPageSize {
		return ListOpenGeneralOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageSize)
	}
	return ListOpenGeneralOrdersQuery{
		origin: origin,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOpenGeneralOrdersQuery) Origin() string { return q.origin }
func (q ListOpenGeneralOrdersQuery) Limit() int     { return q.limit }

func (q ListOpenGeneralOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOpenGeneralOrdersQueryIsNotConstructed)
}

type GeneralOrderView struct {
	ID          kernel.UUID
	SenderID    kernel.UUID
	Route       kernel.Route
	Weight      kernel.Weight
	Description string
	CreatedAt   time.Time
}
