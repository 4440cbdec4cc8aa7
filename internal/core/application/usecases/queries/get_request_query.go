// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and read flat rows shaped for the API and
// the operator CLI.
package queries

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var (
	ErrGetRequestQueryIsNotConstructed = errors.New(
		"GetRequestQuery must be created via NewGetRequestQuery constructor",
	)
)

// GetRequestQuery reads one request as seen by a viewer. Only the sender,
// the traveler and admins may see it.
//
// Example:
//
//	query, err := NewGetRequestQuery(requestID, actorID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//
//nolint:recvcheck //using for validation
type GetRequestQuery struct {
	requestID kernel.UUID
	viewerID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRequestQuery(requestID, viewerID kernel.UUID) (GetRequestQuery, error) {
	q := GetRequestQuery{guard: guard.NewConstructorGuard()}

	if err := requestID.Validate(); err != nil {
		return GetRequestQuery{}, errs.NewValueIsRequiredErrorWithCause("requestID", err)
	}
	if err := viewerID.Validate(); err != nil {
		return GetRequestQuery{}, errs.NewValueIsRequiredErrorWithCause("viewerID", err)
	}
	q.requestID = requestID
	q.viewerID = viewerID

	return q, nil
}

func (q GetRequestQuery) RequestID() kernel.UUID { return q.requestID }
func (q GetRequestQuery) ViewerID() kernel.UUID  { return q.viewerID }

func (q GetRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestQueryIsNotConstructed)
}

// RequestView is the read model of a request together with its trip route.
type RequestView struct {
	ID             kernel.UUID
	TripID         kernel.UUID
	SenderID       kernel.UUID
	TravelerID     kernel.UUID
	GeneralOrderID *kernel.UUID
	Route          kernel.Route
	DepartureAt    time.Time

	Weight      kernel.Weight
	Description string
	ItemType    string
	ItemSize    string
	Receiver    ReceiverView
	Price       kernel.Money

	Status        string
	Stage         string
	PaymentStatus string
	Proof         *ProofView
	Proposal      *ProposalView

	CancellationRequestedBy *kernel.UUID
	SenderPhotos            []string
	InspectionPhotos        []string

	Version   int64
	UpdatedAt time.Time
}

type ReceiverView struct {
	Name    string
	Phone   string
	Address string
}

type ProofView struct {
	Method string
	URL    string
	Amount kernel.Money
}

type ProposalView struct {
	Weight      kernel.Weight
	Description string
}
