package services

import (
	"errors"
	"fmt"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/domain/model/trip"
	"parcel/internal/pkg/errs"
)

var ErrTripMismatch = errors.New("request does not belong to trip")

// Acceptor coordinates the Trip and the Request on acceptance. The durable
// capacity decrement is done by the capacity ledger; Accept only decides
// whether acceptance is allowed and applies it to both aggregates in memory.
type Acceptor struct{}

func NewAcceptor() Acceptor {
	return Acceptor{}
}

// Accept checks that the request belongs to the trip, that the party is the
// trip's traveler and that free capacity covers the request weight. On
// success the request is accepted and the trip's free capacity reduced.
func (a Acceptor) Accept(p actor.Party, t *trip.Trip, r *request.Request) error {
	if err := errors.Join(t.Validate(), r.Validate()); err != nil {
		return err
	}
	if !t.ID().IsEqual(r.TripID()) {
		return fmt.Errorf("%w: request %s, trip %s", ErrTripMismatch, r.ID(), t.ID())
	}
	if err := p.Require("accept request", actor.Traveler); err != nil {
		return err
	}
	if r.Status() != request.Pending {
		return errs.NewInvalidTransitionError("request", r.Status().String(), request.Accepted.String())
	}

	weight := r.Shipment().Weight()
	if !t.CanCarry(weight) {
		return errs.NewInsufficientCapacityError(t.ID().String(), weight.Grams(), t.Free().Grams())
	}

	if err := r.Accept(p); err != nil {
		return err
	}
	return t.Reserve(weight)
}
