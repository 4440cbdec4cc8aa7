package generalorder

import (
	"errors"
	"strings"
	"time"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/event"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

var ErrGeneralOrderIsNotConstructed = errors.New("GeneralOrder must be created via NewGeneralOrder constructor")

// GeneralOrder is a trip-less shipping request broadcast to every traveler.
// A traveler claims it; the claim is the only concurrent write and is made
// conditional on the status still being New by the repository.
type GeneralOrder struct {
	event.Recorder

	id          kernel.UUID
	senderID    kernel.UUID
	travelerID  *kernel.UUID
	route       kernel.Route
	weight      kernel.Weight
	description string
	status      Status
	createdAt   time.Time

	isConstructed bool
}

// NewGeneralOrder creates an order in status New.
func NewGeneralOrder(
	id kernel.UUID,
	senderID kernel.UUID,
	route kernel.Route,
	weight kernel.Weight,
	description string,
) (*GeneralOrder, error) {
	o := &GeneralOrder{
		description:   strings.TrimSpace(description),
		status:        New,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSender(senderID),
		o.setRoute(route),
		o.setWeight(weight),
	); err != nil {
		return nil, err
	}

	o.Record(event.New(o.id, event.GeneralOrderCreated, senderID, map[string]string{
		"route":  route.String(),
		"weight": weight.String(),
	}))
	return o, nil
}

// RestoreGeneralOrder rebuilds an order from storage without recording events.
func RestoreGeneralOrder(
	id kernel.UUID,
	senderID kernel.UUID,
	travelerID *kernel.UUID,
	route kernel.Route,
	weight kernel.Weight,
	description string,
	status Status,
	createdAt time.Time,
) (*GeneralOrder, error) {
	o := &GeneralOrder{
		travelerID:    travelerID,
		description:   description,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSender(senderID),
		o.setRoute(route),
		o.setWeight(weight),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

func (o *GeneralOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrGeneralOrderIsNotConstructed
	}
	return nil
}

func (o *GeneralOrder) ID() kernel.UUID          { return o.id }
func (o *GeneralOrder) SenderID() kernel.UUID    { return o.senderID }
func (o *GeneralOrder) TravelerID() *kernel.UUID { return o.travelerID }
func (o *GeneralOrder) Route() kernel.Route      { return o.route }
func (o *GeneralOrder) Weight() kernel.Weight    { return o.weight }
func (o *GeneralOrder) Description() string      { return o.description }
func (o *GeneralOrder) Status() Status           { return o.status }
func (o *GeneralOrder) CreatedAt() time.Time     { return o.createdAt }

// Claim assigns the order to travelerID. A sender cannot claim their own
// order.
//
// An order another traveler already took (Claimed or Matched) fails with a
// ConflictError so callers can refresh; cancelled and completed orders fail
// with InvalidTransition.
func (o *GeneralOrder) Claim(travelerID kernel.UUID) error {
	if err := travelerID.Validate(); err != nil {
		return err
	}
	if o.senderID.IsEqual(travelerID) {
		return errs.NewNotAuthorizedError(travelerID.String(), "claim own general order", "another traveler")
	}
	if o.status == Claimed || o.status == Matched {
		return errs.NewConflictError("general order", o.id)
	}

	next, err := o.status.Claim()
	if err != nil {
		return err
	}

	o.status = next
	o.travelerID = &travelerID
	o.Record(event.New(o.id, event.GeneralOrderClaimed, travelerID, nil))
	return nil
}

// Match links the order to a Request made on travelerID's trip. A claimed
// order only matches its claimant.
func (o *GeneralOrder) Match(senderID, travelerID kernel.UUID) error {
	if !o.senderID.IsEqual(senderID) {
		return errs.NewNotAuthorizedError(senderID.String(), "match general order", "order creator")
	}
	if o.travelerID != nil && !o.travelerID.IsEqual(travelerID) {
		return errs.NewNotAuthorizedError(travelerID.String(), "match general order", "claiming traveler")
	}

	next, err := o.status.Match()
	if err != nil {
		return err
	}

	o.status = next
	o.travelerID = &travelerID
	o.Record(event.New(o.id, event.GeneralOrderMatched, senderID, map[string]string{
		"traveler_id": travelerID.String(),
	}))
	return nil
}

// Cancel withdraws an unclaimed order. Only the creator may cancel.
func (o *GeneralOrder) Cancel(p actor.Party) error {
	if err := p.Require("cancel general order", actor.Sender); err != nil {
		return err
	}

	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = next
	o.Record(event.New(o.id, event.GeneralOrderCancelled, p.ID(), nil))
	return nil
}

// Complete closes the order. Only the assigned traveler may complete.
func (o *GeneralOrder) Complete(p actor.Party) error {
	if err := p.Require("complete general order", actor.Traveler); err != nil {
		return err
	}

	next, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = next
	o.Record(event.New(o.id, event.GeneralOrderCompleted, p.ID(), nil))
	return nil
}

// Party resolves actorID's roles on this order.
func (o *GeneralOrder) Party(actorID kernel.UUID, isAdmin bool) actor.Party {
	var traveler kernel.UUID
	if o.travelerID != nil {
		traveler = *o.travelerID
	}
	return actor.Resolve(actorID, isAdmin, o.senderID, traveler)
}

func (o *GeneralOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *GeneralOrder) setSender(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sender", err)
	}
	o.senderID = id
	return nil
}

func (o *GeneralOrder) setRoute(route kernel.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	o.route = route
	return nil
}

func (o *GeneralOrder) setWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	if weight.IsZero() {
		return errs.NewValueIsInvalidError("weight")
	}
	o.weight = weight
	return nil
}
