// Package event defines the lifecycle events aggregates record while they
// change. The unit of work persists them to the outbox in the same
// transaction as the change itself.
package event

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
)

// Type names a lifecycle event. Values are stable; they are stored in the
// outbox and consumed by the notifier.
type Type string

const (
	TripCreated             Type = "trip.created"
	RequestCreated          Type = "request.created"
	RequestAccepted         Type = "request.accepted"
	RequestRejected         Type = "request.rejected"
	RequestCancelledPending Type = "request.cancelled_pending"
	ProposalSubmitted       Type = "request.proposal_submitted"
	ProposalResolved        Type = "request.proposal_resolved"
	CancellationRequested   Type = "request.cancellation_requested"
	CancellationFinalized   Type = "request.cancellation_finalized"
	StageAdvanced           Type = "request.stage_advanced"
	PhotosSubmitted         Type = "request.photos_submitted"
	PaymentProofSubmitted   Type = "request.payment_proof_submitted"
	PaymentReviewed         Type = "request.payment_reviewed"
	GeneralOrderCreated     Type = "general_order.created"
	GeneralOrderClaimed     Type = "general_order.claimed"
	GeneralOrderMatched     Type = "general_order.matched"
	GeneralOrderCancelled   Type = "general_order.cancelled"
	GeneralOrderCompleted   Type = "general_order.completed"
)

// Event is an immutable fact about an aggregate.
type Event struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	Type        Type
	ActorID     kernel.UUID
	Attributes  map[string]string
	OccurredAt  time.Time
}

func New(aggregateID kernel.UUID, t Type, actorID kernel.UUID, attrs map[string]string) Event {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return Event{
		ID:          kernel.NewUUID(),
		AggregateID: aggregateID,
		Type:        t,
		ActorID:     actorID,
		Attributes:  attrs,
		OccurredAt:  time.Now().UTC(),
	}
}

// Recorder is embedded by aggregates that emit events.
type Recorder struct {
	events []Event
}

func (r *Recorder) Record(e Event) {
	r.events = append(r.events, e)
}

// DomainEvents returns the events recorded since the last clear.
func (r *Recorder) DomainEvents() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) ClearDomainEvents() {
	r.events = nil
}
