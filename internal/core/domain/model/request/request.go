package request

import (
	"errors"
	"strconv"
	"time"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/event"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

const (
	// MinSenderItemPhotos is the number of item photos that justifies
	// sender_photos_uploaded.
	MinSenderItemPhotos = 1

	// MinInspectionPhotos is the number of inspection photos that justifies
	// traveler_inspection_complete and unlocks traveler_on_the_way.
	MinInspectionPhotos = 1
)

var (
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")
	errNoProposal              = errors.New("there is no proposal to resolve")
)

// CancellationOutcome tells the caller what RequestCancellation decided.
type CancellationOutcome int

const (
	// CancellationRequested means the first party asked; the request stays.
	CancellationRequested CancellationOutcome = iota + 1

	// CancellationFinalized means both parties agreed; the caller deletes
	// the request.
	CancellationFinalized
)

func (o CancellationOutcome) String() string {
	switch o {
	case CancellationRequested:
		return "requested"
	case CancellationFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Request is a sender's ask to ship one item on one Trip.
//
// Every mutating method takes the acting Party and enforces its role before
// changing state. The version is incremented by the repository on each
// successful write; writes made against a stale version fail with a
// ConflictError.
type Request struct {
	event.Recorder

	id             kernel.UUID
	tripID         kernel.UUID
	senderID       kernel.UUID
	travelerID     kernel.UUID
	generalOrderID *kernel.UUID

	shipment Shipment
	price    kernel.Money

	status  Status
	stage   Stage
	payment PaymentStatus
	proof   *PaymentProof

	proposal                *Proposal
	cancellationRequestedBy *kernel.UUID

	senderPhotos     []string
	inspectionPhotos []string

	version   int64
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewRequest creates a pending request. The traveler is copied from the trip
// so that later role checks do not need to load it.
func NewRequest(
	id kernel.UUID,
	tripID kernel.UUID,
	senderID kernel.UUID,
	travelerID kernel.UUID,
	shipment Shipment,
	price kernel.Money,
	generalOrderID *kernel.UUID,
) (*Request, error) {
	now := time.Now().UTC()
	r := &Request{
		shipment:      shipment,
		price:         price,
		status:        Pending,
		stage:         WaitingApproval,
		payment:       Unpaid,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setTripID(tripID),
		r.setParties(senderID, travelerID),
		validateShipmentWeight(shipment.Weight()),
		r.setGeneralOrderID(generalOrderID),
	); err != nil {
		return nil, err
	}

	if senderID.IsEqual(travelerID) {
		return nil, errs.NewNotAuthorizedError(senderID.String(), "request shipment on own trip", "another traveler")
	}

	r.record(senderID, event.RequestCreated, map[string]string{
		"trip_id": tripID.String(),
		"weight":  shipment.Weight().String(),
	})
	return r, nil
}

// Snapshot is the persisted state of a Request.
type Snapshot struct {
	ID                      kernel.UUID
	TripID                  kernel.UUID
	SenderID                kernel.UUID
	TravelerID              kernel.UUID
	GeneralOrderID          *kernel.UUID
	Shipment                Shipment
	Price                   kernel.Money
	Status                  Status
	Stage                   Stage
	Payment                 PaymentStatus
	Proof                   *PaymentProof
	Proposal                *Proposal
	CancellationRequestedBy *kernel.UUID
	SenderPhotos            []string
	InspectionPhotos        []string
	Version                 int64
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// RestoreRequest rebuilds a request from storage without recording events.
func RestoreRequest(s Snapshot) (*Request, error) {
	r := &Request{
		shipment:                s.Shipment,
		price:                   s.Price,
		proof:                   s.Proof,
		proposal:                s.Proposal,
		cancellationRequestedBy: s.CancellationRequestedBy,
		senderPhotos:            s.SenderPhotos,
		inspectionPhotos:        s.InspectionPhotos,
		version:                 s.Version,
		createdAt:               s.CreatedAt,
		updatedAt:               s.UpdatedAt,
		isConstructed:           true,
	}

	if err := errors.Join(
		r.setID(s.ID),
		r.setTripID(s.TripID),
		r.setParties(s.SenderID, s.TravelerID),
		r.setGeneralOrderID(s.GeneralOrderID),
		s.Status.Validate(),
		s.Stage.Validate(),
		s.Payment.Validate(),
	); err != nil {
		return nil, err
	}
	r.status = s.Status
	r.stage = s.Stage
	r.payment = s.Payment

	return r, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID              { return r.id }
func (r *Request) TripID() kernel.UUID          { return r.tripID }
func (r *Request) SenderID() kernel.UUID        { return r.senderID }
func (r *Request) TravelerID() kernel.UUID      { return r.travelerID }
func (r *Request) GeneralOrderID() *kernel.UUID { return r.generalOrderID }
func (r *Request) Shipment() Shipment           { return r.shipment }
func (r *Request) Price() kernel.Money          { return r.price }
func (r *Request) Status() Status               { return r.status }
func (r *Request) Stage() Stage                 { return r.stage }
func (r *Request) PaymentStatus() PaymentStatus { return r.payment }
func (r *Request) PaymentProof() *PaymentProof  { return r.proof }
func (r *Request) Version() int64               { return r.version }
func (r *Request) CreatedAt() time.Time         { return r.createdAt }
func (r *Request) UpdatedAt() time.Time         { return r.updatedAt }

func (r *Request) SenderPhotos() []string {
	return append([]string(nil), r.senderPhotos...)
}

func (r *Request) InspectionPhotos() []string {
	return append([]string(nil), r.inspectionPhotos...)
}

// PendingProposal returns the outstanding proposal, if any.
func (r *Request) PendingProposal() (Proposal, bool) {
	if r.proposal == nil {
		return Proposal{}, false
	}
	return *r.proposal, true
}

func (r *Request) CancellationRequestedBy() *kernel.UUID {
	return r.cancellationRequestedBy
}

// BumpVersion is called by the repository after a successful conditional
// write.
func (r *Request) BumpVersion() {
	r.version++
}

// NeedsTrackingReconciliation reports an accepted request whose post-accept
// tracking step did not happen.
func (r *Request) NeedsTrackingReconciliation() bool {
	return r.status == Accepted && r.stage == WaitingApproval
}

// Accept marks the request accepted and drops any outstanding proposal.
// Capacity is reserved by the caller in the same transaction.
func (r *Request) Accept(p actor.Party) error {
	if err := p.Require("accept request", actor.Traveler); err != nil {
		return err
	}

	next, err := r.status.Accept()
	if err != nil {
		return err
	}

	r.status = next
	r.proposal = nil
	r.record(p.ID(), event.RequestAccepted, map[string]string{
		"trip_id": r.tripID.String(),
		"weight":  r.shipment.Weight().String(),
	})
	return nil
}

// ReconcileTracking performs the post-accept step waiting_approval ->
// item_accepted. It reports whether anything changed.
func (r *Request) ReconcileTracking() (bool, error) {
	if err := r.status.require(Accepted, "reconcile tracking"); err != nil {
		return false, err
	}
	if r.stage != WaitingApproval {
		return false, nil
	}

	r.moveTo(kernel.UUID{}, ItemAccepted)
	return true, nil
}

// Reject is terminal. Tracking returns to waiting_approval.
func (r *Request) Reject(p actor.Party) error {
	if err := p.Require("reject request", actor.Traveler); err != nil {
		return err
	}

	next, err := r.status.Reject()
	if err != nil {
		return err
	}

	r.status = next
	r.stage = WaitingApproval
	r.proposal = nil
	r.record(p.ID(), event.RequestRejected, nil)
	return nil
}

// CancelPending lets the sender withdraw a request nobody accepted yet. The
// caller deletes the request afterwards.
func (r *Request) CancelPending(p actor.Party) error {
	if err := p.Require("cancel request", actor.Sender); err != nil {
		return err
	}
	if err := r.status.require(Pending, "cancelled"); err != nil {
		return err
	}

	r.record(p.ID(), event.RequestCancelledPending, map[string]string{"trip_id": r.tripID.String()})
	return nil
}

// Propose replaces any previous proposal. Last write wins.
func (r *Request) Propose(p actor.Party, proposal Proposal) error {
	if err := p.Require("propose changes", actor.Sender); err != nil {
		return err
	}
	if err := r.status.require(Pending, "proposal"); err != nil {
		return err
	}
	if err := validateShipmentWeight(proposal.Weight()); err != nil {
		return err
	}

	r.proposal = &proposal
	r.record(p.ID(), event.ProposalSubmitted, map[string]string{
		"weight":      proposal.Weight().String(),
		"description": proposal.Description(),
	})
	return nil
}

// AcceptProposal merges the proposal into the shipment and applies the
// re-quoted price.
func (r *Request) AcceptProposal(p actor.Party, price kernel.Money) error {
	proposal, err := r.resolvableProposal(p)
	if err != nil {
		return err
	}

	r.shipment = r.shipment.withRevision(proposal)
	r.price = price
	r.proposal = nil
	r.record(p.ID(), event.ProposalResolved, map[string]string{
		"accepted": "true",
		"weight":   proposal.Weight().String(),
	})
	return nil
}

// RejectProposal discards the proposal and keeps the committed shipment.
func (r *Request) RejectProposal(p actor.Party) error {
	if _, err := r.resolvableProposal(p); err != nil {
		return err
	}

	r.proposal = nil
	r.record(p.ID(), event.ProposalResolved, map[string]string{"accepted": "false"})
	return nil
}

func (r *Request) resolvableProposal(p actor.Party) (Proposal, error) {
	if err := p.Require("resolve proposal", actor.Traveler); err != nil {
		return Proposal{}, err
	}
	if err := r.status.require(Pending, "proposal resolved"); err != nil {
		return Proposal{}, err
	}
	if r.proposal == nil {
		return Proposal{}, errs.NewInvalidTransitionErrorWithCause("proposal", "none", "resolved", errNoProposal)
	}
	return *r.proposal, nil
}

// RequestCancellation runs one step of the two-party cancellation protocol
// on an accepted request.
func (r *Request) RequestCancellation(p actor.Party) (CancellationOutcome, error) {
	if err := p.Require("request cancellation", actor.Sender, actor.Traveler); err != nil {
		return 0, err
	}
	if err := r.status.require(Accepted, "cancellation requested"); err != nil {
		return 0, err
	}

	side := p.Side().String()
	switch {
	case r.cancellationRequestedBy == nil:
		id := p.ID()
		r.cancellationRequestedBy = &id
		r.record(id, event.CancellationRequested, map[string]string{"side": side})
		return CancellationRequested, nil

	case r.cancellationRequestedBy.IsEqual(p.ID()):
		return 0, errs.NewAlreadyRequestedError("cancellation", side)

	default:
		r.record(p.ID(), event.CancellationFinalized, map[string]string{
			"side":    side,
			"trip_id": r.tripID.String(),
		})
		return CancellationFinalized, nil
	}
}

// Advance moves tracking one stage forward.
//
// Checks run in this order: the request must be accepted; the target must be
// exactly the next stage, except that completing before delivery reports
// DeliveryRequired; the target's preconditions must hold; the party must hold
// a role allowed for the target.
//
// Example:
//
//	// stage is item_accepted, payment not yet reviewed
//	err := req.Advance(traveler, request.TravelerInspectionComplete) // InvalidTransition, a skip
//	err = req.Advance(traveler, request.PaymentDone)                 // PaymentRequired
func (r *Request) Advance(p actor.Party, target Stage) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := r.status.require(Accepted, target.String()); err != nil {
		return err
	}
	if target == Completed && r.stage.Order() < Delivered.Order() {
		return errs.NewDeliveryRequiredError(target.String(), "current stage is "+r.stage.String())
	}
	if target.Order() != r.stage.Order()+1 {
		return errs.NewInvalidTransitionError("tracking", r.stage.String(), target.String())
	}
	if err := r.checkStagePreconditions(target); err != nil {
		return err
	}
	if err := p.Require("advance to "+target.String(), target.AllowedRoles()...); err != nil {
		return err
	}

	r.moveTo(p.ID(), target)
	return nil
}

func (r *Request) checkStagePreconditions(target Stage) error {
	if target.IsPaymentGated() && r.payment != Paid {
		return errs.NewPaymentRequiredError(target.String(), "payment is "+r.payment.String())
	}
	if target == TravelerOnTheWay && len(r.inspectionPhotos) < MinInspectionPhotos {
		return errs.NewInspectionRequiredError(target.String(), "no inspection photos uploaded")
	}
	return nil
}

// SubmitItemPhotosAndAdvance appends the sender's item photos and moves
// tracking as far as the uploaded photo sets justify.
func (r *Request) SubmitItemPhotosAndAdvance(p actor.Party, urls []string) error {
	if err := r.checkPhotoStep(SenderPhotosUploaded); err != nil {
		return err
	}
	if err := p.Require("submit item photos", actor.Sender); err != nil {
		return err
	}
	clean, err := cleanPhotoURLs("item photos", urls)
	if err != nil {
		return err
	}

	r.senderPhotos = append(r.senderPhotos, clean...)
	r.record(p.ID(), event.PhotosSubmitted, map[string]string{
		"kind":  "item",
		"count": strconv.Itoa(len(clean)),
	})
	r.advanceByPhotos(p.ID())
	return nil
}

// SubmitInspectionAndAdvance appends the traveler's inspection photos and
// moves tracking as far as the uploaded photo sets justify.
func (r *Request) SubmitInspectionAndAdvance(p actor.Party, urls []string) error {
	if err := r.checkPhotoStep(TravelerInspectionComplete); err != nil {
		return err
	}
	if err := p.Require("submit inspection photos", actor.Traveler); err != nil {
		return err
	}
	clean, err := cleanPhotoURLs("inspection photos", urls)
	if err != nil {
		return err
	}

	r.inspectionPhotos = append(r.inspectionPhotos, clean...)
	r.record(p.ID(), event.PhotosSubmitted, map[string]string{
		"kind":  "inspection",
		"count": strconv.Itoa(len(clean)),
	})
	r.advanceByPhotos(p.ID())
	return nil
}

// checkPhotoStep gates both compound photo operations. The payment check
// comes before anything that depends on photo counts.
func (r *Request) checkPhotoStep(target Stage) error {
	if err := r.status.require(Accepted, target.String()); err != nil {
		return err
	}
	if r.payment != Paid {
		return errs.NewPaymentRequiredError(target.String(), "payment is "+r.payment.String())
	}
	if r.stage != PaymentDone && r.stage != SenderPhotosUploaded {
		return errs.NewInvalidTransitionError("tracking", r.stage.String(), target.String())
	}
	return nil
}

func (r *Request) advanceByPhotos(actorID kernel.UUID) {
	target := r.stage
	hasItems := len(r.senderPhotos) >= MinSenderItemPhotos
	hasInspection := len(r.inspectionPhotos) >= MinInspectionPhotos

	if hasItems && target < SenderPhotosUploaded {
		target = SenderPhotosUploaded
	}
	if hasItems && hasInspection && target < TravelerInspectionComplete {
		target = TravelerInspectionComplete
	}
	if target > r.stage {
		r.moveTo(actorID, target)
	}
}

// SubmitProof puts the payment into review. Tracking does not move.
func (r *Request) SubmitProof(p actor.Party, proof PaymentProof) error {
	if err := p.Require("submit payment proof", actor.Sender); err != nil {
		return err
	}
	if err := r.status.require(Accepted, "payment submitted"); err != nil {
		return err
	}

	next, err := r.payment.Submit()
	if err != nil {
		return err
	}

	r.payment = next
	r.proof = &proof
	r.record(p.ID(), event.PaymentProofSubmitted, map[string]string{
		"method": proof.Method(),
		"amount": proof.Amount().String(),
	})
	return nil
}

// ReviewProof resolves a payment under review. Approval moves tracking up to
// payment_done when it is behind it.
func (r *Request) ReviewProof(p actor.Party, approve bool) error {
	if err := p.Require("review payment", actor.Admin); err != nil {
		return err
	}

	next, err := r.payment.Review(approve)
	if err != nil {
		return err
	}

	r.payment = next
	r.record(p.ID(), event.PaymentReviewed, map[string]string{"decision": next.String()})

	if next == Paid && r.stage < PaymentDone {
		r.moveTo(p.ID(), PaymentDone)
	}
	return nil
}

func (r *Request) moveTo(actorID kernel.UUID, target Stage) {
	from := r.stage
	r.stage = target
	r.record(actorID, event.StageAdvanced, map[string]string{
		"from": from.String(),
		"to":   target.String(),
	})
}

func (r *Request) record(actorID kernel.UUID, t event.Type, attrs map[string]string) {
	r.updatedAt = time.Now().UTC()
	r.Record(event.New(r.id, t, actorID, attrs))
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setTripID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("trip", err)
	}
	r.tripID = id
	return nil
}

func (r *Request) setParties(senderID, travelerID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sender", err)
	}
	if err := travelerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("traveler", err)
	}
	r.senderID = senderID
	r.travelerID = travelerID
	return nil
}

func (r *Request) setGeneralOrderID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	r.generalOrderID = id
	return nil
}

func cleanPhotoURLs(param string, urls []string) ([]string, error) {
	clean := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		clean = append(clean, u)
	}
	if len(clean) == 0 {
		return nil, errs.NewValueIsRequiredError(param)
	}
	return clean, nil
}
