package http

import (
	"time"

	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/generalorder"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/domain/model/trip"

	"github.com/google/uuid"
)

// Request bodies. Field rules mirror api/openapi.yml; the domain validates
// again on construction.

type NewTrip struct {
	Origin          string    `json:"origin" validate:"required"`
	Destination     string    `json:"destination" validate:"required,nefield=Origin"`
	DepartureAt     time.Time `json:"departureAt" validate:"required"`
	CapacityGrams   int64     `json:"capacityGrams" validate:"gt=0"`
	PricePerKgCents int64     `json:"pricePerKgCents" validate:"gte=0"`
}

type Receiver struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type NewRequest struct {
	WeightGrams    int64      `json:"weightGrams" validate:"gt=0"`
	Description    string     `json:"description"`
	ItemType       string     `json:"itemType" validate:"required"`
	ItemSize       string     `json:"itemSize" validate:"required,oneof=small medium large"`
	Receiver       Receiver   `json:"receiver"`
	GeneralOrderID *uuid.UUID `json:"generalOrderId,omitempty"`
}

type Proposal struct {
	WeightGrams int64  `json:"weightGrams" validate:"gt=0"`
	Description string `json:"description"`
}

type Decision struct {
	Approve *bool `json:"approve" validate:"required"`
}

type StageTarget struct {
	Stage string `json:"stage" validate:"required"`
}

type Photos struct {
	URLs []string `json:"urls" validate:"required,min=1,dive,required,url"`
}

type PaymentProof struct {
	Method      string `json:"method" validate:"required"`
	ProofURL    string `json:"proofUrl" validate:"required,url"`
	AmountCents int64  `json:"amountCents" validate:"gte=0"`
}

type NewGeneralOrder struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required,nefield=Origin"`
	WeightGrams int64  `json:"weightGrams" validate:"gt=0"`
	Description string `json:"description"`
}

// Responses.

type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Trip struct {
	ID              uuid.UUID `json:"id"`
	TravelerID      uuid.UUID `json:"travelerId"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	DepartureAt     time.Time `json:"departureAt"`
	CapacityGrams   int64     `json:"capacityGrams"`
	FreeGrams       int64     `json:"freeGrams"`
	PricePerKgCents int64     `json:"pricePerKgCents"`
}

type Request struct {
	ID                      uuid.UUID     `json:"id"`
	TripID                  uuid.UUID     `json:"tripId"`
	SenderID                uuid.UUID     `json:"senderId"`
	TravelerID              uuid.UUID     `json:"travelerId"`
	GeneralOrderID          *uuid.UUID    `json:"generalOrderId,omitempty"`
	WeightGrams             int64         `json:"weightGrams"`
	Description             string        `json:"description"`
	ItemType                string        `json:"itemType"`
	ItemSize                string        `json:"itemSize"`
	Receiver                Receiver      `json:"receiver"`
	PriceCents              int64         `json:"priceCents"`
	Status                  string        `json:"status"`
	Stage                   string        `json:"stage"`
	PaymentStatus           string        `json:"paymentStatus"`
	Proof                   *PaymentProof `json:"proof,omitempty"`
	Proposal                *Proposal     `json:"proposal,omitempty"`
	CancellationRequestedBy *uuid.UUID    `json:"cancellationRequestedBy,omitempty"`
	SenderPhotos            []string      `json:"senderPhotos"`
	InspectionPhotos        []string      `json:"inspectionPhotos"`
	Version                 int64         `json:"version"`
}

type RequestView struct {
	Request
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DepartureAt time.Time `json:"departureAt"`
}

type AcceptResult struct {
	Request         Request `json:"request"`
	TrackingWarning string  `json:"trackingWarning,omitempty"`
}

type CancellationResult struct {
	Outcome string   `json:"outcome"`
	Request *Request `json:"request,omitempty"`
}

type GeneralOrder struct {
	ID          uuid.UUID  `json:"id"`
	SenderID    uuid.UUID  `json:"senderId"`
	TravelerID  *uuid.UUID `json:"travelerId,omitempty"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	WeightGrams int64      `json:"weightGrams"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func toTrip(t *trip.Trip) Trip {
	return Trip{
		ID:              t.ID().Bytes(),
		TravelerID:      t.TravelerID().Bytes(),
		Origin:          t.Route().Origin(),
		Destination:     t.Route().Destination(),
		DepartureAt:     t.DepartureAt(),
		CapacityGrams:   t.Capacity().Grams(),
		FreeGrams:       t.Free().Grams(),
		PricePerKgCents: t.PricePerKg().Cents(),
	}
}

func toRequest(r *request.Request) Request {
	s := r.Shipment()
	resp := Request{
		ID:             r.ID().Bytes(),
		TripID:         r.TripID().Bytes(),
		SenderID:       r.SenderID().Bytes(),
		TravelerID:     r.TravelerID().Bytes(),
		GeneralOrderID: optionalID(r.GeneralOrderID()),
		WeightGrams:    s.Weight().Grams(),
		Description:    s.Description(),
		ItemType:       s.ItemType(),
		ItemSize:       string(s.ItemSize()),
		Receiver: Receiver{
			Name:    s.Receiver().Name,
			Phone:   s.Receiver().Phone,
			Address: s.Receiver().Address,
		},
		PriceCents:              r.Price().Cents(),
		Status:                  r.Status().String(),
		Stage:                   r.Stage().String(),
		PaymentStatus:           r.PaymentStatus().String(),
		CancellationRequestedBy: optionalID(r.CancellationRequestedBy()),
		SenderPhotos:            append([]string{}, r.SenderPhotos()...),
		InspectionPhotos:        append([]string{}, r.InspectionPhotos()...),
		Version:                 r.Version(),
	}

	if proof := r.PaymentProof(); proof != nil {
		resp.Proof = &PaymentProof{
			Method:      proof.Method(),
			ProofURL:    proof.ProofURL(),
			AmountCents: proof.Amount().Cents(),
		}
	}
	if p, ok := r.PendingProposal(); ok {
		resp.Proposal = &Proposal{WeightGrams: p.Weight().Grams(), Description: p.Description()}
	}
	return resp
}

func toRequestView(v queries.RequestView) RequestView {
	resp := RequestView{
		Request: Request{
			ID:             v.ID.Bytes(),
			TripID:         v.TripID.Bytes(),
			SenderID:       v.SenderID.Bytes(),
			TravelerID:     v.TravelerID.Bytes(),
			GeneralOrderID: optionalID(v.GeneralOrderID),
			WeightGrams:    v.Weight.Grams(),
			Description:    v.Description,
			ItemType:       v.ItemType,
			ItemSize:       v.ItemSize,
			Receiver: Receiver{
				Name:    v.Receiver.Name,
				Phone:   v.Receiver.Phone,
				Address: v.Receiver.Address,
			},
			PriceCents:              v.Price.Cents(),
			Status:                  v.Status,
			Stage:                   v.Stage,
			PaymentStatus:           v.PaymentStatus,
			CancellationRequestedBy: optionalID(v.CancellationRequestedBy),
			SenderPhotos:            v.SenderPhotos,
			InspectionPhotos:        v.InspectionPhotos,
			Version:                 v.Version,
		},
		Origin:      v.Route.Origin(),
		Destination: v.Route.Destination(),
		DepartureAt: v.DepartureAt,
	}

	if v.Proof != nil {
		resp.Proof = &PaymentProof{Method: v.Proof.Method, ProofURL: v.Proof.URL, AmountCents: v.Proof.Amount.Cents()}
	}
	if v.Proposal != nil {
		resp.Proposal = &Proposal{WeightGrams: v.Proposal.Weight.Grams(), Description: v.Proposal.Description}
	}
	return resp
}

func toGeneralOrder(o *generalorder.GeneralOrder) GeneralOrder {
	return GeneralOrder{
		ID:          o.ID().Bytes(),
		SenderID:    o.SenderID().Bytes(),
		TravelerID:  optionalID(o.TravelerID()),
		Origin:      o.Route().Origin(),
		Destination: o.Route().Destination(),
		WeightGrams: o.Weight().Grams(),
		Description: o.Description(),
		Status:      o.Status().String(),
	}
}

func toOpenGeneralOrder(v queries.GeneralOrderView) GeneralOrder {
	return GeneralOrder{
		ID:          v.ID.Bytes(),
		SenderID:    v.SenderID.Bytes(),
		Origin:      v.Route.Origin(),
		Destination: v.Route.Destination(),
		WeightGrams: v.Weight.Grams(),
		Description: v.Description,
		Status:      generalorder.New.String(),
	}
}
