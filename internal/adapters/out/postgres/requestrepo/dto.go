// Package requestrepo persists shipment requests. Every write is
// conditional on the version the caller read.
package requestrepo

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RequestDTO struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TripID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	SenderID       uuid.UUID   `gorm:"type:uuid;not null;index"`
	TravelerID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	GeneralOrderID *uuid.UUID  `gorm:"type:uuid;index"`
	Shipment       ShipmentDTO `gorm:"embedded"`
	PriceCents     int64       `gorm:"not null"`
	Status         string      `gorm:"type:varchar(32);not null;index:idx_requests_status_stage"`
	Stage          string      `gorm:"type:varchar(64);not null;index:idx_requests_status_stage"`
	PaymentStatus  *string     `gorm:"type:varchar(32);index"`
	Proof          ProofDTO    `gorm:"embedded;embeddedPrefix:proof_"`
	Proposal       ProposalDTO `gorm:"embedded;embeddedPrefix:proposed_"`

	CancellationRequestedBy *uuid.UUID `gorm:"type:uuid"`

	SenderPhotos     pq.StringArray `gorm:"type:text[]"`
	InspectionPhotos pq.StringArray `gorm:"type:text[]"`

	Version   int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (RequestDTO) TableName() string {
	return "requests"
}

type ShipmentDTO struct {
	WeightGrams     int64  `gorm:"not null"`
	Description     string `gorm:"type:text"`
	ItemType        string `gorm:"type:varchar(255)"`
	ItemSize        string `gorm:"type:varchar(16)"`
	ReceiverName    string `gorm:"type:varchar(255)"`
	ReceiverPhone   string `gorm:"type:varchar(64)"`
	ReceiverAddress string `gorm:"type:text"`
}

// ProofDTO is empty when no payment proof was submitted.
type ProofDTO struct {
	Method      *string `gorm:"type:varchar(64)"`
	URL         *string `gorm:"type:text"`
	AmountCents *int64
}

// ProposalDTO is empty when no proposal is pending.
type ProposalDTO struct {
	WeightGrams *int64
	Description *string `gorm:"type:text"`
}

func fromDomain(r *request.Request) RequestDTO {
	s := r.Shipment()
	dto := RequestDTO{
		ID:         r.ID().Bytes(),
		TripID:     r.TripID().Bytes(),
		SenderID:   r.SenderID().Bytes(),
		TravelerID: r.TravelerID().Bytes(),
		Shipment: ShipmentDTO{
			WeightGrams:     s.Weight().Grams(),
			Description:     s.Description(),
			ItemType:        s.ItemType(),
			ItemSize:        string(s.ItemSize()),
			ReceiverName:    s.Receiver().Name,
			ReceiverPhone:   s.Receiver().Phone,
			ReceiverAddress: s.Receiver().Address,
		},
		PriceCents:       r.Price().Cents(),
		Status:           r.Status().String(),
		Stage:            r.Stage().String(),
		SenderPhotos:     pq.StringArray(r.SenderPhotos()),
		InspectionPhotos: pq.StringArray(r.InspectionPhotos()),
		Version:          r.Version(),
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
	}

	if id := r.GeneralOrderID(); id != nil {
		raw := id.Bytes()
		dto.GeneralOrderID = &raw
	}
	if p := r.PaymentStatus(); p != request.Unpaid {
		status := p.String()
		dto.PaymentStatus = &status
	}
	if id := r.CancellationRequestedBy(); id != nil {
		raw := id.Bytes()
		dto.CancellationRequestedBy = &raw
	}
	if proof := r.PaymentProof(); proof != nil {
		method, url, amount := proof.Method(), proof.ProofURL(), proof.Amount().Cents()
		dto.Proof = ProofDTO{Method: &method, URL: &url, AmountCents: &amount}
	}
	if proposal, ok := r.PendingProposal(); ok {
		grams, description := proposal.Weight().Grams(), proposal.Description()
		dto.Proposal = ProposalDTO{WeightGrams: &grams, Description: &description}
	}

	return dto
}

func toDomain(dto RequestDTO) (*request.Request, error) {
	snap := request.Snapshot{
		SenderPhotos:     []string(dto.SenderPhotos),
		InspectionPhotos: []string(dto.InspectionPhotos),
		Version:          dto.Version,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	}

	var err error
	if snap.ID, err = kernel.UUIDFromBytes(dto.ID[:]); err != nil {
		return nil, err
	}
	if snap.TripID, err = kernel.UUIDFromBytes(dto.TripID[:]); err != nil {
		return nil, err
	}
	if snap.SenderID, err = kernel.UUIDFromBytes(dto.SenderID[:]); err != nil {
		return nil, err
	}
	if snap.TravelerID, err = kernel.UUIDFromBytes(dto.TravelerID[:]); err != nil {
		return nil, err
	}
	if snap.GeneralOrderID, err = optionalUUID(dto.GeneralOrderID); err != nil {
		return nil, err
	}
	if snap.CancellationRequestedBy, err = optionalUUID(dto.CancellationRequestedBy); err != nil {
		return nil, err
	}
	if snap.Shipment, err = shipmentToDomain(dto.Shipment); err != nil {
		return nil, err
	}
	if snap.Price, err = kernel.NewMoney(dto.PriceCents); err != nil {
		return nil, err
	}
	if snap.Status, err = request.ParseStatus(dto.Status); err != nil {
		return nil, err
	}
	if snap.Stage, err = request.ParseStage(dto.Stage); err != nil {
		return nil, err
	}
	if snap.Payment, err = paymentToDomain(dto.PaymentStatus); err != nil {
		return nil, err
	}
	if snap.Proof, err = proofToDomain(dto.Proof); err != nil {
		return nil, err
	}
	if snap.Proposal, err = proposalToDomain(dto.Proposal); err != nil {
		return nil, err
	}

	return request.RestoreRequest(snap)
}

// paymentToDomain maps a NULL payment_status, meaning no proof was ever
// submitted, to Unpaid.
func paymentToDomain(raw *string) (request.PaymentStatus, error) {
	if raw == nil {
		return request.Unpaid, nil
	}
	return request.ParsePaymentStatus(*raw)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func shipmentToDomain(dto ShipmentDTO) (request.Shipment, error) {
	weight, err := kernel.NewWeight(dto.WeightGrams)
	if err != nil {
		return request.Shipment{}, err
	}
	return request.NewShipment(weight, dto.Description, dto.ItemType, request.ItemSize(dto.ItemSize), request.Receiver{
		Name:    dto.ReceiverName,
		Phone:   dto.ReceiverPhone,
		Address: dto.ReceiverAddress,
	})
}

func proofToDomain(dto ProofDTO) (*request.PaymentProof, error) {
	if dto.Method == nil || dto.URL == nil || dto.AmountCents == nil {
		return nil, nil
	}
	amount, err := kernel.NewMoney(*dto.AmountCents)
	if err != nil {
		return nil, err
	}
	proof, err := request.NewPaymentProof(*dto.Method, *dto.URL, amount)
	if err != nil {
		return nil, err
	}
	return &proof, nil
}

func proposalToDomain(dto ProposalDTO) (*request.Proposal, error) {
	if dto.WeightGrams == nil {
		return nil, nil
	}
	weight, err := kernel.NewWeight(*dto.WeightGrams)
	if err != nil {
		return nil, err
	}
	var description string
	if dto.Description != nil {
		description = *dto.Description
	}
	proposal, err := request.NewProposal(weight, description)
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}
