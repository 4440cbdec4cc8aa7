package queries

import (
	"context"
	"database/sql"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetRequestQueryHandler reads a request joined with its trip. The admin
// flag of the viewer is read in the same statement.
type GetRequestQueryHandler struct {
	db *gorm.DB
}

func NewGetRequestQueryHandler(db *gorm.DB) GetRequestQueryHandler {
	return GetRequestQueryHandler{db: db}
}

// Handle returns ErrObjectNotFound for unknown requests and
// ErrNotAuthorized when the viewer is neither a party nor an admin.
func (h GetRequestQueryHandler) Handle(ctx context.Context, query GetRequestQuery) (*RequestView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			`+requestColumns+`,
			COALESCE((SELECT p.is_admin FROM profiles p WHERE p.id = ?), false)
		FROM requests r
		JOIN trips t ON t.id = r.trip_id
		WHERE r.id = ?
	`, query.ViewerID().Bytes(), query.RequestID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("request", query.RequestID())
	}

	var isAdmin bool
	view, err := scanRequestView(rows, &isAdmin)
	if err != nil {
		return nil, err
	}

	viewer := query.ViewerID()
	if !isAdmin && !viewer.IsEqual(view.SenderID) && !viewer.IsEqual(view.TravelerID) {
		return nil, errs.NewNotAuthorizedError(viewer.String(), "view request", "sender, traveler or admin")
	}

	return view, nil
}

// requestColumns is shared by every query returning RequestView; the order
// matches scanRequestView.
const requestColumns = `
			r.id,
			r.trip_id,
			r.sender_id,
			r.traveler_id,
			r.general_order_id,
			t.route_origin,
			t.route_destination,
			t.departure_at,
			r.weight_grams,
			r.description,
			r.item_type,
			r.item_size,
			r.receiver_name,
			r.receiver_phone,
			r.receiver_address,
			r.price_cents,
			r.status,
			r.stage,
			r.payment_status,
			r.proof_method,
			r.proof_url,
			r.proof_amount_cents,
			r.proposed_weight_grams,
			r.proposed_description,
			r.cancellation_requested_by,
			r.sender_photos,
			r.inspection_photos,
			r.version,
			r.updated_at`

func scanRequestView(rows *sql.Rows, extra ...any) (*RequestView, error) {
	var (
		v                                RequestView
		id, tripID, senderID, travelerID uuid.UUID
		generalOrderID, cancelledBy      *uuid.UUID
		origin, destination              string
		departureAt, updatedAt           time.Time
		weightGrams, priceCents          int64
		proofMethod, proofURL            sql.NullString
		proofAmount, proposedWeight      sql.NullInt64
		proposedDescription, payment     sql.NullString
		senderPhotos, inspectionPhotos   pq.StringArray
	)

	dest := []any{
		&id, &tripID, &senderID, &travelerID, &generalOrderID,
		&origin, &destination, &departureAt,
		&weightGrams, &v.Description, &v.ItemType, &v.ItemSize,
		&v.Receiver.Name, &v.Receiver.Phone, &v.Receiver.Address,
		&priceCents, &v.Status, &v.Stage, &payment,
		&proofMethod, &proofURL, &proofAmount,
		&proposedWeight, &proposedDescription,
		&cancelledBy, &senderPhotos, &inspectionPhotos,
		&v.Version, &updatedAt,
	}
	if err := rows.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	var err error
	if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if v.TripID, err = kernel.UUIDFromBytes(tripID[:]); err != nil {
		return nil, err
	}
	if v.SenderID, err = kernel.UUIDFromBytes(senderID[:]); err != nil {
		return nil, err
	}
	if v.TravelerID, err = kernel.UUIDFromBytes(travelerID[:]); err != nil {
		return nil, err
	}
	if v.GeneralOrderID, err = optionalUUID(generalOrderID); err != nil {
		return nil, err
	}
	if v.CancellationRequestedBy, err = optionalUUID(cancelledBy); err != nil {
		return nil, err
	}
	if v.Route, err = kernel.NewRoute(origin, destination); err != nil {
		return nil, err
	}
	if v.Weight, err = kernel.NewWeight(weightGrams); err != nil {
		return nil, err
	}
	if v.Price, err = kernel.NewMoney(priceCents); err != nil {
		return nil, err
	}

	v.PaymentStatus = request.Unpaid.String()
	if payment.Valid {
		v.PaymentStatus = payment.String
	}

	if proofMethod.Valid && proofURL.Valid {
		amount, amountErr := kernel.NewMoney(proofAmount.Int64)
		if amountErr != nil {
			return nil, amountErr
		}
		v.Proof = &ProofView{Method: proofMethod.String, URL: proofURL.String, Amount: amount}
	}
	if proposedWeight.Valid {
		weight, weightErr := kernel.NewWeight(proposedWeight.Int64)
		if weightErr != nil {
			return nil, weightErr
		}
		v.Proposal = &ProposalView{Weight: weight, Description: proposedDescription.String}
	}

	v.DepartureAt = departureAt
	v.UpdatedAt = updatedAt
	v.SenderPhotos = append([]string{}, senderPhotos...)
	v.InspectionPhotos = append([]string{}, inspectionPhotos...)

	return &v, nil
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	v, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &v, nil
}
