package request_test

import (
	"testing"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	req      *request.Request
	sender   actor.Party
	traveler actor.Party
	admin    actor.Party
	stranger actor.Party
}

func newShipment(t *testing.T, grams int64) request.Shipment {
	t.Helper()
	s, err := request.NewShipment(kernel.MustWeight(grams), "books", "documents", request.SizeSmall,
		request.Receiver{Name: "Ani", Phone: "+37499000000", Address: "Yerevan, Abovyan 1"})
	require.NoError(t, err)
	return s
}

func newPending(t *testing.T) fixture {
	t.Helper()
	senderID := kernel.NewUUID()
	travelerID := kernel.NewUUID()

	req, err := request.NewRequest(kernel.NewUUID(), kernel.NewUUID(), senderID, travelerID,
		newShipment(t, 3000), kernel.Money{}, nil)
	require.NoError(t, err)

	return fixture{
		req:      req,
		sender:   actor.Resolve(senderID, false, senderID, travelerID),
		traveler: actor.Resolve(travelerID, false, senderID, travelerID),
		admin:    actor.Resolve(kernel.NewUUID(), true, senderID, travelerID),
		stranger: actor.Resolve(kernel.NewUUID(), false, senderID, travelerID),
	}
}

func newAccepted(t *testing.T) fixture {
	t.Helper()
	f := newPending(t)
	require.NoError(t, f.req.Accept(f.traveler))
	return f
}

// newPaid returns an accepted request whose payment was approved, which puts
// tracking at payment_done.
func newPaid(t *testing.T) fixture {
	t.Helper()
	f := newAccepted(t)
	proof, err := request.NewPaymentProof("bank transfer", "https://files.example/proof.png", kernel.Money{})
	require.NoError(t, err)
	require.NoError(t, f.req.SubmitProof(f.sender, proof))
	require.NoError(t, f.req.ReviewProof(f.admin, true))
	require.Equal(t, request.PaymentDone, f.req.Stage())
	return f
}

// restoreAt rebuilds a paid, accepted request at an arbitrary stage.
func restoreAt(t *testing.T, stage request.Stage, inspectionPhotos []string) *request.Request {
	t.Helper()
	req, err := request.RestoreRequest(request.Snapshot{
		ID:               kernel.NewUUID(),
		TripID:           kernel.NewUUID(),
		SenderID:         kernel.NewUUID(),
		TravelerID:       kernel.NewUUID(),
		Shipment:         newShipment(t, 1000),
		Status:           request.Accepted,
		Stage:            stage,
		Payment:          request.Paid,
		InspectionPhotos: inspectionPhotos,
		Version:          7,
	})
	require.NoError(t, err)
	return req
}
