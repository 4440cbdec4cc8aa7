package request_test

import (
	"fmt"
	"testing"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Advance_OnlySingleForwardStep(t *testing.T) {
	everyone := actor.NewParty(kernel.NewUUID(), actor.Sender, actor.Traveler, actor.Admin)

	for _, from := range request.Stages() {
		for _, to := range request.Stages() {
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				req := restoreAt(t, from, []string{"https://files.example/inspection.jpg"})

				err := req.Advance(everyone, to)

				switch {
				case to.Order() == from.Order()+1:
					require.NoError(t, err)
					assert.Equal(t, to, req.Stage())
				case to == request.Completed && to.Order() > from.Order():
					require.ErrorIs(t, err, errs.ErrDeliveryRequired)
					assert.Equal(t, from, req.Stage())
				default:
					require.ErrorIs(t, err, errs.ErrInvalidTransition)
					assert.Equal(t, from, req.Stage())
				}
			})
		}
	}
}

func TestRequest_Advance_RoleGuards(t *testing.T) {
	tests := []struct {
		from    request.Stage
		allowed []actor.Role
		denied  []actor.Role
	}{
		{request.WaitingApproval, []actor.Role{actor.Traveler, actor.Admin}, []actor.Role{actor.Sender}},
		{request.ItemAccepted, []actor.Role{actor.Admin}, []actor.Role{actor.Sender, actor.Traveler}},
		{request.PaymentDone, []actor.Role{actor.Sender}, []actor.Role{actor.Traveler, actor.Admin}},
		{request.SenderPhotosUploaded, []actor.Role{actor.Traveler}, []actor.Role{actor.Sender, actor.Admin}},
		{request.TravelerInspectionComplete, []actor.Role{actor.Traveler}, []actor.Role{actor.Sender}},
		{request.TravelerOnTheWay, []actor.Role{actor.Traveler}, []actor.Role{actor.Sender, actor.Admin}},
		{request.Delivered, []actor.Role{actor.Sender}, []actor.Role{actor.Traveler, actor.Admin}},
	}

	photos := []string{"https://files.example/inspection.jpg"}
	for _, tt := range tests {
		target := request.Stage(tt.from.Order() + 1)
		t.Run(target.String(), func(t *testing.T) {
			for _, role := range tt.allowed {
				req := restoreAt(t, tt.from, photos)
				require.NoError(t, req.Advance(actor.NewParty(kernel.NewUUID(), role), target), role.String())
			}
			for _, role := range tt.denied {
				req := restoreAt(t, tt.from, photos)
				err := req.Advance(actor.NewParty(kernel.NewUUID(), role), target)
				require.ErrorIs(t, err, errs.ErrNotAuthorized, role.String())
			}
		})
	}
}

func TestRequest_Advance_Preconditions(t *testing.T) {
	t.Run("on the way needs inspection photos", func(t *testing.T) {
		req := restoreAt(t, request.TravelerInspectionComplete, nil)

		err := req.Advance(actor.NewParty(kernel.NewUUID(), actor.Traveler), request.TravelerOnTheWay)

		require.ErrorIs(t, err, errs.ErrInspectionRequired)
	})

	t.Run("completed needs delivered", func(t *testing.T) {
		req := restoreAt(t, request.TravelerOnTheWay, nil)

		err := req.Advance(actor.NewParty(kernel.NewUUID(), actor.Sender), request.Completed)

		require.ErrorIs(t, err, errs.ErrDeliveryRequired)
	})

	t.Run("pending request cannot be tracked", func(t *testing.T) {
		f := newPending(t)

		require.ErrorIs(t, f.req.Advance(f.traveler, request.ItemAccepted), errs.ErrInvalidTransition)
	})

	t.Run("payment gated stages", func(t *testing.T) {
		for _, payment := range []request.PaymentStatus{request.Unpaid, request.PendingReview, request.PaymentRejected} {
			for _, from := range []request.Stage{request.ItemAccepted, request.PaymentDone, request.SenderPhotosUploaded} {
				req := restoreWithPayment(t, from, payment)
				target := request.Stage(from.Order() + 1)

				err := req.Advance(actor.NewParty(kernel.NewUUID(), actor.Sender, actor.Traveler, actor.Admin), target)

				require.ErrorIs(t, err, errs.ErrPaymentRequired, "%s -> %s with %s", from, target, payment)
			}
		}
	})

	t.Run("skips report the transition before any precondition", func(t *testing.T) {
		everyone := actor.NewParty(kernel.NewUUID(), actor.Sender, actor.Traveler, actor.Admin)
		tests := []struct {
			from, to request.Stage
		}{
			{request.ItemAccepted, request.TravelerInspectionComplete},
			{request.ItemAccepted, request.TravelerOnTheWay},
			{request.WaitingApproval, request.SenderPhotosUploaded},
			{request.SenderPhotosUploaded, request.TravelerOnTheWay},
		}
		for _, tt := range tests {
			req := restoreWithPayment(t, tt.from, request.Unpaid)

			err := req.Advance(everyone, tt.to)

			require.ErrorIs(t, err, errs.ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
			assert.NotErrorIs(t, err, errs.ErrPaymentRequired)
			assert.NotErrorIs(t, err, errs.ErrInspectionRequired)
			assert.Equal(t, tt.from, req.Stage())
		}

		noPhotos := restoreAt(t, request.SenderPhotosUploaded, nil)
		err := noPhotos.Advance(everyone, request.TravelerOnTheWay)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.NotErrorIs(t, err, errs.ErrInspectionRequired)
	})

	t.Run("invalid target", func(t *testing.T) {
		req := restoreAt(t, request.ItemAccepted, nil)

		require.ErrorIs(t, req.Advance(actor.NewParty(kernel.NewUUID(), actor.Admin), request.UnknownStage), errs.ErrValueIsInvalid)
	})
}

func TestRequest_DeliveredThenCompleted(t *testing.T) {
	f := newAccepted(t)
	_, err := f.req.ReconcileTracking()
	require.NoError(t, err)
	proof, _ := request.NewPaymentProof("card", "https://files.example/p.png", kernel.Money{})
	require.NoError(t, f.req.SubmitProof(f.sender, proof))
	require.NoError(t, f.req.ReviewProof(f.admin, true))
	require.NoError(t, f.req.SubmitItemPhotosAndAdvance(f.sender, []string{"https://files.example/item.jpg"}))
	require.NoError(t, f.req.SubmitInspectionAndAdvance(f.traveler, []string{"https://files.example/insp.jpg"}))
	require.NoError(t, f.req.Advance(f.traveler, request.TravelerOnTheWay))
	require.NoError(t, f.req.Advance(f.traveler, request.Delivered))

	require.NoError(t, f.req.Advance(f.sender, request.Completed))
	assert.Equal(t, request.Completed, f.req.Stage())

	require.ErrorIs(t, f.req.Advance(f.traveler, request.Delivered), errs.ErrInvalidTransition)
	require.ErrorIs(t, f.req.Advance(f.traveler, request.Completed), errs.ErrInvalidTransition)
}

func TestRequest_CompoundPhotoOperations(t *testing.T) {
	photo := []string{"https://files.example/a.jpg"}

	t.Run("payment gate regardless of photo count", func(t *testing.T) {
		for _, payment := range []request.PaymentStatus{request.Unpaid, request.PendingReview, request.PaymentRejected} {
			req := restoreWithPayment(t, request.PaymentDone, payment)
			party := actor.NewParty(kernel.NewUUID(), actor.Sender, actor.Traveler)

			require.ErrorIs(t, req.SubmitItemPhotosAndAdvance(party, photo), errs.ErrPaymentRequired)
			require.ErrorIs(t, req.SubmitInspectionAndAdvance(party, photo), errs.ErrPaymentRequired)
			require.ErrorIs(t, req.SubmitItemPhotosAndAdvance(party, nil), errs.ErrPaymentRequired)
			assert.Len(t, req.SenderPhotos(), 1)
			assert.Len(t, req.InspectionPhotos(), 1)
		}
	})

	t.Run("item photos move to sender_photos_uploaded", func(t *testing.T) {
		f := newPaid(t)

		require.NoError(t, f.req.SubmitItemPhotosAndAdvance(f.sender, photo))

		assert.Equal(t, request.SenderPhotosUploaded, f.req.Stage())
		assert.Equal(t, photo, f.req.SenderPhotos())
	})

	t.Run("inspection first waits for item photos", func(t *testing.T) {
		f := newPaid(t)

		require.NoError(t, f.req.SubmitInspectionAndAdvance(f.traveler, photo))
		assert.Equal(t, request.PaymentDone, f.req.Stage())

		require.NoError(t, f.req.SubmitItemPhotosAndAdvance(f.sender, photo))
		assert.Equal(t, request.TravelerInspectionComplete, f.req.Stage(), "both photo sets present allows two steps")
	})

	t.Run("roles", func(t *testing.T) {
		f := newPaid(t)

		require.ErrorIs(t, f.req.SubmitItemPhotosAndAdvance(f.traveler, photo), errs.ErrNotAuthorized)
		require.ErrorIs(t, f.req.SubmitInspectionAndAdvance(f.sender, photo), errs.ErrNotAuthorized)
	})

	t.Run("wrong stage", func(t *testing.T) {
		req := restoreAt(t, request.TravelerOnTheWay, photo)
		party := actor.NewParty(kernel.NewUUID(), actor.Sender)

		require.ErrorIs(t, req.SubmitItemPhotosAndAdvance(party, photo), errs.ErrInvalidTransition)
	})

	t.Run("empty upload", func(t *testing.T) {
		f := newPaid(t)

		require.ErrorIs(t, f.req.SubmitItemPhotosAndAdvance(f.sender, []string{""}), errs.ErrValueIsRequired)
		assert.Equal(t, request.PaymentDone, f.req.Stage())
	})
}

func restoreWithPayment(t *testing.T, stage request.Stage, payment request.PaymentStatus) *request.Request {
	t.Helper()
	req, err := request.RestoreRequest(request.Snapshot{
		ID:               kernel.NewUUID(),
		TripID:           kernel.NewUUID(),
		SenderID:         kernel.NewUUID(),
		TravelerID:       kernel.NewUUID(),
		Shipment:         newShipment(t, 1000),
		Status:           request.Accepted,
		Stage:            stage,
		Payment:          payment,
		SenderPhotos:     []string{"https://files.example/item.jpg"},
		InspectionPhotos: []string{"https://files.example/insp.jpg"},
		Version:          3,
	})
	require.NoError(t, err)
	return req
}
