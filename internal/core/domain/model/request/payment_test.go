package request_test

import (
	"testing"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentStatus_Transitions(t *testing.T) {
	next, err := request.Unpaid.Submit()
	require.NoError(t, err)
	assert.Equal(t, request.PendingReview, next)

	_, err = request.PendingReview.Submit()
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	_, err = request.Paid.Submit()
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	next, err = request.PaymentRejected.Submit()
	require.NoError(t, err)
	assert.Equal(t, request.PendingReview, next)

	next, err = request.PendingReview.Review(false)
	require.NoError(t, err)
	assert.Equal(t, request.PaymentRejected, next)

	_, err = request.Unpaid.Review(true)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestParsePaymentStatus(t *testing.T) {
	st, err := request.ParsePaymentStatus("")
	require.NoError(t, err)
	assert.Equal(t, request.Unpaid, st)

	st, err = request.ParsePaymentStatus("pending_review")
	require.NoError(t, err)
	assert.Equal(t, request.PendingReview, st)

	_, err = request.ParsePaymentStatus("refunded")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRequest_SubmitProof(t *testing.T) {
	proof, err := request.NewPaymentProof("bank transfer", "https://files.example/proof.png", kernel.Money{})
	require.NoError(t, err)

	t.Run("sender submits, tracking unchanged", func(t *testing.T) {
		f := newAccepted(t)

		require.NoError(t, f.req.SubmitProof(f.sender, proof))

		assert.Equal(t, request.PendingReview, f.req.PaymentStatus())
		assert.Equal(t, request.WaitingApproval, f.req.Stage())
		require.NotNil(t, f.req.PaymentProof())
		assert.Equal(t, "bank transfer", f.req.PaymentProof().Method())
	})

	t.Run("traveler cannot submit", func(t *testing.T) {
		f := newAccepted(t)

		require.ErrorIs(t, f.req.SubmitProof(f.traveler, proof), errs.ErrNotAuthorized)
	})

	t.Run("pending request", func(t *testing.T) {
		f := newPending(t)

		require.ErrorIs(t, f.req.SubmitProof(f.sender, proof), errs.ErrInvalidTransition)
	})

	t.Run("resubmission after rejection", func(t *testing.T) {
		f := newAccepted(t)
		require.NoError(t, f.req.SubmitProof(f.sender, proof))
		require.ErrorIs(t, f.req.SubmitProof(f.sender, proof), errs.ErrInvalidTransition)
		require.NoError(t, f.req.ReviewProof(f.admin, false))

		require.NoError(t, f.req.SubmitProof(f.sender, proof))
		assert.Equal(t, request.PendingReview, f.req.PaymentStatus())
	})

	t.Run("proof needs method and url", func(t *testing.T) {
		_, err := request.NewPaymentProof(" ", "", kernel.Money{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "payment method")
		assert.Contains(t, err.Error(), "payment proof url")
	})
}

func TestRequest_ReviewProof(t *testing.T) {
	proof, _ := request.NewPaymentProof("card", "https://files.example/proof.png", kernel.Money{})

	t.Run("approval force-advances to payment_done", func(t *testing.T) {
		f := newAccepted(t)
		require.NoError(t, f.req.SubmitProof(f.sender, proof))

		require.NoError(t, f.req.ReviewProof(f.admin, true))

		assert.Equal(t, request.Paid, f.req.PaymentStatus())
		assert.Equal(t, request.PaymentDone, f.req.Stage())
	})

	t.Run("approval never moves tracking backwards", func(t *testing.T) {
		req := restoreWithPayment(t, request.SenderPhotosUploaded, request.PendingReview)

		require.NoError(t, req.ReviewProof(newAccepted(t).admin, true))

		assert.Equal(t, request.SenderPhotosUploaded, req.Stage())
	})

	t.Run("rejection leaves tracking", func(t *testing.T) {
		f := newAccepted(t)
		require.NoError(t, f.req.SubmitProof(f.sender, proof))

		require.NoError(t, f.req.ReviewProof(f.admin, false))

		assert.Equal(t, request.PaymentRejected, f.req.PaymentStatus())
		assert.Equal(t, request.WaitingApproval, f.req.Stage())
	})

	t.Run("admin only", func(t *testing.T) {
		f := newAccepted(t)
		require.NoError(t, f.req.SubmitProof(f.sender, proof))

		require.ErrorIs(t, f.req.ReviewProof(f.traveler, true), errs.ErrNotAuthorized)
		require.ErrorIs(t, f.req.ReviewProof(f.sender, true), errs.ErrNotAuthorized)
	})

	t.Run("nothing under review", func(t *testing.T) {
		f := newAccepted(t)

		require.ErrorIs(t, f.req.ReviewProof(f.admin, true), errs.ErrInvalidTransition)
	})
}

func TestStage(t *testing.T) {
	assert.Len(t, request.Stages(), 8)
	assert.Equal(t, 1, request.WaitingApproval.Order())
	assert.Equal(t, 8, request.Completed.Order())

	st, err := request.ParseStage("traveler_on_the_way")
	require.NoError(t, err)
	assert.Equal(t, request.TravelerOnTheWay, st)

	_, err = request.ParseStage("lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
