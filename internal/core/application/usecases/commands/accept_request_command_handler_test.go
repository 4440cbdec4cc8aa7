package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptRequestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	p := newParties()
	tr := newTrip(t, p, 5000, 5000)
	req := restoreRequest(t, tr, p.sender, 3000, request.Pending, request.WaitingApproval, request.Unpaid)
	cmd, err := commands.NewAcceptRequestCommand(req.ID(), p.traveler)
	require.NoError(t, err)

	requests := new(MockRequestRepository)
	trips := new(MockTripRepository)
	ledger := new(MockCapacityLedger)
	identity := new(MockIdentityProvider)

	acceptUoW := new(MockUoW)
	mock.InOrder(
		acceptUoW.On("Begin", ctx).Return(nil).Once(),
		acceptUoW.On("RequestRepository").Return(requests).Once(),
		requests.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		acceptUoW.On("TripRepository").Return(trips).Once(),
		trips.On("Get", ctx, tr.ID()).Return(tr, nil).Once(),
		identity.On("IsAdmin", ctx, p.traveler).Return(false, nil).Once(),
		acceptUoW.On("CapacityLedger").Return(ledger).Once(),
		ledger.On("Reserve", ctx, tr.ID(), req.ID(), kernel.MustWeight(3000)).Return(nil).Once(),
		acceptUoW.On("Commit", ctx).Return(nil).Once(),
		acceptUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	requests.On("Update", ctx, req).Return(nil).Twice()

	trackingUoW := new(MockUoW)
	mock.InOrder(
		trackingUoW.On("Begin", ctx).Return(nil).Once(),
		trackingUoW.On("RequestRepository").Return(requests).Once(),
		requests.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		trackingUoW.On("Commit", ctx).Return(nil).Once(),
		trackingUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(acceptUoW).Once()
	factory.On("Create").Return(trackingUoW).Once()

	h := commands.NewAcceptRequestCommandHandler(factory, identity, slog.New(slog.DiscardHandler))
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, result.TrackingWarning)
	assert.Equal(t, request.Accepted, result.Request.Status())
	assert.Equal(t, request.ItemAccepted, result.Request.Stage())
	assert.Equal(t, int64(2000), tr.Free().Grams())
	requests.AssertExpectations(t)
	trips.AssertExpectations(t)
	ledger.AssertExpectations(t)
	acceptUoW.AssertExpectations(t)
	trackingUoW.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAcceptRequestCommandHandler_Handle_TrackingStepFailsWithWarning(t *testing.T) {
	ctx := t.Context()
	p := newParties()
	tr := newTrip(t, p, 5000, 5000)
	req := restoreRequest(t, tr, p.sender, 3000, request.Pending, request.WaitingApproval, request.Unpaid)
	cmd, err := commands.NewAcceptRequestCommand(req.ID(), p.traveler)
	require.NoError(t, err)

	requests := new(MockRequestRepository)
	trips := new(MockTripRepository)
	ledger := new(MockCapacityLedger)
	identity := new(MockIdentityProvider)
	identity.On("IsAdmin", ctx, p.traveler).Return(false, nil).Once()
	requests.On("Get", ctx, req.ID()).Return(req, nil).Twice()
	trips.On("Get", ctx, tr.ID()).Return(tr, nil).Once()
	ledger.On("Reserve", ctx, tr.ID(), req.ID(), mock.Anything).Return(nil).Once()
	requests.On("Update", ctx, req).Return(nil).Once()
	requests.On("Update", ctx, req).Return(errs.NewConflictError("request", req.ID())).Once()

	acceptUoW := new(MockUoW)
	acceptUoW.On("Begin", ctx).Return(nil).Once()
	acceptUoW.On("RequestRepository").Return(requests).Once()
	acceptUoW.On("TripRepository").Return(trips).Once()
	acceptUoW.On("CapacityLedger").Return(ledger).Once()
	acceptUoW.On("Commit", ctx).Return(nil).Once()
	acceptUoW.On("Rollback", ctx).Return(nil).Once()

	trackingUoW := new(MockUoW)
	trackingUoW.On("Begin", ctx).Return(nil).Once()
	trackingUoW.On("RequestRepository").Return(requests).Once()
	trackingUoW.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(acceptUoW).Once()
	factory.On("Create").Return(trackingUoW).Once()

	h := commands.NewAcceptRequestCommandHandler(factory, identity, slog.New(slog.DiscardHandler))
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.ErrorIs(t, result.TrackingWarning, errs.ErrConflict)
	assert.Equal(t, request.Accepted, result.Request.Status())
	trackingUoW.AssertNotCalled(t, "Commit", ctx)
	factory.AssertExpectations(t)
}

func TestAcceptRequestCommandHandler_Handle_LedgerRefusesCapacity(t *testing.T) {
	ctx := t.Context()
	p := newParties()
	tr := newTrip(t, p, 5000, 5000)
	req := restoreRequest(t, tr, p.sender, 3000, request.Pending, request.WaitingApproval, request.Unpaid)
	cmd, err := commands.NewAcceptRequestCommand(req.ID(), p.traveler)
	require.NoError(t, err)

	requests := new(MockRequestRepository)
	trips := new(MockTripRepository)
	ledger := new(MockCapacityLedger)
	identity := new(MockIdentityProvider)
	identity.On("IsAdmin", ctx, p.traveler).Return(false, nil).Once()
	requests.On("Get", ctx, req.ID()).Return(req, nil).Once()
	trips.On("Get", ctx, tr.ID()).Return(tr, nil).Once()
	ledger.On("Reserve", ctx, tr.ID(), req.ID(), mock.Anything).
		Return(errs.NewInsufficientCapacityError(tr.ID().String(), 3000, 2000)).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RequestRepository").Return(requests).Once()
	uow.On("TripRepository").Return(trips).Once()
	uow.On("CapacityLedger").Return(ledger).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptRequestCommandHandler(factory, identity, slog.New(slog.DiscardHandler))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInsufficientCapacity)
	requests.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAcceptRequestCommandHandler_Handle_TripTooFull(t *testing.T) {
	ctx := t.Context()
	p := newParties()
	tr := newTrip(t, p, 5000, 2000)
	req := restoreRequest(t, tr, p.sender, 3000, request.Pending, request.WaitingApproval, request.Unpaid)
	cmd, err := commands.NewAcceptRequestCommand(req.ID(), p.traveler)
	require.NoError(t, err)

	requests := new(MockRequestRepository)
	trips := new(MockTripRepository)
	identity := new(MockIdentityProvider)
	identity.On("IsAdmin", ctx, p.traveler).Return(false, nil).Once()
	requests.On("Get", ctx, req.ID()).Return(req, nil).Once()
	trips.On("Get", ctx, tr.ID()).Return(tr, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RequestRepository").Return(requests).Once()
	uow.On("TripRepository").Return(trips).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptRequestCommandHandler(factory, identity, slog.New(slog.DiscardHandler))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInsufficientCapacity)
	assert.Equal(t, request.Pending, req.Status())
	uow.AssertNotCalled(t, "CapacityLedger")
}

func TestAcceptRequestCommandHandler_Handle_SenderCannotAccept(t *testing.T) {
	ctx := t.Context()
	p := newParties()
	tr := newTrip(t, p, 5000, 5000)
	req := restoreRequest(t, tr, p.sender, 1000, request.Pending, request.WaitingApproval, request.Unpaid)
	cmd, err := commands.NewAcceptRequestCommand(req.ID(), p.sender)
	require.NoError(t, err)

	requests := new(MockRequestRepository)
	trips := new(MockTripRepository)
	identity := new(MockIdentityProvider)
	identity.On("IsAdmin", ctx, p.sender).Return(false, nil).Once()
	requests.On("Get", ctx, req.ID()).Return(req, nil).Once()
	trips.On("Get", ctx, tr.ID()).Return(tr, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RequestRepository").Return(requests).Once()
	uow.On("TripRepository").Return(trips).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptRequestCommandHandler(factory, identity, slog.New(slog.DiscardHandler))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}

func TestAcceptRequestCommandHandler_Handle_ConcurrentWriteConflicts(t *testing.T) {
	ctx := t.Context()
	p := newParties()
	tr := newTrip(t, p, 5000, 5000)
	req := restoreRequest(t, tr, p.sender, 1000, request.Pending, request.WaitingApproval, request.Unpaid)
	cmd, err := commands.NewAcceptRequestCommand(req.ID(), p.traveler)
	require.NoError(t, err)

	requests := new(MockRequestRepository)
	trips := new(MockTripRepository)
	ledger := new(MockCapacityLedger)
	identity := new(MockIdentityProvider)
	identity.On("IsAdmin", ctx, p.traveler).Return(false, nil).Once()
	requests.On("Get", ctx, req.ID()).Return(req, nil).Once()
	trips.On("Get", ctx, tr.ID()).Return(tr, nil).Once()
	ledger.On("Reserve", ctx, tr.ID(), req.ID(), mock.Anything).Return(nil).Once()
	requests.On("Update", ctx, req).Return(errs.NewConflictError("request", req.ID())).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RequestRepository").Return(requests).Once()
	uow.On("TripRepository").Return(trips).Once()
	uow.On("CapacityLedger").Return(ledger).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptRequestCommandHandler(factory, identity, slog.New(slog.DiscardHandler))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestAcceptRequestCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	h := commands.NewAcceptRequestCommandHandler(factory, new(MockIdentityProvider), slog.New(slog.DiscardHandler))

	_, err := h.Handle(t.Context(), commands.AcceptRequestCommand{})

	require.ErrorIs(t, err, commands.ErrAcceptRequestCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptRequestCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAcceptRequestCommand(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptRequestCommandHandler(factory, new(MockIdentityProvider), slog.New(slog.DiscardHandler))
	_, err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
