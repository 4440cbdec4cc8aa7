package commands_test

import (
	"context"
	"testing"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/event"
	"parcel/internal/core/domain/model/generalorder"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/domain/model/trip"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTripRepository struct{ mock.Mock }

func (m *MockTripRepository) Add(ctx context.Context, t *trip.Trip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Delete(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockRequestRepository) GetAwaitingTrackingReconciliation(ctx context.Context, limit int) ([]*request.Request, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.Request), args.Error(1)
}

type MockGeneralOrderRepository struct{ mock.Mock }

func (m *MockGeneralOrderRepository) Add(ctx context.Context, o *generalorder.GeneralOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockGeneralOrderRepository) Update(
	ctx context.Context,
	o *generalorder.GeneralOrder,
	expected generalorder.Status,
) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockGeneralOrderRepository) Get(ctx context.Context, id kernel.UUID) (*generalorder.GeneralOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generalorder.GeneralOrder), args.Error(1)
}

type MockCapacityLedger struct{ mock.Mock }

func (m *MockCapacityLedger) Reserve(ctx context.Context, tripID, requestID kernel.UUID, weight kernel.Weight) error {
	args := m.Called(ctx, tripID, requestID, weight)
	return args.Error(0)
}

func (m *MockCapacityLedger) Held(ctx context.Context, tripID kernel.UUID) (kernel.Weight, error) {
	args := m.Called(ctx, tripID)
	return args.Get(0).(kernel.Weight), args.Error(1)
}

type MockEventOutbox struct{ mock.Mock }

func (m *MockEventOutbox) Append(ctx context.Context, events ...event.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventOutbox) Pending(ctx context.Context, limit int) ([]event.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Event), args.Error(1)
}

func (m *MockEventOutbox) MarkDelivered(ctx context.Context, ids ...kernel.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

type MockIdentityProvider struct{ mock.Mock }

func (m *MockIdentityProvider) IsAdmin(ctx context.Context, actorID kernel.UUID) (bool, error) {
	args := m.Called(ctx, actorID)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, e event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) TripRepository() ports.TripRepository {
	args := m.Called()
	return args.Get(0).(ports.TripRepository)
}

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	args := m.Called()
	return args.Get(0).(ports.RequestRepository)
}

func (m *MockUoW) GeneralOrderRepository() ports.GeneralOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.GeneralOrderRepository)
}

func (m *MockUoW) CapacityLedger() ports.CapacityLedger {
	args := m.Called()
	return args.Get(0).(ports.CapacityLedger)
}

func (m *MockUoW) EventOutbox() ports.EventOutbox {
	args := m.Called()
	return args.Get(0).(ports.EventOutbox)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockTripUoWFactory struct{ mock.Mock }

func (m *MockTripUoWFactory) Create() commands.TripUoW {
	args := m.Called()
	return args.Get(0).(commands.TripUoW)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	args := m.Called()
	return args.Get(0).(commands.RequestUoW)
}

type MockGeneralOrderUoWFactory struct{ mock.Mock }

func (m *MockGeneralOrderUoWFactory) Create() commands.GeneralOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.GeneralOrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

// parties holds the ids of one sender/traveler pair.
type parties struct {
	sender   kernel.UUID
	traveler kernel.UUID
}

func newParties() parties {
	return parties{sender: kernel.NewUUID(), traveler: kernel.NewUUID()}
}

func newTrip(t *testing.T, p parties, capacityGrams, freeGrams int64) *trip.Trip {
	t.Helper()
	route, err := kernel.NewRoute("Berlin", "Yerevan")
	require.NoError(t, err)
	price, err := kernel.NewMoney(1000)
	require.NoError(t, err)

	tr, err := trip.RestoreTrip(kernel.NewUUID(), p.traveler, route, time.Now().Add(72*time.Hour),
		kernel.MustWeight(capacityGrams), kernel.MustWeight(freeGrams), price, time.Now())
	require.NoError(t, err)
	return tr
}

func newShipment(t *testing.T, grams int64) request.Shipment {
	t.Helper()
	s, err := request.NewShipment(kernel.MustWeight(grams), "books", "documents", request.SizeSmall,
		request.Receiver{Name: "Ani", Phone: "+37499000000", Address: "Yerevan, Abovyan 1"})
	require.NoError(t, err)
	return s
}

// restoreRequest rebuilds a request on tr in the given lifecycle state.
func restoreRequest(
	t *testing.T,
	tr *trip.Trip,
	senderID kernel.UUID,
	grams int64,
	status request.Status,
	stage request.Stage,
	payment request.PaymentStatus,
) *request.Request {
	t.Helper()
	req, err := request.RestoreRequest(request.Snapshot{
		ID:         kernel.NewUUID(),
		TripID:     tr.ID(),
		SenderID:   senderID,
		TravelerID: tr.TravelerID(),
		Shipment:   newShipment(t, grams),
		Status:     status,
		Stage:      stage,
		Payment:    payment,
		Version:    1,
	})
	require.NoError(t, err)
	return req
}

func flatPricer() services.FlatRatePricer {
	return services.NewFlatRatePricer(kernel.Money{})
}

func resolveFor(req *request.Request, actorID kernel.UUID) actor.Party {
	return actor.Resolve(actorID, false, req.SenderID(), req.TravelerID())
}

func tomorrow() time.Time {
	return time.Now().Add(24 * time.Hour)
}
