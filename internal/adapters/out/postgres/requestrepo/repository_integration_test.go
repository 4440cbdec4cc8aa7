package requestrepo_test

import (
	"context"
	"testing"

	postgres_adapter "parcel/internal/adapters/out/postgres"
	"parcel/internal/adapters/out/postgres/pgtest"
	"parcel/internal/adapters/out/postgres/requestrepo"
	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type RequestRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *requestrepo.GormRequestRepository
	tracker    *MockAggregateTracker
}

func (suite *RequestRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

func (suite *RequestRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RequestRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + pgtest.Tables).Error)

	suite.tracker = &MockAggregateTracker{}
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = requestrepo.NewGormRequestRepository(suite.db, suite.tracker)
}

type parties struct {
	sender   actor.Party
	traveler actor.Party
	admin    actor.Party
}

func (suite *RequestRepositoryIntegrationTestSuite) newPending() (*request.Request, parties) {
	senderID, travelerID := kernel.NewUUID(), kernel.NewUUID()
	shipment, err := request.NewShipment(kernel.MustWeight(2500), "winter jacket", "clothes", request.SizeMedium,
		request.Receiver{Name: "Ani", Phone: "+37499000000", Address: "Yerevan, Abovyan 1"})
	suite.Require().NoError(err)
	price, err := kernel.NewMoney(4200)
	suite.Require().NoError(err)

	req, err := request.NewRequest(kernel.NewUUID(), kernel.NewUUID(), senderID, travelerID, shipment, price, nil)
	suite.Require().NoError(err)

	return req, parties{
		sender:   actor.Resolve(senderID, false, senderID, travelerID),
		traveler: actor.Resolve(travelerID, false, senderID, travelerID),
		admin:    actor.Resolve(kernel.NewUUID(), true, senderID, travelerID),
	}
}

func (suite *RequestRepositoryIntegrationTestSuite) paymentStatusIsNull(id kernel.UUID) bool {
	var isNull bool
	suite.Require().NoError(suite.db.Raw(
		"SELECT payment_status IS NULL FROM requests WHERE id = ?", id.String()).Scan(&isNull).Error)
	return isNull
}

func (suite *RequestRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	req, _ := suite.newPending()

	suite.Require().NoError(suite.repository.Add(ctx, req))

	got, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)
	suite.Equal(req.ID(), got.ID())
	suite.Equal(req.SenderID(), got.SenderID())
	suite.Equal(request.Pending, got.Status())
	suite.Equal(request.WaitingApproval, got.Stage())
	suite.Equal(request.Unpaid, got.PaymentStatus())
	suite.True(suite.paymentStatusIsNull(req.ID()))
	suite.Equal(int64(2500), got.Shipment().Weight().Grams())
	suite.Equal(request.SizeMedium, got.Shipment().ItemSize())
	suite.Equal("Ani", got.Shipment().Receiver().Name)
	suite.Equal(int64(4200), got.Price().Cents())
	suite.Equal(int64(1), got.Version())
	suite.Nil(got.PaymentProof())
	_, hasProposal := got.PendingProposal()
	suite.False(hasProposal)
}

func (suite *RequestRepositoryIntegrationTestSuite) TestUpdate_PersistsLifecycleState() {
	ctx := context.Background()
	req, p := suite.newPending()
	suite.Require().NoError(suite.repository.Add(ctx, req))

	suite.Require().NoError(req.Accept(p.traveler))
	_, err := req.ReconcileTracking()
	suite.Require().NoError(err)
	amount, err := kernel.NewMoney(4200)
	suite.Require().NoError(err)
	proof, err := request.NewPaymentProof("card", "https://files.example/receipt.pdf", amount)
	suite.Require().NoError(err)
	suite.Require().NoError(req.SubmitProof(p.sender, proof))
	suite.Require().NoError(req.ReviewProof(p.admin, true))
	suite.Require().NoError(req.SubmitItemPhotosAndAdvance(p.sender,
		[]string{"https://files.example/a.jpg", "https://files.example/b.jpg"}))

	suite.Require().NoError(suite.repository.Update(ctx, req))
	suite.Equal(int64(2), req.Version())

	got, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)
	suite.Equal(request.Accepted, got.Status())
	suite.Equal(request.SenderPhotosUploaded, got.Stage())
	suite.Equal(request.Paid, got.PaymentStatus())
	suite.False(suite.paymentStatusIsNull(req.ID()))
	suite.Require().NotNil(got.PaymentProof())
	suite.Equal("card", got.PaymentProof().Method())
	suite.Equal([]string{"https://files.example/a.jpg", "https://files.example/b.jpg"}, got.SenderPhotos())
	suite.Equal(int64(2), got.Version())
}

func (suite *RequestRepositoryIntegrationTestSuite) TestUpdate_ClearsProposal() {
	ctx := context.Background()
	req, p := suite.newPending()
	proposal, err := request.NewProposal(kernel.MustWeight(1800), "lighter jacket")
	suite.Require().NoError(err)
	suite.Require().NoError(req.Propose(p.sender, proposal))
	suite.Require().NoError(suite.repository.Add(ctx, req))

	stored, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)
	pending, ok := stored.PendingProposal()
	suite.Require().True(ok)
	suite.Equal(int64(1800), pending.Weight().Grams())

	suite.Require().NoError(stored.RejectProposal(p.traveler))
	suite.Require().NoError(suite.repository.Update(ctx, stored))

	got, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)
	_, ok = got.PendingProposal()
	suite.False(ok)
	suite.Equal(int64(2500), got.Shipment().Weight().Grams())
}

func (suite *RequestRepositoryIntegrationTestSuite) TestUpdate_StaleVersionConflicts() {
	ctx := context.Background()
	req, p := suite.newPending()
	suite.Require().NoError(suite.repository.Add(ctx, req))

	first, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Accept(p.traveler))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Reject(p.traveler))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	got, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)
	suite.Equal(request.Accepted, got.Status())
}

func (suite *RequestRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	req, _ := suite.newPending()
	suite.Require().NoError(suite.repository.Add(ctx, req))

	stale, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, req))

	suite.Require().ErrorIs(suite.repository.Delete(ctx, stale), errs.ErrConflict)
	suite.Require().NoError(suite.repository.Delete(ctx, req))

	_, err = suite.repository.Get(ctx, req.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, req), errs.ErrObjectNotFound)
}

func (suite *RequestRepositoryIntegrationTestSuite) TestGetAwaitingTrackingReconciliation() {
	ctx := context.Background()

	stuck, p := suite.newPending()
	suite.Require().NoError(stuck.Accept(p.traveler))
	suite.Require().NoError(suite.repository.Add(ctx, stuck))

	done, p2 := suite.newPending()
	suite.Require().NoError(done.Accept(p2.traveler))
	_, err := done.ReconcileTracking()
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, done))

	pending, _ := suite.newPending()
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	got, err := suite.repository.GetAwaitingTrackingReconciliation(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(stuck.ID(), got[0].ID())
}

func TestRequestRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RequestRepositoryIntegrationTestSuite))
}
