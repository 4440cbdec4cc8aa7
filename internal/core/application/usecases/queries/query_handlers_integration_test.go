package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "parcel/internal/adapters/out/postgres"
	"parcel/internal/adapters/out/postgres/generalorderrepo"
	"parcel/internal/adapters/out/postgres/pgtest"
	"parcel/internal/adapters/out/postgres/profilerepo"
	"parcel/internal/adapters/out/postgres/requestrepo"
	"parcel/internal/adapters/out/postgres/triprepo"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/generalorder"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/domain/model/trip"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repositories' aggregate tracker; query tests do
// not look at events.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + pgtest.Tables).Error)
}

func (suite *QueryHandlersTestSuite) saveTrip() *trip.Trip {
	route, err := kernel.NewRoute("Berlin", "Yerevan")
	suite.Require().NoError(err)
	price, err := kernel.NewMoney(1000)
	suite.Require().NoError(err)
	t, err := trip.NewTrip(kernel.NewUUID(), kernel.NewUUID(), route, time.Now().Add(48*time.Hour),
		kernel.MustWeight(10000), price)
	suite.Require().NoError(err)

	suite.Require().NoError(triprepo.NewGormTripRepository(suite.db, noopTracker{}).Add(context.Background(), t))
	return t
}

func (suite *QueryHandlersTestSuite) saveRequest(t *trip.Trip, mutate func(*request.Request, actor.Party, actor.Party)) *request.Request {
	ctx := context.Background()
	senderID := kernel.NewUUID()
	shipment, err := request.NewShipment(kernel.MustWeight(1500), "books", "documents", request.SizeSmall,
		request.Receiver{Name: "Ani", Phone: "+37499000000", Address: "Yerevan"})
	suite.Require().NoError(err)
	price, err := kernel.NewMoney(1500)
	suite.Require().NoError(err)
	req, err := request.NewRequest(kernel.NewUUID(), t.ID(), senderID, t.TravelerID(), shipment, price, nil)
	suite.Require().NoError(err)

	repo := requestrepo.NewGormRequestRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(ctx, req))

	if mutate != nil {
		sender := actor.Resolve(senderID, false, senderID, t.TravelerID())
		traveler := actor.Resolve(t.TravelerID(), false, senderID, t.TravelerID())
		mutate(req, sender, traveler)
		suite.Require().NoError(repo.Update(ctx, req))
	}
	return req
}

func (suite *QueryHandlersTestSuite) acceptAndSubmitProof(req *request.Request, sender, traveler actor.Party) {
	suite.Require().NoError(req.Accept(traveler))
	amount, err := kernel.NewMoney(1500)
	suite.Require().NoError(err)
	proof, err := request.NewPaymentProof("bank transfer", "https://files.example/proof.png", amount)
	suite.Require().NoError(err)
	suite.Require().NoError(req.SubmitProof(sender, proof))
}

func (suite *QueryHandlersTestSuite) TestGetRequest_SenderSeesFullView() {
	t := suite.saveTrip()
	req := suite.saveRequest(t, suite.acceptAndSubmitProof)

	query, err := queries.NewGetRequestQuery(req.ID(), req.SenderID())
	suite.Require().NoError(err)

	view, err := queries.NewGetRequestQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(req.ID(), view.ID)
	suite.Equal(t.ID(), view.TripID)
	suite.Equal("Berlin", view.Route.Origin())
	suite.Equal(int64(1500), view.Weight.Grams())
	suite.Equal("accepted", view.Status)
	suite.Equal("waiting_approval", view.Stage)
	suite.Equal("pending_review", view.PaymentStatus)
	suite.Require().NotNil(view.Proof)
	suite.Equal("bank transfer", view.Proof.Method)
	suite.Nil(view.Proposal)
	suite.Nil(view.GeneralOrderID)
	suite.Empty(view.SenderPhotos)
	suite.Equal(int64(2), view.Version)
}

func (suite *QueryHandlersTestSuite) TestGetRequest_StrangerIsRefused() {
	t := suite.saveTrip()
	req := suite.saveRequest(t, nil)

	query, err := queries.NewGetRequestQuery(req.ID(), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetRequestQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrNotAuthorized)
}

func (suite *QueryHandlersTestSuite) TestGetRequest_AdminMaySee() {
	t := suite.saveTrip()
	req := suite.saveRequest(t, nil)
	adminID := kernel.NewUUID()
	suite.Require().NoError(profilerepo.NewGormIdentityProvider(suite.db).SetAdmin(context.Background(), adminID, true))

	query, err := queries.NewGetRequestQuery(req.ID(), adminID)
	suite.Require().NoError(err)

	view, err := queries.NewGetRequestQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal("pending", view.Status)
	suite.Equal("unpaid", view.PaymentStatus)
	suite.Nil(view.Proof)
}

func (suite *QueryHandlersTestSuite) TestGetRequest_NotFound() {
	query, err := queries.NewGetRequestQuery(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetRequestQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestListPaymentReviews_OnlyPendingReview() {
	t := suite.saveTrip()
	waiting := suite.saveRequest(t, suite.acceptAndSubmitProof)
	suite.saveRequest(t, nil)
	suite.saveRequest(t, func(r *request.Request, _, traveler actor.Party) {
		suite.Require().NoError(r.Accept(traveler))
	})

	query, err := queries.NewListPaymentReviewsQuery(10)
	suite.Require().NoError(err)

	views, err := queries.NewListPaymentReviewsQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal(waiting.ID(), views[0].ID)
}

func (suite *QueryHandlersTestSuite) TestListOpenGeneralOrders_FiltersByStatusAndOrigin() {
	ctx := context.Background()
	repo := generalorderrepo.NewGormGeneralOrderRepository(suite.db, noopTracker{})

	newOrder := func(origin string) *generalorder.GeneralOrder {
		route, err := kernel.NewRoute(origin, "Yerevan")
		suite.Require().NoError(err)
		o, err := generalorder.NewGeneralOrder(kernel.NewUUID(), kernel.NewUUID(), route, kernel.MustWeight(800), "tea")
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Add(ctx, o))
		return o
	}

	berlin := newOrder("Berlin")
	newOrder("Paris")
	claimed := newOrder("Berlin")
	suite.Require().NoError(claimed.Claim(kernel.NewUUID()))
	suite.Require().NoError(repo.Update(ctx, claimed, generalorder.New))

	all, err := queries.NewListOpenGeneralOrdersQuery("", 10)
	suite.Require().NoError(err)
	views, err := queries.NewListOpenGeneralOrdersQueryHandler(suite.db).Handle(ctx, all)
	suite.Require().NoError(err)
	suite.Len(views, 2)

	fromBerlin, err := queries.NewListOpenGeneralOrdersQuery("Berlin", 10)
	suite.Require().NoError(err)
	views, err = queries.NewListOpenGeneralOrdersQueryHandler(suite.db).Handle(ctx, fromBerlin)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal(berlin.ID(), views[0].ID)
	suite.Equal(int64(800), views[0].Weight.Grams())
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
