package cmd

import (
	"log/slog"

	"parcel/internal/adapters/out/notifier"
	"parcel/internal/adapters/out/postgres"
	"parcel/internal/adapters/out/postgres/profilerepo"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
	"parcel/internal/jobs"

	httpin "parcel/internal/adapters/in/http"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	identity   ports.IdentityProvider
	pricer     ports.Pricer
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	baseFee, err := kernel.NewMoney(config.PriceBaseFeeCents)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		identity:   profilerepo.NewGormIdentityProvider(gormDB),
		pricer:     services.NewFlatRatePricer(baseFee),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) tripUoW() commands.TripUoWFactory {
	return FuncTripUoWFactory(func() commands.TripUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) requestUoW() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) generalOrderUoW() commands.GeneralOrderUoWFactory {
	return FuncGeneralOrderUoWFactory(func() commands.GeneralOrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) outboxUoW() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) IdentityProvider() *profilerepo.GormIdentityProvider {
	return profilerepo.NewGormIdentityProvider(c.gormDB)
}

func (c *CompositionRoot) CreateCreateTripCommandHandler() commands.CreateTripCommandHandler {
	return commands.NewCreateTripCommandHandler(c.tripUoW())
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.uow(), c.pricer)
}

func (c *CompositionRoot) CreateAcceptRequestCommandHandler() commands.AcceptRequestCommandHandler {
	return commands.NewAcceptRequestCommandHandler(c.uow(), c.identity, c.logger)
}

func (c *CompositionRoot) CreateRejectRequestCommandHandler() commands.RejectRequestCommandHandler {
	return commands.NewRejectRequestCommandHandler(c.requestUoW(), c.identity)
}

func (c *CompositionRoot) CreateCancelPendingRequestCommandHandler() commands.CancelPendingRequestCommandHandler {
	return commands.NewCancelPendingRequestCommandHandler(c.requestUoW(), c.identity)
}

func (c *CompositionRoot) CreateProposeChangesCommandHandler() commands.ProposeChangesCommandHandler {
	return commands.NewProposeChangesCommandHandler(c.requestUoW(), c.identity)
}

func (c *CompositionRoot) CreateResolveProposalCommandHandler() commands.ResolveProposalCommandHandler {
	return commands.NewResolveProposalCommandHandler(c.uow(), c.identity, c.pricer)
}

func (c *CompositionRoot) CreateRequestCancellationCommandHandler() commands.RequestCancellationCommandHandler {
	return commands.NewRequestCancellationCommandHandler(c.requestUoW(), c.identity)
}

func (c *CompositionRoot) CreateAdvanceTrackingCommandHandler() commands.AdvanceTrackingCommandHandler {
	return commands.NewAdvanceTrackingCommandHandler(c.requestUoW(), c.identity)
}

func (c *CompositionRoot) CreateSubmitPhotosCommandHandler() commands.SubmitPhotosCommandHandler {
	return commands.NewSubmitPhotosCommandHandler(c.requestUoW(), c.identity)
}

func (c *CompositionRoot) CreateSubmitPaymentProofCommandHandler() commands.SubmitPaymentProofCommandHandler {
	return commands.NewSubmitPaymentProofCommandHandler(c.requestUoW(), c.identity)
}

func (c *CompositionRoot) CreateReviewPaymentProofCommandHandler() commands.ReviewPaymentProofCommandHandler {
	return commands.NewReviewPaymentProofCommandHandler(c.requestUoW(), c.identity)
}

func (c *CompositionRoot) CreateCreateGeneralOrderCommandHandler() commands.CreateGeneralOrderCommandHandler {
	return commands.NewCreateGeneralOrderCommandHandler(c.generalOrderUoW())
}

func (c *CompositionRoot) CreateGeneralOrderActionCommandHandler() commands.GeneralOrderActionCommandHandler {
	return commands.NewGeneralOrderActionCommandHandler(c.generalOrderUoW(), c.identity)
}

func (c *CompositionRoot) CreateReconcileTrackingCommandHandler() commands.ReconcileTrackingCommandHandler {
	return commands.NewReconcileTrackingCommandHandler(c.requestUoW())
}

func (c *CompositionRoot) CreateRelayEventsCommandHandler() commands.RelayEventsCommandHandler {
	return commands.NewRelayEventsCommandHandler(c.outboxUoW(), notifier.NewLogNotifier(c.logger))
}

func (c *CompositionRoot) CreateGetRequestQueryHandler() queries.GetRequestQueryHandler {
	return queries.NewGetRequestQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPaymentReviewsQueryHandler() queries.ListPaymentReviewsQueryHandler {
	return queries.NewListPaymentReviewsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOpenGeneralOrdersQueryHandler() queries.ListOpenGeneralOrdersQueryHandler {
	return queries.NewListOpenGeneralOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateTrip:           c.CreateCreateTripCommandHandler(),
		CreateRequest:        c.CreateCreateRequestCommandHandler(),
		AcceptRequest:        c.CreateAcceptRequestCommandHandler(),
		RejectRequest:        c.CreateRejectRequestCommandHandler(),
		CancelPending:        c.CreateCancelPendingRequestCommandHandler(),
		ProposeChanges:       c.CreateProposeChangesCommandHandler(),
		ResolveProposal:      c.CreateResolveProposalCommandHandler(),
		RequestCancellation:  c.CreateRequestCancellationCommandHandler(),
		AdvanceTracking:      c.CreateAdvanceTrackingCommandHandler(),
		SubmitPhotos:         c.CreateSubmitPhotosCommandHandler(),
		SubmitPaymentProof:   c.CreateSubmitPaymentProofCommandHandler(),
		ReviewPaymentProof:   c.CreateReviewPaymentProofCommandHandler(),
		CreateGeneralOrder:   c.CreateCreateGeneralOrderCommandHandler(),
		GeneralOrderAction:   c.CreateGeneralOrderActionCommandHandler(),
		GetRequest:           c.CreateGetRequestQueryHandler(),
		ListPaymentReviews:   c.CreateListPaymentReviewsQueryHandler(),
		ListOpenGeneralOrder: c.CreateListOpenGeneralOrdersQueryHandler(),
	}, c.identity, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReconcileTrackingCommandHandler(),
		c.CreateRelayEventsCommandHandler(),
		jobs.Schedules{
			Reconcile: c.config.ReconcileSchedule,
			Relay:     c.config.RelaySchedule,
			Batch:     c.config.JobBatchSize,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncTripUoWFactory func() commands.TripUoW

func (f FuncTripUoWFactory) Create() commands.TripUoW {
	return f()
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncGeneralOrderUoWFactory func() commands.GeneralOrderUoW

func (f FuncGeneralOrderUoWFactory) Create() commands.GeneralOrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
