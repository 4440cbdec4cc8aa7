package http

import (
	"log/slog"
	"net/http"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const defaultPageSize = 50

// Handlers groups the use cases the HTTP adapter drives.
type Handlers struct {
	CreateTrip           commands.CreateTripCommandHandler
	CreateRequest        commands.CreateRequestCommandHandler
	AcceptRequest        commands.AcceptRequestCommandHandler
	RejectRequest        commands.RejectRequestCommandHandler
	CancelPending        commands.CancelPendingRequestCommandHandler
	ProposeChanges       commands.ProposeChangesCommandHandler
	ResolveProposal      commands.ResolveProposalCommandHandler
	RequestCancellation  commands.RequestCancellationCommandHandler
	AdvanceTracking      commands.AdvanceTrackingCommandHandler
	SubmitPhotos         commands.SubmitPhotosCommandHandler
	SubmitPaymentProof   commands.SubmitPaymentProofCommandHandler
	ReviewPaymentProof   commands.ReviewPaymentProofCommandHandler
	CreateGeneralOrder   commands.CreateGeneralOrderCommandHandler
	GeneralOrderAction   commands.GeneralOrderActionCommandHandler
	GetRequest           queries.GetRequestQueryHandler
	ListPaymentReviews   queries.ListPaymentReviewsQueryHandler
	ListOpenGeneralOrder queries.ListOpenGeneralOrdersQueryHandler
}

// Server implements ServerInterface on top of the command and query
// handlers. The acting user comes from the bearer token.
type Server struct {
	h        Handlers
	identity ports.IdentityProvider
	logger   *slog.Logger
}

func NewServer(h Handlers, identity ports.IdentityProvider, logger *slog.Logger) *Server {
	return &Server{
		h:        h,
		identity: identity,
		logger:   logger.With("component", "http"),
	}
}

func (s *Server) CreateTrip(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}
	var body NewTrip
	if err = bindBody(ctx, &body); err != nil {
		return err
	}

	capacity, err := kernel.NewWeight(body.CapacityGrams)
	if err != nil {
		return s.fail(ctx, err)
	}
	price, err := kernel.NewMoney(body.PricePerKgCents)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateTripCommand(kernel.NewUUID(), actor, body.Origin, body.Destination,
		body.DepartureAt, capacity, price)
	if err != nil {
		return s.fail(ctx, err)
	}

	t, err := s.h.CreateTrip.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toTrip(t))
}

func (s *Server) CreateRequest(ctx echo.Context, tripID uuid.UUID) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}
	var body NewRequest
	if err = bindBody(ctx, &body); err != nil {
		return err
	}

	weight, err := kernel.NewWeight(body.WeightGrams)
	if err != nil {
		return s.fail(ctx, err)
	}
	shipment, err := request.NewShipment(weight, body.Description, body.ItemType, request.ItemSize(body.ItemSize),
		request.Receiver{Name: body.Receiver.Name, Phone: body.Receiver.Phone, Address: body.Receiver.Address})
	if err != nil {
		return s.fail(ctx, err)
	}

	var generalOrderID *kernel.UUID
	if body.GeneralOrderID != nil {
		id, idErr := toKernelID("generalOrderId", *body.GeneralOrderID)
		if idErr != nil {
			return s.fail(ctx, idErr)
		}
		generalOrderID = &id
	}

	trip, err := toKernelID("tripId", tripID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateRequestCommand(kernel.NewUUID(), trip, actor, shipment, generalOrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	req, err := s.h.CreateRequest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toRequest(req))
}

func (s *Server) GetRequest(ctx echo.Context, requestID uuid.UUID) error {
	return s.onRequest(ctx, requestID, func(id, actor kernel.UUID) error {
		query, err := queries.NewGetRequestQuery(id, actor)
		if err != nil {
			return s.fail(ctx, err)
		}
		view, err := s.h.GetRequest.Handle(ctx.Request().Context(), query)
		if err != nil {
			return s.fail(ctx, err)
		}
		return ctx.JSON(http.StatusOK, toRequestView(*view))
	})
}

// AcceptRequest answers 200 even when the tracking step failed; the
// warning tells the client tracking will catch up.
func (s *Server) AcceptRequest(ctx echo.Context, requestID uuid.UUID) error {
	return s.onRequest(ctx, requestID, func(id, actor kernel.UUID) error {
		cmd, err := commands.NewAcceptRequestCommand(id, actor)
		if err != nil {
			return s.fail(ctx, err)
		}
		result, err := s.h.AcceptRequest.Handle(ctx.Request().Context(), cmd)
		if err != nil {
			return s.fail(ctx, err)
		}

		resp := AcceptResult{Request: toRequest(result.Request)}
		if result.TrackingWarning != nil {
			resp.TrackingWarning = "accepted; tracking will move to item_accepted shortly"
		}
		return ctx.JSON(http.StatusOK, resp)
	})
}

func (s *Server) RejectRequest(ctx echo.Context, requestID uuid.UUID) error {
	return s.onRequest(ctx, requestID, func(id, actor kernel.UUID) error {
		cmd, err := commands.NewRejectRequestCommand(id, actor)
		if err != nil {
			return s.fail(ctx, err)
		}
		return s.respond(ctx)(s.h.RejectRequest.Handle(ctx.Request().Context(), cmd))
	})
}

func (s *Server) CancelPendingRequest(ctx echo.Context, requestID uuid.UUID) error {
	return s.onRequest(ctx, requestID, func(id, actor kernel.UUID) error {
		cmd, err := commands.NewCancelPendingRequestCommand(id, actor)
		if err != nil {
			return s.fail(ctx, err)
		}
		if err = s.h.CancelPending.Handle(ctx.Request().Context(), cmd); err != nil {
			return s.fail(ctx, err)
		}
		return ctx.NoContent(http.StatusNoContent)
	})
}

func (s *Server) ProposeChanges(ctx echo.Context, requestID uuid.UUID) error {
	var body Proposal
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	return s.onRequest(ctx, requestID, func(id, actor kernel.UUID) error {
		weight, err := kernel.NewWeight(body.WeightGrams)
		if err != nil {
			return s.fail(ctx, err)
		}
		cmd, err := commands.NewProposeChangesCommand(id, actor, weight, body.Description)
		if err != nil {
			return s.fail(ctx, err)
		}
		return s.respond(ctx)(s.h.ProposeChanges.Handle(ctx.Request().Context(), cmd))
	})
}

func (s *Server) ResolveProposal(ctx echo.Context, requestID uuid.UUID) error {
	var body Decision
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	return s.onRequest(ctx, requestID, func(id, actor kernel.UUID) error {
		cmd, err := commands.NewResolveProposalCommand(id, actor, *body.Approve)
		if err != nil {
			return s.fail(ctx, err)
		}
		return s.respond(ctx)(s.h.ResolveProposal.Handle(ctx.Request().Context(), cmd))
	})
}

func (s *Server) RequestCancellation(ctx echo.Context, requestID uuid.UUID) error {
	return s.onRequest(ctx, requestID, func(id, actor kernel.UUID) error {
		cmd, err := commands.NewRequestCancellationCommand(id, actor)
		if err != nil {
			return s.fail(ctx, err)
		}
		result, err := s.h.RequestCancellation.Handle(ctx.Request().Context(), cmd)
		if err != nil {
			return s.fail(ctx, err)
		}

		resp := CancellationResult{Outcome: result.Outcome.String()}
		if result.Request != nil {
			req := toRequest(result.Request)
			resp.Request = &req
		}
		return ctx.JSON(http.StatusOK, resp)
	})
}

func (s *Server) AdvanceTracking(ctx echo.Context, requestID uuid.UUID) error {
	var body StageTarget
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	return s.onRequest(ctx, requestID, func(id, actor kernel.UUID) error {
		target, err := request.ParseStage(body.Stage)
		if err != nil {
			return s.fail(ctx, err)
		}
		cmd, err := commands.NewAdvanceTrackingCommand(id, actor, target)
		if err != nil {
			return s.fail(ctx, err)
		}
		return s.respond(ctx)(s.h.AdvanceTracking.Handle(ctx.Request().Context(), cmd))
	})
}

func (s *Server) SubmitItemPhotos(ctx echo.Context, requestID uuid.UUID) error {
	return s.submitPhotos(ctx, requestID, commands.NewSubmitItemPhotosCommand)
}

func (s *Server) SubmitInspection(ctx echo.Context, requestID uuid.UUID) error {
	return s.submitPhotos(ctx, requestID, commands.NewSubmitInspectionCommand)
}

func (s *Server) submitPhotos(
	ctx echo.Context,
	requestID uuid.UUID,
	newCommand func(requestID, actorID kernel.UUID, urls []string) (commands.SubmitPhotosCommand, error),
) error {
	var body Photos
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	return s.onRequest(ctx, requestID, func(id, actor kernel.UUID) error {
		cmd, err := newCommand(id, actor, body.URLs)
		if err != nil {
			return s.fail(ctx, err)
		}
		return s.respond(ctx)(s.h.SubmitPhotos.Handle(ctx.Request().Context(), cmd))
	})
}

func (s *Server) SubmitPaymentProof(ctx echo.Context, requestID uuid.UUID) error {
	var body PaymentProof
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	return s.onRequest(ctx, requestID, func(id, actor kernel.UUID) error {
		amount, err := kernel.NewMoney(body.AmountCents)
		if err != nil {
			return s.fail(ctx, err)
		}
		cmd, err := commands.NewSubmitPaymentProofCommand(id, actor, body.Method, body.ProofURL, amount)
		if err != nil {
			return s.fail(ctx, err)
		}
		return s.respond(ctx)(s.h.SubmitPaymentProof.Handle(ctx.Request().Context(), cmd))
	})
}

func (s *Server) ReviewPaymentProof(ctx echo.Context, requestID uuid.UUID) error {
	var body Decision
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	return s.onRequest(ctx, requestID, func(id, actor kernel.UUID) error {
		cmd, err := commands.NewReviewPaymentProofCommand(id, actor, *body.Approve)
		if err != nil {
			return s.fail(ctx, err)
		}
		return s.respond(ctx)(s.h.ReviewPaymentProof.Handle(ctx.Request().Context(), cmd))
	})
}

func (s *Server) ListPaymentReviews(ctx echo.Context, params ListParams) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}
	isAdmin, err := s.identity.IsAdmin(ctx.Request().Context(), actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if !isAdmin {
		return s.fail(ctx, errs.NewNotAuthorizedError(actor.String(), "list payment reviews", "admin"))
	}

	query, err := queries.NewListPaymentReviewsQuery(pageSize(params))
	if err != nil {
		return s.fail(ctx, err)
	}
	views, err := s.h.ListPaymentReviews.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := make([]RequestView, len(views))
	for i, v := range views {
		resp[i] = toRequestView(v)
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (s *Server) ListOpenGeneralOrders(ctx echo.Context, params ListParams) error {
	var origin string
	if params.Origin != nil {
		origin = *params.Origin
	}
	query, err := queries.NewListOpenGeneralOrdersQuery(origin, pageSize(params))
	if err != nil {
		return s.fail(ctx, err)
	}
	views, err := s.h.ListOpenGeneralOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp := make([]GeneralOrder, len(views))
	for i, v := range views {
		resp[i] = toOpenGeneralOrder(v)
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (s *Server) CreateGeneralOrder(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}
	var body NewGeneralOrder
	if err = bindBody(ctx, &body); err != nil {
		return err
	}

	weight, err := kernel.NewWeight(body.WeightGrams)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateGeneralOrderCommand(kernel.NewUUID(), actor, body.Origin, body.Destination,
		weight, body.Description)
	if err != nil {
		return s.fail(ctx, err)
	}

	order, err := s.h.CreateGeneralOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toGeneralOrder(order))
}

func (s *Server) ClaimGeneralOrder(ctx echo.Context, orderID uuid.UUID) error {
	return s.generalOrderAction(ctx, orderID, commands.NewClaimGeneralOrderCommand)
}

func (s *Server) CancelGeneralOrder(ctx echo.Context, orderID uuid.UUID) error {
	return s.generalOrderAction(ctx, orderID, commands.NewCancelGeneralOrderCommand)
}

func (s *Server) CompleteGeneralOrder(ctx echo.Context, orderID uuid.UUID) error {
	return s.generalOrderAction(ctx, orderID, commands.NewCompleteGeneralOrderCommand)
}

func (s *Server) generalOrderAction(
	ctx echo.Context,
	orderID uuid.UUID,
	newCommand func(orderID, actorID kernel.UUID) (commands.GeneralOrderActionCommand, error),
) error {
	return s.onRequest(ctx, orderID, func(id, actor kernel.UUID) error {
		cmd, err := newCommand(id, actor)
		if err != nil {
			return s.fail(ctx, err)
		}
		order, err := s.h.GeneralOrderAction.Handle(ctx.Request().Context(), cmd)
		if err != nil {
			return s.fail(ctx, err)
		}
		return ctx.JSON(http.StatusOK, toGeneralOrder(order))
	})
}

// onRequest resolves the acting user and the path id before running fn.
func (s *Server) onRequest(ctx echo.Context, pathID uuid.UUID, fn func(id, actor kernel.UUID) error) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}
	id, err := toKernelID("id", pathID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return fn(id, actor)
}

func toKernelID(param string, id uuid.UUID) (kernel.UUID, error) {
	v, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return v, nil
}

// respond writes the updated request or the error a handler returned.
func (s *Server) respond(ctx echo.Context) func(*request.Request, error) error {
	return func(req *request.Request, err error) error {
		if err != nil {
			return s.fail(ctx, err)
		}
		return ctx.JSON(http.StatusOK, toRequest(req))
	}
}

func pageSize(params ListParams) int {
	if params.Limit == nil {
		return defaultPageSize
	}
	return *params.Limit
}
