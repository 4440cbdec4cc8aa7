package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the operations of api/openapi.yml.
type ServerInterface interface {
	// (POST /trips)
	CreateTrip(ctx echo.Context) error
	// (POST /trips/{tripId}/requests)
	CreateRequest(ctx echo.Context, tripID uuid.UUID) error
	// (GET /requests/{requestId})
	GetRequest(ctx echo.Context, requestID uuid.UUID) error
	// (POST /requests/{requestId}/accept)
	AcceptRequest(ctx echo.Context, requestID uuid.UUID) error
	// (POST /requests/{requestId}/reject)
	RejectRequest(ctx echo.Context, requestID uuid.UUID) error
	// (POST /requests/{requestId}/cancel-pending)
	CancelPendingRequest(ctx echo.Context, requestID uuid.UUID) error
	// (POST /requests/{requestId}/proposal)
	ProposeChanges(ctx echo.Context, requestID uuid.UUID) error
	// (POST /requests/{requestId}/proposal/resolve)
	ResolveProposal(ctx echo.Context, requestID uuid.UUID) error
	// (POST /requests/{requestId}/cancellation)
	RequestCancellation(ctx echo.Context, requestID uuid.UUID) error
	// (POST /requests/{requestId}/tracking)
	AdvanceTracking(ctx echo.Context, requestID uuid.UUID) error
	// (POST /requests/{requestId}/item-photos)
	SubmitItemPhotos(ctx echo.Context, requestID uuid.UUID) error
	// (POST /requests/{requestId}/inspection)
	SubmitInspection(ctx echo.Context, requestID uuid.UUID) error
	// (POST /requests/{requestId}/payment-proof)
	SubmitPaymentProof(ctx echo.Context, requestID uuid.UUID) error
	// (POST /requests/{requestId}/payment-review)
	ReviewPaymentProof(ctx echo.Context, requestID uuid.UUID) error
	// (GET /payments/pending)
	ListPaymentReviews(ctx echo.Context, params ListParams) error
	// (GET /general-orders)
	ListOpenGeneralOrders(ctx echo.Context, params ListParams) error
	// (POST /general-orders)
	CreateGeneralOrder(ctx echo.Context) error
	// (POST /general-orders/{orderId}/claim)
	ClaimGeneralOrder(ctx echo.Context, orderID uuid.UUID) error
	// (POST /general-orders/{orderId}/cancel)
	CancelGeneralOrder(ctx echo.Context, orderID uuid.UUID) error
	// (POST /general-orders/{orderId}/complete)
	CompleteGeneralOrder(ctx echo.Context, orderID uuid.UUID) error
}

// ListParams are the query parameters of the list operations.
type ListParams struct {
	Origin *string `form:"origin,omitempty" json:"origin,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateTrip(ctx echo.Context) error {
	return w.Handler.CreateTrip(ctx)
}

func (w *ServerInterfaceWrapper) CreateRequest(ctx echo.Context) error {
	tripID, err := bindPathUUID(ctx, "tripId")
	if err != nil {
		return err
	}
	return w.Handler.CreateRequest(ctx, tripID)
}

func (w *ServerInterfaceWrapper) CreateGeneralOrder(ctx echo.Context) error {
	return w.Handler.CreateGeneralOrder(ctx)
}

func (w *ServerInterfaceWrapper) ListPaymentReviews(ctx echo.Context) error {
	params, err := bindListParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListPaymentReviews(ctx, params)
}

func (w *ServerInterfaceWrapper) ListOpenGeneralOrders(ctx echo.Context) error {
	params, err := bindListParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListOpenGeneralOrders(ctx, params)
}

// byPath adapts an operation taking one uuid path parameter.
func byPath(param string, op func(echo.Context, uuid.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindPathUUID(ctx, param)
		if err != nil {
			return err
		}
		return op(ctx, id)
	}
}

func bindPathUUID(ctx echo.Context, param string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithLocation("simple", false, param, runtime.ParamLocationPath, ctx.Param(param), &id)
	if err != nil {
		return uuid.UUID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", param, err))
	}
	return id, nil
}

func bindListParams(ctx echo.Context) (ListParams, error) {
	var params ListParams
	if err := runtime.BindQueryParameter("form", true, false, "origin", ctx.QueryParams(), &params.Origin); err != nil {
		return ListParams{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter origin: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return ListParams{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}
	return params, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation on router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/trips", w.CreateTrip)
	router.POST("/trips/:tripId/requests", w.CreateRequest)

	router.GET("/requests/:requestId", byPath("requestId", si.GetRequest))
	router.POST("/requests/:requestId/accept", byPath("requestId", si.AcceptRequest))
	router.POST("/requests/:requestId/reject", byPath("requestId", si.RejectRequest))
	router.POST("/requests/:requestId/cancel-pending", byPath("requestId", si.CancelPendingRequest))
	router.POST("/requests/:requestId/proposal", byPath("requestId", si.ProposeChanges))
	router.POST("/requests/:requestId/proposal/resolve", byPath("requestId", si.ResolveProposal))
	router.POST("/requests/:requestId/cancellation", byPath("requestId", si.RequestCancellation))
	router.POST("/requests/:requestId/tracking", byPath("requestId", si.AdvanceTracking))
	router.POST("/requests/:requestId/item-photos", byPath("requestId", si.SubmitItemPhotos))
	router.POST("/requests/:requestId/inspection", byPath("requestId", si.SubmitInspection))
	router.POST("/requests/:requestId/payment-proof", byPath("requestId", si.SubmitPaymentProof))
	router.POST("/requests/:requestId/payment-review", byPath("requestId", si.ReviewPaymentProof))

	router.GET("/payments/pending", w.ListPaymentReviews)

	router.GET("/general-orders", w.ListOpenGeneralOrders)
	router.POST("/general-orders", w.CreateGeneralOrder)
	router.POST("/general-orders/:orderId/claim", byPath("orderId", si.ClaimGeneralOrder))
	router.POST("/general-orders/:orderId/cancel", byPath("orderId", si.CancelGeneralOrder))
	router.POST("/general-orders/:orderId/complete", byPath("orderId", si.CompleteGeneralOrder))
}
