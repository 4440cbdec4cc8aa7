package http

import (
	"errors"
	"log/slog"
	"net/http"

	"parcel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type errorKind struct {
	target error
	status int
	kind   string
}

// errorKinds is checked in order; the first match wins.
var errorKinds = []errorKind{
	{errs.ErrNotAuthorized, http.StatusForbidden, "not_authorized"},
	{errs.ErrObjectNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrConflict, http.StatusConflict, "conflict"},
	{errs.ErrAlreadyRequested, http.StatusConflict, "already_requested"},
	{errs.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{errs.ErrPaymentRequired, http.StatusUnprocessableEntity, "payment_required"},
	{errs.ErrInspectionRequired, http.StatusUnprocessableEntity, "inspection_required"},
	{errs.ErrDeliveryRequired, http.StatusUnprocessableEntity, "delivery_required"},
	{errs.ErrInsufficientCapacity, http.StatusUnprocessableEntity, "insufficient_capacity"},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "value_required"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "value_invalid"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "value_out_of_range"},
}

// toError maps a domain error to its response. Unknown errors become a
// 500 whose message does not leak internals.
func toError(err error) Error {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return Error{Code: k.status, Kind: k.kind, Message: err.Error()}
		}
	}
	return Error{Code: http.StatusInternalServerError, Kind: "internal", Message: "Internal server error"}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	resp := toError(err)
	if resp.Code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
	}
	return ctx.JSON(resp.Code, resp)
}

// ErrorHandler renders echo's own errors (routing, binding, auth) in the
// same shape as domain errors.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		resp := Error{Code: http.StatusInternalServerError, Kind: "internal", Message: "Internal server error"}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			resp = Error{Code: he.Code, Kind: "http", Message: http.StatusText(he.Code)}
			if msg, ok := he.Message.(string); ok {
				resp.Message = msg
			}
		} else {
			logger.ErrorContext(ctx.Request().Context(), "Unhandled error", "error", err)
		}

		if err = ctx.JSON(resp.Code, resp); err != nil {
			logger.ErrorContext(ctx.Request().Context(), "Failed to write error response", "error", err)
		}
	}
}
