package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"tickethub/internal/service"
)

// httpError maps service sentinels onto a status code. Handlers can still
// special-case an error before falling through to this table.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrTicketNotFound),
		errors.Is(err, service.ErrRefundNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrNotAuthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrPaymentDeclined),
		errors.Is(err, service.ErrRefundReversalFailed):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())

	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrTotalCapExceeded),
		errors.Is(err, service.ErrVipCapExceeded),
		errors.Is(err, service.ErrEditWindowClosed),
		errors.Is(err, service.ErrTicketRefunded),
		errors.Is(err, service.ErrTicketAlreadyUsed),
		errors.Is(err, service.ErrRefundAlreadyProcessed),
		errors.Is(err, service.ErrRefundAlreadyPending),
		errors.Is(err, service.ErrUserHasPendingRefund),
		errors.Is(err, service.ErrRefundAlreadyDecided),
		errors.Is(err, service.ErrCapacityBelowSold):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrEventAlreadyOccurred),
		errors.Is(err, service.ErrTooCloseToEvent),
		errors.Is(err, service.ErrDetailsRequired),
		errors.Is(err, service.ErrInvalidRefundReason),
		errors.Is(err, service.ErrNoTicketCapacity),
		errors.Is(err, service.ErrPastSchedule):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
