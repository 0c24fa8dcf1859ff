package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"tickethub/internal/dto"
	"tickethub/internal/models"
	"tickethub/internal/service"
)

type RefundHandler struct {
	svc service.RefundService
}

func NewRefundHandler(svc service.RefundService) *RefundHandler {
	return &RefundHandler{svc: svc}
}

func (h *RefundHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/refunds", h.Submit)
	e.GET("/api/v1/refunds", h.List)
	e.GET("/api/v1/refunds/:id", h.Get)
	e.DELETE("/api/v1/refunds/:id", h.Withdraw)
	e.POST("/api/v1/refunds/:id/decision", h.Decide)
	e.GET("/api/v1/users/:id/refunds", h.ListByUser)
}

func (h *RefundHandler) Submit(c echo.Context) error {
	var req dto.CreateRefundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Errors: errs})
	}

	refund, err := h.svc.Submit(c.Request().Context(), service.SubmitRefundInput{
		UserID:     req.UserID,
		TicketCode: req.TicketCode,
		Reason:     models.RefundReason(req.Reason),
		Details:    req.Details,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.NewRefundResponse(refund))
}

// Decide settles a pending request. A failed payment reversal still decides
// the request, so the rejected state is returned alongside the 402.
func (h *RefundHandler) Decide(c echo.Context) error {
	refundID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid refund id")
	}

	var req dto.RefundDecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Errors: errs})
	}

	refund, err := h.svc.Decide(c.Request().Context(), refundID, req.OrganizerID, req.Approve())
	if errors.Is(err, service.ErrRefundReversalFailed) {
		return c.JSON(http.StatusPaymentRequired, map[string]any{
			"message": err.Error(),
			"refund":  dto.NewRefundResponse(refund),
		})
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewRefundResponse(refund))
}

func (h *RefundHandler) Get(c echo.Context) error {
	refundID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid refund id")
	}

	refund, err := h.svc.Get(c.Request().Context(), refundID, c.QueryParam("user_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewRefundResponse(refund))
}

func (h *RefundHandler) Withdraw(c echo.Context) error {
	refundID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid refund id")
	}

	actorID := c.QueryParam("user_id")
	if actorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	if err := h.svc.Withdraw(c.Request().Context(), refundID, actorID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RefundHandler) List(c echo.Context) error {
	pendingOnly := c.QueryParam("status") == "PENDING"
	refunds, err := h.svc.ListAll(c.Request().Context(), pendingOnly)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewRefundListResponse(refunds))
}

func (h *RefundHandler) ListByUser(c echo.Context) error {
	refunds, err := h.svc.ListByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewRefundListResponse(refunds))
}
