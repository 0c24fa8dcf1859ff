package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tickethub/internal/dto"
	"tickethub/internal/models"
	"tickethub/internal/service"
)

type TicketHandler struct {
	svc service.TicketService
}

func NewTicketHandler(svc service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

func (h *TicketHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/events/:id/tickets", h.Purchase)
	e.GET("/api/v1/tickets/:id", h.Get)
	e.PATCH("/api/v1/tickets/:id", h.Update)
	e.DELETE("/api/v1/tickets/:id", h.Delete)
	e.POST("/api/v1/tickets/:id/use", h.MarkUsed)
	e.GET("/api/v1/users/:id/tickets", h.ListByUser)
}

func (h *TicketHandler) Purchase(c echo.Context) error {
	eventID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.PurchaseTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Errors: errs})
	}

	ticket, err := h.svc.Purchase(c.Request().Context(), eventID, service.PurchaseInput{
		UserID:   req.UserID,
		Type:     models.TicketType(req.Type),
		Quantity: req.Quantity,
		Card:     req.Card.ToCard(),
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, dto.NewTicketResponse(ticket))
}

func (h *TicketHandler) Get(c echo.Context) error {
	ticketID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}

	ticket, err := h.svc.Get(c.Request().Context(), ticketID, c.QueryParam("user_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewTicketResponse(ticket))
}

func (h *TicketHandler) Update(c echo.Context) error {
	ticketID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}

	var req dto.UpdateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Errors: errs})
	}

	ticket, err := h.svc.Edit(c.Request().Context(), ticketID, service.EditInput{
		UserID:   req.UserID,
		Type:     models.TicketType(req.Type),
		Quantity: req.Quantity,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewTicketResponse(ticket))
}

func (h *TicketHandler) Delete(c echo.Context) error {
	ticketID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}

	actorID := c.QueryParam("user_id")
	if actorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	if err := h.svc.Delete(c.Request().Context(), ticketID, actorID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkUsed answers 200 even when the ticket was already marked, with a
// warning so gate staff can spot a double scan.
func (h *TicketHandler) MarkUsed(c echo.Context) error {
	ticketID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}

	var req dto.MarkUsedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Errors: errs})
	}

	ticket, err := h.svc.MarkUsed(c.Request().Context(), ticketID, req.OrganizerID)
	if errors.Is(err, service.ErrTicketAlreadyUsed) {
		return c.JSON(http.StatusOK, map[string]any{
			"warning": "ticket was already used",
			"ticket":  dto.NewTicketResponse(ticket),
		})
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewTicketResponse(ticket))
}

func (h *TicketHandler) ListByUser(c echo.Context) error {
	tickets, err := h.svc.ListByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewTicketListResponse(tickets))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
