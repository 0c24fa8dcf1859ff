package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tickethub/internal/dto"
	"tickethub/internal/service"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/events", h.Create)
	e.GET("/api/v1/events", h.List)
	e.GET("/api/v1/events/:id", h.Get)
	e.PUT("/api/v1/events/:id", h.Update)
	e.GET("/api/v1/events/:id/status", h.Status)
}

func (h *EventHandler) Create(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Errors: errs})
	}

	event, err := h.svc.Create(c.Request().Context(), service.CreateEventInput{
		Title:        req.Title,
		OrganizerID:  req.OrganizerID,
		ScheduledAt:  req.ScheduledAt,
		GeneralPrice: req.GeneralPrice,
		VipPrice:     req.VipPrice,
		GeneralTotal: req.GeneralTotal,
		VipTotal:     req.VipTotal,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.NewEventResponse(event))
}

func (h *EventHandler) Update(c echo.Context) error {
	eventID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Errors: errs})
	}

	event, err := h.svc.Update(c.Request().Context(), eventID, req.OrganizerID, service.UpdateEventInput{
		Title:        req.Title,
		ScheduledAt:  req.ScheduledAt,
		GeneralPrice: req.GeneralPrice,
		VipPrice:     req.VipPrice,
		GeneralTotal: req.GeneralTotal,
		VipTotal:     req.VipTotal,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewEventResponse(event))
}

func (h *EventHandler) Get(c echo.Context) error {
	eventID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.svc.Get(c.Request().Context(), eventID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewEventResponse(event))
}

func (h *EventHandler) List(c echo.Context) error {
	events, err := h.svc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NewEventListResponse(events))
}

func (h *EventHandler) Status(c echo.Context) error {
	eventID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	snap, err := h.svc.Status(c.Request().Context(), eventID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, snap)
}
