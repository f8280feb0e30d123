package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/bookeasy/ticketing/internal/dto"
	"github.com/bookeasy/ticketing/internal/middleware"
	"github.com/bookeasy/ticketing/internal/models"
	"github.com/bookeasy/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	// Catalog reads are anonymous.
	e.GET("/events", h.ListEvents)
	e.GET("/events/:id", h.GetEvent)
	e.GET("/events/category/:category", h.ListEventsByCategory)

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	e.POST("/events", h.CreateEvent, auth, adminOnly)

	admin := e.Group("/admin/events", auth, adminOnly)
	admin.PUT("/:id", h.UpdateEvent)
	admin.DELETE("/:id", h.DeleteEvent)
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	event, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEventsByCategory(c echo.Context) error {
	category := models.EventCategory(c.Param("category"))

	events, err := h.svc.ListEventsByCategory(c.Request().Context(), category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	event, err := bindEvent(c)
	if err != nil {
		return err
	}

	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	existing, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	event, err := bindEvent(c)
	if err != nil {
		return err
	}
	event.ID = existing.ID
	event.CreatedAt = existing.CreatedAt

	if err := h.svc.UpdateEvent(c.Request().Context(), event); err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteEvent(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func bindEvent(c echo.Context) (*models.Event, error) {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Venue == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "title and venue are required")
	}
	if req.AvailableTickets < 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "available_tickets must not be negative")
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "event_date must be YYYY-MM-DD")
	}

	return &models.Event{
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Venue:            req.Venue,
		EventDate:        eventDate,
		EventTime:        req.EventTime,
		TicketPrice:      req.TicketPrice,
		AvailableTickets: req.AvailableTickets,
	}, nil
}

func toEventResponses(events []models.Event) []dto.EventResponse {
	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	return resp
}
