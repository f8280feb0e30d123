package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bookeasy/ticketing/internal/dto"
	"github.com/bookeasy/ticketing/internal/models"
	"github.com/bookeasy/ticketing/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type mockEventService struct {
	createFn         func(ctx context.Context, event *models.Event) error
	updateFn         func(ctx context.Context, event *models.Event) error
	deleteFn         func(ctx context.Context, id uint) error
	getFn            func(ctx context.Context, id uint) (*models.Event, error)
	listFn           func(ctx context.Context) ([]models.Event, error)
	listByCategoryFn func(ctx context.Context, category models.EventCategory) ([]models.Event, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventService) UpdateEvent(ctx context.Context, event *models.Event) error {
	return m.updateFn(ctx, event)
}
func (m *mockEventService) DeleteEvent(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockEventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	return m.getFn(ctx, id)
}
func (m *mockEventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return m.listFn(ctx)
}
func (m *mockEventService) ListEventsByCategory(ctx context.Context, category models.EventCategory) ([]models.Event, error) {
	return m.listByCategoryFn(ctx, category)
}

func TestListEvents_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		listFn: func(ctx context.Context) ([]models.Event, error) {
			return []models.Event{
				{ID: 1, Title: "Jazz Night", Category: models.CategoryConcert, EventDate: time.Now()},
				{ID: 2, Title: "Go Conf", Category: models.CategoryConference, EventDate: time.Now()},
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewEventHandler(svc)
	assert.NoError(t, h.ListEvents(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestGetEvent_Handler_NotFound(t *testing.T) {
	svc := &mockEventService{
		getFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return nil, service.ErrEventNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/events/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")

	h := NewEventHandler(svc)
	err := h.GetEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestListEventsByCategory_Handler_InvalidCategory(t *testing.T) {
	svc := &mockEventService{
		listByCategoryFn: func(ctx context.Context, category models.EventCategory) ([]models.Event, error) {
			return nil, service.ErrInvalidCategory
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/events/category/NOPE", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("category")
	c.SetParamValues("NOPE")

	h := NewEventHandler(svc)
	err := h.ListEventsByCategory(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateEvent_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		createFn: func(ctx context.Context, event *models.Event) error {
			event.ID = 1
			return nil
		},
	}

	body := `{"title":"Jazz Night","venue":"Blue Hall","category":"CONCERT","event_date":"2027-05-01","event_time":"20:00","ticket_price":49.5,"available_tickets":100}`
	c, rec := newTestContext(t, http.MethodPost, "/events", body)

	h := NewEventHandler(svc)
	assert.NoError(t, h.CreateEvent(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, 100, resp.AvailableTickets)
}

func TestCreateEvent_Handler_BadDate(t *testing.T) {
	body := `{"title":"Jazz Night","venue":"Blue Hall","category":"CONCERT","event_date":"01-05-2027"}`
	c, _ := newTestContext(t, http.MethodPost, "/events", body)

	h := NewEventHandler(nil)
	err := h.CreateEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateEvent_Handler_MissingTitle(t *testing.T) {
	body := `{"venue":"Blue Hall","category":"CONCERT","event_date":"2027-05-01"}`
	c, _ := newTestContext(t, http.MethodPost, "/events", body)

	h := NewEventHandler(nil)
	err := h.CreateEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestDeleteEvent_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		deleteFn: func(ctx context.Context, id uint) error { return nil },
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/admin/events/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewEventHandler(svc)
	assert.NoError(t, h.DeleteEvent(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
