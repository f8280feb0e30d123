package dto

import (
	"time"

	"github.com/bookeasy/ticketing/internal/models"
)

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID          uint            `json:"id"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	PhoneNumber string          `json:"phone_number"`
	Role        models.UserRole `json:"role"`
	CreatedAt   time.Time       `json:"created_at"`
}

type EventResponse struct {
	ID               uint                 `json:"id"`
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	Category         models.EventCategory `json:"category"`
	Venue            string               `json:"venue"`
	EventDate        string               `json:"event_date"`
	EventTime        string               `json:"event_time"`
	TicketPrice      float64              `json:"ticket_price"`
	AvailableTickets int                  `json:"available_tickets"`
	CreatedAt        time.Time            `json:"created_at"`
}

type ReservationResponse struct {
	ID               uint                     `json:"id"`
	EventID          uint                     `json:"event_id"`
	TicketCount      int                      `json:"ticket_count"`
	TotalAmount      float64                  `json:"total_amount"`
	Status           models.ReservationStatus `json:"status"`
	ExpiresAt        time.Time                `json:"expires_at"`
	SecondsRemaining int                      `json:"seconds_remaining"`
	CreatedAt        time.Time                `json:"created_at"`
	Event            *EventResponse           `json:"event,omitempty"`
}

type BookingResponse struct {
	ID               uint                 `json:"id"`
	BookingReference string               `json:"booking_reference"`
	EventID          uint                 `json:"event_id"`
	TicketCount      int                  `json:"ticket_count"`
	TotalAmount      float64              `json:"total_amount"`
	Status           models.BookingStatus `json:"status"`
	BookingDate      time.Time            `json:"booking_date"`
	Event            *EventResponse       `json:"event,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Category:         e.Category,
		Venue:            e.Venue,
		EventDate:        e.EventDate.Format("2006-01-02"),
		EventTime:        e.EventTime,
		TicketPrice:      e.TicketPrice,
		AvailableTickets: e.AvailableTickets,
		CreatedAt:        e.CreatedAt,
	}
}

func ToReservationResponse(r *models.Reservation, now time.Time) ReservationResponse {
	resp := ReservationResponse{
		ID:               r.ID,
		EventID:          r.EventID,
		TicketCount:      r.TicketCount,
		TotalAmount:      r.TotalAmount,
		Status:           r.Status,
		ExpiresAt:        r.ExpiresAt,
		SecondsRemaining: r.SecondsRemaining(now),
		CreatedAt:        r.CreatedAt,
	}
	if r.Event != nil {
		ev := ToEventResponse(r.Event)
		resp.Event = &ev
	}
	return resp
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID,
		BookingReference: b.BookingReference,
		EventID:          b.EventID,
		TicketCount:      b.TicketCount,
		TotalAmount:      b.TotalAmount,
		Status:           b.Status,
		BookingDate:      b.BookingDate,
	}
	if b.Event != nil {
		ev := ToEventResponse(b.Event)
		resp.Event = &ev
	}
	return resp
}
