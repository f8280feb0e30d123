package dto

import "github.com/bookeasy/ticketing/internal/models"

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateEventRequest struct {
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	Category         models.EventCategory `json:"category"`
	Venue            string               `json:"venue"`
	EventDate        string               `json:"event_date"`
	EventTime        string               `json:"event_time"`
	TicketPrice      float64              `json:"ticket_price"`
	AvailableTickets int                  `json:"available_tickets"`
}

type ReserveRequest struct {
	EventID     uint `json:"eventId"`
	TicketCount int  `json:"ticketCount"`
}
