package models

import "time"

type EventCategory string

const (
	CategoryConcert    EventCategory = "CONCERT"
	CategoryMovie      EventCategory = "MOVIE"
	CategoryTheater    EventCategory = "THEATER"
	CategoryConference EventCategory = "CONFERENCE"
	CategorySports     EventCategory = "SPORTS"
	CategoryOther      EventCategory = "OTHER"
)

func (c EventCategory) Valid() bool {
	switch c {
	case CategoryConcert, CategoryMovie, CategoryTheater, CategoryConference, CategorySports, CategoryOther:
		return true
	}
	return false
}

type Event struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	Title            string        `gorm:"not null" json:"title"`
	Description      string        `gorm:"type:text" json:"description"`
	Category         EventCategory `gorm:"type:varchar(20);not null" json:"category"`
	Venue            string        `gorm:"not null" json:"venue"`
	EventDate        time.Time     `gorm:"not null" json:"event_date"`
	EventTime        string        `gorm:"type:varchar(8);not null" json:"event_time"`
	TicketPrice      float64       `gorm:"not null" json:"ticket_price"`
	AvailableTickets int           `gorm:"not null;check:available_tickets >= 0" json:"available_tickets"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
