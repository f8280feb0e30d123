package models

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is the permanent record created when a pending reservation is
// confirmed. TicketCount and TotalAmount are copied from the reservation and
// never change afterwards.
type Booking struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	BookingReference string        `gorm:"type:varchar(16);uniqueIndex;not null" json:"booking_reference"`
	EventID          uint          `gorm:"not null;index" json:"event_id"`
	UserID           uint          `gorm:"not null;index" json:"user_id"`
	ReservationID    uint          `gorm:"not null;uniqueIndex" json:"reservation_id"`
	TicketCount      int           `gorm:"not null" json:"ticket_count"`
	TotalAmount      float64       `gorm:"not null" json:"total_amount"`
	Status           BookingStatus `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	BookingDate      time.Time     `gorm:"not null" json:"booking_date"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
