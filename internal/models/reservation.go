package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationExpired   ReservationStatus = "expired"
)

// Reservation is a time-bounded hold on event inventory. Its tickets are
// already subtracted from the event's available_tickets; exactly one terminal
// transition (confirmed, cancelled or expired) decides whether they stay
// taken or go back to the pool.
type Reservation struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	EventID     uint              `gorm:"not null;index" json:"event_id"`
	UserID      uint              `gorm:"not null;index" json:"user_id"`
	TicketCount int               `gorm:"not null" json:"ticket_count"`
	TotalAmount float64           `gorm:"not null" json:"total_amount"`
	Status      ReservationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ExpiresAt   time.Time         `gorm:"not null" json:"expires_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// SecondsRemaining is what the client countdown displays. Expiry authority
// stays server-side; this never goes below zero.
func (r *Reservation) SecondsRemaining(now time.Time) int {
	remaining := int(r.ExpiresAt.Sub(now).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}
