package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bookeasy/ticketing/internal/models"
	"github.com/bookeasy/ticketing/internal/repository"
	"github.com/bookeasy/ticketing/pkg/rabbitmq"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInsufficientTickets = errors.New("not enough tickets available")
	ErrInvalidTicketCount  = errors.New("ticket count must be positive")
	ErrForbidden           = errors.New("not allowed to access this resource")
	ErrAlreadyTerminal     = errors.New("reservation already confirmed, cancelled or expired")
	ErrReservationExpired  = errors.New("reservation has expired")
)

type ReservationService interface {
	Reserve(ctx context.Context, userID, eventID uint, ticketCount int) (*models.Reservation, error)
	GetReservation(ctx context.Context, id, userID uint) (*models.Reservation, error)
	ListActiveReservations(ctx context.Context, userID uint) ([]models.Reservation, error)
	Confirm(ctx context.Context, id, userID uint) (*models.Booking, error)
	Cancel(ctx context.Context, id, userID uint) (*models.Reservation, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	bookingRepo     repository.BookingRepository
	eventRepo       repository.EventRepository
	publisher       *rabbitmq.Publisher
	holdDuration    time.Duration
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	bookingRepo repository.BookingRepository,
	eventRepo repository.EventRepository,
	publisher *rabbitmq.Publisher,
	holdDuration time.Duration,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		bookingRepo:     bookingRepo,
		eventRepo:       eventRepo,
		publisher:       publisher,
		holdDuration:    holdDuration,
	}
}

func (s *reservationService) Reserve(ctx context.Context, userID, eventID uint, ticketCount int) (*models.Reservation, error) {
	if ticketCount <= 0 {
		return nil, ErrInvalidTicketCount
	}

	var result *models.Reservation

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		// Inventory first: a reservation row only ever exists for tickets
		// that were actually taken out of the pool.
		ok, err := s.eventRepo.ReserveTickets(ctx, tx, eventID, ticketCount)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientTickets
		}

		now := time.Now()
		reservation := &models.Reservation{
			EventID:     eventID,
			UserID:      userID,
			TicketCount: ticketCount,
			TotalAmount: float64(ticketCount) * event.TicketPrice,
			Status:      models.ReservationPending,
			ExpiresAt:   now.Add(s.holdDuration),
		}
		if err := s.reservationRepo.Create(ctx, tx, reservation); err != nil {
			return err
		}

		reservation.Event = &event
		result = reservation
		return nil
	})

	return result, err
}

func (s *reservationService) GetReservation(ctx context.Context, id, userID uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if reservation.UserID != userID {
		return nil, ErrForbidden
	}
	return reservation, nil
}

func (s *reservationService) ListActiveReservations(ctx context.Context, userID uint) ([]models.Reservation, error) {
	return s.reservationRepo.FindActiveByUser(ctx, userID, time.Now())
}

func (s *reservationService) Confirm(ctx context.Context, id, userID uint) (*models.Booking, error) {
	var result *models.Booking

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if reservation.UserID != userID {
			return ErrForbidden
		}
		if reservation.Status != models.ReservationPending {
			return ErrAlreadyTerminal
		}
		if time.Now().After(reservation.ExpiresAt) {
			// The reaper owns the expiry transition; the caller just
			// learns the hold is gone.
			return ErrReservationExpired
		}

		won, err := s.reservationRepo.TransitionFromPending(ctx, tx, id, models.ReservationConfirmed)
		if err != nil {
			return err
		}
		if !won {
			return ErrAlreadyTerminal
		}

		// Inventory stays untouched: the tickets were taken at reserve time.
		booking := &models.Booking{
			BookingReference: newBookingReference(),
			EventID:          reservation.EventID,
			UserID:           reservation.UserID,
			ReservationID:    reservation.ID,
			TicketCount:      reservation.TicketCount,
			TotalAmount:      reservation.TotalAmount,
			Status:           models.BookingConfirmed,
			BookingDate:      time.Now(),
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}

		booking.Event = reservation.Event
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("booking.confirmed", result)
	}
	return result, nil
}

func (s *reservationService) Cancel(ctx context.Context, id, userID uint) (*models.Reservation, error) {
	var result *models.Reservation

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if reservation.UserID != userID {
			return ErrForbidden
		}

		won, err := s.reservationRepo.TransitionFromPending(ctx, tx, id, models.ReservationCancelled)
		if err != nil {
			return err
		}
		if !won {
			return ErrAlreadyTerminal
		}

		if err := s.eventRepo.ReleaseTickets(ctx, tx, reservation.EventID, reservation.TicketCount); err != nil {
			return err
		}

		reservation.Status = models.ReservationCancelled
		result = reservation
		return nil
	})

	return result, err
}

// newBookingReference builds a short human-readable code, e.g. BK-3F2A1B9C.
func newBookingReference() string {
	id := uuid.New()
	return fmt.Sprintf("BK-%s", strings.ToUpper(id.String()[:8]))
}
