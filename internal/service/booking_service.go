package service

import (
	"context"
	"errors"
	"time"

	"github.com/bookeasy/ticketing/internal/models"
	"github.com/bookeasy/ticketing/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBookingNotCancellable = errors.New("only confirmed bookings can be cancelled")
	ErrEventAlreadyPast      = errors.New("cannot cancel a booking for a past event")
)

type BookingService interface {
	GetBooking(ctx context.Context, id, userID uint) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID uint) ([]models.Booking, error)
	CancelBooking(ctx context.Context, id, userID uint) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
}

func NewBookingService(bookingRepo repository.BookingRepository, eventRepo repository.EventRepository) BookingService {
	return &bookingService{bookingRepo: bookingRepo, eventRepo: eventRepo}
}

func (s *bookingService) GetBooking(ctx context.Context, id, userID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByUserID(ctx, userID)
}

// CancelBooking releases the booking's tickets back to the pool, since the
// event has not happened yet and they can still be resold.
func (s *bookingService) CancelBooking(ctx context.Context, id, userID uint) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.UserID != userID {
			return ErrForbidden
		}
		if booking.Event != nil && booking.Event.EventDate.Before(time.Now().Truncate(24*time.Hour)) {
			return ErrEventAlreadyPast
		}

		won, err := s.bookingRepo.CancelConfirmed(ctx, tx, id)
		if err != nil {
			return err
		}
		if !won {
			return ErrBookingNotCancellable
		}

		if err := s.eventRepo.ReleaseTickets(ctx, tx, booking.EventID, booking.TicketCount); err != nil {
			return err
		}

		booking.Status = models.BookingCancelled
		result = booking
		return nil
	})

	return result, err
}
