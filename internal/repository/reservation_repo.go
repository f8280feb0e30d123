package repository

import (
	"context"
	"time"

	"github.com/bookeasy/ticketing/internal/models"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindActiveByUser(ctx context.Context, userID uint, now time.Time) ([]models.Reservation, error)
	FindExpiredPending(ctx context.Context, now time.Time, limit int) ([]models.Reservation, error)
	TransitionFromPending(ctx context.Context, tx *gorm.DB, id uint, to models.ReservationStatus) (bool, error)
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).Preload("Event").First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindActiveByUser(ctx context.Context, userID uint, now time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ? AND status = ? AND expires_at > ?", userID, models.ReservationPending, now).
		Order("expires_at ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindExpiredPending returns the reaper's work queue: pending holds whose
// expiry has passed, oldest first.
func (r *reservationRepository) FindExpiredPending(ctx context.Context, now time.Time, limit int) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at <= ?", models.ReservationPending, now).
		Order("expires_at ASC").
		Limit(limit).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// TransitionFromPending atomically moves a reservation out of pending.
// Whichever of confirm, cancel or the reaper gets here first wins; everyone
// else sees false. This is the only way a reservation reaches a terminal
// status.
func (r *reservationRepository) TransitionFromPending(ctx context.Context, tx *gorm.DB, id uint, to models.ReservationStatus) (bool, error) {
	result := tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, models.ReservationPending).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
