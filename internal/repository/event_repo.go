package repository

import (
	"context"

	"github.com/bookeasy/ticketing/internal/models"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindAll(ctx context.Context) ([]models.Event, error)
	FindByCategory(ctx context.Context, category models.EventCategory) ([]models.Event, error)
	ReserveTickets(ctx context.Context, tx *gorm.DB, eventID uint, qty int) (bool, error)
	ReleaseTickets(ctx context.Context, tx *gorm.DB, eventID uint, qty int) error
	GetDB() *gorm.DB
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, id).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).Order("event_date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByCategory(ctx context.Context, category models.EventCategory) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("event_date ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ReserveTickets takes qty tickets out of the event's pool in a single
// conditional decrement. Two concurrent callers contending for the last
// tickets serialize on the row; the loser sees zero rows affected and gets
// false back, with no partial decrement.
func (r *eventRepository) ReserveTickets(ctx context.Context, tx *gorm.DB, eventID uint, qty int) (bool, error) {
	result := tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND available_tickets >= ?", eventID, qty).
		Update("available_tickets", gorm.Expr("available_tickets - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReleaseTickets returns qty tickets to the event's pool. Callers guarantee
// at-most-once release per reservation via the status compare-and-set.
func (r *eventRepository) ReleaseTickets(ctx context.Context, tx *gorm.DB, eventID uint, qty int) error {
	return tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("available_tickets", gorm.Expr("available_tickets + ?", qty)).Error
}
