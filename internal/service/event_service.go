package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookeasy/ticketing/internal/models"
	"github.com/bookeasy/ticketing/internal/repository"
	"github.com/bookeasy/ticketing/pkg/rabbitmq"
	"gorm.io/gorm"
)

var ErrInvalidCategory = errors.New("unknown event category")

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id uint) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListEventsByCategory(ctx context.Context, category models.EventCategory) ([]models.Event, error)
}

type eventService struct {
	repo      repository.EventRepository
	publisher *rabbitmq.Publisher
}

func NewEventService(repo repository.EventRepository, publisher *rabbitmq.Publisher) EventService {
	return &eventService{repo: repo, publisher: publisher}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if !event.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", event)
	}
	return nil
}

func (s *eventService) UpdateEvent(ctx context.Context, event *models.Event) error {
	if !event.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := s.repo.Update(ctx, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.updated", event)
	}
	return nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.deleted", map[string]uint{"id": id})
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.repo.FindAll(ctx)
}

func (s *eventService) ListEventsByCategory(ctx context.Context, category models.EventCategory) ([]models.Event, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	return s.repo.FindByCategory(ctx, category)
}
