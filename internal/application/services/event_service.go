package services

import (
	"context"
	"fmt"

	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// EventService handles event-related operations
type EventService struct {
	eventRepo ports.EventRepository
	logger    *logger.Logger
}

// NewEventService creates a new event service
func NewEventService(eventRepo ports.EventRepository, logger *logger.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// ListPublicEvents returns active events, newest date first
func (s *EventService) ListPublicEvents(ctx context.Context) ([]entities.Event, error) {
	events, err := s.eventRepo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// ListAllEvents returns every event for the admin panel, including
// soft-deleted ones
func (s *EventService) ListAllEvents(ctx context.Context) ([]entities.Event, error) {
	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, id int) (*entities.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// CreateEvent creates a new event
func (s *EventService) CreateEvent(ctx context.Context, req ports.CreateEventRequest) (*entities.Event, error) {
	event := &entities.Event{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Location:     req.Location,
		Participants: req.Participants,
		Category:     req.Category,
		Image:        req.Image,
		Featured:     req.Featured,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("Event created", "event_id", event.ID, "title", event.Title)

	return event, nil
}

// UpdateEvent applies a partial update to an event
func (s *EventService) UpdateEvent(ctx context.Context, id int, upd ports.EventUpdate) (*entities.Event, error) {
	event, err := s.eventRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Event updated", "event_id", event.ID)

	return event, nil
}

// DeleteEvent soft-deletes an event; the record stays visible to admin
// listings
func (s *EventService) DeleteEvent(ctx context.Context, id int) error {
	if err := s.eventRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Event deactivated", "event_id", id)

	return nil
}
