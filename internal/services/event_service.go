package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/joshua-takyi/eventhive/internal/models"
)

type EventService struct {
	eventsRepo models.EventRepo
}

func NewEventService(eventsRepo models.EventRepo) *EventService {
	return &EventService{
		eventsRepo: eventsRepo,
	}
}

// CreateEvent stores a new event. When the request carries no userId the
// caller's session user, if any, becomes the owner.
func (es *EventService) CreateEvent(ctx context.Context, req *models.CreateEventRequest, sessionUserID string) (*models.Event, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", models.ErrInvalidEvent)
	}
	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = sessionUserID
	}

	event, err := req.ToEvent()
	if err != nil {
		return nil, err
	}
	return es.eventsRepo.CreateEvent(ctx, event)
}

func (es *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	return es.eventsRepo.ListEvents(ctx)
}

func (es *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.ErrEventNotFound
	}
	return es.eventsRepo.GetEventByID(ctx, id)
}

func (es *EventService) DeleteEvent(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("event ID is required")
	}
	return es.eventsRepo.DeleteEvent(ctx, id)
}
