package models

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event data provided")
)

// EventRepo is the event record store. Implementations generate IDs and
// timestamps; nothing else about the event is touched.
type EventRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	Close(ctx context.Context) error
}
