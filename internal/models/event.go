package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	EventsDbName  = "eventhive"
	EventsColName = "createevents"

	dateLayout = "2006-01-02"
)

// Event is one listed event. Field names follow the documents already stored
// by the admin dashboard, so the JSON and BSON keys stay camelCase.
type Event struct {
	ID               string    `bson:"-" json:"_id"`
	UserID           string    `bson:"userId" json:"userId" validate:"required"`
	EventTitle       string    `bson:"eventTitle" json:"eventTitle" validate:"required"`
	EventVenue       string    `bson:"eventVenue" json:"eventVenue" validate:"required"`
	EventStartDate   time.Time `bson:"eventStartDate" json:"eventStartDate" validate:"required"`
	EventEndDate     time.Time `bson:"eventEndDate" json:"eventEndDate" validate:"required"`
	EventStartTime   string    `bson:"eventStartTime" json:"eventStartTime" validate:"required"`
	EventEndTime     string    `bson:"eventEndTime" json:"eventEndTime" validate:"required"`
	EventCoverCost   float64   `bson:"eventCoverCost" json:"eventCoverCost"`
	EventImage       string    `bson:"eventImage" json:"eventImage" validate:"required"`
	EventDescription string    `bson:"eventDescription" json:"eventDescription" validate:"required"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateEventRequest is the body accepted by the create endpoint. Dates are
// strings so both "2025-06-25" and RFC 3339 values are accepted, and the cost
// is a pointer so an explicit 0 can be told apart from a missing field.
type CreateEventRequest struct {
	UserID           string   `json:"userId"`
	EventTitle       string   `json:"eventTitle" validate:"required"`
	EventVenue       string   `json:"eventVenue" validate:"required"`
	EventStartDate   string   `json:"eventStartDate" validate:"required"`
	EventEndDate     string   `json:"eventEndDate" validate:"required"`
	EventStartTime   string   `json:"eventStartTime" validate:"required"`
	EventEndTime     string   `json:"eventEndTime" validate:"required"`
	EventCoverCost   *float64 `json:"eventCoverCost" validate:"required"`
	EventImage       string   `json:"eventImage" validate:"required"`
	EventDescription string   `json:"eventDescription" validate:"required"`
}

// ToEvent validates the request against the event schema and converts it.
func (r *CreateEventRequest) ToEvent() (*Event, error) {
	if err := Validate.Struct(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	start, err := ParseDate(r.EventStartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: eventStartDate: %v", ErrInvalidEvent, err)
	}
	end, err := ParseDate(r.EventEndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: eventEndDate: %v", ErrInvalidEvent, err)
	}

	e := &Event{
		UserID:           r.UserID,
		EventTitle:       r.EventTitle,
		EventVenue:       r.EventVenue,
		EventStartDate:   start,
		EventEndDate:     end,
		EventStartTime:   r.EventStartTime,
		EventEndTime:     r.EventEndTime,
		EventCoverCost:   *r.EventCoverCost,
		EventImage:       r.EventImage,
		EventDescription: r.EventDescription,
	}
	if err := Validate.Struct(e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return e, nil
}

// ParseDate accepts a calendar date (YYYY-MM-DD) or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.UTC(), nil
}

// Stamp sets the store-managed timestamps, discarding any client values.
func (e *Event) Stamp(now time.Time) {
	now = now.UTC().Truncate(time.Millisecond)
	e.CreatedAt = now
	e.UpdatedAt = now
}
