// Package search filters an in-memory list of events by free text.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/joshua-takyi/eventhive/internal/models"
)

// FormatStartDate renders a date the way listings show it, for example
// "Wednesday, 25-6-2025". Day and month are not zero padded.
func FormatStartDate(t time.Time) string {
	return fmt.Sprintf("%s, %d-%d-%d", t.Weekday(), t.Day(), int(t.Month()), t.Year())
}

// Matches reports whether the lower-cased query occurs in the event's title,
// description, formatted start date or venue.
func Matches(e *models.Event, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	q := strings.ToLower(query)
	fields := []string{e.EventTitle, e.EventDescription, FormatStartDate(e.EventStartDate), e.EventVenue}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter returns the events matching query in their original order. A blank
// query returns every event.
func Filter(events []*models.Event, query string) []*models.Event {
	if strings.TrimSpace(query) == "" {
		out := make([]*models.Event, len(events))
		copy(out, events)
		return out
	}
	out := make([]*models.Event, 0, len(events))
	for _, e := range events {
		if Matches(e, query) {
			out = append(out, e)
		}
	}
	return out
}
