// Package calendar exports events as an iCalendar feed.
package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/joshua-takyi/eventhive/internal/models"
)

const productID = "-//EventHive//Events//EN"

// At combines an event date with an "HH:MM" clock time. An unparsable
// clock leaves the date at midnight.
func At(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return date
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location())
}

// Build renders every event as a VEVENT.
func Build(events []*models.Event, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName("EventHive")

	for _, e := range events {
		vevent := cal.AddEvent(fmt.Sprintf("%s@eventhive", e.ID))
		vevent.SetDtStampTime(now)
		if !e.CreatedAt.IsZero() {
			vevent.SetCreatedTime(e.CreatedAt)
		}
		if !e.UpdatedAt.IsZero() {
			vevent.SetModifiedAt(e.UpdatedAt)
		}
		vevent.SetStartAt(At(e.EventStartDate, e.EventStartTime))
		vevent.SetEndAt(At(e.EventEndDate, e.EventEndTime))
		vevent.SetSummary(e.EventTitle)
		vevent.SetLocation(e.EventVenue)
		vevent.SetDescription(fmt.Sprintf("%s\n\nCover: %.2f", e.EventDescription, e.EventCoverCost))
		if e.EventImage != "" {
			vevent.SetURL(e.EventImage)
		}
	}
	return cal
}

// Render is Build followed by serialization.
func Render(events []*models.Event, now time.Time) string {
	return Build(events, now).Serialize()
}
