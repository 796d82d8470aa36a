package client

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joshua-takyi/eventhive/internal/models"
)

const InvalidFormMessage = "Please fill in all fields correctly. Cover Cost must be a non-negative number."

var ErrInvalidForm = errors.New(InvalidFormMessage)

// ImageFile is the image picked in the create form.
type ImageFile struct {
	Name string
	Data []byte
}

// EventForm mirrors the create-event form. Every value is the raw text the
// admin typed.
type EventForm struct {
	Title       string
	Venue       string
	StartDate   string
	EndDate     string
	StartTime   string
	EndTime     string
	CoverCost   string
	Image       *ImageFile
	Description string
}

// CoverCostValue parses the cover cost, rejecting negatives and non-numbers.
// NaN and infinities are not numbers a form can carry.
func (f EventForm) CoverCostValue() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(f.CoverCost), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// Validate returns ErrInvalidForm when any field is missing or the cover
// cost is not a non-negative number.
func (f EventForm) Validate() error {
	required := []string{f.Title, f.Venue, f.StartDate, f.EndDate, f.StartTime, f.EndTime, f.CoverCost, f.Description}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return ErrInvalidForm
		}
	}
	if _, ok := f.CoverCostValue(); !ok {
		return ErrInvalidForm
	}
	if f.Image == nil || f.Image.Name == "" || len(f.Image.Data) == 0 {
		return ErrInvalidForm
	}
	return nil
}

// CreateEvent uploads the form's image and then creates the event with the
// returned URL. If creation fails the uploaded image is deleted again, best
// effort. Nothing is retried and an invalid form sends no requests.
func (c *Client) CreateEvent(ctx context.Context, form EventForm, userID string) (*models.Event, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	cost, _ := form.CoverCostValue()

	uploaded, err := c.UploadImage(ctx, *form.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	event, err := c.CreateEventRecord(ctx, models.CreateEventRequest{
		UserID:           userID,
		EventTitle:       strings.TrimSpace(form.Title),
		EventVenue:       strings.TrimSpace(form.Venue),
		EventStartDate:   form.StartDate,
		EventEndDate:     form.EndDate,
		EventStartTime:   form.StartTime,
		EventEndTime:     form.EndTime,
		EventCoverCost:   &cost,
		EventImage:       uploaded.URL,
		EventDescription: strings.TrimSpace(form.Description),
	})
	if err != nil {
		if uploaded.PublicID != "" {
			_ = c.DeleteImage(context.WithoutCancel(ctx), uploaded.PublicID)
		}
		return nil, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}
	return event, nil
}
