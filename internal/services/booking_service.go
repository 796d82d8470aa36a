package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/eventhive/internal/booking"
	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/joshua-takyi/eventhive/internal/notify"
	"github.com/joshua-takyi/eventhive/internal/payment"
)

const bookingCurrency = "INR"

type BookingResult struct {
	EventID   string    `json:"eventId"`
	Reference string    `json:"reference"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	BookedAt  time.Time `json:"bookedAt"`
}

type BookingService struct {
	eventsRepo models.EventRepo
	payments   payment.Provider
	publisher  notify.Publisher
	logger     *slog.Logger
}

func NewBookingService(eventsRepo models.EventRepo, payments payment.Provider, publisher notify.Publisher, logger *slog.Logger) *BookingService {
	if publisher == nil {
		publisher = notify.Noop{}
	}
	return &BookingService{
		eventsRepo: eventsRepo,
		payments:   payments,
		publisher:  publisher,
		logger:     logger,
	}
}

// Book validates the form, charges the event's cover cost and announces the
// booking. A failed announcement is logged and does not fail the booking.
func (bs *BookingService) Book(ctx context.Context, form booking.Form) (*BookingResult, error) {
	if errs := booking.ValidateForm(form); errs != nil {
		return nil, errs
	}
	if form.EventID == "" {
		return nil, models.ErrEventNotFound
	}

	event, err := bs.eventsRepo.GetEventByID(ctx, form.EventID)
	if err != nil {
		return nil, err
	}

	receipt, err := bs.payments.Charge(ctx, payment.Charge{
		EventID:  event.ID,
		Name:     form.Name,
		Email:    form.Email,
		Phone:    booking.NormalizePhone(form.Phone),
		Amount:   event.EventCoverCost,
		Currency: bookingCurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to charge booking: %w", err)
	}

	msg := notify.BookingConfirmed{
		EventID:    event.ID,
		EventTitle: event.EventTitle,
		Name:       form.Name,
		Email:      form.Email,
		Phone:      booking.NormalizePhone(form.Phone),
		Amount:     receipt.Amount,
		Reference:  receipt.Reference,
		BookedAt:   receipt.PaidAt,
	}
	if err := bs.publisher.PublishBookingConfirmed(ctx, msg); err != nil {
		bs.logger.Warn("Booking notice not published", "event_id", event.ID, "reference", receipt.Reference, "error", err)
	}

	return &BookingResult{
		EventID:   event.ID,
		Reference: receipt.Reference,
		Amount:    receipt.Amount,
		Currency:  receipt.Currency,
		BookedAt:  receipt.PaidAt,
	}, nil
}
