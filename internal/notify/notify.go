// Package notify announces confirmed bookings on a message queue.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// BookingConfirmed is published once a booking has been paid for.
type BookingConfirmed struct {
	EventID    string    `json:"eventId"`
	EventTitle string    `json:"eventTitle"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Amount     float64   `json:"amount"`
	Reference  string    `json:"reference"`
	BookedAt   time.Time `json:"bookedAt"`
}

type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, msg BookingConfirmed) error
}

// Noop drops every message. Used when no broker is configured.
type Noop struct{}

func (Noop) PublishBookingConfirmed(context.Context, BookingConfirmed) error { return nil }

// AMQPPublisher opens a short-lived connection per message and publishes to a
// durable queue through the default exchange.
type AMQPPublisher struct {
	url   string
	queue string
}

func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	if queue == "" {
		queue = "booking.confirmed"
	}
	return &AMQPPublisher{url: url, queue: queue}
}

// New returns an AMQP publisher, or Noop when url is empty.
func New(url, queue string) Publisher {
	if url == "" {
		return Noop{}
	}
	return NewAMQPPublisher(url, queue)
}

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, msg BookingConfirmed) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}
