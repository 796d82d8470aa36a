// Package payment charges the cover cost of a booking.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

var ErrPaymentDeclined = errors.New("payment declined")

type Charge struct {
	EventID  string  `json:"eventId"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type Receipt struct {
	Reference string    `json:"reference"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	PaidAt    time.Time `json:"paidAt"`
}

type Provider interface {
	Charge(ctx context.Context, charge Charge) (*Receipt, error)
}

// Simulated waits for Delay and then always succeeds.
type Simulated struct {
	Delay time.Duration
}

func (s Simulated) Charge(ctx context.Context, charge Charge) (*Receipt, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return &Receipt{
		Reference: "sim_" + uuid.NewString(),
		Amount:    charge.Amount,
		Currency:  charge.Currency,
		PaidAt:    time.Now().UTC(),
	}, nil
}

// Gateway posts the charge as JSON to an external payment endpoint. Any
// non-2xx answer is a decline.
type Gateway struct {
	Endpoint string
	Client   *http.Client
}

func NewGateway(endpoint string) *Gateway {
	return &Gateway{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *Gateway) Charge(ctx context.Context, charge Charge) (*Receipt, error) {
	body, err := json.Marshal(charge)
	if err != nil {
		return nil, fmt.Errorf("failed to encode charge: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: gateway returned %d", ErrPaymentDeclined, resp.StatusCode)
	}

	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("failed to decode gateway receipt: %w", err)
	}
	if receipt.PaidAt.IsZero() {
		receipt.PaidAt = time.Now().UTC()
	}
	return &receipt, nil
}
