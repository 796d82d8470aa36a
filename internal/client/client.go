// Package client talks to the EventHive HTTP API. It holds the dashboard's
// flows: creating an event from a form, browsing and searching listings,
// and submitting bookings.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joshua-takyi/eventhive/internal/booking"
	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/joshua-takyi/eventhive/internal/services"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUploadFailed  = errors.New("image upload failed")
	ErrCreateFailed  = errors.New("event creation failed")
	ErrRequestFailed = errors.New("request failed")
)

// envelope is the common {success, message, data, error} body.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Fields  json.RawMessage `json:"fields"`
}

// APIError carries a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var env envelope
		if json.Unmarshal(body, &env) == nil {
			if env.Error != "" {
				apiErr.Message = env.Error
			} else if env.Message != "" {
				apiErr.Message = env.Message
			}
		}
		if out != nil {
			// callers that inspect field errors still get the body
			_ = json.Unmarshal(body, out)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding body: %v", ErrRequestFailed, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var rdr io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func isStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// ListEvents fetches the full collection.
func (c *Client) ListEvents(ctx context.Context) ([]*models.Event, error) {
	var env envelope
	if err := c.doJSON(ctx, http.MethodGet, "/api/get-admin-event", nil, &env); err != nil {
		return nil, err
	}
	events := []*models.Event{}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &events); err != nil {
			return nil, fmt.Errorf("%w: decoding events: %v", ErrRequestFailed, err)
		}
	}
	return events, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	err := c.doJSON(ctx, http.MethodDelete, "/api/delete-event?id="+url.QueryEscape(id), nil, nil)
	if isStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: event %s", ErrNotFound, id)
	}
	return err
}

// CreateEventRecord posts an already complete event payload.
func (c *Client) CreateEventRecord(ctx context.Context, req models.CreateEventRequest) (*models.Event, error) {
	var env envelope
	if err := c.doJSON(ctx, http.MethodPost, "/api/create-event", req, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Status: http.StatusOK, Message: env.Error}
	}
	var event models.Event
	if err := json.Unmarshal(env.Data, &event); err != nil {
		return nil, fmt.Errorf("%w: decoding event: %v", ErrRequestFailed, err)
	}
	return &event, nil
}

// UploadImage sends the image as the multipart field "image".
func (c *Client) UploadImage(ctx context.Context, img ImageFile) (*services.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", img.Name)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(img.Data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/cloudinary/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var env envelope
	if err := c.do(req, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Status: http.StatusOK, Message: env.Message}
	}
	var res services.UploadResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		return nil, fmt.Errorf("%w: decoding upload: %v", ErrRequestFailed, err)
	}
	return &res, nil
}

func (c *Client) DeleteImage(ctx context.Context, publicID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/cloudinary/upload?publicId="+url.QueryEscape(publicID), nil, nil)
}

func (c *Client) SuggestTitles(ctx context.Context, theme string) ([]string, error) {
	var out struct {
		Titles []string `json:"titles"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/event-heading", map[string]string{"prompt": theme}, &out); err != nil {
		return nil, err
	}
	if out.Titles == nil {
		out.Titles = []string{}
	}
	return out.Titles, nil
}

func (c *Client) EnhanceDescription(ctx context.Context, idea string) (string, error) {
	var out struct {
		Description string `json:"description"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/event-description", map[string]string{"prompt": idea}, &out); err != nil {
		return "", err
	}
	return out.Description, nil
}

// Book checks the form locally and submits it. Invalid forms never reach
// the server; server-side field errors come back as booking.FieldErrors.
func (c *Client) Book(ctx context.Context, form booking.Form) (*services.BookingResult, error) {
	if errs := booking.ValidateForm(form); errs != nil {
		return nil, errs
	}

	var env envelope
	err := c.doJSON(ctx, http.MethodPost, "/api/book-event", form, &env)
	if err != nil {
		if isStatus(err, http.StatusBadRequest) && len(env.Fields) > 0 {
			var fe booking.FieldErrors
			if json.Unmarshal(env.Fields, &fe) == nil && len(fe) > 0 {
				return nil, fe
			}
		}
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: event %s", ErrNotFound, form.EventID)
		}
		return nil, err
	}

	var res services.BookingResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		return nil, fmt.Errorf("%w: decoding booking: %v", ErrRequestFailed, err)
	}
	return &res, nil
}
