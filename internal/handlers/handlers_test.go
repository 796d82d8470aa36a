package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhive/internal/helpers"
	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/joshua-takyi/eventhive/internal/payment"
	"github.com/joshua-takyi/eventhive/internal/services"
	"github.com/joshua-takyi/eventhive/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubHost struct {
	err       error
	destroyed []string
}

func (s *stubHost) Upload(context.Context, string) (*helpers.UploadedAsset, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &helpers.UploadedAsset{URL: "https://res.cloudinary.com/demo/events/x.jpg", PublicID: "events/x"}, nil
}

func (s *stubHost) Destroy(_ context.Context, id string) error {
	s.destroyed = append(s.destroyed, id)
	return s.err
}

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(context.Context, string) (string, error) {
	return s.text, s.err
}

type fixture struct {
	router *gin.Engine
	repo   *models.MemoryEventRepo
	host   *stubHost
	gen    *stubGenerator
}

func newFixture(t *testing.T, identity *session.Identity, provider payment.Provider) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		repo: models.NewMemoryEventRepo(),
		host: &stubHost{},
		gen:  &stubGenerator{},
	}
	if provider == nil {
		provider = payment.Simulated{}
	}
	events := services.NewEventService(f.repo)
	media := services.NewMediaService(f.host, t.TempDir())
	enhance := services.NewEnhanceService(f.gen)
	bookings := services.NewBookingService(f.repo, provider, nil, discard)

	r := gin.New()
	if identity != nil {
		r.Use(func(c *gin.Context) { session.WithIdentity(c, identity); c.Next() })
	}
	api := r.Group("/api")
	api.POST("/create-event", CreateEvent(events))
	api.GET("/get-admin-event", ListEvents(events))
	api.DELETE("/delete-event", DeleteEvent(events))
	api.POST("/cloudinary/upload", UploadImage(media))
	api.DELETE("/cloudinary/upload", DeleteImage(media))
	api.POST("/event-heading", EventHeading(enhance))
	api.POST("/event-description", EventDescription(enhance))
	api.POST("/book-event", BookEvent(bookings))
	api.GET("/events.ics", EventsCalendar(events))
	f.router = r
	return f
}

func (f *fixture) do(method, target string, body any) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func eventBody() map[string]any {
	return map[string]any{
		"userId":           "admin-1",
		"eventTitle":       "Epic Launch Night",
		"eventVenue":       "Blue Frog",
		"eventStartDate":   "2025-06-25",
		"eventEndDate":     "2025-06-25",
		"eventStartTime":   "18:00",
		"eventEndTime":     "23:00",
		"eventCoverCost":   499,
		"eventImage":       "https://res.cloudinary.com/demo/events/x.jpg",
		"eventDescription": "Music all night.",
	}
}

func TestCreateListDelete(t *testing.T) {
	f := newFixture(t, nil, nil)

	w := f.do(http.MethodGet, "/api/get-admin-event", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decode(t, w)["data"])

	w = f.do(http.MethodPost, "/api/create-event", eventBody())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.Equal(t, true, created["success"])
	data := created["data"].(map[string]any)
	id := data["_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Epic Launch Night", data["eventTitle"])

	w = f.do(http.MethodGet, "/api/get-admin-event?userId=someone-else", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	w = f.do(http.MethodDelete, "/api/delete-event?id="+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Event deleted", decode(t, w)["message"])

	w = f.do(http.MethodDelete, "/api/delete-event?id="+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Event not found", decode(t, w)["error"])

	w = f.do(http.MethodDelete, "/api/delete-event", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEventValidation(t *testing.T) {
	f := newFixture(t, nil, nil)

	body := eventBody()
	delete(body, "eventVenue")
	w := f.do(http.MethodPost, "/api/create-event", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	body = eventBody()
	body["eventCoverCost"] = 0
	w = f.do(http.MethodPost, "/api/create-event", body)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateEventFallsBackToSessionUser(t *testing.T) {
	f := newFixture(t, &session.Identity{UserID: "session-admin"}, nil)

	body := eventBody()
	delete(body, "userId")
	w := f.do(http.MethodPost, "/api/create-event", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "session-admin", decode(t, w)["data"].(map[string]any)["userId"])
}

func multipartUpload(t *testing.T, field, name, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/cloudinary/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	f := newFixture(t, nil, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, multipartUpload(t, "image", "poster.png", "png"))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Image uploaded successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "events/x", data["public_id"])
	assert.Equal(t, "poster.png", data["original_name"])
	assert.EqualValues(t, 3, data["size"])

	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, multipartUpload(t, "", "", ""))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", decode(t, w)["message"])

	f.host.err = errors.New("cloudinary 500")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, multipartUpload(t, "image", "poster.png", "png"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Image upload failed", decode(t, w)["message"])
}

func TestDeleteImage(t *testing.T) {
	f := newFixture(t, nil, nil)

	w := f.do(http.MethodDelete, "/api/cloudinary/upload?publicId=events/x", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"events/x"}, f.host.destroyed)

	w = f.do(http.MethodDelete, "/api/cloudinary/upload", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHeading(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.gen.text = "1. Neon Nights\n2. This Title Has Far Too Many Words\n3) Beat Bash"

	w := f.do(http.MethodPost, "/api/event-heading", map[string]string{"prompt": "club night"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"Neon Nights", "Beat Bash"}, decode(t, w)["titles"])

	w = f.do(http.MethodPost, "/api/event-heading", map[string]string{"prompt": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Prompt is required", decode(t, w)["error"])

	f.gen.text = "no numbered lines"
	w = f.do(http.MethodPost, "/api/event-heading", map[string]string{"prompt": "club night"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decode(t, w)["titles"])

	f.gen.err = errors.New("upstream down")
	w = f.do(http.MethodPost, "/api/event-heading", map[string]string{"prompt": "club night"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decode(t, w)["error"])
}

func TestEventDescription(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.gen.text = "Line one.\nLine   two.\n"

	w := f.do(http.MethodPost, "/api/event-description", map[string]string{"prompt": "rooftop"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Line one. Line two.", decode(t, w)["description"])

	w = f.do(http.MethodPost, "/api/event-description", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	f.gen.err = errors.New("timeout")
	w = f.do(http.MethodPost, "/api/event-description", map[string]string{"prompt": "rooftop"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

type declined struct{}

func (declined) Charge(context.Context, payment.Charge) (*payment.Receipt, error) {
	return nil, payment.ErrPaymentDeclined
}

func TestBookEvent(t *testing.T) {
	f := newFixture(t, nil, nil)
	w := f.do(http.MethodPost, "/api/create-event", eventBody())
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["data"].(map[string]any)["_id"].(string)

	form := map[string]string{"eventId": id, "name": "Asha", "email": "a@b.com", "phone": "123-456-7890"}
	w = f.do(http.MethodPost, "/api/book-event", form)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 499, body["data"].(map[string]any)["amount"])

	bad := map[string]string{"eventId": id, "name": "", "email": "not-an-email", "phone": "12345"}
	w = f.do(http.MethodPost, "/api/book-event", bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]any)
	assert.Len(t, fields, 3)

	form["eventId"] = "missing"
	w = f.do(http.MethodPost, "/api/book-event", form)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookEventDeclined(t *testing.T) {
	f := newFixture(t, nil, declined{})
	w := f.do(http.MethodPost, "/api/create-event", eventBody())
	id := decode(t, w)["data"].(map[string]any)["_id"].(string)

	w = f.do(http.MethodPost, "/api/book-event", map[string]string{"eventId": id, "name": "A", "email": "a@b.com", "phone": "1234567890"})
	require.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestEventsCalendar(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.do(http.MethodPost, "/api/create-event", eventBody())

	w := f.do(http.MethodGet, "/api/events.ics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, w.Body.String(), "SUMMARY:Epic Launch Night")
}
