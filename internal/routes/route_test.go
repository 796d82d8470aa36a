package routes

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhive/internal/config"
	"github.com/joshua-takyi/eventhive/internal/container"
	"github.com/joshua-takyi/eventhive/internal/helpers"
	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopHost struct{}

func (nopHost) Upload(context.Context, string) (*helpers.UploadedAsset, error) {
	return &helpers.UploadedAsset{URL: "https://cdn.example/x.jpg", PublicID: "events/x"}, nil
}

func (nopHost) Destroy(context.Context, string) error { return nil }

type echoGenerator struct{}

func (echoGenerator) Generate(context.Context, string) (string, error) {
	return "1. Neon Nights", nil
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Environment:      "development",
		Store:            config.StoreMemory,
		UploadDir:        t.TempDir(),
		UploadMaxAge:     time.Hour,
		RateLimitEnabled: true,
		RateLimitBurst:   1,
		RateLimitWindow:  time.Minute,
		PaymentProvider:  "simulated",
		AllowOrigins:     []string{"http://localhost:3000"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := container.NewContainer(cfg, logger, container.Deps{
		EventsRepo: models.NewMemoryEventRepo(),
		MediaHost:  nopHost{},
		Generator:  echoGenerator{},
	})
	t.Cleanup(func() { c.Close(context.Background()) })
	return SetupRoutes(c)
}

func TestHealth(t *testing.T) {
	r := newRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
}

func TestRoutesAreMounted(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/api/get-admin-event", "", http.StatusOK},
		{http.MethodGet, "/api/events.ics", "", http.StatusOK},
		{http.MethodDelete, "/api/delete-event", "", http.StatusBadRequest},
		{http.MethodDelete, "/api/cloudinary/upload?publicId=events/x", "", http.StatusOK},
		{http.MethodPost, "/api/event-heading", `{"prompt":"club"}`, http.StatusOK},
		{http.MethodPost, "/api/event-description", `{"prompt":""}`, http.StatusBadRequest},
		{http.MethodPost, "/api/book-event", `{"eventId":"x","name":"A","email":"a@b.com","phone":"1234567890"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/create-event", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
