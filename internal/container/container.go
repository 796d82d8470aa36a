package container

import (
	"context"
	"log/slog"

	"github.com/joshua-takyi/eventhive/internal/config"
	"github.com/joshua-takyi/eventhive/internal/helpers"
	"github.com/joshua-takyi/eventhive/internal/janitor"
	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/joshua-takyi/eventhive/internal/notify"
	"github.com/joshua-takyi/eventhive/internal/payment"
	"github.com/joshua-takyi/eventhive/internal/services"
	"github.com/joshua-takyi/eventhive/internal/session"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	EventsRepo models.EventRepo
	Redis      *redis.Client
	Session    session.Provider
	Janitor    *janitor.Janitor

	EventService   *services.EventService
	MediaService   *services.MediaService
	EnhanceService *services.EnhanceService
	BookingService *services.BookingService
}

// Deps are the already connected clients the container is built from.
type Deps struct {
	EventsRepo models.EventRepo
	MediaHost  helpers.MediaHost
	Generator  services.Generator
	Session    session.Provider
	Redis      *redis.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger, deps Deps) *Container {
	provider := deps.Session
	if provider == nil {
		provider = session.Anonymous{}
	}

	var payments payment.Provider = payment.Simulated{Delay: cfg.PaymentDelay}
	if cfg.PaymentProvider == "gateway" {
		payments = payment.NewGateway(cfg.PaymentGateway)
	}
	publisher := notify.New(cfg.RabbitMQURL, cfg.BookingsQueue)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		EventsRepo:     deps.EventsRepo,
		Redis:          deps.Redis,
		Session:        provider,
		Janitor:        janitor.New(cfg.UploadDir, cfg.UploadMaxAge, logger),
		EventService:   services.NewEventService(deps.EventsRepo),
		MediaService:   services.NewMediaService(deps.MediaHost, cfg.UploadDir),
		EnhanceService: services.NewEnhanceService(deps.Generator),
		BookingService: services.NewBookingService(deps.EventsRepo, payments, publisher, logger),
	}
}

// Close releases the store and the optional clients.
func (c *Container) Close(ctx context.Context) {
	c.Janitor.Stop(ctx)
	if err := c.EventsRepo.Close(ctx); err != nil {
		c.Logger.Error("Error closing event store", "error", err)
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error("Error closing Redis", "error", err)
		}
	}
	if closer, ok := c.Session.(interface{ Close() }); ok {
		closer.Close()
	}
}
