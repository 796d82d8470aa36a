package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhive/internal/container"
	"github.com/joshua-takyi/eventhive/internal/handlers"
	"github.com/joshua-takyi/eventhive/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.Session(container.Session, container.Logger, container.Config.IsProduction()))

	limiter := middleware.RateLimit(middleware.RateLimitConfig{
		Enabled: container.Config.RateLimitEnabled,
		Burst:   container.Config.RateLimitBurst,
		Window:  container.Config.RateLimitWindow,
		Prefix:  "eventhive:ai",
	}, container.Redis, container.Logger)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "eventhive-api",
			})
		})

		api.POST("/create-event", handlers.CreateEvent(container.EventService))
		api.DELETE("/delete-event", handlers.DeleteEvent(container.EventService))
		api.GET("/get-admin-event", handlers.ListEvents(container.EventService))
		api.GET("/events.ics", handlers.EventsCalendar(container.EventService))

		api.POST("/cloudinary/upload", handlers.UploadImage(container.MediaService))
		api.DELETE("/cloudinary/upload", handlers.DeleteImage(container.MediaService))

		api.POST("/book-event", handlers.BookEvent(container.BookingService))
	}

	ai := api.Group("/")
	ai.Use(limiter)
	{
		ai.POST("/event-heading", handlers.EventHeading(container.EnhanceService))
		ai.POST("/event-description", handlers.EventDescription(container.EnhanceService))
	}

	return r
}
