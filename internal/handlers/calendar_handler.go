package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhive/internal/calendar"
	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/joshua-takyi/eventhive/internal/services"
)

func EventsCalendar(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := es.ListEvents(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch events"))
			return
		}

		c.Header("Content-Disposition", `inline; filename="events.ics"`)
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar.Render(events, time.Now().UTC())))
	}
}
