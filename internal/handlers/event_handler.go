package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhive/internal/helpers"
	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/joshua-takyi/eventhive/internal/services"
	"github.com/joshua-takyi/eventhive/internal/session"
)

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body: "+err.Error()))
			return
		}

		var sessionUserID string
		if id, ok := session.FromContext(c); ok {
			sessionUserID = id.UserID
		}

		event, err := es.CreateEvent(c.Request.Context(), &req, sessionUserID)
		if err != nil {
			if errors.Is(err, models.ErrInvalidEvent) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to create event"))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(event, "Event created successfully"))
	}
}

// ListEvents returns every event. The userId query parameter older clients
// send is ignored.
func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := es.ListEvents(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch events"))
			return
		}
		if events == nil {
			events = []*models.Event{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": events})
	}
}

func DeleteEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Query("id"))
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Event ID is required"))
			return
		}

		if err := es.DeleteEvent(c.Request.Context(), id); err != nil {
			if errors.Is(err, models.ErrEventNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse("Event not found"))
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to delete event"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event deleted"))
	}
}
