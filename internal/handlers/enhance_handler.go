package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhive/internal/services"
)

type promptRequest struct {
	Prompt string `json:"prompt"`
}

// The AI endpoints answer with bare {titles}, {description} or {error}
// bodies, which the dashboard reads directly.

func EventHeading(es *services.EnhanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req promptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
			return
		}

		titles, err := es.SuggestTitles(c.Request.Context(), req.Prompt)
		if err != nil {
			if errors.Is(err, services.ErrEmptyPrompt) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"titles": titles})
	}
}

func EventDescription(es *services.EnhanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req promptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
			return
		}

		description, err := es.EnhanceDescription(c.Request.Context(), req.Prompt)
		if err != nil {
			if errors.Is(err, services.ErrEmptyPrompt) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"description": description})
	}
}
