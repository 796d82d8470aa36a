package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhive/internal/helpers"
	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/joshua-takyi/eventhive/internal/services"
)

const imageField = "image"

func UploadImage(ms *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile(imageField)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ApiResponse{Success: false, Message: "No file uploaded"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ApiResponse{Success: false, Message: "Image upload failed", Error: err.Error()})
			return
		}
		defer f.Close()

		res, err := ms.Upload(c.Request.Context(), fh.Filename, f, fh.Size)
		if err != nil {
			if errors.Is(err, services.ErrNoFile) {
				c.JSON(http.StatusBadRequest, models.ApiResponse{Success: false, Message: "No file uploaded"})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ApiResponse{Success: false, Message: "Image upload failed", Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(res, "Image uploaded successfully"))
	}
}

func DeleteImage(ms *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		publicID := helpers.StringTrim(c.Query("publicId"))
		if publicID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("publicId is required"))
			return
		}

		if err := ms.Destroy(c.Request.Context(), publicID); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to delete image"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Image deleted"))
	}
}
