package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhive/internal/booking"
	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/joshua-takyi/eventhive/internal/payment"
	"github.com/joshua-takyi/eventhive/internal/services"
)

func BookEvent(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form booking.Form
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body: "+err.Error()))
			return
		}

		res, err := bs.Book(c.Request.Context(), form)
		if err != nil {
			var fieldErrs booking.FieldErrors
			switch {
			case errors.As(err, &fieldErrs):
				c.JSON(http.StatusBadRequest, models.FieldErrorResponse("Please correct the highlighted fields", fieldErrs))
			case errors.Is(err, models.ErrEventNotFound):
				c.JSON(http.StatusNotFound, models.ErrorResponse("Event not found"))
			case errors.Is(err, payment.ErrPaymentDeclined):
				c.JSON(http.StatusPaymentRequired, models.ErrorResponse("Payment failed. Please try again."))
			default:
				_ = c.Error(err)
				c.JSON(http.StatusInternalServerError, models.ErrorResponse("Payment failed. Please try again."))
			}
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(res, "Booking successful! You will receive a confirmation email shortly."))
	}
}
