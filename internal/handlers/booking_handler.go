package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/services"
)

func CreateBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var in services.BookingInput
		if !bindBody(c, &in) {
			return
		}
		booking, err := b.CreateBooking(c.Request.Context(), user.ID, in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusCreated, booking, "Successfully created a booking")
	}
}

func UpdateBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var update services.BookingUpdate
		if !bindBody(c, &update) {
			return
		}
		booking, err := b.UpdateBooking(c.Request.Context(), user, c.Param("id"), update)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, booking, "Successfully updated the booking")
	}
}

// ListBookings returns the bookings made by the caller.
func ListBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		bookings, err := b.GetBookings(c.Request.Context(), user.ID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, bookings, "Successfully fetched the bookings")
	}
}

func ListAllBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := b.GetAllBookings(c.Request.Context())
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, bookings, "Successfully fetched the bookings")
	}
}

func GetBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		booking, err := b.GetBookingByID(c.Request.Context(), c.Param("id"), user.ID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, booking, "Successfully fetched the booking")
	}
}
