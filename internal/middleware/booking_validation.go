package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
	"github.com/joshua-takyi/mba/internal/services"
)

// ValidateBookingCreateRequest checks the body and that the theatre exists and
// currently lists the movie.
func ValidateBookingCreateRequest(theatres *services.TheatreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, ok := bodyFields(c)
		if !ok {
			return
		}

		if !present(fields["theatreId"]) {
			abortWith(c, helpers.BadRequest("No theatre ID provided"))
			return
		}
		theatreID, ok := idField(fields["theatreId"])
		if !ok {
			abortWith(c, helpers.BadRequest("Invalid theatre ID format"))
			return
		}
		theatre, err := theatres.GetTheatre(c.Request.Context(), theatreID)
		if err != nil {
			if appErr, ok := helpers.AsAppError(err); ok && appErr.Kind == helpers.KindNotFound {
				abortWith(c, helpers.NotFound("No theatre found for the given ID"))
				return
			}
			abortWith(c, err)
			return
		}

		if !present(fields["movieId"]) {
			abortWith(c, helpers.BadRequest("No movie ID provided"))
			return
		}
		movieID, ok := idField(fields["movieId"])
		if !ok {
			abortWith(c, helpers.BadRequest("Invalid movie ID format"))
			return
		}
		mid, _ := helpers.ParseID(movieID)
		if !theatre.HasMovie(mid) {
			abortWith(c, helpers.NotFound("The requested movie is not available in this theatre"))
			return
		}

		if !present(fields["timing"]) {
			abortWith(c, helpers.BadRequest("No movie timing provided"))
			return
		}
		if !present(fields["noOfSeats"]) {
			abortWith(c, helpers.BadRequest("No seat count provided"))
			return
		}
		c.Next()
	}
}

// CanChangeStatus lets customers move a booking to cancelled and nothing else.
func CanChangeStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWith(c, helpers.Unauthorized(unknownUserMessage))
			return
		}
		fields, ok := bodyFields(c)
		if !ok {
			return
		}
		status := fields["status"]
		if user.IsCustomer() && present(status) && stringValue(status) != models.BookingCancelled {
			abortWith(c, helpers.Unauthorized(services.CannotChangeStatusMessage))
			return
		}
		c.Next()
	}
}
