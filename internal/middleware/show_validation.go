package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/mba/internal/helpers"
)

const invalidTimingMessage = "Invalid timing format, expected an RFC3339 timestamp"

// validTiming reports whether v is an RFC3339 timestamp string, the format
// show timings are decoded from.
func validTiming(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

func ValidateCreateShowRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, ok := bodyFields(c)
		if !ok {
			return
		}
		if !present(fields["theatreId"]) {
			abortWith(c, helpers.BadRequest("No theatre provided"))
			return
		}
		if _, ok := idField(fields["theatreId"]); !ok {
			abortWith(c, helpers.BadRequest("Invalid theatre id"))
			return
		}
		if !present(fields["movieId"]) {
			abortWith(c, helpers.BadRequest("No movie provided"))
			return
		}
		if _, ok := idField(fields["movieId"]); !ok {
			abortWith(c, helpers.BadRequest("Invalid movie id"))
			return
		}
		for _, chk := range []check{
			{"timing", "No timing provided"},
			{"noOfSeats", "No seat info provided"},
			{"price", "No price information provided"},
		} {
			if !present(fields[chk.field]) {
				abortWith(c, helpers.BadRequest(chk.message))
				return
			}
		}
		if !validTiming(fields["timing"]) {
			abortWith(c, helpers.BadRequest(invalidTimingMessage))
			return
		}
		c.Next()
	}
}

// ValidateShowUpdateRequest refuses to move a show to another theatre or movie.
func ValidateShowUpdateRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, ok := bodyFields(c)
		if !ok {
			return
		}
		if present(fields["theatreId"]) || present(fields["movieId"]) {
			abortWith(c, helpers.BadRequest("Cannot update theatre or movie for an existing show"))
			return
		}
		if timing, ok := fields["timing"]; ok && timing != nil && !validTiming(timing) {
			abortWith(c, helpers.BadRequest(invalidTimingMessage))
			return
		}
		c.Next()
	}
}
