package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/mba/internal/helpers"
)

func ValidateTheatreCreateRequest() gin.HandlerFunc {
	return requireFields(
		check{"name", "The name of the theatre is missing in the request"},
		check{"pincode", "The pincode of the theatre is missing in the request"},
		check{"city", "The city of the theatre is missing in the request"},
	)
}

// ValidateUpdateMoviesRequest needs an insert flag, which may be false, and a
// non empty movieIds array.
func ValidateUpdateMoviesRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, ok := bodyFields(c)
		if !ok {
			return
		}
		if _, ok := fields["insert"]; !ok {
			abortWith(c, helpers.BadRequest(`The "insert" parameter is missing in the request`))
			return
		}
		movieIDs := fields["movieIds"]
		if !present(movieIDs) {
			abortWith(c, helpers.BadRequest("No movies provided in the request to update in theatre"))
			return
		}
		list, ok := movieIDs.([]interface{})
		if !ok {
			abortWith(c, helpers.BadRequest(`Expected "movieIds" to be an array`))
			return
		}
		if len(list) == 0 {
			abortWith(c, helpers.BadRequest(`The "movieIds" array is empty`))
			return
		}
		c.Next()
	}
}
