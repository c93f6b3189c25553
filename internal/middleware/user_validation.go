package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/mba/internal/helpers"
)

func ValidateUpdateUserRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, ok := bodyFields(c)
		if !ok {
			return
		}
		if !present(fields["userRole"]) && !present(fields["userStatus"]) {
			abortWith(c, helpers.BadRequest("Malformed request, please provide at least one of 'userRole' or 'userStatus'."))
			return
		}
		c.Next()
	}
}
