package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/mba/internal/helpers"
)

// check pairs a body field with the message returned when it is absent.
type check struct {
	field   string
	message string
}

// requireFields aborts with the message of the first absent field.
func requireFields(checks ...check) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, ok := bodyFields(c)
		if !ok {
			return
		}
		for _, chk := range checks {
			if !present(fields[chk.field]) {
				abortWith(c, helpers.BadRequest(chk.message))
				return
			}
		}
		c.Next()
	}
}

func ValidateSignupRequest() gin.HandlerFunc {
	return requireFields(
		check{"name", "Name of the user not present in the request"},
		check{"email", "Email of the user not present in the request"},
		check{"password", "Password of the user not present in the request"},
	)
}

func ValidateSigninRequest() gin.HandlerFunc {
	return requireFields(
		check{"email", "No email provided for sign in"},
		check{"password", "No password provided for sign in"},
	)
}

func ValidateResetPasswordRequest() gin.HandlerFunc {
	return requireFields(
		check{"oldPassword", "Missing the old password in the request"},
		check{"newPassword", "Missing the new password in the request"},
	)
}
