package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
	"github.com/joshua-takyi/mba/internal/services"
)

const (
	userKey   = "user"
	userIDKey = "user_id"

	tokenHeader = "x-access-token"

	noTokenMessage     = "No token provided"
	unknownUserMessage = "User doesn't exist"
)

// Authenticate verifies the bearer token and loads the caller once per
// request. Later gates read the loaded user from the context.
func Authenticate(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			abortWith(c, helpers.Forbidden(noTokenMessage))
			return
		}

		claims, err := users.ValidateToken(token)
		if err != nil {
			abortWith(c, err)
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.ID)
		if err != nil {
			if appErr, ok := helpers.AsAppError(err); ok && (appErr.Kind == helpers.KindNotFound || appErr.Kind == helpers.KindBadRequest) {
				abortWith(c, helpers.Unauthorized(unknownUserMessage))
				return
			}
			abortWith(c, err)
			return
		}

		c.Set(userKey, user)
		c.Set(userIDKey, user.ID.Hex())
		c.Next()
	}
}

// accessToken reads x-access-token, falling back to a bearer Authorization header.
func accessToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(tokenHeader)); token != "" {
		return token
	}
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// CurrentUser returns the caller loaded by Authenticate.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func IsAdmin() gin.HandlerFunc {
	return requireRole("User is not an admin, cannot proceed with the request", models.RoleAdmin)
}

func IsClient() gin.HandlerFunc {
	return requireRole("User is not a client, cannot proceed with the request", models.RoleClient)
}

func IsAdminOrClient() gin.HandlerFunc {
	return requireRole("User is neither a client nor an admin, cannot proceed with the request",
		models.RoleAdmin, models.RoleClient)
}

func requireRole(message string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWith(c, helpers.Unauthorized(unknownUserMessage))
			return
		}
		for _, role := range roles {
			if user.UserRole == role {
				c.Next()
				return
			}
		}
		abortWith(c, helpers.Unauthorized(message))
	}
}
