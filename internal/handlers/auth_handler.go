package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/services"
)

func Signup(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.SignupInput
		if !bindBody(c, &in) {
			return
		}
		user, err := u.CreateUser(c.Request.Context(), in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusCreated, user, "Successfully registered a user")
	}
}

func Signin(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if !bindBody(c, &req) {
			return
		}
		result, err := u.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, result, "Successfully logged in")
	}
}

// ResetPassword changes the password of the authenticated user.
func ResetPassword(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req struct {
			OldPassword string `json:"oldPassword"`
			NewPassword string `json:"newPassword"`
		}
		if !bindBody(c, &req) {
			return
		}
		updated, err := u.ResetPassword(c.Request.Context(), user.ID.Hex(), req.OldPassword, req.NewPassword)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, updated, "Successfully updated the password for the given user")
	}
}
