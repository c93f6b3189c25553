package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
	"github.com/joshua-takyi/mba/internal/services"
)

func UpdateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update models.UserUpdate
		if !bindBody(c, &update) {
			return
		}
		user, err := u.UpdateUserRoleOrStatus(c.Request.Context(), c.Param("id"), update)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, user, "Successfully updated the user")
	}
}
