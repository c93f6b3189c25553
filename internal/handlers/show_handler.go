package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
	"github.com/joshua-takyi/mba/internal/services"
)

func CreateShow(s *services.ShowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ShowInput
		if !bindBody(c, &in) {
			return
		}
		show, err := s.CreateShow(c.Request.Context(), in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusCreated, show, "Successfully created the show")
	}
}

func ListShows(s *services.ShowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shows, err := s.GetShows(c.Request.Context(), c.Query("theatreId"), c.Query("movieId"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, shows, "Successfully fetched the movie shows")
	}
}

func DeleteShow(s *services.ShowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		show, err := s.DeleteShow(c.Request.Context(), c.Param("id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, show, "Successfully deleted the show")
	}
}

func UpdateShow(s *services.ShowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update models.ShowUpdate
		if !bindBody(c, &update) {
			return
		}
		show, err := s.UpdateShow(c.Request.Context(), c.Param("id"), update)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, show, "Successfully updated the show")
	}
}
