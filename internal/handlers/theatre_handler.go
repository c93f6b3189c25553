package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/models"
	"github.com/joshua-takyi/mba/internal/services"
)

// CreateTheatre registers a theatre owned by the caller.
func CreateTheatre(t *services.TheatreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var in services.TheatreInput
		if !bindBody(c, &in) {
			return
		}
		theatre, err := t.CreateTheatre(c.Request.Context(), in, user.ID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusCreated, theatre, "Successfully created the theatre")
	}
}

func DeleteTheatre(t *services.TheatreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		theatre, err := t.DeleteTheatre(c.Request.Context(), c.Param("id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, theatre, "Successfully deleted the given theatre")
	}
}

func GetTheatre(t *services.TheatreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		theatre, err := t.GetTheatre(c.Request.Context(), c.Param("id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, theatre, "Successfully fetched the theatre data")
	}
}

// ListTheatres filters by city, pincode, name and movieId, which may repeat.
// skip is a page index, limit defaults to 3 when paging.
func ListTheatres(t *services.TheatreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pincode, ok := queryInt(c, "pincode")
		if !ok {
			return
		}
		limit, ok := queryInt(c, "limit")
		if !ok {
			return
		}
		skip, ok := queryInt(c, "skip")
		if !ok {
			return
		}
		theatres, err := t.GetAllTheatres(c.Request.Context(), services.TheatreQuery{
			City:     c.Query("city"),
			Pincode:  int(pincode),
			Name:     c.Query("name"),
			MovieIDs: c.QueryArray("movieId"),
			Limit:    limit,
			Skip:     skip,
		})
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, theatres, "Successfully fetched all theatres")
	}
}

func UpdateTheatre(t *services.TheatreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update models.TheatreUpdate
		if !bindBody(c, &update) {
			return
		}
		theatre, err := t.UpdateTheatre(c.Request.Context(), c.Param("id"), update)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, theatre, "Successfully updated the theatre")
	}
}

func UpdateTheatreMovies(t *services.TheatreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Insert   bool     `json:"insert"`
			MovieIDs []string `json:"movieIds"`
		}
		if !bindBody(c, &req) {
			return
		}
		theatre, err := t.UpdateMoviesInTheatres(c.Request.Context(), c.Param("id"), req.MovieIDs, req.Insert)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, theatre, "Successfully updated movies in the theatre")
	}
}

func GetTheatreMovies(t *services.TheatreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		movies, err := t.GetMoviesInATheatre(c.Request.Context(), c.Param("id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, movies, "Successfully fetched movies for the theatre")
	}
}

func CheckTheatreMovie(t *services.TheatreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := t.CheckMovieInATheatre(c.Request.Context(), c.Param("id"), c.Param("movieId"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		helpers.RespondSuccess(c, http.StatusOK, found, "Successfully checked movie presence in theatre")
	}
}
