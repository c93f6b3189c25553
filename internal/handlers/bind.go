package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/middleware"
	"github.com/joshua-takyi/mba/internal/models"
)

// bindBody decodes the JSON body into v. The validation middlewares have
// usually read the body already; gin keeps a copy for this second bind.
func bindBody(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindBodyWith(v, binding.JSON); err != nil && !errors.Is(err, io.EOF) {
		helpers.RespondError(c, helpers.BadRequest("Malformed JSON in request body"))
		return false
	}
	return true
}

func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		helpers.RespondError(c, helpers.Unauthorized("User doesn't exist"))
		return nil, false
	}
	return user, true
}

// queryInt reads an optional integer query parameter.
func queryInt(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		helpers.RespondError(c, helpers.BadRequest("Invalid value for query parameter "+name))
		return 0, false
	}
	return n, true
}
