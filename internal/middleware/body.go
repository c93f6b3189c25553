package middleware

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/joshua-takyi/mba/internal/helpers"
)

// bodyFields decodes the JSON body into a map for presence checks. The raw
// body is cached by gin so the handler can bind it again.
func bodyFields(c *gin.Context) (map[string]interface{}, bool) {
	var fields map[string]interface{}
	if err := c.ShouldBindBodyWith(&fields, binding.JSON); err != nil && !errors.Is(err, io.EOF) {
		abortWith(c, helpers.BadRequest("Malformed JSON in request body"))
		return nil, false
	}
	if fields == nil {
		fields = map[string]interface{}{}
	}
	return fields, true
}

// present reports whether a decoded JSON value counts as provided: null,
// false, 0 and "" do not.
func present(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}

// idField reports whether v is a string holding a valid object id.
func idField(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return s, helpers.IsValidID(s)
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func abortWith(c *gin.Context, err error) {
	helpers.RespondError(c, err)
}
