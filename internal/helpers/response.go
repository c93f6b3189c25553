package helpers

import (
	"github.com/gin-gonic/gin"
)

const genericErrorMessage = "Something went wrong"

// UnexpectedErrorMessage is what clients see for errors that carry no kind.
const UnexpectedErrorMessage = "An unexpected error occurred"

// Envelope is the body of every response. A new value is built per call.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Err     interface{} `json:"err"`
}

func SuccessResponse(data interface{}, message string) Envelope {
	if data == nil {
		data = gin.H{}
	}
	return Envelope{
		Success: true,
		Data:    data,
		Message: message,
		Err:     gin.H{},
	}
}

func ErrorResponse(err interface{}) Envelope {
	return Envelope{
		Success: false,
		Data:    gin.H{},
		Message: genericErrorMessage,
		Err:     err,
	}
}

// RespondError renders an *AppError through the error envelope. Anything else
// is attached to the context and left for the ErrorHandler middleware, which
// logs it and answers with a generic 500.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := AsAppError(err); ok {
		c.AbortWithStatusJSON(appErr.Status(), ErrorResponse(appErr.Payload()))
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func RespondSuccess(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, SuccessResponse(data, message))
}
