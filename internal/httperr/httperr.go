package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func statusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict, KindState, KindDependency:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Write(c *gin.Context, status int, code, message string, detail map[string]any) {
	body := gin.H{
		"success": false,
		"code":    code,
		"message": message,
	}
	for k, v := range detail {
		body[k] = v
	}
	c.JSON(status, body)
}

// Respond maps a business error onto its 4xx response. Unexpected errors
// become an opaque 500; callers log them separately.
func Respond(c *gin.Context, err error) {
	var be *BusinessError
	if errors.As(err, &be) {
		Write(c, statusFor(be.Kind), be.Code, be.Message, be.Detail)
		return
	}

	Write(c, http.StatusInternalServerError, "internal_error", "Something went wrong.", nil)
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message, nil)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message, nil)
}

func NotFoundStatus(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message, nil)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message, nil)
}
