package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func mapErrorCodeToHTTP(code string) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteHTTPError writes an AppError as a JSON error response.
// Unknown error types become a 500 with a generic message.
func WriteHTTPError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(mapErrorCodeToHTTP(appErr.Code), gin.H{
			"code":  appErr.Code,
			"error": appErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"code":  CodeInternalServer,
		"error": "internal server error",
	})
}
