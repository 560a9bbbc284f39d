package utils

import (
	"net/http"

	"patient-kiosk-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// SuccessResponse sends a standard success JSON response
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// ErrorResponse converts an error into the standard failure envelope.
// The "error" field is always one of the closed apperr kinds so machines
// can branch on it; "message" carries the human detail.
func ErrorResponse(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	c.JSON(statusFor(kind), gin.H{
		"success": false,
		"error":   string(kind),
		"message": apperr.DetailOf(err),
	})
}

// ErrorResponseStatus is ErrorResponse with an explicit HTTP status, for
// endpoints where the default mapping is wrong (e.g. the dashboard polls
// "latest" and a missing session must not look like a transport failure).
func ErrorResponseStatus(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   string(apperr.KindOf(err)),
		"message": apperr.DetailOf(err),
	})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.NotFound, apperr.NoActiveSession:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
