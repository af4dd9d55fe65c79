package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yogawell/member-service/internal/core/domain"
)

// APIResponse is the envelope returned by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{Success: false, Message: message, Data: nil})
}

// errorStatus maps domain errors to HTTP status codes. Anything not in
// the taxonomy is an internal failure.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidGender),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrPhotoTooLarge),
		errors.Is(err, domain.ErrInvalidUserType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the client-facing message for a domain error.
// Internal failures get a generic message; details stay in the logs.
func errorMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrNotFound,
		domain.ErrDuplicateKey,
		domain.ErrInvalidGender,
		domain.ErrInvalidDate,
		domain.ErrPhotoTooLarge,
		domain.ErrInvalidUserType,
		domain.ErrInvalidCredentials,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Internal server error"
}
