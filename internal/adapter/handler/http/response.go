package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webstack-labs/user-auth-services/internal/core/domain"
)

// All failures share the same body shape; the status code is the
// discriminator.
type errorResponse struct {
	Error string `json:"error"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{
		Error: message,
	})
}

// handleServiceError maps core errors to the status taxonomy. Unknown errors
// become a generic 500: the detail stays in the server logs.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		newErrorResponse(c, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrValidation):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmailExists):
		newErrorResponse(c, http.StatusConflict, domain.ErrEmailExists.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		newErrorResponse(c, http.StatusNotFound, domain.ErrUserNotFound.Error())
	default:
		newErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}
