package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps a service error to a status code and a client-safe message.
func statusFor(err error) (int, string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "You must login in this page"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "You are not authorized to enter this page"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrNoSeats):
		return http.StatusConflict, "Not Available Tickets left!"
	case errors.Is(err, domain.ErrDuplicateUser):
		return http.StatusConflict, "A user with the given email or username already exists"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Error("request failed")
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg})
}
