package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"projecthub/internal/models"
)

// statusFor maps typed errors to HTTP status codes. The legacy system
// collapsed progress failures to 400; this mapping is normalized across
// every endpoint instead.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrAlreadyExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the error and returns a JSON payload with the mapped status.
func (s *Server) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindError wraps gin binding failures so they map to 400.
func bindError(err error) error {
	return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
}

var errInvalidLimit = errors.New("limit must be a positive integer")

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
