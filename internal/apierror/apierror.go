// Package apierror maps domain errors to HTTP responses.
// All error bodies share the envelope {"error": "..."}.
package apierror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mytheresa/go-inventory/models"
)

type APIError struct {
	Error string `json:"error"`
}

func New(msg string) APIError {
	return APIError{Error: msg}
}

// Status returns the HTTP status for err.
func Status(err error) int {
	var vErr *models.ValidationError
	var sErr *models.StoreError
	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrNoCategoriesAvailable):
		return http.StatusConflict
	case errors.Is(err, models.ErrProductNotFound):
		return http.StatusNotFound
	case errors.As(err, &sErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Message is the user-facing text for err. Store failures keep the underlying
// message, prefixed with what was being attempted.
func Message(action string, err error) string {
	var sErr *models.StoreError
	if errors.As(err, &sErr) {
		return action + ": " + sErr.Error()
	}
	return err.Error()
}

// Abort writes the error response and logs store failures.
func Abort(c *gin.Context, action string, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Msg(action)
	}
	c.AbortWithStatusJSON(status, New(Message(action, err)))
}
