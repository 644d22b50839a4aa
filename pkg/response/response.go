// Package response owns the JSON envelopes the API writes and the error to status mapping.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/product-catalog-service/internal/repository"
	"github.com/maxviazov/product-catalog-service/internal/service"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// ErrorPayload is the body of every non-2xx API response.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
	RequestID   string               `json:"request_id,omitempty"`
}

// errorKinds is checked in order; the first sentinel err matches wins.
var errorKinds = []struct {
	target  error
	status  int
	code    string
	message string
}{
	{service.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument", "one or more fields are invalid"},
	{repository.ErrNotFound, http.StatusNotFound, "not_found", ""},
	{repository.ErrAlreadyExists, http.StatusConflict, "already_exists", ""},
	{repository.ErrConflict, http.StatusConflict, "conflict", ""},
	{repository.ErrStoreUnavailable, http.StatusServiceUnavailable, "store_unavailable", "catalog store is temporarily unavailable"},
}

// MapError converts a domain or infrastructure error into a status and payload.
// Driver details never reach the payload; they stay in the logs.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.status, ErrorPayload{Error: k.code, Message: k.message, FieldErrors: service.FieldErrors(err)}
		}
	}
	return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
}

// WriteError records err on the context for the access log, then aborts with its payload.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	payload.RequestID = c.GetString(RequestIDKey)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
