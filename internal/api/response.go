// Package api implements the JSON wire envelope and the mapping from
// domain errors to HTTP status codes.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adresponse/adresponse/internal/domain"
)

// Payload holds the response fields merged into the success envelope.
type Payload map[string]interface{}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Success writes a response with "success": true merged with the
// payload fields.
func Success(w http.ResponseWriter, status int, payload Payload) {
	body := map[string]interface{}{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	JSON(w, status, body)
}

// Error writes a {"success": false, "error": ...} response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// DomainErrorToHTTP maps domain errors to HTTP status codes
func DomainErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodePrecondition:
		return http.StatusBadRequest
	case domain.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case domain.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes an appropriate error response based on the error
// type. Unexpected errors get a generic message so internals never
// leak to clients.
func HandleError(w http.ResponseWriter, err error) {
	status := DomainErrorToHTTP(err)
	if status == http.StatusInternalServerError {
		var domainErr *domain.DomainError
		if !errors.As(err, &domainErr) {
			Error(w, status, "internal server error")
			return
		}
	}
	Error(w, status, err.Error())
}
