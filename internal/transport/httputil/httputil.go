// Package httputil centralizes JSON response envelopes and error translation
// so handlers stay thin and every endpoint speaks the same shapes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"presales/pkg/apperrors"
)

// Envelope is the success shape: payload under data, optional human message.
type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// Paged is the list payload nested under data for collection endpoints.
type Paged[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// best-effort fallback; don't override status for the caller
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// WriteData writes a success envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Data: data})
}

// WriteMessage writes a success envelope with a human-readable message.
func WriteMessage(w http.ResponseWriter, status int, data any, message string) {
	WriteJSON(w, status, Envelope{Data: data, Message: message})
}

// WriteError translates application errors into HTTP responses. The error
// text lands in the envelope's error field, which clients surface directly.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		WriteJSON(w, CodeToStatus(appErr.Code), map[string]string{
			"error": appErr.Error(),
		})
		return
	}
	// Unexpected errors never leak internals to the client.
	WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal error",
	})
}

// CodeToStatus maps application error codes to HTTP status codes.
func CodeToStatus(code apperrors.Code) int {
	switch code {
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeBadRequest, apperrors.CodeValidation:
		return http.StatusBadRequest
	case apperrors.CodeConflict:
		return http.StatusConflict
	case apperrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes a request body, rejecting unknown fields.
func DecodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return apperrors.Wrap(err, apperrors.CodeBadRequest, "invalid request body")
	}
	return nil
}
