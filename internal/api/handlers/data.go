package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/wonny/sensai/internal/contracts"
)

// Helper functions

// respondJSON encodes before writing the header; an unencodable payload is a 500
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{
			"error": "encode response: " + err.Error(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusFor maps pipeline error kinds onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, contracts.ErrInvalidFormation):
		return http.StatusBadRequest
	case errors.Is(err, contracts.ErrMissingRequiredField),
		errors.Is(err, contracts.ErrEmptySourceData),
		errors.Is(err, contracts.ErrNonPositivePrice):
		return http.StatusUnprocessableEntity
	case errors.Is(err, contracts.ErrNarratorDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// queryInt reads a non-negative integer query parameter
func queryInt(r *http.Request, key string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New("invalid '" + key + "' (expected a non-negative integer)")
	}
	return v, nil
}

// decodeBody decodes an optional JSON body; an empty body leaves out untouched
func decodeBody(r *http.Request, out interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(out); err != nil && err != io.EOF {
		return errors.New("Invalid request body")
	}
	return nil
}
