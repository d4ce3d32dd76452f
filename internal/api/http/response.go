package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
)

const (
	msgUnauthorized = "unauthorized access"
	msgForbidden    = "forbidden access"

	maxBodyBytes = 1 << 20
)

type messageResponse struct {
	Message string `json:"message"`
}

// statusResponse is the body of the transactional and contact routes
type statusResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	InsertedID string `json:"insertedId,omitempty"`
}

// writeJSON answers 500 when v cannot be encoded
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"internal server error"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeError maps a service error onto a status code. Store failures answer
// 500 with the route's generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, message := classify(err, fallback)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), fallback, "error", err, "path", r.URL.Path)
	}
	writeMessage(w, status, message)
}

// writeTxError is writeError for the routes answering {success, message}
func writeTxError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, message := classify(err, fallback)
	if errors.Is(err, domain.ErrRequestNotFound) {
		status, message = http.StatusInternalServerError, "Request not found"
	}
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), fallback, "error", err, "path", r.URL.Path)
	}
	writeJSON(w, status, statusResponse{Success: false, Message: message})
}

func classify(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNoCapacity):
		return http.StatusConflict, domain.ErrNoCapacity.Error()
	case errors.Is(err, domain.ErrAlreadyApplied):
		return http.StatusConflict, domain.ErrAlreadyApplied.Error()
	default:
		return http.StatusInternalServerError, fallback
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return body, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
