package http

import (
	"context"
	"net/http"
	"time"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/service"
)

const rootMessage = "Volunteer Management System Server is running"

type ContactHandler struct {
	contactService service.ContactService
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// SubmitMessage handles POST /contact-message
func (h *ContactHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if err := decodeJSON(w, r, &msg); err != nil {
		writeTxError(w, r, err, "Failed to save message.")
		return
	}

	id, err := h.contactService.SubmitMessage(r.Context(), &msg)
	if err != nil {
		writeTxError(w, r, err, "Failed to save message.")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, InsertedID: id})
}

type HealthHandler struct {
	healthService service.HealthService
	timeout       time.Duration
}

func NewHealthHandler(healthService service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService, timeout: 5 * time.Second}
}

// DBPing handles GET /db-ping
func (h *HealthHandler) DBPing(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.healthService.Ping(ctx); err != nil {
		writeTxError(w, r, err, "Database connection failed.")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Database connection is healthy."})
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rootMessage))
}
