package http

import (
	"net/http"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/service"

	"github.com/gorilla/mux"
)

type VolunteerHandler struct {
	volunteerService service.VolunteerService
}

func NewVolunteerHandler(volunteerService service.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{volunteerService: volunteerService}
}

// MyRequests handles GET /my-volunteer-requests/{email}
func (h *VolunteerHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.volunteerService.ListVolunteerRequests(r.Context(), callerEmail(r), mux.Vars(r)["email"])
	if err != nil {
		writeError(w, r, err, "Server error fetching requests.")
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

// ManageRequests handles GET /manage-requests/{email}
func (h *VolunteerHandler) ManageRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.volunteerService.ListOrganizerRequests(r.Context(), callerEmail(r), mux.Vars(r)["email"])
	if err != nil {
		writeError(w, r, err, "Server error.")
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

// Apply handles POST /request-volunteer
func (h *VolunteerHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req domain.VolunteerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeTxError(w, r, err, "Failed to submit application.")
		return
	}

	if err := h.volunteerService.Apply(r.Context(), callerEmail(r), &req); err != nil {
		writeTxError(w, r, err, "Failed to submit application.")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Application submitted.", InsertedID: req.ID})
}

// Cancel handles DELETE /request/{id}
func (h *VolunteerHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.volunteerService.Cancel(r.Context(), callerEmail(r), mux.Vars(r)["id"]); err != nil {
		writeTxError(w, r, err, "Failed to cancel.")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Request cancelled."})
}

// Reject handles PATCH /request/reject/{id}
func (h *VolunteerHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.volunteerService.Reject(r.Context(), callerEmail(r), mux.Vars(r)["id"]); err != nil {
		writeTxError(w, r, err, "Failed to reject request.")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Request rejected."})
}

// Approve handles PATCH /request/approve/{id}
func (h *VolunteerHandler) Approve(w http.ResponseWriter, r *http.Request) {
	res, err := h.volunteerService.Approve(r.Context(), callerEmail(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, "Server error.")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
