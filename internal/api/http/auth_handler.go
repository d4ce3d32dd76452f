package http

import (
	"net/http"

	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/security"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=200"`
}

// AuthHandler issues and clears the token cookie
type AuthHandler struct {
	tokenManager security.TokenManager
	cookies      CookiePolicy
}

func NewAuthHandler(tm security.TokenManager, cookies CookiePolicy) *AuthHandler {
	return &AuthHandler{tokenManager: tm, cookies: cookies}
}

// IssueToken handles POST /jwt
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	token, err := h.tokenManager.GenerateToken(security.Identity{Email: req.Email, Name: req.Name})
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to sign token", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to issue token.")
		return
	}

	http.SetCookie(w, h.cookies.Issue(token))
	writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookies.Clear())
	writeJSON(w, http.StatusOK, statusResponse{Success: true})
}
