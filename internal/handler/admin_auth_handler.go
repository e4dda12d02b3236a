package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/leadform/backend/internal/service"
	"github.com/leadform/backend/pkg/auth"
)

// AdminAuthHandler handles admin login, logout and session introspection.
type AdminAuthHandler struct {
	authService service.AdminAuthService
	sessions    *auth.SessionManager
}

func NewAdminAuthHandler(authService service.AdminAuthService, sessions *auth.SessionManager) *AdminAuthHandler {
	return &AdminAuthHandler{authService: authService, sessions: sessions}
}

type meResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
}

// Login handles POST /admin/login with body {email, password}.
// Unknown email and wrong password get the same 401.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}
	email, _ := fields.String("email")
	email = strings.TrimSpace(email)
	password, _ := fields.String("password")
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	if !h.authService.VerifyCredentials(r.Context(), email, password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := h.sessions.CreateSession(w, r, email); err != nil {
		slog.Error("create admin session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout handles POST /admin/logout. The cookie is cleared whether or not
// a session was present.
func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.DestroySession(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me handles GET /admin/me.
func (h *AdminAuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.ReadSession(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, meResponse{Authenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, meResponse{Authenticated: true, Email: sess.Email})
}
