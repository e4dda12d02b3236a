package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/leadform/backend/internal/repository"
	"github.com/leadform/backend/internal/service"
	"github.com/leadform/backend/pkg/auth"
)

// AdminContactHandler serves the admin triage endpoints. Routes are
// mounted behind auth.RequireAuth; each handler still refuses requests
// that carry no session.
type AdminContactHandler struct {
	contactService service.ContactService
}

func NewAdminContactHandler(contactService service.ContactService) *AdminContactHandler {
	return &AdminContactHandler{contactService: contactService}
}

func requireSession(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := auth.SessionFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	return true
}

// List handles GET /admin/contacts?page=&limit=&status=.
// Non-numeric page or limit fall back to the defaults.
func (h *AdminContactHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireSession(w, r) {
		return
	}

	q := r.URL.Query()
	page, err := h.contactService.List(r.Context(), service.ListQuery{
		Page:   intParam(q.Get("page"), service.DefaultPage),
		Limit:  intParam(q.Get("limit"), service.DefaultLimit),
		Status: q.Get("status"),
	})
	if err != nil {
		writeContactError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /admin/contacts/{id}.
func (h *AdminContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireSession(w, r) {
		return
	}

	contact, err := h.contactService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeContactError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

// Patch handles PATCH /admin/contacts/{id} with body {status?}.
// Without a status only updatedAt is refreshed.
func (h *AdminContactHandler) Patch(w http.ResponseWriter, r *http.Request) {
	if !requireSession(w, r) {
		return
	}

	fields, err := decodeFields(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	var status *string
	if fields.Has("status") {
		s, ok := fields.String("status")
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		status = &s
	}

	contact, err := h.contactService.UpdateStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		writeContactError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func writeContactError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid contact ID")
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Invalid status")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Contact not found")
	default:
		slog.Error("admin contact request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func intParam(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
