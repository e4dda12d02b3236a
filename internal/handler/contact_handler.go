package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/leadform/backend/internal/service"
)

// ContactHandler handles public contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submit handles POST /contact.
// Body: {name, email, company?, service, message}. Fields sent with a
// non-string type are treated as missing.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	in := service.ContactInput{}
	in.Name, _ = fields.String("name")
	in.Email, _ = fields.String("email")
	in.Company, _ = fields.String("company")
	in.Service, _ = fields.String("service")
	in.Message, _ = fields.String("message")

	if _, err := h.contactService.Submit(r.Context(), in); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		slog.Error("contact submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to submit form. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Success: true,
		Message: "Thank you! We'll be in touch soon.",
	})
}
