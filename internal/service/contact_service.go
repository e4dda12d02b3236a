package service

import (
	"context"
	"errors"
	"math"

	"github.com/leadform/backend/internal/model"
)

// List paging defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 50
	// MaxPage keeps (page-1)*limit inside a 32-bit int.
	MaxPage = math.MaxInt32 / MaxLimit
)

var (
	// ErrInvalidID is returned when a contact id is not a UUID.
	ErrInvalidID = errors.New("invalid contact id")
	// ErrInvalidStatus is returned when an update names an unknown status.
	ErrInvalidStatus = errors.New("invalid status")
)

// ValidationError reports the first intake rule a submission broke.
// Message is safe to show to the submitter.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ContactInput is an unvalidated form submission. Fields the client sent
// with a non-string type arrive here as "".
type ContactInput struct {
	Name    string
	Email   string
	Company string
	Service string
	Message string
}

// ListQuery selects one page of contacts. Page and Limit are clamped
// (1 <= page <= MaxPage, 1 <= limit <= MaxLimit); an unknown Status is ignored.
type ListQuery struct {
	Page   int
	Limit  int
	Status string
}

// ContactService defines the business logic for contact form submissions
// and their triage.
type ContactService interface {
	// Submit validates and stores a submission, then notifies the site
	// owner. A failed notification does not fail the submission.
	Submit(ctx context.Context, in ContactInput) (*model.Contact, error)

	// List returns one page of contacts, newest first.
	List(ctx context.Context, q ListQuery) (*model.ContactPage, error)

	// Get returns a single contact.
	Get(ctx context.Context, id string) (*model.Contact, error)

	// UpdateStatus sets the status when status is non-nil and refreshes
	// updatedAt either way.
	UpdateStatus(ctx context.Context, id string, status *string) (*model.Contact, error)
}
