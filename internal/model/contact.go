package model

import "time"

// ContactStatus is the triage state of a contact submission.
type ContactStatus string

const (
	StatusNew     ContactStatus = "new"
	StatusRead    ContactStatus = "read"
	StatusReplied ContactStatus = "replied"
)

// Valid reports whether s is one of the known statuses.
func (s ContactStatus) Valid() bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied:
		return true
	}
	return false
}

// Services lists the service values accepted by the contact form.
var Services = []string{"ai-content", "automation", "saas", "websites", "multiple", "other"}

// IsValidService reports whether s is one of Services.
func IsValidService(s string) bool {
	for _, v := range Services {
		if v == s {
			return true
		}
	}
	return false
}

// Contact is a submission received through the public contact form.
type Contact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Company   string        `json:"company,omitempty"`
	Service   string        `json:"service"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ContactListOptions carries filter and pagination parameters for the repository.
// An empty Status returns contacts of every status.
type ContactListOptions struct {
	Status ContactStatus
	Limit  int
	Offset int
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ContactPage is a page of contacts plus its pagination metadata.
type ContactPage struct {
	Contacts   []*Contact `json:"contacts"`
	Pagination Pagination `json:"pagination"`
}
