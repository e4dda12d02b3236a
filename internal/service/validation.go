package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/leadform/backend/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validate checks the rules in order and returns the normalized contact.
// Only the first failure is reported.
func (in ContactInput) validate() (*model.Contact, error) {
	name := strings.TrimSpace(in.Name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, &ValidationError{Message: "Name must be at least 2 characters"}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, &ValidationError{Message: "Valid email is required"}
	}
	if !emailPattern.MatchString(email) {
		return nil, &ValidationError{Message: "Please enter a valid email address"}
	}

	if !model.IsValidService(in.Service) {
		return nil, &ValidationError{Message: "Please select a valid service"}
	}

	message := strings.TrimSpace(in.Message)
	if utf8.RuneCountInString(message) < 10 {
		return nil, &ValidationError{Message: "Message must be at least 10 characters"}
	}

	return &model.Contact{
		Name:    name,
		Email:   email,
		Company: strings.TrimSpace(in.Company),
		Service: in.Service,
		Message: message,
		Status:  model.StatusNew,
	}, nil
}
