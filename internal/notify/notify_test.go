package notify

import (
	"strings"
	"testing"

	"github.com/leadform/backend/internal/model"
)

func sampleContact() *model.Contact {
	return &model.Contact{
		ID:      "7d1c6c1e-9d0b-4d55-9a53-3f4bd0f2f0a1",
		Name:    "Jo",
		Email:   "jo@example.com",
		Service: "websites",
		Message: "Line one\nLine two <script>",
	}
}

func TestCompose_Subject(t *testing.T) {
	email, err := Compose(sampleContact())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email.Subject != "New contact: Jo - websites" {
		t.Errorf("unexpected subject %q", email.Subject)
	}
}

func TestCompose_MissingCompanyPlaceholder(t *testing.T) {
	email, err := Compose(sampleContact())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(email.HTML, "<strong>Company:</strong> —") {
		t.Errorf("expected em-dash placeholder in HTML, got:\n%s", email.HTML)
	}
	if !strings.Contains(email.Text, "Company: —") {
		t.Errorf("expected em-dash placeholder in text, got:\n%s", email.Text)
	}
}

func TestCompose_CompanyShown(t *testing.T) {
	c := sampleContact()
	c.Company = "Acme"
	email, err := Compose(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(email.HTML, "<strong>Company:</strong> Acme") {
		t.Errorf("expected company in HTML, got:\n%s", email.HTML)
	}
}

func TestCompose_EscapesAndBreaksLines(t *testing.T) {
	email, err := Compose(sampleContact())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(email.HTML, "<script>") {
		t.Error("message must be HTML-escaped")
	}
	if !strings.Contains(email.HTML, "Line one<br>Line two") {
		t.Errorf("expected newline converted to <br>, got:\n%s", email.HTML)
	}
}

func TestNew_PicksTransport(t *testing.T) {
	if _, ok := New(Config{SMTPAddr: "localhost:25"}).(*SMTPClient); !ok {
		t.Error("expected SMTP transport when SMTPAddr is set")
	}
	if _, ok := New(Config{ResendAPIKey: "re_test"}).(*ResendClient); !ok {
		t.Error("expected Resend transport otherwise")
	}
}
