// Package notify sends the "new contact" email to the site owner.
// Delivery is best effort: callers log failures and carry on.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/leadform/backend/internal/model"
)

// ErrNotConfigured is returned when no transport or recipient is configured.
var ErrNotConfigured = errors.New("notify: email not configured")

// Notifier delivers a notification about a newly stored contact.
type Notifier interface {
	NotifyContact(ctx context.Context, c *model.Contact) error
}

// Config selects and configures the transport.
type Config struct {
	From string
	To   string

	ResendAPIKey string

	SMTPAddr     string
	SMTPUsername string
	SMTPPassword string
}

// New returns the SMTP transport when SMTPAddr is set and the Resend client
// otherwise. Either reports ErrNotConfigured when it lacks credentials.
func New(cfg Config) Notifier {
	if cfg.SMTPAddr != "" {
		return NewSMTPClient(cfg.SMTPAddr, cfg.SMTPUsername, cfg.SMTPPassword, cfg.From, cfg.To)
	}
	return NewResendClient(cfg.ResendAPIKey, cfg.From, cfg.To)
}

// Email is a composed notification.
type Email struct {
	Subject string
	HTML    string
	Text    string
}

var htmlBody = template.Must(template.New("contact").Funcs(template.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}).Parse(`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Company:</strong> {{.Company}}</p>
<p><strong>Service:</strong> {{.Service}}</p>
<p><strong>Message:</strong></p>
<p>{{range $i, $l := lines .Message}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
`))

// Compose renders the notification for c. A blank company shows as "—".
func Compose(c *model.Contact) (Email, error) {
	view := *c
	if strings.TrimSpace(view.Company) == "" {
		view.Company = "—"
	}

	var buf bytes.Buffer
	if err := htmlBody.Execute(&buf, view); err != nil {
		return Email{}, fmt.Errorf("notify: render: %w", err)
	}

	text := fmt.Sprintf("New Contact Form Submission\n\nName: %s\nEmail: %s\nCompany: %s\nService: %s\n\nMessage:\n%s\n",
		view.Name, view.Email, view.Company, view.Service, view.Message)

	return Email{
		Subject: fmt.Sprintf("New contact: %s - %s", c.Name, c.Service),
		HTML:    buf.String(),
		Text:    text,
	}, nil
}
