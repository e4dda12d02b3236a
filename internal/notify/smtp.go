package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/leadform/backend/internal/model"
)

// SMTPClient sends notifications through an SMTP relay. STARTTLS is used
// when the server offers it, PLAIN auth when a username is configured.
type SMTPClient struct {
	Addr     string
	Username string
	Password string
	From     string
	To       string

	sendMail func(addr string, a sasl.Client, from string, to []string, r io.Reader) error
}

// NewSMTPClient creates an SMTPClient for the relay at addr (host:port).
func NewSMTPClient(addr, username, password, from, to string) *SMTPClient {
	return &SMTPClient{
		Addr:     addr,
		Username: username,
		Password: password,
		From:     from,
		To:       to,
		sendMail: smtp.SendMail,
	}
}

var _ Notifier = (*SMTPClient)(nil)

// NotifyContact implements Notifier. The SMTP exchange itself does not
// observe ctx; an already cancelled context skips the send.
func (c *SMTPClient) NotifyContact(ctx context.Context, contact *model.Contact) error {
	if c.Addr == "" || c.To == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	email, err := Compose(contact)
	if err != nil {
		return err
	}
	msg, err := c.buildMessage(email, contact.Email)
	if err != nil {
		return err
	}

	var a sasl.Client
	if c.Username != "" {
		a = sasl.NewPlainClient("", c.Username, c.Password)
	}
	if err := c.sendMail(c.Addr, a, c.From, []string{c.To}, bytes.NewReader(msg)); err != nil {
		return fmt.Errorf("notify: smtp send: %w", err)
	}
	return nil
}

// buildMessage renders a multipart/alternative message with text and HTML parts.
func (c *SMTPClient) buildMessage(email Email, replyTo string) ([]byte, error) {
	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: c.From}})
	h.SetAddressList("To", []*mail.Address{{Address: c.To}})
	if replyTo != "" {
		h.SetAddressList("Reply-To", []*mail.Address{{Address: replyTo}})
	}
	h.SetSubject(email.Subject)
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("notify: message id: %w", err)
	}

	var buf bytes.Buffer
	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("notify: create message: %w", err)
	}
	iw, err := mw.CreateInline()
	if err != nil {
		return nil, fmt.Errorf("notify: create inline: %w", err)
	}
	for _, part := range []struct{ contentType, body string }{
		{"text/plain", email.Text},
		{"text/html", email.HTML},
	} {
		var ph mail.InlineHeader
		ph.SetContentType(part.contentType, map[string]string{"charset": "utf-8"})
		ph.Set("Content-Transfer-Encoding", "quoted-printable")
		w, err := iw.CreatePart(ph)
		if err != nil {
			return nil, fmt.Errorf("notify: create part: %w", err)
		}
		if _, err := io.WriteString(w, part.body); err != nil {
			return nil, fmt.Errorf("notify: write part: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("notify: close part: %w", err)
		}
	}
	if err := iw.Close(); err != nil {
		return nil, fmt.Errorf("notify: close inline: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("notify: close message: %w", err)
	}
	return buf.Bytes(), nil
}
