package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leadform/backend/internal/model"
)

const resendBaseURL = "https://api.resend.com"

// ResendClient sends notifications through the Resend HTTP API.
type ResendClient struct {
	APIKey  string
	From    string
	To      string
	BaseURL string

	httpClient *http.Client
}

// NewResendClient creates a ResendClient. An empty apiKey or to leaves the
// client unconfigured.
func NewResendClient(apiKey, from, to string) *ResendClient {
	return &ResendClient{
		APIKey:     apiKey,
		From:       from,
		To:         to,
		BaseURL:    resendBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Notifier = (*ResendClient)(nil)

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
}

type resendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// NotifyContact implements Notifier.
func (c *ResendClient) NotifyContact(ctx context.Context, contact *model.Contact) error {
	if c.APIKey == "" || c.To == "" {
		return ErrNotConfigured
	}

	email, err := Compose(contact)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(resendRequest{
		From:    c.From,
		To:      []string{c.To},
		Subject: email.Subject,
		HTML:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		return fmt.Errorf("notify: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: resend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		var apiErr resendError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("notify: resend status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("notify: resend status %d", resp.StatusCode)
	}
	return nil
}
