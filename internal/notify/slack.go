// Package notify delivers audit notifications to a Slack-compatible webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vilaca/github-2fa-auditor/internal/api"
	"github.com/vilaca/github-2fa-auditor/internal/domain"
)

const (
	fallbackText    = "Github Auditor - 2FA Alert"
	timestampLayout = "2006-01-02 15:04:05 MST"
)

// Config holds webhook configuration.
type Config struct {
	WebhookURL string
	Footer     string // optional, e.g. a run identifier
}

// SlackNotifier posts notification events to an incoming webhook.
// It must be given an HTTP client that carries no API credentials.
type SlackNotifier struct {
	webhookURL string
	footer     string
	httpClient api.HTTPClient
}

// NewSlackNotifier creates a notifier for the given webhook.
func NewSlackNotifier(config Config, httpClient api.HTTPClient) *SlackNotifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SlackNotifier{
		webhookURL: config.WebhookURL,
		footer:     config.Footer,
		httpClient: httpClient,
	}
}

// Notify sends one event. Delivery is attempted once; the error is returned
// for the caller to log.
func (n *SlackNotifier) Notify(ctx context.Context, event domain.NotificationEvent) error {
	if n.webhookURL == "" {
		return errors.New("webhook URL is not configured")
	}

	body, err := json.Marshal(buildPayload(event, n.footer))
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook delivery failed: %w", api.NewStatusError(resp))
	}

	return nil
}

// buildPayload renders the fixed attachment layout:
// pretext, then date/time, user ID and profile URL fields.
func buildPayload(event domain.NotificationEvent, footer string) slackPayload {
	var login, profileURL string
	if event.Member != nil {
		login = event.Member.Login
		profileURL = event.Member.ProfileURL
	}

	color := event.Color()
	return slackPayload{Attachments: []slackAttachment{
		{Fallback: fallbackText, Pretext: event.Pretext(), Footer: footer},
		{Title: "Date/Time ", Text: event.Timestamp.Format(timestampLayout), Color: color},
		{Title: "User-ID: ", Text: login, Color: color},
		{Title: "Profile URL: ", Text: profileURL, Color: color},
	}}
}

// Slack webhook payload types
type slackPayload struct {
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Fallback string `json:"fallback,omitempty"`
	Pretext  string `json:"pretext,omitempty"`
	Title    string `json:"title,omitempty"`
	Text     string `json:"text,omitempty"`
	Color    string `json:"color,omitempty"`
	Footer   string `json:"footer,omitempty"`
}
