package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"portfolio-contact-api/internal/domain"
)

// maxErrorBody caps how much of a rejected response is kept for logs
const maxErrorBody = 512

// DeliveryError is returned when Slack answers with a non-2xx status.
// Its detail is for server-side logs only.
type DeliveryError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("slack webhook returned %s: %s", e.Status, e.Body)
}

// WebhookClient posts notifications to a Slack Incoming Webhook
type WebhookClient struct {
	url        string
	httpClient *http.Client
}

// NewWebhookClient creates a client for url. A nil httpClient means a plain
// http.Client: no explicit timeout and no retries.
func NewWebhookClient(url string, httpClient *http.Client) *WebhookClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &WebhookClient{
		url:        url,
		httpClient: httpClient,
	}
}

// IsConfigured checks that a destination URL was provided
func (w *WebhookClient) IsConfigured() bool {
	return w.url != ""
}

// Notify sends n as a JSON body
func (w *WebhookClient) Notify(ctx context.Context, n domain.Notification) error {
	if !w.IsConfigured() {
		return domain.ErrNotConfigured
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("slack: failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("slack: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("slack: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &DeliveryError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
