package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"portfolio-contact-api/internal/domain"
)

// maxResponseBody bounds how much of an endpoint reply is read
const maxResponseBody = 64 << 10

// Client posts contact requests to the contact endpoint over HTTP
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// PostContact sends req as JSON. Only transport failures return an error;
// any HTTP reply is reported through Result.
func (c *Client) PostContact(ctx context.Context, req domain.ContactRequest) (*Result, error) {
	if strings.TrimSpace(c.endpoint) == "" {
		return nil, fmt.Errorf("contactform: endpoint is empty")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("contactform: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("contactform: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("contactform: request failed: %w", err)
	}
	defer resp.Body.Close()

	result := &Result{StatusCode: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	// Undecodable replies leave Error empty, so the form uses its fallback
	if json.Unmarshal(raw, &body) == nil {
		result.Error = body.Error
	}

	return result, nil
}
