package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/kushal311201/subtrack/internal/common"
)

// EmailClient sends reminder email through the notification endpoint.
// Requests are rate limited so a large reminder batch cannot hammer the
// endpoint.
type EmailClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NewEmailClient creates an email client for the given endpoint URL.
func NewEmailClient(endpoint string) (*EmailClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("%w: email endpoint", common.ErrMissingConfig)
	}

	return &EmailClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}, nil
}

// SendEmail posts one reminder to the endpoint. Any network error or non-2xx
// status is a failure; callers treat it as best-effort and log it.
func (c *EmailClient) SendEmail(ctx context.Context, to, subject, message string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(emailRequest{To: to, Subject: subject, Message: message})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: email endpoint returned %d: %s", common.ErrNetworkFailure, resp.StatusCode, respBody)
	}

	return nil
}
