// Package email verifies email address deliverability through the hunter.io API.
package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"likewire/internal/models"
	"likewire/internal/observability"
)

const defaultBaseURL = "https://api.hunter.io/v2/email-verifier"

// Verifier checks whether an email address is deliverable.
// A nil return means the address passed verification.
type Verifier interface {
	Verify(ctx context.Context, email string) error
}

// HunterVerifier verifies addresses against the hunter.io email-verifier endpoint.
type HunterVerifier struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
}

// Option configures a HunterVerifier.
type Option func(*HunterVerifier)

// WithBaseURL overrides the hunter.io endpoint. Intended for tests.
func WithBaseURL(u string) Option {
	return func(v *HunterVerifier) { v.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(v *HunterVerifier) { v.client = c }
}

// NewHunterVerifier creates a verifier keyed by apiKey with a per-call timeout.
func NewHunterVerifier(apiKey string, timeout time.Duration, opts ...Option) *HunterVerifier {
	v := &HunterVerifier{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		timeout: timeout,
		client:  &http.Client{},
		logger:  slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type verifierResponse struct {
	Data struct {
		Status string `json:"status"`
	} `json:"data"`
}

// Verify calls the hunter.io email-verifier endpoint under a deadline.
// Timeouts and transport failures surface as UPSTREAM_TIMEOUT so callers can
// tell the user to retry; any status other than "valid" is a validation failure.
func (v *HunterVerifier) Verify(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s?email=%s&api_key=%s",
		v.baseURL, url.QueryEscape(email), url.QueryEscape(v.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.NewInternalError(err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		observability.EmailVerifications.WithLabelValues("timeout").Inc()
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return models.NewUpstreamTimeoutError(
				"Email verification timed out. Please try again later", err)
		}
		return models.NewUpstreamTimeoutError(
			"Email verification service is unreachable. Please try again later", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.EmailVerifications.WithLabelValues("error").Inc()
		return models.NewUpstreamTimeoutError(
			"Email verification service is unavailable. Please try again later",
			fmt.Errorf("hunter.io returned status %d", resp.StatusCode))
	}

	var body verifierResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		observability.EmailVerifications.WithLabelValues("error").Inc()
		return models.NewUpstreamTimeoutError(
			"Email verification service returned an unreadable response. Please try again later", err)
	}

	if body.Data.Status != "valid" {
		observability.EmailVerifications.WithLabelValues("invalid").Inc()
		return models.NewValidationError(fmt.Sprintf("Can't verify email '%s'", email))
	}

	observability.EmailVerifications.WithLabelValues("valid").Inc()
	return nil
}

// NoopVerifier accepts every address. Used when no API key is configured
// (development) and in tests that are not about verification.
type NoopVerifier struct{}

// Verify always succeeds.
func (NoopVerifier) Verify(ctx context.Context, email string) error {
	return nil
}
