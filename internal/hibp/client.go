// Package hibp implements the breach.Lookup port against the Have I
// Been Pwned v3 API, including its rate-limit protocol: a 429 carries
// a Retry-After duration which is honored once, with exactly one
// retry, before the lookup fails.
package hibp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"aliasguard/pkg/breach"
	apperrors "aliasguard/pkg/errors"
	"aliasguard/pkg/logger"
)

// DefaultHost is the public Have I Been Pwned endpoint.
const DefaultHost = "https://haveibeenpwned.com"

// HIBP rejects requests without a User-Agent.
const userAgent = "aliasguard"

// Client looks up breached accounts with an hibp-api-key credential.
type Client struct {
	httpClient *http.Client
	host       string
	apiKey     string
	log        *logger.Logger

	// sleep waits out a rate-limit delay; swapped in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates an HIBP client. The API key is required; host
// falls back to DefaultHost and httpClient to http.DefaultClient.
func NewClient(httpClient *http.Client, host, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, apperrors.ErrMissingAPIKey
	}
	if host == "" {
		host = DefaultHost
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		host:       host,
		apiKey:     apiKey,
		log:        logger.Default(),
		sleep:      sleepContext,
	}, nil
}

var _ breach.Lookup = (*Client)(nil)

// rateLimitedError is internal control flow for the wait-once,
// retry-once protocol. It never escapes Check.
type rateLimitedError struct {
	wait time.Duration
}

func (e *rateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.wait)
}

// Check looks up breaches for one address. A not-found response is a
// clean result, not an error. A single rate-limit response is honored
// by waiting the server-specified duration and retrying exactly once;
// a second rate limit or any other failure on the retry is terminal.
func (c *Client) Check(ctx context.Context, email string) ([]breach.Breach, error) {
	breaches, err := c.lookup(ctx, email)
	var limited *rateLimitedError
	if !errors.As(err, &limited) {
		return breaches, err
	}

	c.log.WithFields(logger.Fields{
		"email": email,
		"wait":  limited.wait.String(),
	}).Warn("Breach provider rate limited, waiting before retry")
	if err := c.sleep(ctx, limited.wait); err != nil {
		return nil, err
	}

	breaches, err = c.lookup(ctx, email)
	if errors.As(err, &limited) {
		return nil, &apperrors.LookupError{
			Email:   email,
			Status:  http.StatusTooManyRequests,
			Message: "still rate limited after waiting",
		}
	}
	return breaches, err
}

// lookup performs one request against the breached-account endpoint.
func (c *Client) lookup(ctx context.Context, email string) ([]breach.Breach, error) {
	reqURL := fmt.Sprintf("%s/api/v3/breachedaccount/%s?truncateResponse=false", c.host, url.PathEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewTransportError("breach-lookup", reqURL, err)
	}
	req.Header.Set("hibp-api-key", c.apiKey)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError("breach-lookup", reqURL, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, apperrors.NewTransportError("breach-lookup", reqURL, err)
		}
		var breaches []breach.Breach
		if err := json.Unmarshal(body, &breaches); err != nil {
			return nil, apperrors.NewTransportError("breach-lookup", reqURL, fmt.Errorf("decoding breach response: %w", err))
		}
		return breaches, nil

	case http.StatusNotFound:
		// The address appears in no known breach.
		return nil, nil

	case http.StatusTooManyRequests:
		wait, err := parseRetryAfter(resp.Header.Get("Retry-After"))
		if err != nil {
			return nil, &apperrors.LookupError{
				Email:   email,
				Status:  resp.StatusCode,
				Message: fmt.Sprintf("rate limited without a usable Retry-After header: %v", err),
			}
		}
		return nil, &rateLimitedError{wait: wait}

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &apperrors.LookupError{
			Email:   email,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
		}
	}
}

// parseRetryAfter interprets the header as whole seconds, the only
// form HIBP sends.
func parseRetryAfter(value string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("header missing")
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid Retry-After %q: %w", value, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative Retry-After %q", value)
	}
	return time.Duration(seconds) * time.Second, nil
}

// sleepContext blocks only the current lookup; the wait is abandoned
// if the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
