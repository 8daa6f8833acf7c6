// Package anonaddy implements the alias.Service port against the
// addy.io (formerly AnonAddy) REST API.
package anonaddy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"aliasguard/pkg/alias"
	apperrors "aliasguard/pkg/errors"
	"aliasguard/pkg/logger"
)

// DefaultHost is the hosted addy.io instance. Self-hosted instances
// override it via configuration.
const DefaultHost = "https://app.addy.io"

// Client talks to one addy.io instance with a bearer token.
type Client struct {
	httpClient *http.Client
	host       string
	token      string
	log        *logger.Logger
}

// NewClient creates an addy.io client. The token is required; host
// falls back to DefaultHost and httpClient to http.DefaultClient.
func NewClient(httpClient *http.Client, host, token string) (*Client, error) {
	if token == "" {
		return nil, apperrors.ErrMissingToken
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
		token:      token,
		log:        logger.Default(),
	}, nil
}

var _ alias.Service = (*Client)(nil)

// ListAliases returns every alias visible to the configured token,
// active or not.
func (c *Client) ListAliases(ctx context.Context) ([]alias.Alias, error) {
	url := fmt.Sprintf("%s/api/v1/aliases", c.host)
	c.log.Info("Getting aliases from addy.io")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewTransportError("list", url, err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError("list", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.ProviderError{
			Op:      "list",
			Status:  resp.StatusCode,
			Message: "failed to get aliases",
		}
	}

	var envelope listResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, apperrors.NewTransportError("list", url, fmt.Errorf("decoding alias listing: %w", err))
	}

	aliases := make([]alias.Alias, 0, len(envelope.Data))
	for _, a := range envelope.Data {
		aliases = append(aliases, a)
	}
	c.log.WithFields(logger.Fields{"count": len(aliases)}).Info("Retrieved aliases")
	return aliases, nil
}

// Deactivate asks addy.io to flip the alias with the given id to
// inactive. The API answers 204 on success; any other status,
// including 200, is a provider failure.
func (c *Client) Deactivate(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/api/v1/active-aliases/%s", c.host, id)
	c.log.WithFields(logger.Fields{"alias_id": id}).Info("Deactivating alias")

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return apperrors.NewTransportError("deactivate", url, err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewTransportError("deactivate", url, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent {
		return &apperrors.ProviderError{
			Op:      "deactivate",
			AliasID: id,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("failed to deactivate alias %s", id),
		}
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
}
