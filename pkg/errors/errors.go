package errors

import (
	"errors"
	"fmt"
)

var (
	ErrMissingToken         = errors.New("alias provider token not set")
	ErrMissingAPIKey        = errors.New("breach provider API key not set")
	ErrDiscordNotConfigured = errors.New("discord client not configured")
)

// TransportError reports that no usable response was obtained: the
// request never completed, or the body could not be decoded into the
// expected shape. It is distinct from the provider saying no.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s (%s): %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func NewTransportError(op, url string, err error) *TransportError {
	return &TransportError{
		Op:  op,
		URL: url,
		Err: err,
	}
}

// ProviderError is a non-success status from the alias provider. Op is
// "list" or "deactivate"; AliasID is set for deactivation failures.
type ProviderError struct {
	Op      string
	AliasID string
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.AliasID != "" {
		return fmt.Sprintf("alias provider %s failed for alias %s (status %d): %s", e.Op, e.AliasID, e.Status, e.Message)
	}
	return fmt.Sprintf("alias provider %s failed (status %d): %s", e.Op, e.Status, e.Message)
}

// LookupError is a non-success status from the breach provider outside
// the not-found and first rate-limit responses, or a rate-limited
// retry that itself failed.
type LookupError struct {
	Email   string
	Status  int
	Message string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("breach lookup for %s failed (status %d): %s", e.Email, e.Status, e.Message)
}

// OrchestratorError wraps a fatal alias-listing failure that aborted
// the scan before any alias was processed.
type OrchestratorError struct {
	Err error
}

func (e *OrchestratorError) Error() string {
	return fmt.Sprintf("scan aborted: %v", e.Err)
}

func (e *OrchestratorError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value: %v): %s", e.Field, e.Value, e.Message)
}

func NewConfigError(field string, value interface{}, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
