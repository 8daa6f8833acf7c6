package anonaddy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "aliasguard/pkg/errors"
)

const multipleAliasesBody = `{
	"data": [
		{
			"id": "50c9e585-e7f5-41c4-9016-9014c15454bc-active",
			"user_id": "user-1",
			"local_part": "shopping",
			"domain": "anonaddy.me",
			"email": "shopping@anonaddy.me",
			"active": true,
			"description": "online shops",
			"emails_forwarded": 12,
			"recipients": ["me@example.com"],
			"created_at": "2023-01-01 10:00:00",
			"updated_at": "2023-06-01 10:00:00"
		},
		{
			"id": "50c9e585-e7f5-41c4-9016-9014c15454bc-inactive",
			"user_id": "user-1",
			"local_part": "newsletter",
			"domain": "anonaddy.me",
			"email": "newsletter@anonaddy.me",
			"active": false,
			"description": null,
			"emails_forwarded": 3,
			"recipients": [],
			"created_at": "2023-02-01 10:00:00",
			"updated_at": "2023-02-01 10:00:00"
		}
	]
}`

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(nil, "", "")
	assert.ErrorIs(t, err, apperrors.ErrMissingToken)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(nil, "", "test-token")
	require.NoError(t, err)
	assert.Equal(t, DefaultHost, client.host)
	assert.Equal(t, "test-token", client.token)
	assert.NotNil(t, client.httpClient)
}

func TestNewClientCustomHost(t *testing.T) {
	client, err := NewClient(nil, "https://my-addy-instance.com", "test-token")
	require.NoError(t, err)
	assert.Equal(t, "https://my-addy-instance.com", client.host)
}

func TestListAliasesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	client, err := NewClient(nil, server.URL, "test-token")
	require.NoError(t, err)

	_, err = client.ListAliases(context.Background())
	var transportErr *apperrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "list", transportErr.Op)
}

func TestListAliasesNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := NewClient(nil, server.URL, "test-token")
	require.NoError(t, err)

	_, err = client.ListAliases(context.Background())
	var providerErr *apperrors.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "list", providerErr.Op)
	assert.Equal(t, http.StatusBadRequest, providerErr.Status)
}

func TestListAliasesEmptyBodyIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// 200 with no body at all
	}))
	defer server.Close()

	client, err := NewClient(nil, server.URL, "test-token")
	require.NoError(t, err)

	_, err = client.ListAliases(context.Background())
	var transportErr *apperrors.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestListAliasesParsesRecords(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(multipleAliasesBody))
	}))
	defer server.Close()

	client, err := NewClient(nil, server.URL, "test-token")
	require.NoError(t, err)

	aliases, err := client.ListAliases(context.Background())
	require.NoError(t, err)
	require.Len(t, aliases, 2)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "/api/v1/aliases", gotPath)

	assert.Equal(t, "50c9e585-e7f5-41c4-9016-9014c15454bc-active", aliases[0].ID())
	assert.Equal(t, "shopping@anonaddy.me", aliases[0].Email())
	assert.Equal(t, "online shops", aliases[0].Description())
	assert.True(t, aliases[0].IsActive())

	assert.Equal(t, "50c9e585-e7f5-41c4-9016-9014c15454bc-inactive", aliases[1].ID())
	assert.False(t, aliases[1].IsActive())
	assert.Empty(t, aliases[1].Description())
}

func TestDeactivateTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(nil, server.URL, "test-token")
	require.NoError(t, err)

	err = client.Deactivate(context.Background(), "test-id")
	var transportErr *apperrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "deactivate", transportErr.Op)
}

func TestDeactivateRejectsStatus200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(nil, server.URL, "test-token")
	require.NoError(t, err)

	err = client.Deactivate(context.Background(), "test-id")
	var providerErr *apperrors.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "deactivate", providerErr.Op)
	assert.Equal(t, "test-id", providerErr.AliasID)
	assert.Equal(t, http.StatusOK, providerErr.Status)
}

func TestDeactivateNoContent(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := NewClient(nil, server.URL, "test-token")
	require.NoError(t, err)

	err = client.Deactivate(context.Background(), "test-id")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/v1/active-aliases/test-id", gotPath)
}

func TestProviderErrorIsNotTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, err := NewClient(nil, server.URL, "test-token")
	require.NoError(t, err)

	_, err = client.ListAliases(context.Background())
	var transportErr *apperrors.TransportError
	assert.False(t, errors.As(err, &transportErr))
}
