package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/keyline-io/keyline-go/internal/auth"
	internalhttp "github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Accessors(t *testing.T) {
	t.Parallel()

	client := NewTestClient("https://api.keyline.example")

	assert.NotNil(t, client.Licenses())
	assert.NotNil(t, client.Users())
	assert.NotNil(t, client.Machines())
	assert.NotNil(t, client.Products())
	assert.NotNil(t, client.Policies())
	assert.NotNil(t, client.Groups())
	assert.NotNil(t, client.Entitlements())
	assert.NotNil(t, client.Processes())
	assert.NotNil(t, client.Components())
	assert.NotNil(t, client.Webhooks())
	assert.NotNil(t, client.RequestLogs())
	assert.NotNil(t, client.EventLogs())
	assert.NotNil(t, client.Tokens())
	assert.NotNil(t, client.Analytics())
}

func TestClient_Me(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/me", request.URL.Path)
		assert.Equal(t, "GET", request.Method)
		assert.Equal(t, "Bearer admin-token-secret", request.Header.Get("Authorization"))

		user := keyline.User{
			Resource: keyline.Resource{ID: "user-1", Type: keyline.TypeUsers},
			Attributes: keyline.UserAttributes{
				Email: "admin@example.com",
				Role:  keyline.UserRoleAdmin,
			},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.User]{Data: user})
	}))
	defer server.Close()

	session := auth.NewStaticSession("admin-token-secret")
	httpClient := internalhttp.NewClient(server.URL, session)
	client := New(httpClient, session, TestAccountID)

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Attributes.Email)
	assert.Equal(t, keyline.UserRoleAdmin, user.Attributes.Role)
}

func TestClient_Ping(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/ping", request.URL.Path)
		assert.Equal(t, "GET", request.Method)
		// The liveness endpoint is reachable without credentials.
		assert.Empty(t, request.Header.Get("Authorization"))

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Ping(context.Background())
	require.NoError(t, err)
}

func TestClient_Ping_ServerDown(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil,
		internalhttp.WithRetryConfig(0, 0, 0))
	client := New(httpClient, nil, TestAccountID)

	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, keyline.IsServerError(err))
}

func TestClient_AccessToken(t *testing.T) {
	t.Parallel()

	session := auth.NewStaticSession("admin-token-secret")
	httpClient := internalhttp.NewClient("https://api.keyline.example", session)
	client := New(httpClient, session, TestAccountID)

	assert.Equal(t, "admin-token-secret", client.AccessToken())
}

func TestClient_AccessToken_NoSession(t *testing.T) {
	t.Parallel()

	client := NewTestClient("https://api.keyline.example")

	assert.Empty(t, client.AccessToken())
}
