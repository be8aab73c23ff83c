package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/keyline-io/keyline-go/internal/auth"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenDocument(token string, expiry *time.Time) map[string]interface{} {
	attributes := map[string]interface{}{
		"kind":    "user-token",
		"token":   token,
		"created": "2024-01-01T00:00:00Z",
		"updated": "2024-01-01T00:00:00Z",
	}
	if expiry != nil {
		attributes["expiry"] = expiry.UTC().Format(time.RFC3339)
	}

	return map[string]interface{}{
		"data": map[string]interface{}{
			"id":         "tok-1",
			"type":       "tokens",
			"attributes": attributes,
			"relationships": map[string]interface{}{
				"bearer": map[string]interface{}{
					"data": map[string]interface{}{"type": "users", "id": "usr-1"},
				},
			},
		},
	}
}

func TestExchangeCredentials(t *testing.T) {
	t.Parallel()

	t.Run("exchanges basic credentials for a token", func(t *testing.T) {
		t.Parallel()

		expiry := time.Now().Add(24 * time.Hour)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/accounts/acct-1/tokens", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/vnd.api+json", r.Header.Get("Accept"))
			assert.NotEmpty(t, r.Header.Get("Keyline-Version"))

			email, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "dev@example.com", email)
			assert.Equal(t, "hunter2", password)

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(tokenDocument("user-xxx", &expiry))
		}))
		defer server.Close()

		token, err := auth.ExchangeCredentials(context.Background(), nil, server.URL, "acct-1", "dev@example.com", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "user-xxx", token.Attributes.Token)
		assert.Equal(t, keyline.TokenKindUser, token.Attributes.Kind)
		require.NotNil(t, token.Attributes.Expiry)
		require.NotNil(t, token.Relationships.Bearer.Data)
		assert.Equal(t, "usr-1", token.Relationships.Bearer.Data.ID)
	})

	t.Run("arms a session end to end", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(tokenDocument("user-yyy", nil))
		}))
		defer server.Close()

		token, err := auth.ExchangeCredentials(context.Background(), nil, server.URL, "acct-1", "dev@example.com", "hunter2")
		require.NoError(t, err)

		session := auth.NewSession()
		session.Apply(token)

		got, err := session.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "user-yyy", got)
		assert.Equal(t, keyline.TokenKindUser, session.Kind())
	})

	t.Run("bad credentials surface as unauthorized", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"errors": []map[string]interface{}{
					{"title": "Unauthorized", "detail": "email and password must be valid"},
				},
			})
		}))
		defer server.Close()

		_, err := auth.ExchangeCredentials(context.Background(), nil, server.URL, "acct-1", "dev@example.com", "wrong")
		require.Error(t, err)
		assert.True(t, keyline.IsUnauthorized(err))
	})

	t.Run("success without token payload is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"data": map[string]interface{}{"id": "tok-1", "type": "tokens", "attributes": map[string]interface{}{"kind": "user-token"}},
			})
		}))
		defer server.Close()

		_, err := auth.ExchangeCredentials(context.Background(), nil, server.URL, "acct-1", "dev@example.com", "hunter2")
		require.ErrorIs(t, err, auth.ErrNoTokenIssued)
	})

	t.Run("unreachable endpoint is a network error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := auth.ExchangeCredentials(context.Background(), nil, server.URL, "acct-1", "dev@example.com", "hunter2")
		require.Error(t, err)
		assert.True(t, keyline.IsNetworkError(err))
	})
}
