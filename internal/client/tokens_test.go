package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	internalhttp "github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/tokens/tok-1", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		token := keyline.Token{
			Resource: keyline.Resource{ID: "tok-1", Type: keyline.TypeTokens},
			Attributes: keyline.TokenAttributes{
				Kind: keyline.TokenKindAdmin,
				Name: "ci token",
			},
			Relationships: keyline.TokenRelationships{
				Bearer: keyline.Relationship{
					Data: &keyline.ResourceIdentifier{ID: "user-1", Type: "users"},
				},
			},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Token]{Data: token})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	tokens := NewTokensClient(httpClient, TestAccountID)

	token, err := tokens.Get(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, keyline.TokenKindAdmin, token.Attributes.Kind)
	// Reads never include the secret.
	assert.Empty(t, token.Attributes.Token)
	assert.Equal(t, "user-1", token.Relationships.Bearer.Data.ID)
}

func TestTokensClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/tokens", request.URL.Path)
		assert.Equal(t, "admin-token", request.URL.Query().Get("filter[kind]"))

		response := keyline.ListResponse[keyline.Token]{
			Data: []keyline.Token{
				{Resource: keyline.Resource{ID: "tok-1", Type: keyline.TypeTokens}},
				{Resource: keyline.Resource{ID: "tok-2", Type: keyline.TypeTokens}},
			},
		}

		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	tokens := NewTokensClient(httpClient, TestAccountID)

	list, err := tokens.List(context.Background(), &keyline.TokenListOptions{Kind: keyline.TokenKindAdmin})
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)
}

func TestTokensClient_Revoke(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/tokens/tok-1", request.URL.Path)
		assert.Equal(t, "DELETE", request.Method)

		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	tokens := NewTokensClient(httpClient, TestAccountID)

	err := tokens.Revoke(context.Background(), "tok-1")
	require.NoError(t, err)
}
