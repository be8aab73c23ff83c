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

func TestWebhooksClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/webhooks", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var req struct {
			Data struct {
				Type       string                       `json:"type"`
				Attributes keyline.WebhookCreateRequest `json:"attributes"`
			} `json:"data"`
		}

		err := json.NewDecoder(request.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "webhooks", req.Data.Type)
		assert.Equal(t, "https://hooks.example.com/keyline", req.Data.Attributes.URL)
		assert.Equal(t, []string{"license.created", "license.expired"}, req.Data.Attributes.Subscriptions)

		webhook := keyline.Webhook{
			Resource: keyline.Resource{ID: "hook-1", Type: keyline.TypeWebhooks},
			Attributes: keyline.WebhookAttributes{
				URL:           "https://hooks.example.com/keyline",
				Subscriptions: []string{"license.created", "license.expired"},
			},
		}

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Webhook]{Data: webhook})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	webhooks := NewWebhooksClient(httpClient, TestAccountID)

	webhook, err := webhooks.Create(context.Background(), &keyline.WebhookCreateRequest{
		URL:           "https://hooks.example.com/keyline",
		Subscriptions: []string{"license.created", "license.expired"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hook-1", webhook.ID)
	assert.Len(t, webhook.Attributes.Subscriptions, 2)
}

func TestWebhooksClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/webhooks/hook-1", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		webhook := keyline.Webhook{
			Resource:   keyline.Resource{ID: "hook-1", Type: keyline.TypeWebhooks},
			Attributes: keyline.WebhookAttributes{URL: "https://hooks.example.com/keyline"},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Webhook]{Data: webhook})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	webhooks := NewWebhooksClient(httpClient, TestAccountID)

	webhook, err := webhooks.Get(context.Background(), "hook-1")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/keyline", webhook.Attributes.URL)
}

func TestWebhooksClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/webhooks", request.URL.Path)

		response := keyline.ListResponse[keyline.Webhook]{
			Data: []keyline.Webhook{
				{Resource: keyline.Resource{ID: "hook-1", Type: keyline.TypeWebhooks}},
			},
		}

		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	webhooks := NewWebhooksClient(httpClient, TestAccountID)

	list, err := webhooks.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)
}

func TestWebhooksClient_Update(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/webhooks/hook-1", request.URL.Path)
		assert.Equal(t, "PATCH", request.Method)

		var req struct {
			Data struct {
				ID         string                       `json:"id"`
				Attributes keyline.WebhookUpdateRequest `json:"attributes"`
			} `json:"data"`
		}

		err := json.NewDecoder(request.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "hook-1", req.Data.ID)
		assert.Equal(t, []string{"machine.heartbeat.dead"}, req.Data.Attributes.Subscriptions)

		webhook := keyline.Webhook{
			Resource: keyline.Resource{ID: "hook-1", Type: keyline.TypeWebhooks},
			Attributes: keyline.WebhookAttributes{
				URL:           "https://hooks.example.com/keyline",
				Subscriptions: []string{"machine.heartbeat.dead"},
			},
		}

		_ = json.NewEncoder(writer).Encode(keyline.Document[keyline.Webhook]{Data: webhook})
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	webhooks := NewWebhooksClient(httpClient, TestAccountID)

	webhook, err := webhooks.Update(context.Background(), "hook-1", &keyline.WebhookUpdateRequest{
		Subscriptions: []string{"machine.heartbeat.dead"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"machine.heartbeat.dead"}, webhook.Attributes.Subscriptions)
}

func TestWebhooksClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/acct-test/webhooks/hook-1", request.URL.Path)
		assert.Equal(t, "DELETE", request.Method)

		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	httpClient := internalhttp.NewClient(server.URL, nil)
	webhooks := NewWebhooksClient(httpClient, TestAccountID)

	err := webhooks.Delete(context.Background(), "hook-1")
	require.NoError(t, err)
}

func TestWebhooksClient_EventsByCategory(t *testing.T) {
	t.Parallel()

	// Static catalog data; no server round-trip involved.
	webhooks := NewWebhooksClient(nil, TestAccountID)

	categories := webhooks.EventsByCategory()
	require.NotEmpty(t, categories)
	assert.Contains(t, categories, "license")
	assert.Contains(t, categories, "machine")
	assert.Contains(t, categories["license"], keyline.EventLicenseCreated)

	total := 0
	for _, events := range categories {
		total += len(events)
	}

	assert.Len(t, keyline.AllEvents(), total)
}
