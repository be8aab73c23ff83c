package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// WebhooksClient implements keyline.WebhooksClient.
type WebhooksClient struct {
	httpClient *http.Client
	accountID  string
}

// NewWebhooksClient creates a new webhooks client.
func NewWebhooksClient(httpClient *http.Client, accountID string) *WebhooksClient {
	return &WebhooksClient{httpClient: httpClient, accountID: accountID}
}

// Create implements keyline.WebhooksClient.Create.
func (c *WebhooksClient) Create(ctx context.Context, request *keyline.WebhookCreateRequest) (*keyline.Webhook, error) {
	document := newDocument(keyline.TypeWebhooks, request)
	path := fmt.Sprintf("/v1/accounts/%s/webhooks", c.accountID)

	resp, err := c.httpClient.Post(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("creating webhook: %w", err)
	}

	var doc keyline.Document[keyline.Webhook]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing webhook response: %w", err)
	}

	return &doc.Data, nil
}

// Get implements keyline.WebhooksClient.Get.
func (c *WebhooksClient) Get(ctx context.Context, webhookID string) (*keyline.Webhook, error) {
	path := fmt.Sprintf("/v1/accounts/%s/webhooks/%s", c.accountID, webhookID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting webhook: %w", err)
	}

	var doc keyline.Document[keyline.Webhook]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing webhook response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.WebhooksClient.List.
func (c *WebhooksClient) List(ctx context.Context, options *keyline.WebhookListOptions) (*keyline.ListResponse[keyline.Webhook], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/webhooks", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing webhooks: %w", err)
	}

	var result keyline.ListResponse[keyline.Webhook]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing webhooks list response: %w", err)
	}

	return &result, nil
}

// Update implements keyline.WebhooksClient.Update.
func (c *WebhooksClient) Update(ctx context.Context, webhookID string, request *keyline.WebhookUpdateRequest) (*keyline.Webhook, error) {
	document := newDocument(keyline.TypeWebhooks, request).withID(webhookID)
	path := fmt.Sprintf("/v1/accounts/%s/webhooks/%s", c.accountID, webhookID)

	resp, err := c.httpClient.Patch(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("updating webhook: %w", err)
	}

	var doc keyline.Document[keyline.Webhook]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing webhook response: %w", err)
	}

	return &doc.Data, nil
}

// Delete implements keyline.WebhooksClient.Delete.
func (c *WebhooksClient) Delete(ctx context.Context, webhookID string) error {
	path := fmt.Sprintf("/v1/accounts/%s/webhooks/%s", c.accountID, webhookID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting webhook: %w", err)
	}

	return nil
}

// EventsByCategory implements keyline.WebhooksClient.EventsByCategory.
func (c *WebhooksClient) EventsByCategory() map[string][]string {
	return keyline.EventsByCategory()
}
