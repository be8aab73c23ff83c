package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// ComponentsClient implements keyline.ComponentsClient.
type ComponentsClient struct {
	httpClient *http.Client
	accountID  string
}

// NewComponentsClient creates a new components client.
func NewComponentsClient(httpClient *http.Client, accountID string) *ComponentsClient {
	return &ComponentsClient{httpClient: httpClient, accountID: accountID}
}

// Create implements keyline.ComponentsClient.Create.
func (c *ComponentsClient) Create(ctx context.Context, request *keyline.ComponentCreateRequest) (*keyline.Component, error) {
	document := newDocument(keyline.TypeComponents, request).
		relate("machine", keyline.TypeMachines, request.MachineID)

	path := fmt.Sprintf("/v1/accounts/%s/components", c.accountID)

	resp, err := c.httpClient.Post(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("registering component: %w", err)
	}

	var doc keyline.Document[keyline.Component]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing component response: %w", err)
	}

	return &doc.Data, nil
}

// Get implements keyline.ComponentsClient.Get.
func (c *ComponentsClient) Get(ctx context.Context, componentID string) (*keyline.Component, error) {
	path := fmt.Sprintf("/v1/accounts/%s/components/%s", c.accountID, componentID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting component: %w", err)
	}

	var doc keyline.Document[keyline.Component]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing component response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.ComponentsClient.List.
func (c *ComponentsClient) List(ctx context.Context, options *keyline.ComponentListOptions) (*keyline.ListResponse[keyline.Component], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/components", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing components: %w", err)
	}

	var result keyline.ListResponse[keyline.Component]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing components list response: %w", err)
	}

	return &result, nil
}

// Update implements keyline.ComponentsClient.Update.
func (c *ComponentsClient) Update(ctx context.Context, componentID string, request *keyline.ComponentUpdateRequest) (*keyline.Component, error) {
	document := newDocument(keyline.TypeComponents, request).withID(componentID)
	path := fmt.Sprintf("/v1/accounts/%s/components/%s", c.accountID, componentID)

	resp, err := c.httpClient.Patch(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("updating component: %w", err)
	}

	var doc keyline.Document[keyline.Component]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing component response: %w", err)
	}

	return &doc.Data, nil
}

// Delete implements keyline.ComponentsClient.Delete.
func (c *ComponentsClient) Delete(ctx context.Context, componentID string) error {
	path := fmt.Sprintf("/v1/accounts/%s/components/%s", c.accountID, componentID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting component: %w", err)
	}

	return nil
}
