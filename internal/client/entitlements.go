package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// EntitlementsClient implements keyline.EntitlementsClient.
type EntitlementsClient struct {
	httpClient *http.Client
	accountID  string
}

// NewEntitlementsClient creates a new entitlements client.
func NewEntitlementsClient(httpClient *http.Client, accountID string) *EntitlementsClient {
	return &EntitlementsClient{httpClient: httpClient, accountID: accountID}
}

// Create implements keyline.EntitlementsClient.Create.
func (c *EntitlementsClient) Create(ctx context.Context, request *keyline.EntitlementCreateRequest) (*keyline.Entitlement, error) {
	document := newDocument(keyline.TypeEntitlements, request)
	path := fmt.Sprintf("/v1/accounts/%s/entitlements", c.accountID)

	resp, err := c.httpClient.Post(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("creating entitlement: %w", err)
	}

	var doc keyline.Document[keyline.Entitlement]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing entitlement response: %w", err)
	}

	return &doc.Data, nil
}

// Get implements keyline.EntitlementsClient.Get.
func (c *EntitlementsClient) Get(ctx context.Context, entitlementID string) (*keyline.Entitlement, error) {
	path := fmt.Sprintf("/v1/accounts/%s/entitlements/%s", c.accountID, entitlementID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting entitlement: %w", err)
	}

	var doc keyline.Document[keyline.Entitlement]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing entitlement response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.EntitlementsClient.List.
func (c *EntitlementsClient) List(ctx context.Context, options *keyline.EntitlementListOptions) (*keyline.ListResponse[keyline.Entitlement], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/entitlements", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing entitlements: %w", err)
	}

	var result keyline.ListResponse[keyline.Entitlement]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing entitlements list response: %w", err)
	}

	return &result, nil
}

// Update implements keyline.EntitlementsClient.Update.
func (c *EntitlementsClient) Update(ctx context.Context, entitlementID string, request *keyline.EntitlementUpdateRequest) (*keyline.Entitlement, error) {
	document := newDocument(keyline.TypeEntitlements, request).withID(entitlementID)
	path := fmt.Sprintf("/v1/accounts/%s/entitlements/%s", c.accountID, entitlementID)

	resp, err := c.httpClient.Patch(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("updating entitlement: %w", err)
	}

	var doc keyline.Document[keyline.Entitlement]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing entitlement response: %w", err)
	}

	return &doc.Data, nil
}

// Delete implements keyline.EntitlementsClient.Delete.
func (c *EntitlementsClient) Delete(ctx context.Context, entitlementID string) error {
	path := fmt.Sprintf("/v1/accounts/%s/entitlements/%s", c.accountID, entitlementID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting entitlement: %w", err)
	}

	return nil
}

// ListLicenses implements keyline.EntitlementsClient.ListLicenses.
func (c *EntitlementsClient) ListLicenses(ctx context.Context, entitlementID string, options *keyline.LicenseListOptions) (*keyline.ListResponse[keyline.License], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/entitlements/%s/licenses", c.accountID, entitlementID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing entitlement licenses: %w", err)
	}

	var result keyline.ListResponse[keyline.License]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing licenses list response: %w", err)
	}

	return &result, nil
}
