package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// PoliciesClient implements keyline.PoliciesClient.
type PoliciesClient struct {
	httpClient *http.Client
	accountID  string
}

// NewPoliciesClient creates a new policies client.
func NewPoliciesClient(httpClient *http.Client, accountID string) *PoliciesClient {
	return &PoliciesClient{httpClient: httpClient, accountID: accountID}
}

// Create implements keyline.PoliciesClient.Create.
func (c *PoliciesClient) Create(ctx context.Context, request *keyline.PolicyCreateRequest) (*keyline.Policy, error) {
	document := newDocument(keyline.TypePolicies, request).
		relate("product", keyline.TypeProducts, request.ProductID)

	path := fmt.Sprintf("/v1/accounts/%s/policies", c.accountID)

	resp, err := c.httpClient.Post(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("creating policy: %w", err)
	}

	var doc keyline.Document[keyline.Policy]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing policy response: %w", err)
	}

	return &doc.Data, nil
}

// Get implements keyline.PoliciesClient.Get.
func (c *PoliciesClient) Get(ctx context.Context, policyID string) (*keyline.Policy, error) {
	path := fmt.Sprintf("/v1/accounts/%s/policies/%s", c.accountID, policyID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting policy: %w", err)
	}

	var doc keyline.Document[keyline.Policy]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing policy response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.PoliciesClient.List.
func (c *PoliciesClient) List(ctx context.Context, options *keyline.PolicyListOptions) (*keyline.ListResponse[keyline.Policy], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/policies", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing policies: %w", err)
	}

	var result keyline.ListResponse[keyline.Policy]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing policies list response: %w", err)
	}

	return &result, nil
}

// Update implements keyline.PoliciesClient.Update.
func (c *PoliciesClient) Update(ctx context.Context, policyID string, request *keyline.PolicyUpdateRequest) (*keyline.Policy, error) {
	document := newDocument(keyline.TypePolicies, request).withID(policyID)
	path := fmt.Sprintf("/v1/accounts/%s/policies/%s", c.accountID, policyID)

	resp, err := c.httpClient.Patch(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("updating policy: %w", err)
	}

	var doc keyline.Document[keyline.Policy]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing policy response: %w", err)
	}

	return &doc.Data, nil
}

// Delete implements keyline.PoliciesClient.Delete.
func (c *PoliciesClient) Delete(ctx context.Context, policyID string) error {
	path := fmt.Sprintf("/v1/accounts/%s/policies/%s", c.accountID, policyID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting policy: %w", err)
	}

	return nil
}
