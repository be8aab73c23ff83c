package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// LicensesClient implements keyline.LicensesClient.
type LicensesClient struct {
	httpClient *http.Client
	accountID  string
}

// NewLicensesClient creates a new licenses client.
func NewLicensesClient(httpClient *http.Client, accountID string) *LicensesClient {
	return &LicensesClient{httpClient: httpClient, accountID: accountID}
}

// Create implements keyline.LicensesClient.Create.
func (c *LicensesClient) Create(ctx context.Context, request *keyline.LicenseCreateRequest) (*keyline.License, error) {
	document := newDocument(keyline.TypeLicenses, request).
		relate("policy", keyline.TypePolicies, request.PolicyID).
		relate("owner", keyline.TypeUsers, request.OwnerID).
		relate("group", keyline.TypeGroups, request.GroupID)

	path := fmt.Sprintf("/v1/accounts/%s/licenses", c.accountID)

	resp, err := c.httpClient.Post(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("creating license: %w", err)
	}

	var doc keyline.Document[keyline.License]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing license response: %w", err)
	}

	return &doc.Data, nil
}

// Get implements keyline.LicensesClient.Get.
func (c *LicensesClient) Get(ctx context.Context, licenseID string) (*keyline.License, error) {
	path := fmt.Sprintf("/v1/accounts/%s/licenses/%s", c.accountID, licenseID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting license: %w", err)
	}

	var doc keyline.Document[keyline.License]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing license response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.LicensesClient.List.
func (c *LicensesClient) List(ctx context.Context, options *keyline.LicenseListOptions) (*keyline.ListResponse[keyline.License], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/licenses", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing licenses: %w", err)
	}

	var result keyline.ListResponse[keyline.License]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing licenses list response: %w", err)
	}

	return &result, nil
}

// Update implements keyline.LicensesClient.Update.
func (c *LicensesClient) Update(ctx context.Context, licenseID string, request *keyline.LicenseUpdateRequest) (*keyline.License, error) {
	document := newDocument(keyline.TypeLicenses, request).withID(licenseID)
	path := fmt.Sprintf("/v1/accounts/%s/licenses/%s", c.accountID, licenseID)

	resp, err := c.httpClient.Patch(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("updating license: %w", err)
	}

	var doc keyline.Document[keyline.License]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing license response: %w", err)
	}

	return &doc.Data, nil
}

// Delete implements keyline.LicensesClient.Delete.
func (c *LicensesClient) Delete(ctx context.Context, licenseID string) error {
	path := fmt.Sprintf("/v1/accounts/%s/licenses/%s", c.accountID, licenseID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting license: %w", err)
	}

	return nil
}

// Validate implements keyline.LicensesClient.Validate. The action is a
// read in POST clothing, so it opts into the retry policy.
func (c *LicensesClient) Validate(ctx context.Context, licenseID string) (*keyline.LicenseValidation, error) {
	path := fmt.Sprintf("/v1/accounts/%s/licenses/%s/actions/validate", c.accountID, licenseID)

	resp, err := c.httpClient.Do(ctx, &http.Request{Method: "POST", Path: path, Retryable: true})
	if err != nil {
		return nil, fmt.Errorf("validating license: %w", err)
	}

	var result struct {
		Meta keyline.LicenseValidation `json:"meta"`
	}

	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing validation response: %w", err)
	}

	return &result.Meta, nil
}

// Suspend implements keyline.LicensesClient.Suspend.
func (c *LicensesClient) Suspend(ctx context.Context, licenseID string) (*keyline.License, error) {
	path := fmt.Sprintf("/v1/accounts/%s/licenses/%s/actions/suspend", c.accountID, licenseID)

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("suspending license: %w", err)
	}

	var doc keyline.Document[keyline.License]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing license response: %w", err)
	}

	return &doc.Data, nil
}

// Reinstate implements keyline.LicensesClient.Reinstate.
func (c *LicensesClient) Reinstate(ctx context.Context, licenseID string) (*keyline.License, error) {
	path := fmt.Sprintf("/v1/accounts/%s/licenses/%s/actions/reinstate", c.accountID, licenseID)

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("reinstating license: %w", err)
	}

	var doc keyline.Document[keyline.License]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing license response: %w", err)
	}

	return &doc.Data, nil
}

// Renew implements keyline.LicensesClient.Renew. Never retried; replaying a
// renewal would extend the expiry twice.
func (c *LicensesClient) Renew(ctx context.Context, licenseID string) (*keyline.License, error) {
	path := fmt.Sprintf("/v1/accounts/%s/licenses/%s/actions/renew", c.accountID, licenseID)

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("renewing license: %w", err)
	}

	var doc keyline.Document[keyline.License]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing license response: %w", err)
	}

	return &doc.Data, nil
}

// Revoke implements keyline.LicensesClient.Revoke.
func (c *LicensesClient) Revoke(ctx context.Context, licenseID string) error {
	path := fmt.Sprintf("/v1/accounts/%s/licenses/%s/actions/revoke", c.accountID, licenseID)

	_, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("revoking license: %w", err)
	}

	return nil
}

// CheckIn implements keyline.LicensesClient.CheckIn.
func (c *LicensesClient) CheckIn(ctx context.Context, licenseID string) (*keyline.License, error) {
	path := fmt.Sprintf("/v1/accounts/%s/licenses/%s/actions/check-in", c.accountID, licenseID)

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("checking in license: %w", err)
	}

	var doc keyline.Document[keyline.License]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing license response: %w", err)
	}

	return &doc.Data, nil
}

// AttachEntitlements implements keyline.LicensesClient.AttachEntitlements.
func (c *LicensesClient) AttachEntitlements(ctx context.Context, licenseID string, entitlementIDs []string) error {
	path := fmt.Sprintf("/v1/accounts/%s/licenses/%s/entitlements", c.accountID, licenseID)

	_, err := c.httpClient.Post(ctx, path, entitlementRefs(entitlementIDs))
	if err != nil {
		return fmt.Errorf("attaching entitlements: %w", err)
	}

	return nil
}

// DetachEntitlements implements keyline.LicensesClient.DetachEntitlements.
func (c *LicensesClient) DetachEntitlements(ctx context.Context, licenseID string, entitlementIDs []string) error {
	path := fmt.Sprintf("/v1/accounts/%s/licenses/%s/entitlements", c.accountID, licenseID)

	req := &http.Request{
		Method: "DELETE",
		Path:   path,
		Body:   entitlementRefs(entitlementIDs),
	}

	_, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("detaching entitlements: %w", err)
	}

	return nil
}

// ListEntitlements implements keyline.LicensesClient.ListEntitlements.
func (c *LicensesClient) ListEntitlements(ctx context.Context, licenseID string, options *keyline.EntitlementListOptions) (*keyline.ListResponse[keyline.Entitlement], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/licenses/%s/entitlements", c.accountID, licenseID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing license entitlements: %w", err)
	}

	var result keyline.ListResponse[keyline.Entitlement]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing entitlements list response: %w", err)
	}

	return &result, nil
}
