package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// MachinesClient implements keyline.MachinesClient.
type MachinesClient struct {
	httpClient *http.Client
	accountID  string
}

// NewMachinesClient creates a new machines client.
func NewMachinesClient(httpClient *http.Client, accountID string) *MachinesClient {
	return &MachinesClient{httpClient: httpClient, accountID: accountID}
}

// Create implements keyline.MachinesClient.Create.
func (c *MachinesClient) Create(ctx context.Context, request *keyline.MachineCreateRequest) (*keyline.Machine, error) {
	document := newDocument(keyline.TypeMachines, request).
		relate("license", keyline.TypeLicenses, request.LicenseID).
		relate("owner", keyline.TypeUsers, request.OwnerID).
		relate("group", keyline.TypeGroups, request.GroupID)

	path := fmt.Sprintf("/v1/accounts/%s/machines", c.accountID)

	resp, err := c.httpClient.Post(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("activating machine: %w", err)
	}

	var doc keyline.Document[keyline.Machine]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing machine response: %w", err)
	}

	return &doc.Data, nil
}

// Get implements keyline.MachinesClient.Get.
func (c *MachinesClient) Get(ctx context.Context, machineID string) (*keyline.Machine, error) {
	path := fmt.Sprintf("/v1/accounts/%s/machines/%s", c.accountID, machineID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting machine: %w", err)
	}

	var doc keyline.Document[keyline.Machine]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing machine response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.MachinesClient.List.
func (c *MachinesClient) List(ctx context.Context, options *keyline.MachineListOptions) (*keyline.ListResponse[keyline.Machine], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/machines", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing machines: %w", err)
	}

	var result keyline.ListResponse[keyline.Machine]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing machines list response: %w", err)
	}

	return &result, nil
}

// Update implements keyline.MachinesClient.Update.
func (c *MachinesClient) Update(ctx context.Context, machineID string, request *keyline.MachineUpdateRequest) (*keyline.Machine, error) {
	document := newDocument(keyline.TypeMachines, request).withID(machineID)
	path := fmt.Sprintf("/v1/accounts/%s/machines/%s", c.accountID, machineID)

	resp, err := c.httpClient.Patch(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("updating machine: %w", err)
	}

	var doc keyline.Document[keyline.Machine]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing machine response: %w", err)
	}

	return &doc.Data, nil
}

// Delete implements keyline.MachinesClient.Delete.
func (c *MachinesClient) Delete(ctx context.Context, machineID string) error {
	path := fmt.Sprintf("/v1/accounts/%s/machines/%s", c.accountID, machineID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deactivating machine: %w", err)
	}

	return nil
}

// Ping implements keyline.MachinesClient.Ping. Heartbeats are idempotent,
// so the action opts into the retry policy.
func (c *MachinesClient) Ping(ctx context.Context, machineID string) (*keyline.Machine, error) {
	path := fmt.Sprintf("/v1/accounts/%s/machines/%s/actions/ping", c.accountID, machineID)

	resp, err := c.httpClient.Do(ctx, &http.Request{Method: "POST", Path: path, Retryable: true})
	if err != nil {
		return nil, fmt.Errorf("pinging machine: %w", err)
	}

	var doc keyline.Document[keyline.Machine]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing machine response: %w", err)
	}

	return &doc.Data, nil
}

// Reset implements keyline.MachinesClient.Reset.
func (c *MachinesClient) Reset(ctx context.Context, machineID string) (*keyline.Machine, error) {
	path := fmt.Sprintf("/v1/accounts/%s/machines/%s/actions/reset", c.accountID, machineID)

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("resetting machine heartbeat: %w", err)
	}

	var doc keyline.Document[keyline.Machine]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing machine response: %w", err)
	}

	return &doc.Data, nil
}
