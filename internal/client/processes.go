package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// ProcessesClient implements keyline.ProcessesClient.
type ProcessesClient struct {
	httpClient *http.Client
	accountID  string
}

// NewProcessesClient creates a new processes client.
func NewProcessesClient(httpClient *http.Client, accountID string) *ProcessesClient {
	return &ProcessesClient{httpClient: httpClient, accountID: accountID}
}

// Create implements keyline.ProcessesClient.Create.
func (c *ProcessesClient) Create(ctx context.Context, request *keyline.ProcessCreateRequest) (*keyline.Process, error) {
	document := newDocument(keyline.TypeProcesses, request).
		relate("machine", keyline.TypeMachines, request.MachineID)

	path := fmt.Sprintf("/v1/accounts/%s/processes", c.accountID)

	resp, err := c.httpClient.Post(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("spawning process: %w", err)
	}

	var doc keyline.Document[keyline.Process]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing process response: %w", err)
	}

	return &doc.Data, nil
}

// Get implements keyline.ProcessesClient.Get.
func (c *ProcessesClient) Get(ctx context.Context, processID string) (*keyline.Process, error) {
	path := fmt.Sprintf("/v1/accounts/%s/processes/%s", c.accountID, processID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting process: %w", err)
	}

	var doc keyline.Document[keyline.Process]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing process response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.ProcessesClient.List.
func (c *ProcessesClient) List(ctx context.Context, options *keyline.ProcessListOptions) (*keyline.ListResponse[keyline.Process], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/processes", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	var result keyline.ListResponse[keyline.Process]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing processes list response: %w", err)
	}

	return &result, nil
}

// Update implements keyline.ProcessesClient.Update.
func (c *ProcessesClient) Update(ctx context.Context, processID string, request *keyline.ProcessUpdateRequest) (*keyline.Process, error) {
	document := newDocument(keyline.TypeProcesses, request).withID(processID)
	path := fmt.Sprintf("/v1/accounts/%s/processes/%s", c.accountID, processID)

	resp, err := c.httpClient.Patch(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("updating process: %w", err)
	}

	var doc keyline.Document[keyline.Process]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing process response: %w", err)
	}

	return &doc.Data, nil
}

// Delete implements keyline.ProcessesClient.Delete.
func (c *ProcessesClient) Delete(ctx context.Context, processID string) error {
	path := fmt.Sprintf("/v1/accounts/%s/processes/%s", c.accountID, processID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("killing process: %w", err)
	}

	return nil
}

// Ping implements keyline.ProcessesClient.Ping. Heartbeats are idempotent,
// so the action opts into the retry policy.
func (c *ProcessesClient) Ping(ctx context.Context, processID string) (*keyline.Process, error) {
	path := fmt.Sprintf("/v1/accounts/%s/processes/%s/actions/ping", c.accountID, processID)

	resp, err := c.httpClient.Do(ctx, &http.Request{Method: "POST", Path: path, Retryable: true})
	if err != nil {
		return nil, fmt.Errorf("pinging process: %w", err)
	}

	var doc keyline.Document[keyline.Process]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing process response: %w", err)
	}

	return &doc.Data, nil
}
