package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// GroupsClient implements keyline.GroupsClient.
type GroupsClient struct {
	httpClient *http.Client
	accountID  string
}

// NewGroupsClient creates a new groups client.
func NewGroupsClient(httpClient *http.Client, accountID string) *GroupsClient {
	return &GroupsClient{httpClient: httpClient, accountID: accountID}
}

// Create implements keyline.GroupsClient.Create.
func (c *GroupsClient) Create(ctx context.Context, request *keyline.GroupCreateRequest) (*keyline.Group, error) {
	document := newDocument(keyline.TypeGroups, request)
	path := fmt.Sprintf("/v1/accounts/%s/groups", c.accountID)

	resp, err := c.httpClient.Post(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("creating group: %w", err)
	}

	var doc keyline.Document[keyline.Group]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing group response: %w", err)
	}

	return &doc.Data, nil
}

// Get implements keyline.GroupsClient.Get.
func (c *GroupsClient) Get(ctx context.Context, groupID string) (*keyline.Group, error) {
	path := fmt.Sprintf("/v1/accounts/%s/groups/%s", c.accountID, groupID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting group: %w", err)
	}

	var doc keyline.Document[keyline.Group]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing group response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.GroupsClient.List.
func (c *GroupsClient) List(ctx context.Context, options *keyline.GroupListOptions) (*keyline.ListResponse[keyline.Group], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/groups", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	var result keyline.ListResponse[keyline.Group]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing groups list response: %w", err)
	}

	return &result, nil
}

// Update implements keyline.GroupsClient.Update.
func (c *GroupsClient) Update(ctx context.Context, groupID string, request *keyline.GroupUpdateRequest) (*keyline.Group, error) {
	document := newDocument(keyline.TypeGroups, request).withID(groupID)
	path := fmt.Sprintf("/v1/accounts/%s/groups/%s", c.accountID, groupID)

	resp, err := c.httpClient.Patch(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("updating group: %w", err)
	}

	var doc keyline.Document[keyline.Group]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing group response: %w", err)
	}

	return &doc.Data, nil
}

// Delete implements keyline.GroupsClient.Delete.
func (c *GroupsClient) Delete(ctx context.Context, groupID string) error {
	path := fmt.Sprintf("/v1/accounts/%s/groups/%s", c.accountID, groupID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}

	return nil
}
