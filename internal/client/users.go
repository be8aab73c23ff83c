package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// UsersClient implements keyline.UsersClient.
type UsersClient struct {
	httpClient *http.Client
	accountID  string
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client, accountID string) *UsersClient {
	return &UsersClient{httpClient: httpClient, accountID: accountID}
}

// Create implements keyline.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, request *keyline.UserCreateRequest) (*keyline.User, error) {
	document := newDocument(keyline.TypeUsers, request).
		relate("group", keyline.TypeGroups, request.GroupID)

	path := fmt.Sprintf("/v1/accounts/%s/users", c.accountID)

	resp, err := c.httpClient.Post(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	var doc keyline.Document[keyline.User]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &doc.Data, nil
}

// Get implements keyline.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, userID string) (*keyline.User, error) {
	path := fmt.Sprintf("/v1/accounts/%s/users/%s", c.accountID, userID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	var doc keyline.Document[keyline.User]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, options *keyline.UserListOptions) (*keyline.ListResponse[keyline.User], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/users", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	var result keyline.ListResponse[keyline.User]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing users list response: %w", err)
	}

	return &result, nil
}

// Update implements keyline.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, userID string, request *keyline.UserUpdateRequest) (*keyline.User, error) {
	document := newDocument(keyline.TypeUsers, request).withID(userID)
	path := fmt.Sprintf("/v1/accounts/%s/users/%s", c.accountID, userID)

	resp, err := c.httpClient.Patch(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	var doc keyline.Document[keyline.User]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &doc.Data, nil
}

// Delete implements keyline.UsersClient.Delete.
func (c *UsersClient) Delete(ctx context.Context, userID string) error {
	path := fmt.Sprintf("/v1/accounts/%s/users/%s", c.accountID, userID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return nil
}

// UpdatePassword implements keyline.UsersClient.UpdatePassword. Passwords
// travel only through this action endpoint, never the attribute path.
func (c *UsersClient) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*keyline.User, error) {
	path := fmt.Sprintf("/v1/accounts/%s/users/%s/actions/update-password", c.accountID, userID)

	body := &metaDocument{
		Meta: map[string]string{
			"oldPassword": currentPassword,
			"newPassword": newPassword,
		},
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating password: %w", err)
	}

	var doc keyline.Document[keyline.User]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &doc.Data, nil
}

// Ban implements keyline.UsersClient.Ban.
func (c *UsersClient) Ban(ctx context.Context, userID string) (*keyline.User, error) {
	path := fmt.Sprintf("/v1/accounts/%s/users/%s/actions/ban", c.accountID, userID)

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("banning user: %w", err)
	}

	var doc keyline.Document[keyline.User]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &doc.Data, nil
}

// Unban implements keyline.UsersClient.Unban.
func (c *UsersClient) Unban(ctx context.Context, userID string) (*keyline.User, error) {
	path := fmt.Sprintf("/v1/accounts/%s/users/%s/actions/unban", c.accountID, userID)

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("unbanning user: %w", err)
	}

	var doc keyline.Document[keyline.User]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &doc.Data, nil
}
