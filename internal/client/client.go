// Package client implements the keyline.Client interface on top of the
// internal HTTP transport. One sub-client per resource kind, all sharing a
// single transport and account scope.
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/auth"
	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// Client implements keyline.Client.
type Client struct {
	httpClient *http.Client
	session    *auth.Session
	accountID  string

	licenses     *LicensesClient
	users        *UsersClient
	machines     *MachinesClient
	products     *ProductsClient
	policies     *PoliciesClient
	groups       *GroupsClient
	entitlements *EntitlementsClient
	processes    *ProcessesClient
	components   *ComponentsClient
	webhooks     *WebhooksClient
	requestLogs  *RequestLogsClient
	eventLogs    *EventLogsClient
	tokens       *TokensClient
	analytics    *AnalyticsClient
}

// New creates a client scoped to one account on an armed transport. session
// may be nil for unauthenticated use; only Ping works then.
func New(httpClient *http.Client, session *auth.Session, accountID string) *Client {
	client := &Client{
		httpClient:   httpClient,
		session:      session,
		accountID:    accountID,
		licenses:     NewLicensesClient(httpClient, accountID),
		users:        NewUsersClient(httpClient, accountID),
		machines:     NewMachinesClient(httpClient, accountID),
		products:     NewProductsClient(httpClient, accountID),
		policies:     NewPoliciesClient(httpClient, accountID),
		groups:       NewGroupsClient(httpClient, accountID),
		entitlements: NewEntitlementsClient(httpClient, accountID),
		processes:    NewProcessesClient(httpClient, accountID),
		components:   NewComponentsClient(httpClient, accountID),
		webhooks:     NewWebhooksClient(httpClient, accountID),
		requestLogs:  NewRequestLogsClient(httpClient, accountID),
		eventLogs:    NewEventLogsClient(httpClient, accountID),
		tokens:       NewTokensClient(httpClient, accountID),
	}
	client.analytics = NewAnalyticsClient(httpClient, accountID, client)

	return client
}

// Licenses implements keyline.Client.Licenses.
func (c *Client) Licenses() keyline.LicensesClient {
	return c.licenses
}

// Users implements keyline.Client.Users.
func (c *Client) Users() keyline.UsersClient {
	return c.users
}

// Machines implements keyline.Client.Machines.
func (c *Client) Machines() keyline.MachinesClient {
	return c.machines
}

// Products implements keyline.Client.Products.
func (c *Client) Products() keyline.ProductsClient {
	return c.products
}

// Policies implements keyline.Client.Policies.
func (c *Client) Policies() keyline.PoliciesClient {
	return c.policies
}

// Groups implements keyline.Client.Groups.
func (c *Client) Groups() keyline.GroupsClient {
	return c.groups
}

// Entitlements implements keyline.Client.Entitlements.
func (c *Client) Entitlements() keyline.EntitlementsClient {
	return c.entitlements
}

// Processes implements keyline.Client.Processes.
func (c *Client) Processes() keyline.ProcessesClient {
	return c.processes
}

// Components implements keyline.Client.Components.
func (c *Client) Components() keyline.ComponentsClient {
	return c.components
}

// Webhooks implements keyline.Client.Webhooks.
func (c *Client) Webhooks() keyline.WebhooksClient {
	return c.webhooks
}

// RequestLogs implements keyline.Client.RequestLogs.
func (c *Client) RequestLogs() keyline.RequestLogsClient {
	return c.requestLogs
}

// EventLogs implements keyline.Client.EventLogs.
func (c *Client) EventLogs() keyline.EventLogsClient {
	return c.eventLogs
}

// Tokens implements keyline.Client.Tokens.
func (c *Client) Tokens() keyline.TokensClient {
	return c.tokens
}

// Analytics implements keyline.Client.Analytics.
func (c *Client) Analytics() keyline.AnalyticsClient {
	return c.analytics
}

// Me implements keyline.Client.Me.
func (c *Client) Me(ctx context.Context) (*keyline.User, error) {
	path := fmt.Sprintf("/v1/accounts/%s/me", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting current bearer: %w", err)
	}

	var doc keyline.Document[keyline.User]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &doc.Data, nil
}

// Ping implements keyline.Client.Ping.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.httpClient.Get(ctx, "/v1/ping", "")
	if err != nil {
		return fmt.Errorf("pinging API: %w", err)
	}

	return nil
}

// AccessToken implements keyline.Client.AccessToken.
func (c *Client) AccessToken() string {
	if c.session == nil {
		return ""
	}

	return c.session.AccessToken()
}
