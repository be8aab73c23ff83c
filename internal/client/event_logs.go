package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// EventLogsClient implements keyline.EventLogsClient. The kind is
// server-emitted and read-only.
type EventLogsClient struct {
	httpClient *http.Client
	accountID  string
}

// NewEventLogsClient creates a new event logs client.
func NewEventLogsClient(httpClient *http.Client, accountID string) *EventLogsClient {
	return &EventLogsClient{httpClient: httpClient, accountID: accountID}
}

// Get implements keyline.EventLogsClient.Get.
func (c *EventLogsClient) Get(ctx context.Context, logID string) (*keyline.EventLog, error) {
	path := fmt.Sprintf("/v1/accounts/%s/event-logs/%s", c.accountID, logID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting event log: %w", err)
	}

	var doc keyline.Document[keyline.EventLog]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing event log response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.EventLogsClient.List.
func (c *EventLogsClient) List(ctx context.Context, options *keyline.EventLogListOptions) (*keyline.ListResponse[keyline.EventLog], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/event-logs", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing event logs: %w", err)
	}

	var result keyline.ListResponse[keyline.EventLog]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing event logs list response: %w", err)
	}

	return &result, nil
}
