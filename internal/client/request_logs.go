package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// RequestLogsClient implements keyline.RequestLogsClient. The kind is
// server-emitted and read-only.
type RequestLogsClient struct {
	httpClient *http.Client
	accountID  string
}

// NewRequestLogsClient creates a new request logs client.
func NewRequestLogsClient(httpClient *http.Client, accountID string) *RequestLogsClient {
	return &RequestLogsClient{httpClient: httpClient, accountID: accountID}
}

// Get implements keyline.RequestLogsClient.Get.
func (c *RequestLogsClient) Get(ctx context.Context, logID string) (*keyline.RequestLog, error) {
	path := fmt.Sprintf("/v1/accounts/%s/request-logs/%s", c.accountID, logID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting request log: %w", err)
	}

	var doc keyline.Document[keyline.RequestLog]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing request log response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.RequestLogsClient.List.
func (c *RequestLogsClient) List(ctx context.Context, options *keyline.RequestLogListOptions) (*keyline.ListResponse[keyline.RequestLog], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/request-logs", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing request logs: %w", err)
	}

	var result keyline.ListResponse[keyline.RequestLog]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing request logs list response: %w", err)
	}

	return &result, nil
}
