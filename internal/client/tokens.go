package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// TokensClient implements keyline.TokensClient. Token generation happens
// through the credential exchange, not here; this client manages the tokens
// already issued for the account.
type TokensClient struct {
	httpClient *http.Client
	accountID  string
}

// NewTokensClient creates a new tokens client.
func NewTokensClient(httpClient *http.Client, accountID string) *TokensClient {
	return &TokensClient{httpClient: httpClient, accountID: accountID}
}

// Get implements keyline.TokensClient.Get.
func (c *TokensClient) Get(ctx context.Context, tokenID string) (*keyline.Token, error) {
	path := fmt.Sprintf("/v1/accounts/%s/tokens/%s", c.accountID, tokenID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting token: %w", err)
	}

	var doc keyline.Document[keyline.Token]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.TokensClient.List.
func (c *TokensClient) List(ctx context.Context, options *keyline.TokenListOptions) (*keyline.ListResponse[keyline.Token], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/tokens", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing tokens: %w", err)
	}

	var result keyline.ListResponse[keyline.Token]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing tokens list response: %w", err)
	}

	return &result, nil
}

// Revoke implements keyline.TokensClient.Revoke.
func (c *TokensClient) Revoke(ctx context.Context, tokenID string) error {
	path := fmt.Sprintf("/v1/accounts/%s/tokens/%s", c.accountID, tokenID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}

	return nil
}
