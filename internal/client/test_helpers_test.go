package client

import (
	internalhttp "github.com/keyline-io/keyline-go/internal/http"
)

// TestAccountID scopes test clients to a fixed account.
const TestAccountID = "acct-test"

// NewTestClient creates an unauthenticated client against a test server.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	return New(httpClient, nil, TestAccountID)
}
