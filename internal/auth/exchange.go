package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenIssued = errors.New("token endpoint returned no token")
)

// ExchangeCredentials swaps email/password for a bearer token through the
// account's token endpoint. The credentials ride exactly one Basic-auth
// request and are not retained by anything this package owns; arming a
// Session with the result is the caller's job.
func ExchangeCredentials(ctx context.Context, httpClient *http.Client, endpoint, accountID, email, password string) (*keyline.Token, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	tokenURL := fmt.Sprintf("%s/v1/accounts/%s/tokens", endpoint, accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building token request: %w", err)
	}

	req.SetBasicAuth(email, password)
	req.Header.Set("Accept", constants.ContentTypeAPI)
	req.Header.Set(constants.APIVersionHeader, constants.DefaultAPIVersion)
	req.Header.Set("User-Agent", constants.DefaultUserAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, keyline.NewNetworkError(fmt.Errorf("exchanging credentials: %w", err))
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, keyline.NewNetworkError(fmt.Errorf("reading token response: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, keyline.ClassifyResponse(resp.StatusCode, resp.Header, body)
	}

	var doc keyline.Document[keyline.Token]

	err = json.Unmarshal(body, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if doc.Data.Attributes.Token == "" {
		return nil, ErrNoTokenIssued
	}

	return &doc.Data, nil
}
