// Package klclient provides the main entry point for creating licensing API clients
package klclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/keyline-io/keyline-go/internal/auth"
	"github.com/keyline-io/keyline-go/internal/client"
	"github.com/keyline-io/keyline-go/internal/constants"
	internalhttp "github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// New creates a new licensing API client for one account.
//
// When the config carries email/password instead of a token, the credentials
// are exchanged eagerly for a bearer token before New returns, so a bad
// password fails here rather than on the first resource call. The
// credentials themselves are not retained.
func New(ctx context.Context, config *keyline.Config) (keyline.Client, error) {
	if config == nil {
		return nil, keyline.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, keyline.ErrEndpointRequired
	}

	if config.AccountID == "" {
		return nil, keyline.ErrAccountRequired
	}

	if err := validateCredentials(config); err != nil {
		return nil, err
	}

	config.Endpoint = normalizeEndpoint(config.Endpoint)

	session, err := createSession(ctx, config)
	if err != nil {
		return nil, err
	}

	// A nil *Session must stay a nil interface, or the transport would call
	// methods on a nil pointer.
	var tokenSource auth.TokenSource
	if session != nil {
		tokenSource = session
	}

	httpClient := internalhttp.NewClient(config.Endpoint, tokenSource, createHTTPClientOptions(config)...)

	return client.New(httpClient, session, config.AccountID), nil
}

// NewWithToken creates a new client from an endpoint, account, and an
// already-issued bearer token.
func NewWithToken(ctx context.Context, endpoint, accountID, token string) (keyline.Client, error) {
	return New(ctx, &keyline.Config{
		Endpoint:  endpoint,
		AccountID: accountID,
		Token:     token,
	})
}

// NewWithCredentials creates a new client by exchanging email/password for a
// bearer token at construction.
func NewWithCredentials(ctx context.Context, endpoint, accountID, email, password string) (keyline.Client, error) {
	return New(ctx, &keyline.Config{
		Endpoint:  endpoint,
		AccountID: accountID,
		Email:     email,
		Password:  password,
	})
}

// validateCredentials rejects half a credential pair. Token alongside
// email/password is fine; the token wins.
func validateCredentials(config *keyline.Config) error {
	if config.Token != "" {
		return nil
	}

	if config.Email != "" && config.Password == "" {
		return keyline.ErrPasswordRequired
	}

	if config.Password != "" && config.Email == "" {
		return keyline.ErrEmailRequired
	}

	return nil
}

// normalizeEndpoint trims a trailing slash and defaults to https when the
// caller gave a bare host.
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(endpoint, "/")

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// createSession arms a session from whichever credentials the config
// carries, or returns nil for an unauthenticated client.
func createSession(ctx context.Context, config *keyline.Config) (*auth.Session, error) {
	switch {
	case config.Token != "":
		return auth.NewStaticSession(config.Token), nil
	case config.Email != "":
		token, err := auth.ExchangeCredentials(ctx, exchangeHTTPClient(config),
			config.Endpoint, config.AccountID, config.Email, config.Password)
		if err != nil {
			return nil, fmt.Errorf("exchanging credentials: %w", err)
		}

		session := auth.NewSession()
		session.Apply(token)

		return session, nil
	default:
		return nil, nil
	}
}

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	devMode := os.Getenv(constants.DevModeEnvVar)

	return devMode == "true" || devMode == "1"
}

// exchangeHTTPClient builds the plain HTTP client for the one-shot token
// exchange. TLS skipping honors the same dev-mode gate as the transport.
func exchangeHTTPClient(config *keyline.Config) *http.Client {
	timeout := constants.DefaultHTTPTimeout
	if config.HTTPTimeout > 0 {
		timeout = config.HTTPTimeout
	}

	httpClient := &http.Client{Timeout: timeout}

	if config.SkipTLSVerify && isDevelopmentEnvironment() {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // dev-mode only
		}
	}

	return httpClient
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *keyline.Config) []internalhttp.Option {
	var httpOpts []internalhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.APIVersion != "" {
		httpOpts = append(httpOpts, internalhttp.WithAPIVersion(config.APIVersion))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.SkipTLSVerify {
		httpOpts = append(httpOpts, internalhttp.WithSkipTLSVerify(true))
	}

	return httpOpts
}
