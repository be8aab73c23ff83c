package keyline

import (
	"errors"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrDeprecatedClientConstructor = errors.New("use github.com/keyline-io/keyline-go/pkg/klclient.New to create a client")
)

// Config represents client configuration for building a keyline.Client.
//
// # Authentication precedence
//
// The following precedence is applied by the concrete client implementation
// (see pkg/klclient and internal/client):
//  1. Token: if set, it is used directly as a static Bearer token. Admin,
//     product, user, and activation tokens are all accepted; the server
//     decides what each may do.
//  2. Email/Password: exchanged once for a user token at construction via
//     the account's token endpoint. The credentials are used for that single
//     exchange and are never retained by the client afterwards.
//  3. No credentials: requests are sent without authentication. Only Ping
//     succeeds unauthenticated.
//
// # Timeouts, retries, and TLS
//
// Per-request timeouts should generally be controlled via context passed to
// client methods. Retry behavior can be tuned via RetryMax/RetryWaitMin/
// RetryWaitMax; only idempotent requests and rate-limited or transient
// server failures are retried. SkipTLSVerify is only honored when the
// environment variable KEYLINE_DEV_MODE is set to "true" or "1"; do not use
// it in production.
type Config struct {
	// Required fields
	// Endpoint: base URL for the licensing API (e.g., "https://api.keyline.sh").
	// klclient.New normalizes this value by trimming a trailing slash and
	// adding "https://" if no scheme is present.
	Endpoint string
	// AccountID: account identifier or slug every resource path is scoped
	// under (e.g., "/v1/accounts/<AccountID>/licenses").
	AccountID string

	// Authentication options (provide one)
	// Token: if set, used directly as a Bearer token.
	Token string
	// Email: account user email for the one-shot token exchange.
	Email string
	// Password: account user password used with Email.
	Password string

	// Optional configurations
	// HTTPTimeout: optional default HTTP timeout where supported. Most client
	// calls should rely on context timeouts; this may be used by helpers.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of retries for transient failures (>=500, 429,
	// and connection errors). If 0, a sensible default is used by the client.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and helpers.
	Logger Logger
	// SkipTLSVerify: if true, TLS verification is skipped, and only when
	// KEYLINE_DEV_MODE is set. Intended for local development servers.
	SkipTLSVerify bool
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
	// APIVersion: overrides the pinned API version header sent with every
	// request. Leave empty to use the version this library was built against.
	APIVersion string
}

// NewClient creates a new licensing API client
// Deprecated: Use github.com/keyline-io/keyline-go/pkg/klclient.New instead.
func NewClient(config *Config) (Client, error) {
	return nil, ErrDeprecatedClientConstructor
}
