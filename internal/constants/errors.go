package constants

import "errors"

// Configuration errors.
var (
	ErrNoEndpointConfigured = errors.New("no API endpoint configured, use 'keyline config set endpoint <url>' or --endpoint")
	ErrNoAccountConfigured  = errors.New("no account configured, use 'keyline config set account <id>' or --account")
	ErrNotAuthenticated     = errors.New("not authenticated, run 'keyline login' first")
	ErrConfigKeyUnknown     = errors.New("unknown configuration key")
)

// TLS and environment errors.
var (
	ErrSkipTLSOnlyInDev = errors.New("--skip-ssl-validation is only allowed in development environments (set KEYLINE_DEV_MODE=true)")
)

// Input validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, expected table, json, or yaml")
	ErrEmailAndPassword    = errors.New("both email and password are required to log in")
	ErrPasswordMismatch    = errors.New("passwords do not match")
)

// File system errors.
var (
	ErrNotRegularFile = errors.New("path is not a regular file")
)
