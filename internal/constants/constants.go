// Package constants centralizes the magic numbers and shared strings used
// across the client, transport, and CLI.
package constants

import "time"

// Wire protocol constants.
const (
	// ContentTypeAPI is the media type every request and response carries.
	ContentTypeAPI = "application/vnd.api+json"

	// APIVersionHeader names the header that pins the API version.
	APIVersionHeader = "Keyline-Version"

	// DefaultAPIVersion is the API version this library is built against.
	DefaultAPIVersion = "1.8"

	// DefaultUserAgent identifies the library to the API.
	DefaultUserAgent = "keyline-go/1.0.0"

	// DevModeEnvVar gates development-only behavior such as TLS skipping.
	DevModeEnvVar = "KEYLINE_DEV_MODE"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as ping probes.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry and concurrency limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second

	// DefaultConcurrencyLimit limits concurrent fan-out requests.
	DefaultConcurrencyLimit = 3
)

// Pagination and display limits.
const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 10

	// StandardPageSize is the common page size for API responses.
	StandardPageSize = 50

	// CountProbePageSize is used when only meta.count matters.
	CountProbePageSize = 1
)

// UI and display constants.
const (
	// CheckMarkSymbol is used to indicate current/active items.
	CheckMarkSymbol = "✓"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// None is used when no value is present.
	None = "none"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Boolean string constants.
const (
	// BooleanTrue string representation.
	BooleanTrue = "true"

	// BooleanFalse string representation.
	BooleanFalse = "false"
)

// Format constants.
const (
	// FormatTable for human-readable table output.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)
