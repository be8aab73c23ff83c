package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common static errors used throughout the commands package.
var (
	ErrAccountConfigNotFound = errors.New("account configuration not found")
	ErrInvalidMetadataFormat = errors.New("invalid metadata format. Expected key=value")
	ErrInvalidBooleanFlag    = errors.New("invalid boolean value. Expected true or false")
	ErrNameRequired          = errors.New("a name is required")
	ErrPolicyRequired        = errors.New("a policy is required (--policy)")
	ErrLicenseRequired       = errors.New("a license is required (--license)")
	ErrMachineRequired       = errors.New("a machine is required (--machine)")
	ErrProductRequired       = errors.New("a product is required (--product)")
	ErrFingerprintRequired   = errors.New("a fingerprint is required (--fingerprint)")
	ErrEmailRequired         = errors.New("an email is required (--email)")
	ErrURLRequired           = errors.New("a url is required (--url)")
	ErrCodeRequired          = errors.New("a code is required (--code)")
	ErrPidRequired           = errors.New("a pid is required (--pid)")
)

// isDevMode mirrors the transport's dev-mode gate for TLS skipping.
func isDevMode() bool {
	value := os.Getenv(constants.DevModeEnvVar)

	return value == constants.BooleanTrue || value == "1"
}

// StandardJSONRenderer renders any value as indented JSON.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer renders any value as YAML.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// formatDate renders a timestamp as a calendar date for table cells.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format("2006-01-02")
}

// formatDateTime renders a timestamp with time of day for log tables.
func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format("2006-01-02 15:04:05")
}

// formatExpiry renders an optional expiry, where nil means perpetual.
func formatExpiry(t *time.Time) string {
	if t == nil {
		return "never"
	}

	return formatDate(*t)
}

// statusColor colors lifecycle states for table output. Respects --no-color.
func statusColor(status string) string {
	if viper.GetBool("no_color") {
		return status
	}

	switch strings.ToUpper(status) {
	case "ACTIVE", "VALID", "ALIVE", "LICENSED":
		return color.GreenString(status)
	case "SUSPENDED", "BANNED", "REVOKED", "EXPIRED", "DEAD":
		return color.RedString(status)
	case "INACTIVE", "PENDING", "EXPIRING", "IDLE":
		return color.YellowString(status)
	default:
		return status
	}
}

// relationshipID extracts the target ID of a to-one relationship for
// table cells, tolerating absent data.
func relationshipID(rel keyline.Relationship) string {
	if rel.Data == nil {
		return constants.NotAvailable
	}

	return rel.Data.ID
}

// parseBoolFlag converts a tri-state string flag into an optional bool.
// Empty means unset and yields nil.
func parseBoolFlag(value string) (*bool, error) {
	switch value {
	case "":
		return nil, nil
	case constants.BooleanTrue:
		parsed := true

		return &parsed, nil
	case constants.BooleanFalse:
		parsed := false

		return &parsed, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidBooleanFlag, value)
	}
}

// parseMetadataFlags converts repeated key=value flags into metadata.
func parseMetadataFlags(pairs []string) (keyline.Metadata, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	metadata := make(keyline.Metadata, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMetadataFormat, pair)
		}

		metadata[key] = value
	}

	return metadata, nil
}

// renderPageHint prints a follow-up hint when the page is likely truncated.
func renderPageHint[T any](resp *keyline.ListResponse[T]) {
	if resp.Meta.Count == nil {
		return
	}

	if len(resp.Data) < *resp.Meta.Count {
		_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d of %d. Use --page and --per-page to fetch more.\n",
			len(resp.Data), *resp.Meta.Count)
	}
}
