//nolint:testpackage // Need access to internal config parsing
package commands

import (
	"testing"
	"time"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigCommand(t *testing.T) {
	t.Parallel()

	cmd := NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 5)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "unset")
	assert.Contains(t, commandNames, "use")
	assert.Contains(t, commandNames, "clear")
}

func TestParseAccountConfig(t *testing.T) {
	t.Parallel()

	accountConfig := parseAccountConfig(map[string]interface{}{
		"endpoint":            "https://api.keyline.example",
		"account_id":          "acct-1",
		"token":               "tok-1",
		"email":               "dev@example.com",
		"skip_ssl_validation": true,
	})

	assert.Equal(t, "https://api.keyline.example", accountConfig.Endpoint)
	assert.Equal(t, "acct-1", accountConfig.AccountID)
	assert.Equal(t, "tok-1", accountConfig.Token)
	assert.Equal(t, "dev@example.com", accountConfig.Email)
	assert.True(t, accountConfig.SkipSSLValidation)
	assert.Nil(t, accountConfig.TokenExpiresAt)
}

func TestParseAccountConfigTokenExpiry(t *testing.T) {
	t.Parallel()

	// YAML round-trips may surface the timestamp as a string or a time.Time.
	fromString := parseAccountConfig(map[string]interface{}{
		"token_expires_at": "2026-06-01T00:00:00Z",
	})
	require.NotNil(t, fromString.TokenExpiresAt)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), *fromString.TokenExpiresAt)

	parsed := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fromTime := parseAccountConfig(map[string]interface{}{
		"token_expires_at": parsed,
	})
	require.NotNil(t, fromTime.TokenExpiresAt)
	assert.Equal(t, parsed, *fromTime.TokenExpiresAt)

	garbage := parseAccountConfig(map[string]interface{}{
		"token_expires_at": "not-a-timestamp",
	})
	assert.Nil(t, garbage.TokenExpiresAt)
}

func TestSetGlobalConfigRejectsUnknownKey(t *testing.T) {
	t.Parallel()

	config := &Config{}

	err := setGlobalConfig(config, "endpoint", "https://example.com")
	require.ErrorIs(t, err, constants.ErrConfigKeyUnknown)
}

func TestSetGlobalConfigValidatesOutput(t *testing.T) {
	t.Parallel()

	config := &Config{}

	err := setGlobalConfig(config, "output", "xml")
	require.ErrorIs(t, err, constants.ErrInvalidOutputFormat)
	assert.Empty(t, config.Output)
}

func TestSetAccountConfigRejectsUnknownKey(t *testing.T) {
	t.Parallel()

	config := &Config{}

	err := setAccountConfig(config, "staging", "password", "hunter2")
	require.ErrorIs(t, err, constants.ErrConfigKeyUnknown)
}
