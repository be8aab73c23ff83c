package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/keyline-io/keyline-go/pkg/klclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	// Multi-account configuration
	Accounts       map[string]*AccountConfig `json:"accounts,omitempty"        yaml:"accounts,omitempty"`
	CurrentAccount string                    `json:"current_account,omitempty" yaml:"current_account,omitempty"`

	// Global settings
	Output  string `json:"output"   yaml:"output"`
	NoColor bool   `json:"no_color" yaml:"no_color"`
}

// AccountConfig represents configuration for a single licensing account.
type AccountConfig struct {
	Endpoint          string     `json:"endpoint"                   yaml:"endpoint"`
	AccountID         string     `json:"account_id"                 yaml:"account_id"`
	Token             string     `json:"token,omitempty"            yaml:"token,omitempty"`
	TokenExpiresAt    *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
	Email             string     `json:"email,omitempty"            yaml:"email,omitempty"`
	SkipSSLValidation bool       `json:"skip_ssl_validation"        yaml:"skip_ssl_validation"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage keyline CLI configuration including accounts and settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigUseCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			// Never print stored tokens
			for _, accountConfig := range config.Accounts {
				if accountConfig.Token != "" {
					accountConfig.Token = constants.MaskedSecret
				}
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(config)
			case constants.FormatYAML:
				return StandardYAMLRenderer(config)
			default:
				return displayConfigTable(config)
			}
		},
	}
}

func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Endpoint", "Account", "Token", "Current")

	for name, accountConfig := range config.Accounts {
		current := ""
		if name == config.CurrentAccount {
			current = constants.CheckMarkSymbol
		}

		token := ""
		if accountConfig.Token != "" {
			token = constants.MaskedSecret
		}

		_ = table.Append(name, accountConfig.Endpoint, accountConfig.AccountID, token, current)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering config table: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "\nOutput format: %s\n", config.Output)

	return nil
}

func newConfigSetCommand() *cobra.Command {
	var accountFlag string

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a specific configuration value (global or account-specific)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			config := loadConfig()

			if accountFlag != "" {
				return setAccountConfig(config, accountFlag, key, value)
			}

			return setGlobalConfig(config, key, value)
		},
	}

	cmd.Flags().StringVar(&accountFlag, "for", "", "target a named account for configuration")

	return cmd
}

func setGlobalConfig(config *Config, key, value string) error {
	switch key {
	case "output":
		if value != constants.FormatTable && value != constants.FormatJSON && value != constants.FormatYAML {
			return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, value)
		}

		config.Output = value
	case "no_color":
		config.NoColor = value == constants.BooleanTrue || value == "1"
	default:
		return fmt.Errorf("%w: %s. Use --for to target an account", constants.ErrConfigKeyUnknown, key)
	}

	err := saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Set %s to %s\n", key, value)

	return nil
}

func setAccountConfig(config *Config, name, key, value string) error {
	accountConfig, exists := config.Accounts[name]
	if !exists {
		accountConfig = &AccountConfig{}

		if config.Accounts == nil {
			config.Accounts = make(map[string]*AccountConfig)
		}

		config.Accounts[name] = accountConfig
	}

	switch key {
	case "endpoint":
		accountConfig.Endpoint = value
	case "account_id":
		accountConfig.AccountID = value
	case "token":
		accountConfig.Token = value
	case "email":
		accountConfig.Email = value
	case "skip_ssl_validation":
		accountConfig.SkipSSLValidation = value == constants.BooleanTrue || value == "1"
	default:
		return fmt.Errorf("%w: %s", constants.ErrConfigKeyUnknown, key)
	}

	if config.CurrentAccount == "" {
		config.CurrentAccount = name
	}

	err := saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Set %s for account '%s'\n", key, name)

	return nil
}

func newConfigUnsetCommand() *cobra.Command {
	var accountFlag string

	cmd := &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a specific configuration value (global or account-specific)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			config := loadConfig()

			if accountFlag != "" {
				return unsetAccountConfig(config, accountFlag, key)
			}

			return unsetGlobalConfig(config, key)
		},
	}

	cmd.Flags().StringVar(&accountFlag, "for", "", "target a named account for configuration")

	return cmd
}

func unsetGlobalConfig(config *Config, key string) error {
	switch key {
	case "output":
		config.Output = constants.FormatTable
	case "no_color":
		config.NoColor = false
	default:
		return fmt.Errorf("%w: %s. Use --for to target an account", constants.ErrConfigKeyUnknown, key)
	}

	err := saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", key)

	return nil
}

func unsetAccountConfig(config *Config, name, key string) error {
	accountConfig, exists := config.Accounts[name]
	if !exists {
		return fmt.Errorf("account '%s': %w", name, ErrAccountConfigNotFound)
	}

	switch key {
	case "token":
		accountConfig.Token = ""
		accountConfig.TokenExpiresAt = nil
	case "email":
		accountConfig.Email = ""
	case "skip_ssl_validation":
		accountConfig.SkipSSLValidation = false
	default:
		return fmt.Errorf("%w: %s", constants.ErrConfigKeyUnknown, key)
	}

	err := saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Unset %s for account '%s'\n", key, name)

	return nil
}

func newConfigUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use NAME",
		Short: "Switch the current account",
		Long:  "Set the named account as the default for subsequent commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			config := loadConfig()

			if _, exists := config.Accounts[name]; !exists {
				return fmt.Errorf("account '%s': %w", name, ErrAccountConfigNotFound)
			}

			config.CurrentAccount = name

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Now using account '%s'\n", name)

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile := viper.ConfigFileUsed()
			if configFile == "" {
				home, _ := os.UserHomeDir()
				configFile = filepath.Join(home, ".keyline", "config.yml")
			}

			err := os.Remove(configFile)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			_, _ = fmt.Fprintln(os.Stdout, "Cleared all configuration")

			return nil
		},
	}
}

// loadConfig assembles the CLI configuration from viper.
func loadConfig() *Config {
	config := &Config{
		Accounts:       make(map[string]*AccountConfig),
		CurrentAccount: viper.GetString("current_account"),
		Output:         viper.GetString("output"),
		NoColor:        viper.GetBool("no_color"),
	}

	for name, raw := range viper.GetStringMap("accounts") {
		if accountMap, ok := raw.(map[string]interface{}); ok {
			config.Accounts[name] = parseAccountConfig(accountMap)
		}
	}

	return config
}

// parseAccountConfig parses one account entry from the config file.
func parseAccountConfig(accountMap map[string]interface{}) *AccountConfig {
	accountConfig := &AccountConfig{}

	if endpoint, ok := accountMap["endpoint"].(string); ok {
		accountConfig.Endpoint = endpoint
	}

	if accountID, ok := accountMap["account_id"].(string); ok {
		accountConfig.AccountID = accountID
	}

	if token, ok := accountMap["token"].(string); ok {
		accountConfig.Token = token
	}

	if email, ok := accountMap["email"].(string); ok {
		accountConfig.Email = email
	}

	if skip, ok := accountMap["skip_ssl_validation"].(bool); ok {
		accountConfig.SkipSSLValidation = skip
	}

	switch expiresAt := accountMap["token_expires_at"].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339, expiresAt); err == nil {
			accountConfig.TokenExpiresAt = &t
		}
	case time.Time:
		accountConfig.TokenExpiresAt = &expiresAt
	}

	return accountConfig
}

// saveConfigStruct writes the configuration to the active config file.
func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".keyline")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// findAccountConfig resolves a short name or account ID to a saved account
// entry, falling back to the current account when the argument is empty.
func findAccountConfig(nameOrID string) (*AccountConfig, string) {
	config := loadConfig()

	if nameOrID == "" {
		nameOrID = config.CurrentAccount
	}

	if nameOrID == "" {
		return nil, ""
	}

	if accountConfig, exists := config.Accounts[nameOrID]; exists {
		return accountConfig, nameOrID
	}

	for name, accountConfig := range config.Accounts {
		if accountConfig.AccountID == nameOrID {
			return accountConfig, name
		}
	}

	return nil, ""
}

// CreateClient builds an API client from flags, environment, and the saved
// account configuration. Explicit flags win over the config file.
func CreateClient(ctx context.Context) (keyline.Client, error) {
	return CreateClientWithTimeout(ctx, 0)
}

// CreateClientWithTimeout builds an API client like CreateClient but pins
// the HTTP timeout. A zero timeout keeps the transport default.
func CreateClientWithTimeout(ctx context.Context, timeout time.Duration) (keyline.Client, error) {
	accountFlag := viper.GetString("account")
	accountConfig, _ := findAccountConfig(accountFlag)

	clientConfig := &keyline.Config{
		Endpoint:      viper.GetString("endpoint"),
		AccountID:     accountFlag,
		Token:         viper.GetString("token"),
		SkipTLSVerify: viper.GetBool("skip_ssl_validation"),
	}

	if accountConfig != nil {
		clientConfig.AccountID = accountConfig.AccountID

		if clientConfig.Endpoint == "" {
			clientConfig.Endpoint = accountConfig.Endpoint
		}

		if clientConfig.Token == "" {
			clientConfig.Token = accountConfig.Token
		}

		if accountConfig.SkipSSLValidation {
			clientConfig.SkipTLSVerify = true
		}
	}

	if viper.GetBool("verbose") {
		clientConfig.Debug = true
		clientConfig.Logger = keyline.NewZerologLogger(os.Stderr)
	}

	if timeout > 0 {
		clientConfig.HTTPTimeout = timeout
	}

	if clientConfig.Endpoint == "" {
		return nil, constants.ErrNoEndpointConfigured
	}

	if clientConfig.AccountID == "" {
		return nil, constants.ErrNoAccountConfigured
	}

	// The transport ignores the skip outside dev mode; fail loudly here
	// instead of sending traffic the user thinks is unverified-but-working.
	if clientConfig.SkipTLSVerify && !isDevMode() {
		return nil, constants.ErrSkipTLSOnlyInDev
	}

	client, err := klclient.New(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	return client, nil
}
