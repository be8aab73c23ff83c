package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/keyline-io/keyline-go/pkg/klclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		endpoint  string
		accountID string
		email     string
		password  string
		token     string
		name      string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a licensing account",
		Long:  "Authenticate with a licensing API endpoint and store the issued token",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			// Get API endpoint
			if endpoint == "" {
				endpoint = viper.GetString("endpoint")
			}

			if endpoint == "" {
				fmt.Print("API endpoint: ")
				endpoint, _ = reader.ReadString('\n')
				endpoint = strings.TrimSpace(endpoint)
			}

			if endpoint == "" {
				return keyline.ErrEndpointRequired
			}

			// Get account
			if accountID == "" {
				accountID = viper.GetString("account")
			}

			if accountID == "" {
				fmt.Print("Account ID: ")
				accountID, _ = reader.ReadString('\n')
				accountID = strings.TrimSpace(accountID)
			}

			if accountID == "" {
				return keyline.ErrAccountRequired
			}

			skipSSL := viper.GetBool("skip_ssl_validation")

			config := &keyline.Config{
				Endpoint:      endpoint,
				AccountID:     accountID,
				SkipTLSVerify: skipSSL,
			}

			// Determine authentication method
			if token != "" {
				config.Token = token
			} else {
				if email == "" {
					fmt.Print("Email: ")
					email, _ = reader.ReadString('\n')
					email = strings.TrimSpace(email)
				}

				if password == "" {
					fmt.Print("Password: ")

					bytePassword, err := term.ReadPassword(int(syscall.Stdin))
					if err != nil {
						return fmt.Errorf("failed to read password: %w", err)
					}

					password = string(bytePassword)

					fmt.Println()
				}

				if email == "" || password == "" {
					return constants.ErrEmailAndPassword
				}

				config.Email = email
				config.Password = password
			}

			// Create the client. Credentials are exchanged for a token here.
			ctx := context.Background()

			client, err := klclient.New(ctx, config)
			if err != nil {
				return fmt.Errorf("failed to log in: %w", err)
			}

			// Verify the session by fetching the bearer's identity
			user, err := client.Me(ctx)
			if err != nil {
				return fmt.Errorf("failed to verify session: %w", err)
			}

			// Persist the issued token, never the password
			if name == "" {
				name = accountID
			}

			configStruct := loadConfig()
			if configStruct.Accounts == nil {
				configStruct.Accounts = make(map[string]*AccountConfig)
			}

			accountConfig, exists := configStruct.Accounts[name]
			if !exists {
				accountConfig = &AccountConfig{}
				configStruct.Accounts[name] = accountConfig
			}

			accountConfig.Endpoint = endpoint
			accountConfig.AccountID = accountID
			accountConfig.Email = email
			accountConfig.SkipSSLValidation = skipSSL

			if issued := client.AccessToken(); issued != "" {
				accountConfig.Token = issued
			}

			if configStruct.CurrentAccount == "" || len(configStruct.Accounts) == 1 {
				configStruct.CurrentAccount = name
			}

			if err := saveConfigStruct(configStruct); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Successfully logged in to %s\n", endpoint)
			fmt.Printf("Account '%s' saved", name)

			if configStruct.CurrentAccount == name {
				fmt.Print(" and set as current")
			}

			fmt.Println()

			if user.Attributes.Email != "" {
				fmt.Printf("Logged in as %s\n", user.Attributes.Email)
			}

			return nil
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "API endpoint URL")
	cmd.Flags().StringVarP(&accountID, "account", "a", "", "account ID")
	cmd.Flags().StringVar(&email, "email", "", "email for authentication")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for authentication")
	cmd.Flags().StringVarP(&token, "token", "t", "", "token to store instead of exchanging credentials")
	cmd.Flags().StringVar(&name, "name", "", "short name for the stored account (defaults to the account ID)")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the current account",
		Long:  "Discard the stored token for the current account",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			name := viper.GetString("account")
			if name == "" {
				name = config.CurrentAccount
			}

			accountConfig, exists := config.Accounts[name]
			if !exists {
				return fmt.Errorf("account '%s': %w", name, ErrAccountConfigNotFound)
			}

			accountConfig.Token = ""
			accountConfig.TokenExpiresAt = nil

			if err := saveConfigStruct(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Logged out of account '%s'\n", name)

			return nil
		},
	}
}
