package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated identity",
		Long:  "Display the user or principal the stored token authenticates as",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			if client.AccessToken() == "" {
				return constants.ErrNotAuthenticated
			}

			user, err := client.Me(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch identity: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(user)
			case constants.FormatYAML:
				return StandardYAMLRenderer(user)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", user.ID)
				_ = table.Append("Email", user.Attributes.Email)
				_ = table.Append("Name", user.Attributes.FullName)
				_ = table.Append("Role", string(user.Attributes.Role))
				_ = table.Append("Status", statusColor(string(user.Attributes.Status)))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}
