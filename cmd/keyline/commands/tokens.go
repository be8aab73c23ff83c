package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewTokensCommand creates the tokens command group.
func NewTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tokens",
		Aliases: []string{"token"},
		Short:   "Manage API tokens",
		Long:    "List, inspect, and revoke API tokens",
	}

	cmd.AddCommand(newTokensListCommand())
	cmd.AddCommand(newTokensGetCommand())
	cmd.AddCommand(newTokensRevokeCommand())

	return cmd
}

func newTokensListCommand() *cobra.Command {
	var (
		kind    string
		bearer  string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tokens",
		Long:  "List API tokens, optionally filtered by kind or bearer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			tokens, err := client.Tokens().List(ctx, &keyline.TokenListOptions{
				Kind:     keyline.TokenKind(kind),
				BearerID: bearer,
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to list tokens: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(tokens.Data)
			case constants.FormatYAML:
				return StandardYAMLRenderer(tokens.Data)
			default:
				if len(tokens.Data) == 0 {
					_, _ = os.Stdout.WriteString("No tokens found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Kind", "Name", "Expiry", "Bearer", "Created")

				for _, token := range tokens.Data {
					_ = table.Append(token.ID, string(token.Attributes.Kind),
						token.Attributes.Name, formatExpiry(token.Attributes.Expiry),
						relationshipID(token.Relationships.Bearer),
						formatDate(token.Attributes.Created))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				renderPageHint(tokens)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "",
		"filter by kind (admin-token, user-token, product-token, activation-token)")
	cmd.Flags().StringVar(&bearer, "bearer", "", "filter by bearer ID")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func newTokensGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TOKEN_ID",
		Short: "Get token details",
		Long:  "Display detailed information about a specific token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			token, err := client.Tokens().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get token: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(token)
			case constants.FormatYAML:
				return StandardYAMLRenderer(token)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", token.ID)
				_ = table.Append("Kind", string(token.Attributes.Kind))

				if token.Attributes.Name != "" {
					_ = table.Append("Name", token.Attributes.Name)
				}

				_ = table.Append("Expiry", formatExpiry(token.Attributes.Expiry))
				_ = table.Append("Bearer", relationshipID(token.Relationships.Bearer))
				_ = table.Append("Created", formatDate(token.Attributes.Created))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newTokensRevokeCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "revoke TOKEN_ID",
		Short: "Revoke a token",
		Long:  "Permanently revoke an API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really revoke token '%s'? (y/N): ", args[0])

				var answer string

				_, _ = fmt.Scanln(&answer)
				if answer != "y" && answer != "Y" {
					fmt.Println("Cancelled")

					return nil
				}
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Tokens().Revoke(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to revoke token: %w", err)
			}

			fmt.Printf("Token '%s' revoked\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
