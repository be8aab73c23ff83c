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

// NewEntitlementsCommand creates the entitlements command group.
func NewEntitlementsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entitlements",
		Aliases: []string{"entitlement", "ent"},
		Short:   "Manage entitlements",
		Long:    "List, create, update, and delete feature entitlements",
	}

	cmd.AddCommand(newEntitlementsListCommand())
	cmd.AddCommand(newEntitlementsGetCommand())
	cmd.AddCommand(newEntitlementsCreateCommand())
	cmd.AddCommand(newEntitlementsUpdateCommand())
	cmd.AddCommand(newEntitlementsDeleteCommand())
	cmd.AddCommand(newEntitlementsListLicensesCommand())

	return cmd
}

func newEntitlementsListCommand() *cobra.Command {
	var (
		code    string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entitlements",
		Long:  "List feature entitlements in the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			entitlements, err := client.Entitlements().List(ctx, &keyline.EntitlementListOptions{
				Code: code,
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to list entitlements: %w", err)
			}

			return outputEntitlements(entitlements)
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "filter by entitlement code")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

// outputEntitlements renders an entitlement list in the configured format.
// The licenses list-entitlements subcommand shares it.
func outputEntitlements(entitlements *keyline.ListResponse[keyline.Entitlement]) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(entitlements.Data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(entitlements.Data)
	default:
		if len(entitlements.Data) == 0 {
			_, _ = os.Stdout.WriteString("No entitlements found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name", "Code", "Created")

		for _, entitlement := range entitlements.Data {
			_ = table.Append(entitlement.ID, entitlement.Attributes.Name,
				entitlement.Attributes.Code, formatDate(entitlement.Attributes.Created))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		renderPageHint(entitlements)

		return nil
	}
}

func newEntitlementsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ENTITLEMENT_ID",
		Short: "Get entitlement details",
		Long:  "Display detailed information about a specific entitlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			entitlement, err := client.Entitlements().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get entitlement: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(entitlement)
			case constants.FormatYAML:
				return StandardYAMLRenderer(entitlement)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", entitlement.ID)
				_ = table.Append("Name", entitlement.Attributes.Name)
				_ = table.Append("Code", entitlement.Attributes.Code)
				_ = table.Append("Created", formatDate(entitlement.Attributes.Created))
				_ = table.Append("Updated", formatDate(entitlement.Attributes.Updated))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newEntitlementsCreateCommand() *cobra.Command {
	var (
		name          string
		code          string
		metadataFlags []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an entitlement",
		Long:  "Create a new feature entitlement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return ErrNameRequired
			}

			if code == "" {
				return ErrCodeRequired
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			metadata, err := parseMetadataFlags(metadataFlags)
			if err != nil {
				return err
			}

			entitlement, err := client.Entitlements().Create(ctx, &keyline.EntitlementCreateRequest{
				Name:     name,
				Code:     code,
				Metadata: metadata,
			})
			if err != nil {
				return fmt.Errorf("failed to create entitlement: %w", err)
			}

			fmt.Printf("Entitlement '%s' created with code %s\n",
				entitlement.Attributes.Name, entitlement.Attributes.Code)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "entitlement name (required)")
	cmd.Flags().StringVar(&code, "code", "", "entitlement code (required)")
	cmd.Flags().StringArrayVar(&metadataFlags, "metadata", nil, "metadata key=value pairs")

	return cmd
}

func newEntitlementsUpdateCommand() *cobra.Command {
	var (
		name string
		code string
	)

	cmd := &cobra.Command{
		Use:   "update ENTITLEMENT_ID",
		Short: "Update an entitlement",
		Long:  "Update an entitlement's name or code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := &keyline.EntitlementUpdateRequest{}

			if cmd.Flags().Changed("name") {
				request.Name = &name
			}

			if cmd.Flags().Changed("code") {
				request.Code = &code
			}

			entitlement, err := client.Entitlements().Update(ctx, args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update entitlement: %w", err)
			}

			fmt.Printf("Entitlement '%s' updated\n", entitlement.Attributes.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new entitlement name")
	cmd.Flags().StringVar(&code, "code", "", "new entitlement code")

	return cmd
}

func newEntitlementsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ENTITLEMENT_ID",
		Short: "Delete an entitlement",
		Long:  "Permanently delete an entitlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Entitlements().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete entitlement: %w", err)
			}

			fmt.Printf("Entitlement '%s' deleted\n", args[0])

			return nil
		},
	}
}

func newEntitlementsListLicensesCommand() *cobra.Command {
	var (
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list-licenses ENTITLEMENT_ID",
		Short: "List licenses holding an entitlement",
		Long:  "List all licenses that have the entitlement attached",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			licenses, err := client.Entitlements().ListLicenses(ctx, args[0], &keyline.LicenseListOptions{
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to list entitlement licenses: %w", err)
			}

			return outputLicenses(licenses)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}
