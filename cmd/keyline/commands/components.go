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

// NewComponentsCommand creates the components command group.
func NewComponentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "components",
		Aliases: []string{"component", "comp"},
		Short:   "Manage components",
		Long:    "List, register, and remove hardware components",
	}

	cmd.AddCommand(newComponentsListCommand())
	cmd.AddCommand(newComponentsGetCommand())
	cmd.AddCommand(newComponentsAddCommand())
	cmd.AddCommand(newComponentsRemoveCommand())

	return cmd
}

func newComponentsListCommand() *cobra.Command {
	var (
		machine string
		license string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List components",
		Long:  "List hardware components, optionally filtered by machine or license",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			components, err := client.Components().List(ctx, &keyline.ComponentListOptions{
				MachineID: machine,
				LicenseID: license,
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to list components: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(components.Data)
			case constants.FormatYAML:
				return StandardYAMLRenderer(components.Data)
			default:
				if len(components.Data) == 0 {
					_, _ = os.Stdout.WriteString("No components found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Fingerprint", "Machine", "Created")

				for _, component := range components.Data {
					_ = table.Append(component.ID, component.Attributes.Name,
						component.Attributes.Fingerprint,
						relationshipID(component.Relationships.Machine),
						formatDate(component.Attributes.Created))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				renderPageHint(components)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&machine, "machine", "", "filter by machine ID")
	cmd.Flags().StringVar(&license, "license", "", "filter by license ID")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func newComponentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get COMPONENT_ID",
		Short: "Get component details",
		Long:  "Display detailed information about a specific component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			component, err := client.Components().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get component: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(component)
			case constants.FormatYAML:
				return StandardYAMLRenderer(component)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", component.ID)
				_ = table.Append("Name", component.Attributes.Name)
				_ = table.Append("Fingerprint", component.Attributes.Fingerprint)
				_ = table.Append("Machine", relationshipID(component.Relationships.Machine))
				_ = table.Append("License", relationshipID(component.Relationships.License))
				_ = table.Append("Created", formatDate(component.Attributes.Created))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newComponentsAddCommand() *cobra.Command {
	var (
		fingerprint   string
		name          string
		machine       string
		metadataFlags []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a component",
		Long:  "Register a hardware component against an activated machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fingerprint == "" {
				return ErrFingerprintRequired
			}

			if name == "" {
				return ErrNameRequired
			}

			if machine == "" {
				return ErrMachineRequired
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

			component, err := client.Components().Create(ctx, &keyline.ComponentCreateRequest{
				Fingerprint: fingerprint,
				Name:        name,
				MachineID:   machine,
				Metadata:    metadata,
			})
			if err != nil {
				return fmt.Errorf("failed to register component: %w", err)
			}

			fmt.Printf("Component '%s' registered\n", component.Attributes.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&fingerprint, "fingerprint", "", "component fingerprint (required)")
	cmd.Flags().StringVar(&name, "name", "", "component name, e.g. mainboard (required)")
	cmd.Flags().StringVar(&machine, "machine", "", "machine ID to bind to (required)")
	cmd.Flags().StringArrayVar(&metadataFlags, "metadata", nil, "metadata key=value pairs")

	return cmd
}

func newComponentsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove COMPONENT_ID",
		Short: "Remove a component",
		Long:  "Remove a hardware component registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Components().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to remove component: %w", err)
			}

			fmt.Printf("Component '%s' removed\n", args[0])

			return nil
		},
	}
}
