package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewMachinesCommand creates the machines command group.
func NewMachinesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "machines",
		Aliases: []string{"machine"},
		Short:   "Manage machines",
		Long:    "List, activate, and manage machine activations",
	}

	cmd.AddCommand(newMachinesListCommand())
	cmd.AddCommand(newMachinesGetCommand())
	cmd.AddCommand(newMachinesActivateCommand())
	cmd.AddCommand(newMachinesDeactivateCommand())
	cmd.AddCommand(newMachinesPingCommand())
	cmd.AddCommand(newMachinesResetCommand())

	return cmd
}

func newMachinesListCommand() *cobra.Command {
	var (
		licenseID string
		ownerID   string
		heartbeat string
		page      int
		perPage   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List machines",
		Long:  "List machine activations in the account, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			options := &keyline.MachineListOptions{
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
				LicenseID:       licenseID,
				OwnerID:         ownerID,
				HeartbeatStatus: keyline.HeartbeatStatus(strings.ToUpper(strings.ReplaceAll(heartbeat, "-", "_"))),
			}

			machines, err := client.Machines().List(ctx, options)
			if err != nil {
				return fmt.Errorf("failed to list machines: %w", err)
			}

			return outputMachines(machines)
		},
	}

	cmd.Flags().StringVar(&licenseID, "license", "", "filter by license ID")
	cmd.Flags().StringVar(&ownerID, "owner", "", "filter by owning user ID")
	cmd.Flags().StringVar(&heartbeat, "heartbeat", "", "filter by heartbeat status (alive, dead, not-started)")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func outputMachines(machines *keyline.ListResponse[keyline.Machine]) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(machines.Data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(machines.Data)
	default:
		return renderMachineTable(machines)
	}
}

func renderMachineTable(machines *keyline.ListResponse[keyline.Machine]) error {
	if len(machines.Data) == 0 {
		_, _ = os.Stdout.WriteString("No machines found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Fingerprint", "Name", "Platform", "Heartbeat", "License")

	for _, machine := range machines.Data {
		_ = table.Append(machine.ID, machine.Attributes.Fingerprint,
			machine.Attributes.Name, machine.Attributes.Platform,
			statusColor(string(machine.Attributes.HeartbeatStatus)),
			relationshipID(machine.Relationships.License))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	renderPageHint(machines)

	return nil
}

func newMachinesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get MACHINE_ID",
		Short: "Get machine details",
		Long:  "Display detailed information about a specific machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			machine, err := client.Machines().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get machine: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(machine)
			case constants.FormatYAML:
				return StandardYAMLRenderer(machine)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", machine.ID)
				_ = table.Append("Fingerprint", machine.Attributes.Fingerprint)
				_ = table.Append("Name", machine.Attributes.Name)
				_ = table.Append("Hostname", machine.Attributes.Hostname)
				_ = table.Append("Platform", machine.Attributes.Platform)
				_ = table.Append("Heartbeat", statusColor(string(machine.Attributes.HeartbeatStatus)))
				_ = table.Append("License", relationshipID(machine.Relationships.License))
				_ = table.Append("Created", formatDate(machine.Attributes.Created))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newMachinesActivateCommand() *cobra.Command {
	var (
		fingerprint string
		licenseID   string
		name        string
		hostname    string
		platform    string
		metadata    []string
	)

	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Activate a machine",
		Long:  "Register a machine activation against a license",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fingerprint == "" {
				return ErrFingerprintRequired
			}

			if licenseID == "" {
				return ErrLicenseRequired
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			metadataValues, err := parseMetadataFlags(metadata)
			if err != nil {
				return err
			}

			machine, err := client.Machines().Create(ctx, &keyline.MachineCreateRequest{
				Fingerprint: fingerprint,
				Name:        name,
				Hostname:    hostname,
				Platform:    platform,
				Metadata:    metadataValues,
				LicenseID:   licenseID,
			})
			if err != nil {
				return fmt.Errorf("failed to activate machine: %w", err)
			}

			fmt.Printf("Machine '%s' activated\n", machine.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&fingerprint, "fingerprint", "", "unique machine fingerprint (required)")
	cmd.Flags().StringVar(&licenseID, "license", "", "license to activate against (required)")
	cmd.Flags().StringVar(&name, "name", "", "human-readable machine name")
	cmd.Flags().StringVar(&hostname, "hostname", "", "machine hostname")
	cmd.Flags().StringVar(&platform, "platform", "", "machine platform")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "metadata key=value (repeatable)")

	return cmd
}

func newMachinesDeactivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate MACHINE_ID",
		Short: "Deactivate a machine",
		Long:  "Remove a machine activation and free its license slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Machines().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to deactivate machine: %w", err)
			}

			fmt.Printf("Machine '%s' deactivated\n", args[0])

			return nil
		},
	}
}

func newMachinesPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping MACHINE_ID",
		Short: "Send a machine heartbeat",
		Long:  "Record a heartbeat ping for a machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			machine, err := client.Machines().Ping(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to ping machine: %w", err)
			}

			fmt.Printf("Machine '%s' heartbeat recorded (%s)\n", machine.ID,
				statusColor(string(machine.Attributes.HeartbeatStatus)))

			return nil
		},
	}
}

func newMachinesResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset MACHINE_ID",
		Short: "Reset a machine heartbeat",
		Long:  "Clear the heartbeat state of a machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			machine, err := client.Machines().Reset(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to reset machine: %w", err)
			}

			fmt.Printf("Machine '%s' heartbeat reset\n", machine.ID)

			return nil
		},
	}
}
