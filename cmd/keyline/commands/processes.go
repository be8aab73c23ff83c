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

// NewProcessesCommand creates the processes command group.
func NewProcessesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "processes",
		Aliases: []string{"process", "proc"},
		Short:   "Manage processes",
		Long:    "List, spawn, ping, and kill machine process leases",
	}

	cmd.AddCommand(newProcessesListCommand())
	cmd.AddCommand(newProcessesGetCommand())
	cmd.AddCommand(newProcessesSpawnCommand())
	cmd.AddCommand(newProcessesPingCommand())
	cmd.AddCommand(newProcessesKillCommand())

	return cmd
}

func newProcessesListCommand() *cobra.Command {
	var (
		machine string
		license string
		status  string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processes",
		Long:  "List process leases, optionally filtered by machine, license, or status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			options := &keyline.ProcessListOptions{
				MachineID: machine,
				LicenseID: license,
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
			}

			if status != "" {
				options.Status = keyline.ProcessStatus(strings.ToUpper(status))
			}

			processes, err := client.Processes().List(ctx, options)
			if err != nil {
				return fmt.Errorf("failed to list processes: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(processes.Data)
			case constants.FormatYAML:
				return StandardYAMLRenderer(processes.Data)
			default:
				if len(processes.Data) == 0 {
					_, _ = os.Stdout.WriteString("No processes found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "PID", "Status", "Last Heartbeat", "Machine")

				for _, process := range processes.Data {
					lastHeartbeat := constants.NotAvailable
					if process.Attributes.LastHeartbeat != nil {
						lastHeartbeat = formatDateTime(*process.Attributes.LastHeartbeat)
					}

					_ = table.Append(process.ID, process.Attributes.Pid,
						statusColor(string(process.Attributes.Status)),
						lastHeartbeat, relationshipID(process.Relationships.Machine))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				renderPageHint(processes)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&machine, "machine", "", "filter by machine ID")
	cmd.Flags().StringVar(&license, "license", "", "filter by license ID")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (alive, dead)")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func newProcessesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROCESS_ID",
		Short: "Get process details",
		Long:  "Display detailed information about a specific process lease",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			process, err := client.Processes().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get process: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(process)
			case constants.FormatYAML:
				return StandardYAMLRenderer(process)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", process.ID)
				_ = table.Append("PID", process.Attributes.Pid)
				_ = table.Append("Status", statusColor(string(process.Attributes.Status)))

				if process.Attributes.Interval != nil {
					_ = table.Append("Interval", fmt.Sprintf("%ds", *process.Attributes.Interval))
				}

				if process.Attributes.LastHeartbeat != nil {
					_ = table.Append("Last Heartbeat", formatDateTime(*process.Attributes.LastHeartbeat))
				}

				if process.Attributes.NextHeartbeat != nil {
					_ = table.Append("Next Heartbeat", formatDateTime(*process.Attributes.NextHeartbeat))
				}

				_ = table.Append("Machine", relationshipID(process.Relationships.Machine))
				_ = table.Append("License", relationshipID(process.Relationships.License))
				_ = table.Append("Created", formatDate(process.Attributes.Created))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newProcessesSpawnCommand() *cobra.Command {
	var (
		pid           string
		machine       string
		metadataFlags []string
	)

	cmd := &cobra.Command{
		Use:   "spawn",
		Short: "Spawn a process lease",
		Long:  "Register a running process against an activated machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pid == "" {
				return ErrPidRequired
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

			process, err := client.Processes().Create(ctx, &keyline.ProcessCreateRequest{
				Pid:       pid,
				MachineID: machine,
				Metadata:  metadata,
			})
			if err != nil {
				return fmt.Errorf("failed to spawn process: %w", err)
			}

			fmt.Printf("Process '%s' spawned (pid %s)\n", process.ID, process.Attributes.Pid)

			return nil
		},
	}

	cmd.Flags().StringVar(&pid, "pid", "", "operating system process ID (required)")
	cmd.Flags().StringVar(&machine, "machine", "", "machine ID to bind to (required)")
	cmd.Flags().StringArrayVar(&metadataFlags, "metadata", nil, "metadata key=value pairs")

	return cmd
}

func newProcessesPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping PROCESS_ID",
		Short: "Send a process heartbeat",
		Long:  "Reset the heartbeat window for a process lease",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			process, err := client.Processes().Ping(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to ping process: %w", err)
			}

			next := constants.NotAvailable
			if process.Attributes.NextHeartbeat != nil {
				next = formatDateTime(*process.Attributes.NextHeartbeat)
			}

			fmt.Printf("Process '%s' is %s, next heartbeat due %s\n",
				process.ID, statusColor(string(process.Attributes.Status)), next)

			return nil
		},
	}
}

func newProcessesKillCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kill PROCESS_ID",
		Short: "Kill a process lease",
		Long:  "Release a process lease, freeing its concurrency slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Processes().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to kill process: %w", err)
			}

			fmt.Printf("Process '%s' killed\n", args[0])

			return nil
		},
	}
}
