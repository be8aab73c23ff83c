package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRequestLogsCommand creates the request-logs command group.
func NewRequestLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "request-logs",
		Aliases: []string{"request-log", "reqlog"},
		Short:   "Inspect request logs",
		Long:    "List and inspect server-side API request records",
	}

	cmd.AddCommand(newRequestLogsListCommand())
	cmd.AddCommand(newRequestLogsGetCommand())

	return cmd
}

func newRequestLogsListCommand() *cobra.Command {
	var (
		method  string
		status  string
		ip      string
		since   string
		until   string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List request logs",
		Long:  "List API request records, optionally filtered by method, status, IP, or date window",
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := parseDateWindow(since, until)
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			logs, err := client.RequestLogs().List(ctx, &keyline.RequestLogListOptions{
				Created: window,
				Method:  method,
				Status:  status,
				IP:      ip,
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to list request logs: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(logs.Data)
			case constants.FormatYAML:
				return StandardYAMLRenderer(logs.Data)
			default:
				if len(logs.Data) == 0 {
					_, _ = os.Stdout.WriteString("No request logs found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Method", "URL", "Status", "IP", "Created")

				for _, log := range logs.Data {
					_ = table.Append(log.ID, log.Attributes.Method, log.Attributes.URL,
						log.Attributes.Status, log.Attributes.IP,
						formatDateTime(log.Attributes.Created))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				renderPageHint(logs)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "filter by HTTP method")
	cmd.Flags().StringVar(&status, "status", "", "filter by response status code")
	cmd.Flags().StringVar(&ip, "ip", "", "filter by client IP")
	cmd.Flags().StringVar(&since, "since", "", "window start (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "window end (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.StandardPageSize, "results per page")

	return cmd
}

func newRequestLogsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LOG_ID",
		Short: "Get request log details",
		Long:  "Display one API request record including request and response bodies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			log, err := client.RequestLogs().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get request log: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(log)
			case constants.FormatYAML:
				return StandardYAMLRenderer(log)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", log.ID)
				_ = table.Append("Method", log.Attributes.Method)
				_ = table.Append("URL", log.Attributes.URL)
				_ = table.Append("Status", log.Attributes.Status)
				_ = table.Append("IP", log.Attributes.IP)
				_ = table.Append("User Agent", log.Attributes.UserAgent)
				_ = table.Append("Created", formatDateTime(log.Attributes.Created))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				if log.Attributes.RequestBody != "" {
					fmt.Printf("\nRequest body:\n%s\n", log.Attributes.RequestBody)
				}

				if log.Attributes.ResponseBody != "" {
					fmt.Printf("\nResponse body:\n%s\n", log.Attributes.ResponseBody)
				}

				return nil
			}
		},
	}
}

// NewEventLogsCommand creates the event-logs command group.
func NewEventLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "event-logs",
		Aliases: []string{"event-log", "events"},
		Short:   "Inspect event logs",
		Long:    "List and inspect emitted event records",
	}

	cmd.AddCommand(newEventLogsListCommand())
	cmd.AddCommand(newEventLogsGetCommand())

	return cmd
}

func newEventLogsListCommand() *cobra.Command {
	var (
		event     string
		resource  string
		whodunnit string
		since     string
		until     string
		page      int
		perPage   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List event logs",
		Long:  "List emitted event records, optionally filtered by event, resource, actor, or date window",
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := parseDateWindow(since, until)
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			logs, err := client.EventLogs().List(ctx, &keyline.EventLogListOptions{
				Created:     window,
				Event:       event,
				ResourceID:  resource,
				WhodunnitID: whodunnit,
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to list event logs: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(logs.Data)
			case constants.FormatYAML:
				return StandardYAMLRenderer(logs.Data)
			default:
				if len(logs.Data) == 0 {
					_, _ = os.Stdout.WriteString("No event logs found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Event", "Resource", "Whodunnit", "Created")

				for _, log := range logs.Data {
					_ = table.Append(log.ID, log.Attributes.Event,
						relationshipID(log.Relationships.Resource),
						relationshipID(log.Relationships.Whodunnit),
						formatDateTime(log.Attributes.Created))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				renderPageHint(logs)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&event, "event", "", "filter by event identifier, e.g. license.created")
	cmd.Flags().StringVar(&resource, "resource", "", "filter by affected resource ID")
	cmd.Flags().StringVar(&whodunnit, "whodunnit", "", "filter by acting user ID")
	cmd.Flags().StringVar(&since, "since", "", "window start (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "window end (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.StandardPageSize, "results per page")

	return cmd
}

func newEventLogsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LOG_ID",
		Short: "Get event log details",
		Long:  "Display one emitted event record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			log, err := client.EventLogs().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get event log: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(log)
			case constants.FormatYAML:
				return StandardYAMLRenderer(log)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", log.ID)
				_ = table.Append("Event", log.Attributes.Event)
				_ = table.Append("Resource", relationshipID(log.Relationships.Resource))
				_ = table.Append("Whodunnit", relationshipID(log.Relationships.Whodunnit))
				_ = table.Append("Request Log", relationshipID(log.Relationships.RequestLog))
				_ = table.Append("Created", formatDateTime(log.Attributes.Created))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

// parseDateWindow builds a DateWindow from --since/--until flag values.
// Accepts RFC3339 timestamps or bare dates.
func parseDateWindow(since, until string) (keyline.DateWindow, error) {
	var window keyline.DateWindow

	if since != "" {
		start, err := parseFlexibleTime(since)
		if err != nil {
			return window, fmt.Errorf("invalid --since value: %w", err)
		}

		window.Start = start
	}

	if until != "" {
		end, err := parseFlexibleTime(until)
		if err != nil {
			return window, fmt.Errorf("invalid --until value: %w", err)
		}

		window.End = end
	}

	return window, nil
}

func parseFlexibleTime(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}

	return time.Parse("2006-01-02", value)
}
