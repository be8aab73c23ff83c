package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewAnalyticsCommand creates the analytics command group.
func NewAnalyticsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analytics",
		Aliases: []string{"stats"},
		Short:   "Account analytics",
		Long:    "Display account-level usage counts",
	}

	cmd.AddCommand(newAnalyticsCountCommand())

	return cmd
}

func newAnalyticsCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show dashboard counts",
		Long:  "Display active license, total license, user, and machine counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			counts := client.Analytics().Count(ctx)

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(counts)
			case constants.FormatYAML:
				return StandardYAMLRenderer(counts)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Metric", "Count")
				_ = table.Append("Active Licenses", strconv.Itoa(counts.ActiveLicenses))
				_ = table.Append("Total Licenses", strconv.Itoa(counts.TotalLicenses))
				_ = table.Append("Total Users", strconv.Itoa(counts.TotalUsers))
				_ = table.Append("Total Machines", strconv.Itoa(counts.TotalMachines))
				_ = table.Append("Active Licensed Users", strconv.Itoa(counts.ActiveLicensedUsers))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				if counts.Degraded {
					fmt.Println("Note: summary endpoint unavailable, counts derived from list endpoints")
				}

				return nil
			}
		},
	}
}
