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

// NewPoliciesCommand creates the policies command group.
func NewPoliciesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "policies",
		Aliases: []string{"policy"},
		Short:   "Manage policies",
		Long:    "List, create, update, and delete license policies",
	}

	cmd.AddCommand(newPoliciesListCommand())
	cmd.AddCommand(newPoliciesGetCommand())
	cmd.AddCommand(newPoliciesCreateCommand())
	cmd.AddCommand(newPoliciesUpdateCommand())
	cmd.AddCommand(newPoliciesDeleteCommand())

	return cmd
}

func newPoliciesListCommand() *cobra.Command {
	var (
		productID string
		page      int
		perPage   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List policies",
		Long:  "List license policies in the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			policies, err := client.Policies().List(ctx, &keyline.PolicyListOptions{
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
				ProductID: productID,
			})
			if err != nil {
				return fmt.Errorf("failed to list policies: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(policies.Data)
			case constants.FormatYAML:
				return StandardYAMLRenderer(policies.Data)
			default:
				if len(policies.Data) == 0 {
					_, _ = os.Stdout.WriteString("No policies found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Duration", "Floating", "Max Machines", "Product")

				for _, policy := range policies.Data {
					_ = table.Append(policy.ID, policy.Attributes.Name,
						formatPolicyDuration(policy.Attributes.Duration),
						fmt.Sprintf("%t", policy.Attributes.Floating),
						formatIntPtr(policy.Attributes.MaxMachines),
						relationshipID(policy.Relationships.Product))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				renderPageHint(policies)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&productID, "product", "", "filter by product ID")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func newPoliciesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get POLICY_ID",
		Short: "Get policy details",
		Long:  "Display detailed information about a specific policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			policy, err := client.Policies().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get policy: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(policy)
			case constants.FormatYAML:
				return StandardYAMLRenderer(policy)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", policy.ID)
				_ = table.Append("Name", policy.Attributes.Name)
				_ = table.Append("Duration", formatPolicyDuration(policy.Attributes.Duration))
				_ = table.Append("Scheme", string(policy.Attributes.Scheme))
				_ = table.Append("Floating", fmt.Sprintf("%t", policy.Attributes.Floating))
				_ = table.Append("Strict", fmt.Sprintf("%t", policy.Attributes.Strict))
				_ = table.Append("Max Machines", formatIntPtr(policy.Attributes.MaxMachines))
				_ = table.Append("Require Heartbeat", fmt.Sprintf("%t", policy.Attributes.RequireHeartbeat))
				_ = table.Append("Product", relationshipID(policy.Relationships.Product))
				_ = table.Append("Created", formatDate(policy.Attributes.Created))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newPoliciesCreateCommand() *cobra.Command {
	var (
		name        string
		productID   string
		duration    int64
		maxMachines int
		floating    bool
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a policy",
		Long:  "Create a new license policy for a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return ErrNameRequired
			}

			if productID == "" {
				return ErrProductRequired
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := &keyline.PolicyCreateRequest{
				Name:      name,
				ProductID: productID,
			}

			if cmd.Flags().Changed("duration") {
				request.Duration = &duration
			}

			if cmd.Flags().Changed("max-machines") {
				request.MaxMachines = &maxMachines
			}

			if cmd.Flags().Changed("floating") {
				request.Floating = &floating
			}

			if cmd.Flags().Changed("strict") {
				request.Strict = &strict
			}

			policy, err := client.Policies().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to create policy: %w", err)
			}

			fmt.Printf("Policy '%s' created\n", policy.Attributes.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "policy name (required)")
	cmd.Flags().StringVar(&productID, "product", "", "product the policy belongs to (required)")
	cmd.Flags().Int64Var(&duration, "duration", 0, "license lifetime in seconds")
	cmd.Flags().IntVar(&maxMachines, "max-machines", 0, "machine activation limit")
	cmd.Flags().BoolVar(&floating, "floating", false, "allow activations to float between machines")
	cmd.Flags().BoolVar(&strict, "strict", false, "enforce limits strictly during validation")

	return cmd
}

func newPoliciesUpdateCommand() *cobra.Command {
	var (
		name        string
		duration    int64
		maxMachines int
		floating    bool
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "update POLICY_ID",
		Short: "Update a policy",
		Long:  "Update a policy's name, duration, or limits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := &keyline.PolicyUpdateRequest{}

			if cmd.Flags().Changed("name") {
				request.Name = &name
			}

			if cmd.Flags().Changed("duration") {
				request.Duration = &duration
			}

			if cmd.Flags().Changed("max-machines") {
				request.MaxMachines = &maxMachines
			}

			if cmd.Flags().Changed("floating") {
				request.Floating = &floating
			}

			if cmd.Flags().Changed("strict") {
				request.Strict = &strict
			}

			policy, err := client.Policies().Update(ctx, args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update policy: %w", err)
			}

			fmt.Printf("Policy '%s' updated\n", policy.Attributes.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new policy name")
	cmd.Flags().Int64Var(&duration, "duration", 0, "new license lifetime in seconds")
	cmd.Flags().IntVar(&maxMachines, "max-machines", 0, "new machine activation limit")
	cmd.Flags().BoolVar(&floating, "floating", false, "allow activations to float between machines")
	cmd.Flags().BoolVar(&strict, "strict", false, "enforce limits strictly during validation")

	return cmd
}

func newPoliciesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete POLICY_ID",
		Short: "Delete a policy",
		Long:  "Permanently delete a policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Policies().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete policy: %w", err)
			}

			fmt.Printf("Policy '%s' deleted\n", args[0])

			return nil
		},
	}
}

// formatPolicyDuration renders a policy duration in seconds, where nil
// means licenses never expire.
func formatPolicyDuration(duration *int64) string {
	if duration == nil {
		return "perpetual"
	}

	return fmt.Sprintf("%ds", *duration)
}

// formatIntPtr renders an optional limit, where nil means unlimited.
func formatIntPtr(value *int) string {
	if value == nil {
		return "unlimited"
	}

	return fmt.Sprintf("%d", *value)
}
