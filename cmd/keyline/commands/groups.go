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

// NewGroupsCommand creates the groups command group.
func NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group"},
		Short:   "Manage groups",
		Long:    "List, create, update, and delete user groups",
	}

	cmd.AddCommand(newGroupsListCommand())
	cmd.AddCommand(newGroupsGetCommand())
	cmd.AddCommand(newGroupsCreateCommand())
	cmd.AddCommand(newGroupsUpdateCommand())
	cmd.AddCommand(newGroupsDeleteCommand())

	return cmd
}

func newGroupsListCommand() *cobra.Command {
	var (
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Long:  "List user groups in the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			groups, err := client.Groups().List(ctx, &keyline.GroupListOptions{
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to list groups: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(groups.Data)
			case constants.FormatYAML:
				return StandardYAMLRenderer(groups.Data)
			default:
				if len(groups.Data) == 0 {
					_, _ = os.Stdout.WriteString("No groups found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Max Users", "Max Licenses", "Max Machines", "Created")

				for _, group := range groups.Data {
					_ = table.Append(group.ID, group.Attributes.Name,
						formatIntPtr(group.Attributes.MaxUsers),
						formatIntPtr(group.Attributes.MaxLicenses),
						formatIntPtr(group.Attributes.MaxMachines),
						formatDate(group.Attributes.Created))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				renderPageHint(groups)

				return nil
			}
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func newGroupsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get GROUP_ID",
		Short: "Get group details",
		Long:  "Display detailed information about a specific group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			group, err := client.Groups().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get group: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(group)
			case constants.FormatYAML:
				return StandardYAMLRenderer(group)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", group.ID)
				_ = table.Append("Name", group.Attributes.Name)
				_ = table.Append("Max Users", formatIntPtr(group.Attributes.MaxUsers))
				_ = table.Append("Max Licenses", formatIntPtr(group.Attributes.MaxLicenses))
				_ = table.Append("Max Machines", formatIntPtr(group.Attributes.MaxMachines))
				_ = table.Append("Created", formatDate(group.Attributes.Created))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newGroupsCreateCommand() *cobra.Command {
	var (
		name        string
		maxUsers    int
		maxLicenses int
		maxMachines int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		Long:  "Create a new user group in the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return ErrNameRequired
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := &keyline.GroupCreateRequest{Name: name}

			if cmd.Flags().Changed("max-users") {
				request.MaxUsers = &maxUsers
			}

			if cmd.Flags().Changed("max-licenses") {
				request.MaxLicenses = &maxLicenses
			}

			if cmd.Flags().Changed("max-machines") {
				request.MaxMachines = &maxMachines
			}

			group, err := client.Groups().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to create group: %w", err)
			}

			fmt.Printf("Group '%s' created\n", group.Attributes.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "group name (required)")
	cmd.Flags().IntVar(&maxUsers, "max-users", 0, "user membership limit")
	cmd.Flags().IntVar(&maxLicenses, "max-licenses", 0, "license limit")
	cmd.Flags().IntVar(&maxMachines, "max-machines", 0, "machine limit")

	return cmd
}

func newGroupsUpdateCommand() *cobra.Command {
	var (
		name        string
		maxUsers    int
		maxLicenses int
		maxMachines int
	)

	cmd := &cobra.Command{
		Use:   "update GROUP_ID",
		Short: "Update a group",
		Long:  "Update a group's name or limits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := &keyline.GroupUpdateRequest{}

			if cmd.Flags().Changed("name") {
				request.Name = &name
			}

			if cmd.Flags().Changed("max-users") {
				request.MaxUsers = &maxUsers
			}

			if cmd.Flags().Changed("max-licenses") {
				request.MaxLicenses = &maxLicenses
			}

			if cmd.Flags().Changed("max-machines") {
				request.MaxMachines = &maxMachines
			}

			group, err := client.Groups().Update(ctx, args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update group: %w", err)
			}

			fmt.Printf("Group '%s' updated\n", group.Attributes.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new group name")
	cmd.Flags().IntVar(&maxUsers, "max-users", 0, "new user membership limit")
	cmd.Flags().IntVar(&maxLicenses, "max-licenses", 0, "new license limit")
	cmd.Flags().IntVar(&maxMachines, "max-machines", 0, "new machine limit")

	return cmd
}

func newGroupsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete GROUP_ID",
		Short: "Delete a group",
		Long:  "Permanently delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Groups().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete group: %w", err)
			}

			fmt.Printf("Group '%s' deleted\n", args[0])

			return nil
		},
	}
}
