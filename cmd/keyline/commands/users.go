package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List, create, and manage account users",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersUpdateCommand())
	cmd.AddCommand(newUsersUpdatePasswordCommand())
	cmd.AddCommand(newUsersDeleteCommand())
	cmd.AddCommand(newUsersBanCommand())
	cmd.AddCommand(newUsersUnbanCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var (
		status  string
		email   string
		groupID string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "List users in the account, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			options := &keyline.UserListOptions{
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
				Status:  keyline.UserStatus(strings.ToUpper(status)),
				Email:   email,
				GroupID: groupID,
			}

			users, err := client.Users().List(ctx, options)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return outputUsers(users)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, inactive, banned)")
	cmd.Flags().StringVar(&email, "email", "", "filter by email")
	cmd.Flags().StringVar(&groupID, "group", "", "filter by group ID")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func outputUsers(users *keyline.ListResponse[keyline.User]) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(users.Data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(users.Data)
	default:
		return renderUserTable(users)
	}
}

func renderUserTable(users *keyline.ListResponse[keyline.User]) error {
	if len(users.Data) == 0 {
		_, _ = os.Stdout.WriteString("No users found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Email", "Name", "Role", "Status", "Created")

	for _, user := range users.Data {
		_ = table.Append(user.ID, user.Attributes.Email, user.Attributes.FullName,
			string(user.Attributes.Role),
			statusColor(string(user.Attributes.Status)),
			formatDate(user.Attributes.Created))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	renderPageHint(users)

	return nil
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user details",
		Long:  "Display detailed information about a specific user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
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
				_ = table.Append("Group", relationshipID(user.Relationships.Group))
				_ = table.Append("Created", formatDate(user.Attributes.Created))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newUsersCreateCommand() *cobra.Command {
	var (
		email     string
		firstName string
		lastName  string
		role      string
		groupID   string
		metadata  []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Long:  "Create a new user in the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return ErrEmailRequired
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

			user, err := client.Users().Create(ctx, &keyline.UserCreateRequest{
				Email:     email,
				FirstName: firstName,
				LastName:  lastName,
				Role:      keyline.UserRole(role),
				Metadata:  metadataValues,
				GroupID:   groupID,
			})
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Printf("User '%s' created\n", user.Attributes.Email)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "user email (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&role, "role", "", "user role (user, admin, developer, support-agent)")
	cmd.Flags().StringVar(&groupID, "group", "", "group ID")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "metadata key=value (repeatable)")

	return cmd
}

func newUsersUpdateCommand() *cobra.Command {
	var (
		email     string
		firstName string
		lastName  string
		role      string
	)

	cmd := &cobra.Command{
		Use:   "update USER_ID",
		Short: "Update a user",
		Long:  "Update a user's profile or role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := &keyline.UserUpdateRequest{}

			if cmd.Flags().Changed("email") {
				request.Email = &email
			}

			if cmd.Flags().Changed("first-name") {
				request.FirstName = &firstName
			}

			if cmd.Flags().Changed("last-name") {
				request.LastName = &lastName
			}

			if cmd.Flags().Changed("role") {
				userRole := keyline.UserRole(role)
				request.Role = &userRole
			}

			user, err := client.Users().Update(ctx, args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}

			fmt.Printf("User '%s' updated\n", user.Attributes.Email)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "new last name")
	cmd.Flags().StringVar(&role, "role", "", "new role")

	return cmd
}

func newUsersUpdatePasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update-password USER_ID",
		Short: "Change a user's password",
		Long:  "Change a user's password through its dedicated action endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("Current password: ")

			currentBytes, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			fmt.Print("\nNew password: ")

			newBytes, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			fmt.Print("\nConfirm new password: ")

			confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			fmt.Println()

			if string(newBytes) != string(confirmBytes) {
				return constants.ErrPasswordMismatch
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().UpdatePassword(ctx, args[0], string(currentBytes), string(newBytes))
			if err != nil {
				if keyline.IsWrongPassword(err) {
					return fmt.Errorf("current password rejected: %w", err)
				}

				return fmt.Errorf("failed to update password: %w", err)
			}

			fmt.Printf("Password updated for '%s'\n", user.Attributes.Email)

			return nil
		},
	}
}

func newUsersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete USER_ID",
		Short: "Delete a user",
		Long:  "Permanently delete a user from the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Users().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete user: %w", err)
			}

			fmt.Printf("User '%s' deleted\n", args[0])

			return nil
		},
	}
}

func newUsersBanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ban USER_ID",
		Short: "Ban a user",
		Long:  "Ban a user from the account, blocking authentication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Ban(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to ban user: %w", err)
			}

			fmt.Printf("User '%s' banned\n", user.Attributes.Email)

			return nil
		},
	}
}

func newUsersUnbanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unban USER_ID",
		Short: "Unban a user",
		Long:  "Lift a ban and allow the user to authenticate again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Unban(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to unban user: %w", err)
			}

			fmt.Printf("User '%s' unbanned\n", user.Attributes.Email)

			return nil
		},
	}
}
