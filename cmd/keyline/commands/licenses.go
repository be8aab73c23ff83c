package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewLicensesCommand creates the licenses command group.
func NewLicensesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "licenses",
		Aliases: []string{"license", "lic"},
		Short:   "Manage licenses",
		Long:    "List, create, validate, and manage licenses",
	}

	cmd.AddCommand(newLicensesListCommand())
	cmd.AddCommand(newLicensesGetCommand())
	cmd.AddCommand(newLicensesCreateCommand())
	cmd.AddCommand(newLicensesUpdateCommand())
	cmd.AddCommand(newLicensesDeleteCommand())
	cmd.AddCommand(newLicensesValidateCommand())
	cmd.AddCommand(newLicensesSuspendCommand())
	cmd.AddCommand(newLicensesReinstateCommand())
	cmd.AddCommand(newLicensesRenewCommand())
	cmd.AddCommand(newLicensesCheckInCommand())
	cmd.AddCommand(newLicensesRevokeCommand())
	cmd.AddCommand(newLicensesListEntitlementsCommand())
	cmd.AddCommand(newLicensesAttachEntitlementsCommand())
	cmd.AddCommand(newLicensesDetachEntitlementsCommand())

	return cmd
}

func newLicensesListCommand() *cobra.Command {
	var (
		status    string
		policyID  string
		ownerID   string
		userID    string
		groupID   string
		product   string
		suspended string
		metadata  []string
		include   []string
		page      int
		perPage   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List licenses",
		Long:  "List licenses in the account, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			metadataFilter, err := parseMetadataFlags(metadata)
			if err != nil {
				return err
			}

			suspendedFilter, err := parseBoolFlag(suspended)
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			options := &keyline.LicenseListOptions{
				ListOptions: keyline.ListOptions{
					Page:    keyline.PageOptions{Size: perPage, Number: page},
					Include: include,
				},
				Status:    keyline.LicenseStatus(strings.ToUpper(status)),
				PolicyID:  policyID,
				OwnerID:   ownerID,
				UserID:    userID,
				GroupID:   groupID,
				ProductID: product,
				Suspended: suspendedFilter,
				Metadata:  metadataFilter,
			}

			licenses, err := client.Licenses().List(ctx, options)
			if err != nil {
				return fmt.Errorf("failed to list licenses: %w", err)
			}

			return outputLicenses(licenses)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, inactive, expiring, expired, suspended, banned)")
	cmd.Flags().StringVar(&policyID, "policy", "", "filter by policy ID")
	cmd.Flags().StringVar(&ownerID, "owner", "", "filter by owning user ID")
	cmd.Flags().StringVar(&userID, "user", "", "filter by licensee user ID")
	cmd.Flags().StringVar(&groupID, "group", "", "filter by group ID")
	cmd.Flags().StringVar(&product, "product", "", "filter by product ID")
	cmd.Flags().StringVar(&suspended, "suspended", "", "filter by suspension state (true or false)")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "filter by metadata key=value (repeatable)")
	cmd.Flags().StringSliceVar(&include, "include", nil, "sideload related resources (policy, owner, group)")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func outputLicenses(licenses *keyline.ListResponse[keyline.License]) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(licenses.Data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(licenses.Data)
	default:
		return renderLicenseTable(licenses)
	}
}

func renderLicenseTable(licenses *keyline.ListResponse[keyline.License]) error {
	if len(licenses.Data) == 0 {
		_, _ = os.Stdout.WriteString("No licenses found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Status", "Expiry", "Uses", "Created")

	for _, license := range licenses.Data {
		uses := fmt.Sprintf("%d", license.Attributes.Uses)
		if license.Attributes.MaxUses != nil {
			uses = fmt.Sprintf("%d/%d", license.Attributes.Uses, *license.Attributes.MaxUses)
		}

		_ = table.Append(license.ID, license.Attributes.Name,
			statusColor(string(license.Attributes.Status)),
			formatExpiry(license.Attributes.Expiry),
			uses,
			formatDate(license.Attributes.Created))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	renderPageHint(licenses)

	return nil
}

func newLicensesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LICENSE_ID",
		Short: "Get license details",
		Long:  "Display detailed information about a specific license",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			license, err := client.Licenses().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get license: %w", err)
			}

			return outputLicenseDetails(license)
		},
	}
}

func outputLicenseDetails(license *keyline.License) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(license)
	case constants.FormatYAML:
		return StandardYAMLRenderer(license)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", license.ID)
		_ = table.Append("Name", license.Attributes.Name)
		_ = table.Append("Key", license.Attributes.Key)
		_ = table.Append("Status", statusColor(string(license.Attributes.Status)))
		_ = table.Append("Expiry", formatExpiry(license.Attributes.Expiry))
		_ = table.Append("Uses", fmt.Sprintf("%d", license.Attributes.Uses))
		_ = table.Append("Policy", relationshipID(license.Relationships.Policy))
		_ = table.Append("Created", formatDate(license.Attributes.Created))
		_ = table.Append("Updated", formatDate(license.Attributes.Updated))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func newLicensesCreateCommand() *cobra.Command {
	var (
		policyID    string
		name        string
		key         string
		ownerID     string
		groupID     string
		expiry      string
		maxMachines int
		maxUses     int
		metadata    []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a license",
		Long:  "Issue a new license implementing a policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if policyID == "" {
				return ErrPolicyRequired
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

			request := &keyline.LicenseCreateRequest{
				Name:     name,
				Key:      key,
				PolicyID: policyID,
				OwnerID:  ownerID,
				GroupID:  groupID,
				Metadata: metadataValues,
			}

			if expiry != "" {
				t, err := time.Parse(time.RFC3339, expiry)
				if err != nil {
					return fmt.Errorf("invalid expiry: %w", err)
				}

				request.Expiry = &t
			}

			if cmd.Flags().Changed("max-machines") {
				request.MaxMachines = &maxMachines
			}

			if cmd.Flags().Changed("max-uses") {
				request.MaxUses = &maxUses
			}

			license, err := client.Licenses().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to create license: %w", err)
			}

			fmt.Printf("License '%s' created\n", licenseLabel(license))
			fmt.Printf("Key: %s\n", license.Attributes.Key)

			return nil
		},
	}

	cmd.Flags().StringVar(&policyID, "policy", "", "policy the license implements (required)")
	cmd.Flags().StringVar(&name, "name", "", "human-readable license name")
	cmd.Flags().StringVar(&key, "key", "", "pre-generated key (server generates one when omitted)")
	cmd.Flags().StringVar(&ownerID, "owner", "", "owning user ID")
	cmd.Flags().StringVar(&groupID, "group", "", "group ID")
	cmd.Flags().StringVar(&expiry, "expiry", "", "expiry timestamp (RFC3339)")
	cmd.Flags().IntVar(&maxMachines, "max-machines", 0, "machine activation limit")
	cmd.Flags().IntVar(&maxUses, "max-uses", 0, "usage count limit")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "metadata key=value (repeatable)")

	return cmd
}

func newLicensesUpdateCommand() *cobra.Command {
	var (
		name        string
		expiry      string
		maxMachines int
		maxUses     int
		metadata    []string
	)

	cmd := &cobra.Command{
		Use:   "update LICENSE_ID",
		Short: "Update a license",
		Long:  "Update a license's name, expiry, limits, or metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := &keyline.LicenseUpdateRequest{}

			if cmd.Flags().Changed("name") {
				request.Name = &name
			}

			if expiry != "" {
				t, err := time.Parse(time.RFC3339, expiry)
				if err != nil {
					return fmt.Errorf("invalid expiry: %w", err)
				}

				request.Expiry = &t
			}

			if cmd.Flags().Changed("max-machines") {
				request.MaxMachines = &maxMachines
			}

			if cmd.Flags().Changed("max-uses") {
				request.MaxUses = &maxUses
			}

			if len(metadata) > 0 {
				metadataValues, err := parseMetadataFlags(metadata)
				if err != nil {
					return err
				}

				request.Metadata = metadataValues
			}

			license, err := client.Licenses().Update(ctx, args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update license: %w", err)
			}

			fmt.Printf("License '%s' updated\n", licenseLabel(license))

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new license name")
	cmd.Flags().StringVar(&expiry, "expiry", "", "new expiry timestamp (RFC3339)")
	cmd.Flags().IntVar(&maxMachines, "max-machines", 0, "new machine activation limit")
	cmd.Flags().IntVar(&maxUses, "max-uses", 0, "new usage count limit")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "metadata key=value (repeatable)")

	return cmd
}

func newLicensesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete LICENSE_ID",
		Short: "Delete a license",
		Long:  "Permanently delete a license and detach its machines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really delete license '%s'? (y/N): ", args[0])

				var response string

				_, _ = fmt.Scanln(&response)

				if response != "y" && response != "Y" {
					fmt.Println("Cancelled")

					return nil
				}
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Licenses().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete license: %w", err)
			}

			fmt.Printf("License '%s' deleted\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func newLicensesValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate LICENSE_ID",
		Short: "Validate a license",
		Long:  "Run a validation check and report the verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			validation, err := client.Licenses().Validate(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to validate license: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(validation)
			case constants.FormatYAML:
				return StandardYAMLRenderer(validation)
			default:
				verdict := "INVALID"
				if validation.Valid {
					verdict = "VALID"
				}

				fmt.Printf("%s (%s)\n", statusColor(verdict), validation.Code)

				if validation.Detail != "" {
					fmt.Println(validation.Detail)
				}

				return nil
			}
		},
	}
}

func newLicensesSuspendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suspend LICENSE_ID",
		Short: "Suspend a license",
		Long:  "Temporarily disable validation for a license",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			license, err := client.Licenses().Suspend(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to suspend license: %w", err)
			}

			fmt.Printf("License '%s' suspended\n", licenseLabel(license))

			return nil
		},
	}
}

func newLicensesReinstateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reinstate LICENSE_ID",
		Short: "Reinstate a suspended license",
		Long:  "Lift a suspension and allow validation again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			license, err := client.Licenses().Reinstate(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to reinstate license: %w", err)
			}

			fmt.Printf("License '%s' reinstated\n", licenseLabel(license))

			return nil
		},
	}
}

func newLicensesRenewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "renew LICENSE_ID",
		Short: "Renew a license",
		Long:  "Extend the license expiry by its policy duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			license, err := client.Licenses().Renew(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to renew license: %w", err)
			}

			fmt.Printf("License '%s' renewed until %s\n", licenseLabel(license),
				formatExpiry(license.Attributes.Expiry))

			return nil
		},
	}
}

func newLicensesCheckInCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-in LICENSE_ID",
		Short: "Check in a license",
		Long:  "Record a check-in and reset the check-in deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			license, err := client.Licenses().CheckIn(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to check in license: %w", err)
			}

			fmt.Printf("License '%s' checked in\n", licenseLabel(license))

			if license.Attributes.NextCheckIn != nil {
				fmt.Printf("Next check-in due %s\n", formatDate(*license.Attributes.NextCheckIn))
			}

			return nil
		},
	}
}

func newLicensesRevokeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke LICENSE_ID",
		Short: "Revoke a license",
		Long:  "Permanently revoke a license. Revocation cannot be undone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Licenses().Revoke(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to revoke license: %w", err)
			}

			fmt.Printf("License '%s' revoked\n", args[0])

			return nil
		},
	}
}

func newLicensesListEntitlementsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-entitlements LICENSE_ID",
		Short: "List license entitlements",
		Long:  "List the entitlements attached to a license",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			entitlements, err := client.Licenses().ListEntitlements(ctx, args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to list entitlements: %w", err)
			}

			return outputEntitlements(entitlements)
		},
	}
}

func newLicensesAttachEntitlementsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attach-entitlements LICENSE_ID ENTITLEMENT_ID...",
		Short: "Attach entitlements to a license",
		Long:  "Attach one or more entitlements to a license",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Licenses().AttachEntitlements(ctx, args[0], args[1:])
			if err != nil {
				return fmt.Errorf("failed to attach entitlements: %w", err)
			}

			fmt.Printf("Attached %d entitlement(s) to license '%s'\n", len(args)-1, args[0])

			return nil
		},
	}
}

func newLicensesDetachEntitlementsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detach-entitlements LICENSE_ID ENTITLEMENT_ID...",
		Short: "Detach entitlements from a license",
		Long:  "Detach one or more entitlements from a license",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Licenses().DetachEntitlements(ctx, args[0], args[1:])
			if err != nil {
				return fmt.Errorf("failed to detach entitlements: %w", err)
			}

			fmt.Printf("Detached %d entitlement(s) from license '%s'\n", len(args)-1, args[0])

			return nil
		},
	}
}

// licenseLabel prefers the name for messages, falling back to the ID.
func licenseLabel(license *keyline.License) string {
	if license.Attributes.Name != "" {
		return license.Attributes.Name
	}

	return license.ID
}
