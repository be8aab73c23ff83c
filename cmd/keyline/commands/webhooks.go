package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewWebhooksCommand creates the webhooks command group.
func NewWebhooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhooks",
		Aliases: []string{"webhook", "wh"},
		Short:   "Manage webhooks",
		Long:    "List, register, update, and remove webhook endpoints",
	}

	cmd.AddCommand(newWebhooksListCommand())
	cmd.AddCommand(newWebhooksGetCommand())
	cmd.AddCommand(newWebhooksCreateCommand())
	cmd.AddCommand(newWebhooksUpdateCommand())
	cmd.AddCommand(newWebhooksDeleteCommand())
	cmd.AddCommand(newWebhooksEventsCommand())

	return cmd
}

func newWebhooksListCommand() *cobra.Command {
	var (
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List webhooks",
		Long:  "List registered webhook endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			webhooks, err := client.Webhooks().List(ctx, &keyline.WebhookListOptions{
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to list webhooks: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(webhooks.Data)
			case constants.FormatYAML:
				return StandardYAMLRenderer(webhooks.Data)
			default:
				if len(webhooks.Data) == 0 {
					_, _ = os.Stdout.WriteString("No webhooks found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "URL", "Subscriptions", "Created")

				for _, webhook := range webhooks.Data {
					_ = table.Append(webhook.ID, webhook.Attributes.URL,
						formatSubscriptions(webhook.Attributes.Subscriptions),
						formatDate(webhook.Attributes.Created))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				renderPageHint(webhooks)

				return nil
			}
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

// formatSubscriptions compacts a subscription list for table cells. A
// wildcard-equivalent list collapses to "all events".
func formatSubscriptions(subscriptions []string) string {
	if len(subscriptions) == 0 || len(subscriptions) == len(keyline.AllEvents()) {
		return "all events"
	}

	const maxShown = 3
	if len(subscriptions) > maxShown {
		return fmt.Sprintf("%s, ... (%d total)",
			strings.Join(subscriptions[:maxShown], ", "), len(subscriptions))
	}

	return strings.Join(subscriptions, ", ")
}

func newWebhooksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get WEBHOOK_ID",
		Short: "Get webhook details",
		Long:  "Display detailed information about a specific webhook endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			webhook, err := client.Webhooks().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get webhook: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(webhook)
			case constants.FormatYAML:
				return StandardYAMLRenderer(webhook)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", webhook.ID)
				_ = table.Append("URL", webhook.Attributes.URL)
				_ = table.Append("Subscriptions", formatSubscriptions(webhook.Attributes.Subscriptions))

				if webhook.Attributes.SignatureAlgorithm != "" {
					_ = table.Append("Signature Algorithm", webhook.Attributes.SignatureAlgorithm)
				}

				if webhook.Attributes.APIVersion != "" {
					_ = table.Append("API Version", webhook.Attributes.APIVersion)
				}

				_ = table.Append("Created", formatDate(webhook.Attributes.Created))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newWebhooksCreateCommand() *cobra.Command {
	var (
		url           string
		subscriptions []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a webhook",
		Long:  "Register a new webhook endpoint for event delivery",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				return ErrURLRequired
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			webhook, err := client.Webhooks().Create(ctx, &keyline.WebhookCreateRequest{
				URL:           url,
				Subscriptions: subscriptions,
			})
			if err != nil {
				return fmt.Errorf("failed to create webhook: %w", err)
			}

			fmt.Printf("Webhook '%s' registered for %s\n",
				webhook.ID, webhook.Attributes.URL)

			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "delivery endpoint URL (required)")
	cmd.Flags().StringSliceVar(&subscriptions, "events", nil,
		"event identifiers to subscribe to (default all, see 'webhooks events')")

	return cmd
}

func newWebhooksUpdateCommand() *cobra.Command {
	var (
		url           string
		subscriptions []string
	)

	cmd := &cobra.Command{
		Use:   "update WEBHOOK_ID",
		Short: "Update a webhook",
		Long:  "Update a webhook's URL or event subscriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := &keyline.WebhookUpdateRequest{}

			if cmd.Flags().Changed("url") {
				request.URL = &url
			}

			if cmd.Flags().Changed("events") {
				request.Subscriptions = subscriptions
			}

			webhook, err := client.Webhooks().Update(ctx, args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update webhook: %w", err)
			}

			fmt.Printf("Webhook '%s' updated\n", webhook.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "new delivery endpoint URL")
	cmd.Flags().StringSliceVar(&subscriptions, "events", nil, "replacement event subscriptions")

	return cmd
}

func newWebhooksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete WEBHOOK_ID",
		Short: "Delete a webhook",
		Long:  "Remove a webhook endpoint registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Webhooks().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete webhook: %w", err)
			}

			fmt.Printf("Webhook '%s' deleted\n", args[0])

			return nil
		},
	}
}

func newWebhooksEventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List subscribable events",
		Long:  "Display the catalog of event identifiers webhooks can subscribe to",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			categories := client.Webhooks().EventsByCategory()

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(categories)
			case constants.FormatYAML:
				return StandardYAMLRenderer(categories)
			default:
				names := make([]string, 0, len(categories))
				for name := range categories {
					names = append(names, name)
				}

				sort.Strings(names)

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Category", "Events")

				for _, name := range names {
					_ = table.Append(name, strings.Join(categories[name], "\n"))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}
