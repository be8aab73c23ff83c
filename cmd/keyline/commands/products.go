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

// NewProductsCommand creates the products command group.
func NewProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage products",
		Long:    "List, create, update, and delete products",
	}

	cmd.AddCommand(newProductsListCommand())
	cmd.AddCommand(newProductsGetCommand())
	cmd.AddCommand(newProductsCreateCommand())
	cmd.AddCommand(newProductsUpdateCommand())
	cmd.AddCommand(newProductsDeleteCommand())

	return cmd
}

func newProductsListCommand() *cobra.Command {
	var (
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Long:  "List products in the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			products, err := client.Products().List(ctx, &keyline.ProductListOptions{
				ListOptions: keyline.ListOptions{
					Page: keyline.PageOptions{Size: perPage, Number: page},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to list products: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(products.Data)
			case constants.FormatYAML:
				return StandardYAMLRenderer(products.Data)
			default:
				if len(products.Data) == 0 {
					_, _ = os.Stdout.WriteString("No products found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Code", "Distribution", "Created")

				for _, product := range products.Data {
					_ = table.Append(product.ID, product.Attributes.Name,
						product.Attributes.Code,
						string(product.Attributes.DistributionStrategy),
						formatDate(product.Attributes.Created))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				renderPageHint(products)

				return nil
			}
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func newProductsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PRODUCT_ID",
		Short: "Get product details",
		Long:  "Display detailed information about a specific product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			product, err := client.Products().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get product: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(product)
			case constants.FormatYAML:
				return StandardYAMLRenderer(product)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", product.ID)
				_ = table.Append("Name", product.Attributes.Name)
				_ = table.Append("Code", product.Attributes.Code)
				_ = table.Append("Distribution", string(product.Attributes.DistributionStrategy))
				_ = table.Append("URL", product.Attributes.URL)
				_ = table.Append("Created", formatDate(product.Attributes.Created))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newProductsCreateCommand() *cobra.Command {
	var (
		name         string
		code         string
		distribution string
		url          string
		platforms    []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Long:  "Create a new product in the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return ErrNameRequired
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			product, err := client.Products().Create(ctx, &keyline.ProductCreateRequest{
				Name:                 name,
				Code:                 code,
				DistributionStrategy: keyline.DistributionStrategy(distribution),
				URL:                  url,
				Platforms:            platforms,
			})
			if err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}

			fmt.Printf("Product '%s' created\n", product.Attributes.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&code, "code", "", "unique product code")
	cmd.Flags().StringVar(&distribution, "distribution", "", "distribution strategy (OPEN, CLOSED, LICENSED)")
	cmd.Flags().StringVar(&url, "url", "", "product home page")
	cmd.Flags().StringSliceVar(&platforms, "platform", nil, "supported platforms (repeatable)")

	return cmd
}

func newProductsUpdateCommand() *cobra.Command {
	var (
		name         string
		code         string
		distribution string
		url          string
	)

	cmd := &cobra.Command{
		Use:   "update PRODUCT_ID",
		Short: "Update a product",
		Long:  "Update a product's name, code, or distribution strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			request := &keyline.ProductUpdateRequest{}

			if cmd.Flags().Changed("name") {
				request.Name = &name
			}

			if cmd.Flags().Changed("code") {
				request.Code = &code
			}

			if cmd.Flags().Changed("distribution") {
				strategy := keyline.DistributionStrategy(distribution)
				request.DistributionStrategy = &strategy
			}

			if cmd.Flags().Changed("url") {
				request.URL = &url
			}

			product, err := client.Products().Update(ctx, args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}

			fmt.Printf("Product '%s' updated\n", product.Attributes.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new product name")
	cmd.Flags().StringVar(&code, "code", "", "new product code")
	cmd.Flags().StringVar(&distribution, "distribution", "", "new distribution strategy")
	cmd.Flags().StringVar(&url, "url", "", "new product home page")

	return cmd
}

func newProductsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PRODUCT_ID",
		Short: "Delete a product",
		Long:  "Permanently delete a product and its policies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Products().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete product: %w", err)
			}

			fmt.Printf("Product '%s' deleted\n", args[0])

			return nil
		},
	}
}
