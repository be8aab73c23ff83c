package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keyline-io/keyline-go/internal/http"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// ProductsClient implements keyline.ProductsClient.
type ProductsClient struct {
	httpClient *http.Client
	accountID  string
}

// NewProductsClient creates a new products client.
func NewProductsClient(httpClient *http.Client, accountID string) *ProductsClient {
	return &ProductsClient{httpClient: httpClient, accountID: accountID}
}

// Create implements keyline.ProductsClient.Create.
func (c *ProductsClient) Create(ctx context.Context, request *keyline.ProductCreateRequest) (*keyline.Product, error) {
	document := newDocument(keyline.TypeProducts, request)
	path := fmt.Sprintf("/v1/accounts/%s/products", c.accountID)

	resp, err := c.httpClient.Post(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	var doc keyline.Document[keyline.Product]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing product response: %w", err)
	}

	return &doc.Data, nil
}

// Get implements keyline.ProductsClient.Get.
func (c *ProductsClient) Get(ctx context.Context, productID string) (*keyline.Product, error) {
	path := fmt.Sprintf("/v1/accounts/%s/products/%s", c.accountID, productID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}

	var doc keyline.Document[keyline.Product]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing product response: %w", err)
	}

	return &doc.Data, nil
}

// List implements keyline.ProductsClient.List.
func (c *ProductsClient) List(ctx context.Context, options *keyline.ProductListOptions) (*keyline.ListResponse[keyline.Product], error) {
	query := ""
	if options != nil {
		query = options.EncodeQuery()
	}

	path := fmt.Sprintf("/v1/accounts/%s/products", c.accountID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	var result keyline.ListResponse[keyline.Product]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing products list response: %w", err)
	}

	return &result, nil
}

// Update implements keyline.ProductsClient.Update.
func (c *ProductsClient) Update(ctx context.Context, productID string, request *keyline.ProductUpdateRequest) (*keyline.Product, error) {
	document := newDocument(keyline.TypeProducts, request).withID(productID)
	path := fmt.Sprintf("/v1/accounts/%s/products/%s", c.accountID, productID)

	resp, err := c.httpClient.Patch(ctx, path, document)
	if err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}

	var doc keyline.Document[keyline.Product]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing product response: %w", err)
	}

	return &doc.Data, nil
}

// Delete implements keyline.ProductsClient.Delete.
func (c *ProductsClient) Delete(ctx context.Context, productID string) error {
	path := fmt.Sprintf("/v1/accounts/%s/products/%s", c.accountID, productID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return nil
}
