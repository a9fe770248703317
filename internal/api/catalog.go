package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/smartg5/storefront/internal/catalog"
	"github.com/smartg5/storefront/internal/domain"
)

// Categories fetches the full category list, with any nested products
// normalized in place.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	raw, err := c.do(ctx, http.MethodGet, "categories", "/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var records []catalog.RawCategory
	if err := decodeInto("api.categories", raw, &records); err != nil {
		return nil, err
	}
	return c.normalizer.Categories(records), nil
}

// CategoryByID fetches a single category.
func (c *Client) CategoryByID(ctx context.Context, categoryID string) (domain.Category, error) {
	raw, err := c.do(ctx, http.MethodGet, "category", "/categories/"+url.PathEscape(categoryID), nil, nil)
	if err != nil {
		return domain.Category{}, err
	}

	var record catalog.RawCategory
	if err := decodeInto("api.category", raw, &record); err != nil {
		return domain.Category{}, err
	}
	return c.normalizer.Category(record), nil
}

// ProductsByCategory fetches products for one category, or the general
// product set when categoryID is empty.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	query := url.Values{}
	if categoryID != "" {
		query.Set("category", categoryID)
	}
	return c.productList(ctx, "products_by_category", "/products/by-category", query)
}

// NewProducts fetches the new-arrivals product set for the home screen.
func (c *Client) NewProducts(ctx context.Context) ([]domain.Product, error) {
	return c.productList(ctx, "products_new", "/products/new", nil)
}

// SaleProducts fetches the sale/deals product set.
func (c *Client) SaleProducts(ctx context.Context) ([]domain.Product, error) {
	return c.productList(ctx, "products_sale", "/products/sale", nil)
}

// ProductByID fetches a single product for the detail screen.
func (c *Client) ProductByID(ctx context.Context, productID string) (domain.Product, error) {
	raw, err := c.do(ctx, http.MethodGet, "product", "/products/"+url.PathEscape(productID), nil, nil)
	if err != nil {
		return domain.Product{}, err
	}

	var record catalog.RawProduct
	if err := decodeInto("api.product", raw, &record); err != nil {
		return domain.Product{}, err
	}
	return c.normalizer.Product(record), nil
}

func (c *Client) productList(ctx context.Context, endpoint, path string, query url.Values) ([]domain.Product, error) {
	raw, err := c.do(ctx, http.MethodGet, endpoint, path, query, nil)
	if err != nil {
		return nil, err
	}

	var records []catalog.RawProduct
	if err := decodeInto("api."+endpoint, raw, &records); err != nil {
		return nil, err
	}
	return c.normalizer.Products(records), nil
}
