package api

import (
	"context"
	"net/http"

	"github.com/smartg5/storefront/internal/catalog"
	"github.com/smartg5/storefront/internal/domain"
)

// RemoteCart mirrors the server-side cart. It is informational only: the
// local cart is authoritative for the current session, and this mirror is
// pulled only on explicit request.
type RemoteCart struct {
	Items         []RemoteCartItem
	SubtotalCents int64
	ShippingCents int64
	TotalCents    int64
}

// RemoteCartItem is one line of the server-side cart.
type RemoteCartItem struct {
	ProductID  string
	Quantity   int64
	PriceCents int64
}

type rawCartItem struct {
	ProductID catalog.FlexString `json:"product_id"`
	Quantity  catalog.FlexNumber `json:"quantity"`
	Price     catalog.FlexNumber `json:"price"`
}

type rawCart struct {
	Items    []rawCartItem      `json:"items"`
	Subtotal catalog.FlexNumber `json:"subtotal"`
	Shipping catalog.FlexNumber `json:"shipping"`
	Total    catalog.FlexNumber `json:"total"`
}

// Cart fetches the server-side cart mirror. A 404 means the backend has no
// cart for this dealer yet and is returned as an empty cart, not an error.
func (c *Client) Cart(ctx context.Context) (RemoteCart, error) {
	raw, err := c.do(ctx, http.MethodGet, "cart_get", "/cart", nil, nil)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return RemoteCart{}, nil
		}
		return RemoteCart{}, err
	}

	var record rawCart
	if err := decodeInto("api.cart_get", raw, &record); err != nil {
		return RemoteCart{}, err
	}

	items := make([]RemoteCartItem, 0, len(record.Items))
	for _, it := range record.Items {
		items = append(items, RemoteCartItem{
			ProductID:  string(it.ProductID),
			Quantity:   int64(it.Quantity),
			PriceCents: catalog.Cents(float64(it.Price)),
		})
	}

	return RemoteCart{
		Items:         items,
		SubtotalCents: catalog.Cents(float64(record.Subtotal)),
		ShippingCents: catalog.Cents(float64(record.Shipping)),
		TotalCents:    catalog.Cents(float64(record.Total)),
	}, nil
}

// AddToCart registers an add on the server-side cart.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int64) error {
	payload := map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	}
	_, err := c.do(ctx, http.MethodPost, "cart_add", "/cart/add", nil, payload)
	return err
}

// RemoveFromCart registers a removal on the server-side cart.
func (c *Client) RemoveFromCart(ctx context.Context, productID string) error {
	payload := map[string]any{
		"product_id": productID,
	}
	_, err := c.do(ctx, http.MethodDelete, "cart_remove", "/cart/remove", nil, payload)
	return err
}
