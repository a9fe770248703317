package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/smartg5/storefront/internal/catalog"
	"github.com/smartg5/storefront/internal/domain"
)

type rawOrderItem struct {
	Product   *catalog.RawProduct `json:"product"`
	ProductID catalog.FlexString  `json:"product_id"`
	Quantity  catalog.FlexNumber  `json:"quantity"`
	Price     catalog.FlexNumber  `json:"price"`
}

type rawOrderDocument struct {
	ID        catalog.FlexString `json:"id"`
	Type      string             `json:"type"`
	FileURL   string             `json:"file_url"`
	FileName  string             `json:"file_name"`
	CreatedAt string             `json:"created_at"`
}

type rawOrder struct {
	ID            catalog.FlexString `json:"id"`
	OrderNumber   string             `json:"order_number"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	Items         []rawOrderItem     `json:"items"`
	Subtotal      catalog.FlexNumber `json:"subtotal"`
	Shipping      catalog.FlexNumber `json:"shipping"`
	Total         catalog.FlexNumber `json:"total"`
	CreatedAt     string             `json:"created_at"`
	UpdatedAt     string             `json:"updated_at"`
	Documents     []rawOrderDocument `json:"documents"`
}

// CreateOrder asks the backend to convert the server-side cart into an
// order. The caller is responsible for only invoking this with a populated
// cart.
func (c *Client) CreateOrder(ctx context.Context) (domain.Order, error) {
	raw, err := c.do(ctx, http.MethodPost, "order_create", "/orders/create", nil, nil)
	if err != nil {
		return domain.Order{}, err
	}

	var record rawOrder
	if err := decodeInto("api.order_create", raw, &record); err != nil {
		return domain.Order{}, err
	}
	return c.order(record), nil
}

// Orders fetches the dealer's order history.
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	raw, err := c.do(ctx, http.MethodGet, "orders", "/orders", nil, nil)
	if err != nil {
		return nil, err
	}

	var records []rawOrder
	if err := decodeInto("api.orders", raw, &records); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(records))
	for _, record := range records {
		orders = append(orders, c.order(record))
	}
	return orders, nil
}

// OrderByID fetches a single order for the detail screen.
func (c *Client) OrderByID(ctx context.Context, orderID string) (domain.Order, error) {
	raw, err := c.do(ctx, http.MethodGet, "order", "/orders/"+url.PathEscape(orderID), nil, nil)
	if err != nil {
		return domain.Order{}, err
	}

	var record rawOrder
	if err := decodeInto("api.order", raw, &record); err != nil {
		return domain.Order{}, err
	}
	return c.order(record), nil
}

// OrderDocuments fetches the backend-generated documents for an order.
func (c *Client) OrderDocuments(ctx context.Context, orderID string) ([]domain.OrderDocument, error) {
	raw, err := c.do(ctx, http.MethodGet, "order_documents", "/orders/"+url.PathEscape(orderID)+"/documents", nil, nil)
	if err != nil {
		return nil, err
	}

	var records []rawOrderDocument
	if err := decodeInto("api.order_documents", raw, &records); err != nil {
		return nil, err
	}

	docs := make([]domain.OrderDocument, 0, len(records))
	for _, record := range records {
		docs = append(docs, c.orderDocument(record))
	}
	return docs, nil
}

// ConfirmArrival reports to the backend that the dealer received the order.
func (c *Client) ConfirmArrival(ctx context.Context, orderID string) error {
	_, err := c.do(ctx, http.MethodPost, "order_confirm_arrival", "/orders/"+url.PathEscape(orderID)+"/confirm-arrival", nil, nil)
	return err
}

type rawDealerStatus struct {
	CanOrder     *catalog.FlexBool `json:"can_order"`
	Reason       string            `json:"reason"`
	BlockedUntil string            `json:"blocked_until"`
	Message      string            `json:"message"`
}

// DealerStatus checks whether the dealer may place orders. The fail-open
// default lives in the store, not here: a transport failure is reported as
// an error so the caller can decide.
func (c *Client) DealerStatus(ctx context.Context) (domain.DealerStatus, error) {
	raw, err := c.do(ctx, http.MethodGet, "dealer_can_order", "/dealer/can-order", nil, nil)
	if err != nil {
		return domain.DealerStatus{}, err
	}

	var record rawDealerStatus
	if err := decodeInto("api.dealer_can_order", raw, &record); err != nil {
		return domain.DealerStatus{}, err
	}

	canOrder := true
	if record.CanOrder != nil {
		canOrder = bool(*record.CanOrder)
	}
	return domain.DealerStatus{
		CanOrder:     canOrder,
		Reason:       record.Reason,
		BlockedUntil: record.BlockedUntil,
		Message:      record.Message,
	}, nil
}

func (c *Client) order(record rawOrder) domain.Order {
	items := make([]domain.CartLine, 0, len(record.Items))
	for _, it := range record.Items {
		qty := int64(it.Quantity)
		if qty < 1 {
			qty = 1
		}

		var snapshot domain.ProductSnapshot
		if it.Product != nil {
			snapshot = c.normalizer.Product(*it.Product).Snapshot()
		} else {
			snapshot = domain.ProductSnapshot{
				ID:         string(it.ProductID),
				Name:       catalog.FallbackProductName,
				PriceCents: catalog.Cents(float64(it.Price)),
			}
		}

		items = append(items, domain.CartLine{Product: snapshot, Quantity: qty})
	}

	docs := make([]domain.OrderDocument, 0, len(record.Documents))
	for _, d := range record.Documents {
		docs = append(docs, c.orderDocument(d))
	}

	return domain.Order{
		ID:            string(record.ID),
		OrderNumber:   record.OrderNumber,
		Status:        record.Status,
		PaymentStatus: record.PaymentStatus,
		Items:         items,
		SubtotalCents: catalog.Cents(float64(record.Subtotal)),
		ShippingCents: catalog.Cents(float64(record.Shipping)),
		TotalCents:    catalog.Cents(float64(record.Total)),
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
		Documents:     docs,
	}
}

func (c *Client) orderDocument(record rawOrderDocument) domain.OrderDocument {
	return domain.OrderDocument{
		ID:        string(record.ID),
		Type:      record.Type,
		FileURL:   c.normalizer.ImageURL(record.FileURL),
		FileName:  record.FileName,
		CreatedAt: record.CreatedAt,
	}
}
