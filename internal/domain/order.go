package domain

// Order-related domain errors.
var (
	ErrOrderNotFound = &Error{Code: ENOTFOUND, Message: "Order not found"}
)

// Order mirrors an order as reported by the backend. The order lifecycle is
// fully owned by the backend; the client only triggers creation from a
// populated cart and renders what comes back.
type Order struct {
	ID            string
	OrderNumber   string
	Status        string
	PaymentStatus string
	Items         []CartLine
	SubtotalCents int64
	ShippingCents int64
	TotalCents    int64
	CreatedAt     string
	UpdatedAt     string
	Documents     []OrderDocument
}

// OrderDocument is a backend-generated document attached to an order
// (e.g., an invoice or a packing list).
type OrderDocument struct {
	ID        string
	Type      string
	FileURL   string
	FileName  string
	CreatedAt string
}

// DealerStatus is the ordering gate consumed by the profile screen. When
// the gate cannot be checked, the client fails open: this gate is advisory
// and the backend enforces the real rule at order creation.
type DealerStatus struct {
	CanOrder     bool
	Reason       string
	BlockedUntil string
	Message      string
}
