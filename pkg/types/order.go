package types

import "time"

// CartItem is a snapshot of a product taken when it was added to a cart.
// It is not a live reference: catalog changes do not alter pending carts.
type CartItem struct {
	ProductID int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Price     int64  `json:"price" yaml:"price"`
}

// NewCartItem snapshots the given product
func NewCartItem(p Product) CartItem {
	return CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
	}
}

// Total sums the item prices
func Total(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Price
	}
	return total
}

// PaymentMethod is the payment choice offered at checkout. Only its label is
// recorded; no payment is processed.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Label returns the customer-facing name stored on the order
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Naqd"
	case PaymentCard:
		return "Karta"
	default:
		return ""
	}
}

// Valid reports whether m is one of the offered methods
func (m PaymentMethod) Valid() bool {
	return m.Label() != ""
}

// OrderStatus tracks an order after creation
type OrderStatus string

const (
	StatusNew OrderStatus = "new"
)

// Order is a confirmed cart. Everything but Status is immutable once stored.
type Order struct {
	ID            int64       `yaml:"id"`
	UserID        int64       `yaml:"user_id"`
	Username      string      `yaml:"username,omitempty"` // Optional
	FullName      string      `yaml:"full_name"`
	Phone         string      `yaml:"phone"`
	Items         []CartItem  `yaml:"items"`
	Total         int64       `yaml:"total"`
	PaymentMethod string      `yaml:"payment_method"` // Label, see PaymentMethod.Label
	Status        OrderStatus `yaml:"status"`
	CreatedAt     time.Time   `yaml:"created_at"`
}

// Validate checks if the order can be stored
func (o *Order) Validate() error {
	if o.UserID == 0 {
		return ErrInvalidUserID
	}

	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}

	if o.Total != Total(o.Items) {
		return ErrTotalMismatch
	}

	return nil
}
