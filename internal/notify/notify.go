// Package notify forwards confirmed orders to the restaurant operator.
//
// Delivery is best effort. Notify reports failures so the caller can log
// them, but the order ledger stays the source of truth.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/orderbot/pkg/types"
)

// ErrNoOperator is returned when no operator identity is configured
var ErrNoOperator = errors.New("operator is not configured")

// Sender delivers a text message to a chat identity
type Sender interface {
	Send(ctx context.Context, to int64, text string) error
}

// Operator sends order summaries to a single fixed operator identity
type Operator struct {
	sender     Sender
	operatorID int64
}

// NewOperator creates a notifier for the given operator ID
func NewOperator(sender Sender, operatorID int64) *Operator {
	return &Operator{
		sender:     sender,
		operatorID: operatorID,
	}
}

// Notify sends the order summary to the operator
func (o *Operator) Notify(ctx context.Context, order *types.Order) error {
	if o.operatorID == 0 {
		return ErrNoOperator
	}

	if err := o.sender.Send(ctx, o.operatorID, Summary(order)); err != nil {
		return fmt.Errorf("failed to notify operator %d about order %d: %w", o.operatorID, order.ID, err)
	}
	return nil
}

// Summary renders the operator-facing text of an order
func Summary(order *types.Order) string {
	var b strings.Builder

	b.WriteString("🔔 Yangi buyurtma!\n\n")
	fmt.Fprintf(&b, "📝 Buyurtma #%d\n", order.ID)
	fmt.Fprintf(&b, "👤 %s\n", order.FullName)
	if order.Username != "" {
		fmt.Fprintf(&b, "🔗 @%s\n", order.Username)
	}
	fmt.Fprintf(&b, "📱 %s\n", order.Phone)
	fmt.Fprintf(&b, "💰 Summa: %s\n", types.FormatPrice(order.Total))
	fmt.Fprintf(&b, "💳 To'lov: %s\n\n", order.PaymentMethod)

	b.WriteString("📦 Mahsulotlar:\n")
	for i, item := range order.Items {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, item.Name, types.FormatPrice(item.Price))
	}

	return b.String()
}
