// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	usecase "storefront/internal/application/usecase"
	orderdom "storefront/internal/domain/order"
)

// OrderMailer renders and sends the order confirmation mail through an
// EmailClient.
type OrderMailer struct {
	client      EmailClient
	fromAddress string
}

func NewOrderMailer(client EmailClient, fromAddress string) *OrderMailer {
	return &OrderMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
	}
}

var _ usecase.OrderMailer = (*OrderMailer)(nil)

func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, to string, o orderdom.Order) error {
	subject := fmt.Sprintf("Order confirmation %s", o.ID)

	var b strings.Builder
	b.WriteString("Thank you for your order.\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Placed:   %s\n\n", o.CreatedAt.Format("2006-01-02 15:04 MST"))
	b.WriteString("Items:\n")
	for _, ln := range o.Lines {
		fmt.Fprintf(&b, "  %dx %s (size %s) - %s\n",
			ln.Qty, ln.ProductName, ln.Size, formatCents(ln.UnitPrice*ln.Qty))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", formatCents(o.Subtotal))
	fmt.Fprintf(&b, "Shipping: %s\n", formatCents(o.Shipping))
	fmt.Fprintf(&b, "Total:    %s\n", formatCents(o.Total))

	return m.client.Send(ctx, m.fromAddress, strings.TrimSpace(to), subject, b.String())
}

func formatCents(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
