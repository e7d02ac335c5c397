// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrInvalidID       = errors.New("order: invalid id")
	ErrInvalidUserID   = errors.New("order: invalid userId")
	ErrEmptyLines      = errors.New("order: at least one line is required")
	ErrInvalidLine     = errors.New("order: invalid line")
	ErrQtyOutOfRange   = errors.New("order: quantity must be between 1 and 10")
	ErrSizeUnavailable = errors.New("order: requested size is not available")
)

// Quantity bounds per requested line.
const (
	MinQtyPerLine = 1
	MaxQtyPerLine = 10
)

// Line is the immutable per-product snapshot stored inside an order.
// UnitPrice is the catalog price read inside the placement transaction,
// never a client-supplied value.
type Line struct {
	ProductID   string `json:"productId" firestore:"productId"`
	ProductName string `json:"productName" firestore:"productName"`
	Size        string `json:"size" firestore:"size"`
	Qty         int    `json:"qty" firestore:"qty"`
	UnitPrice   int    `json:"unitPrice" firestore:"unitPrice"`
}

// Order is an immutable snapshot created at placement time. After creation
// only Status and UpdatedAt change.
type Order struct {
	ID     string `json:"id" firestore:"id"`
	UserID string `json:"userId" firestore:"userId"`

	Lines    []Line `json:"lines" firestore:"lines"`
	Subtotal int    `json:"subtotal" firestore:"subtotal"`
	Shipping int    `json:"shipping" firestore:"shipping"`
	Total    int    `json:"total" firestore:"total"`

	Status Status `json:"status" firestore:"status"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// New builds a validated order snapshot. Subtotal is recomputed from the
// lines and total is forced to subtotal + shipping, whatever the caller
// passed in.
func New(id, userID string, lines []Line, shipping int, now time.Time) (Order, error) {
	o := Order{
		ID:        strings.TrimSpace(id),
		UserID:    strings.TrimSpace(userID),
		Lines:     lines,
		Shipping:  shipping,
		Status:    StatusPending,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	if o.ID == "" {
		return Order{}, ErrInvalidID
	}
	if o.UserID == "" {
		return Order{}, ErrInvalidUserID
	}
	if len(o.Lines) == 0 {
		return Order{}, ErrEmptyLines
	}
	if o.Shipping < 0 {
		return Order{}, ErrInvalidLine
	}
	for _, l := range o.Lines {
		if strings.TrimSpace(l.ProductID) == "" || strings.TrimSpace(l.Size) == "" || l.UnitPrice < 0 {
			return Order{}, ErrInvalidLine
		}
		if l.Qty < MinQtyPerLine || l.Qty > MaxQtyPerLine {
			return Order{}, ErrQtyOutOfRange
		}
	}

	o.Subtotal = subtotalOf(o.Lines)
	o.Total = o.Subtotal + o.Shipping
	return o, nil
}

// Normalize re-derives subtotal/total from the lines. Repositories call it
// before every persist so the total == subtotal + shipping invariant holds
// even for documents written by older revisions.
func (o *Order) Normalize() {
	o.Subtotal = subtotalOf(o.Lines)
	o.Total = o.Subtotal + o.Shipping
}

func subtotalOf(lines []Line) int {
	sum := 0
	for _, l := range lines {
		sum += l.Qty * l.UnitPrice
	}
	return sum
}

// Pricing is the shipping policy applied at placement: a flat fee while the
// subtotal is at or below the free-shipping threshold, free above it.
// Constructed once from config and passed into the workflow (no ambient
// globals).
type Pricing struct {
	ShippingFlatFee int
	FreeShippingMin int
}

// ShippingFor returns the shipping charge for a subtotal.
func (p Pricing) ShippingFor(subtotal int) int {
	if subtotal > p.FreeShippingMin {
		return 0
	}
	return p.ShippingFlatFee
}
