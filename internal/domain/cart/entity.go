// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCart   = errors.New("cart: invalid")
	ErrInvalidLine   = errors.New("cart: invalid line")
	ErrLineNotFound  = errors.New("cart: line not found")
	ErrQtyOutOfRange = errors.New("cart: quantity must be between 1 and 10")
	ErrQtyExceedsCap = errors.New("cart: quantity per line is capped at 10")
)

// MaxQtyPerLine caps a single line's quantity.
const MaxQtyPerLine = 10

// Line is one line item. Uniqueness inside a cart is defined by
// (productId, size). UnitPrice is the product price captured at add time,
// not live-linked to the catalog.
type Line struct {
	ID          string `json:"id" firestore:"id"`
	ProductID   string `json:"productId" firestore:"productId"`
	ProductName string `json:"productName" firestore:"productName"`
	Size        string `json:"size" firestore:"size"`
	Qty         int    `json:"qty" firestore:"qty"`
	UnitPrice   int    `json:"unitPrice" firestore:"unitPrice"`
}

// Cart is the per-user cart document (docId = userId). Total is derived
// from Lines and recomputed on every mutation; a stored total is never
// trusted over the recomputed one.
type Cart struct {
	ID    string `json:"id" firestore:"id"`
	Lines []Line `json:"lines" firestore:"lines"`
	Total int    `json:"total" firestore:"total"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// New creates an empty cart for the user.
func New(userID string, now time.Time) (*Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrInvalidCart
	}
	return &Cart{
		ID:        uid,
		Lines:     []Line{},
		Total:     0,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

// AddLine merges qty into an existing (productId, size) line or appends a
// new one. lineID is only used when a new line is created. The merged
// quantity must stay within [1, MaxQtyPerLine]; on violation the cart is
// left untouched.
func (c *Cart) AddLine(lineID, productID, productName, size string, qty, unitPrice int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(productID)
	sz := strings.TrimSpace(size)
	if pid == "" || sz == "" || unitPrice < 0 {
		return ErrInvalidLine
	}
	if qty < 1 || qty > MaxQtyPerLine {
		return ErrQtyOutOfRange
	}

	idx := c.findLine(pid, sz)
	if idx >= 0 {
		merged := c.Lines[idx].Qty + qty
		if merged > MaxQtyPerLine {
			return ErrQtyExceedsCap
		}
		c.Lines[idx].Qty = merged
		c.Lines[idx].UnitPrice = unitPrice
		c.Lines[idx].ProductName = strings.TrimSpace(productName)
	} else {
		lid := strings.TrimSpace(lineID)
		if lid == "" {
			return ErrInvalidLine
		}
		c.Lines = append(c.Lines, Line{
			ID:          lid,
			ProductID:   pid,
			ProductName: strings.TrimSpace(productName),
			Size:        sz,
			Qty:         qty,
			UnitPrice:   unitPrice,
		})
	}

	c.touch(now)
	return nil
}

// MergedQty returns what the quantity of (productId, size) would become
// after adding qty. Used for the live-stock check before mutation.
func (c *Cart) MergedQty(productID, size string, qty int) int {
	if c == nil {
		return qty
	}
	idx := c.findLine(strings.TrimSpace(productID), strings.TrimSpace(size))
	if idx < 0 {
		return qty
	}
	return c.Lines[idx].Qty + qty
}

// SetLineQty replaces a line's quantity. qty <= 0 removes the line.
func (c *Cart) SetLineQty(lineID string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	lid := strings.TrimSpace(lineID)
	idx := c.findLineByID(lid)
	if idx < 0 {
		return ErrLineNotFound
	}

	if qty <= 0 {
		c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
		c.touch(now)
		return nil
	}
	if qty > MaxQtyPerLine {
		return ErrQtyExceedsCap
	}

	c.Lines[idx].Qty = qty
	c.touch(now)
	return nil
}

// RemoveLine deletes a line by id. Removing an unknown line is an error
// (the caller surfaces it as not-found).
func (c *Cart) RemoveLine(lineID string, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	idx := c.findLineByID(strings.TrimSpace(lineID))
	if idx < 0 {
		return ErrLineNotFound
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
	c.touch(now)
	return nil
}

// Clear empties the cart. Idempotent.
func (c *Cart) Clear(now time.Time) {
	if c == nil {
		return
	}
	c.Lines = []Line{}
	c.touch(now)
}

// Line returns a copy of the line with the given id.
func (c *Cart) Line(lineID string) (Line, bool) {
	idx := c.findLineByID(strings.TrimSpace(lineID))
	if idx < 0 {
		return Line{}, false
	}
	return c.Lines[idx], true
}

// touch recomputes the derived total and bumps updatedAt.
func (c *Cart) touch(now time.Time) {
	total := 0
	for _, l := range c.Lines {
		total += l.Qty * l.UnitPrice
	}
	c.Total = total
	c.UpdatedAt = now.UTC()
}

func (c *Cart) findLine(productID, size string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID && c.Lines[i].Size == size {
			return i
		}
	}
	return -1
}

func (c *Cart) findLineByID(lineID string) int {
	if lineID == "" {
		return -1
	}
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return i
		}
	}
	return -1
}
