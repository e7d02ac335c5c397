// internal/domain/order/repository_port.go
package order

import (
	"context"
	"time"
)

// PlacementLine is one requested line of the order workflow, as submitted
// by the client. Prices never appear here; they are read from the catalog
// inside the placement transaction.
type PlacementLine struct {
	ProductID string
	Size      string
	Qty       int
}

// Filter narrows an admin order listing.
type Filter struct {
	Status Status // empty = all
	From   *time.Time
	To     *time.Time
}

type Page struct {
	Number  int
	PerPage int
}

type PageResult struct {
	Items      []Order
	TotalCount int
	Page       int
	PerPage    int
	TotalPages int
}

// StatusStats aggregates orders sharing a status.
type StatusStats struct {
	Count   int `json:"count"`
	Revenue int `json:"revenue"`
}

// Stats is the admin aggregate view over a date range.
type Stats struct {
	TotalOrders  int                    `json:"totalOrders"`
	TotalRevenue int                    `json:"totalRevenue"`
	ByStatus     map[Status]StatusStats `json:"byStatus"`
}

// Repository is the persistence port for orders.
//
// Place, UpdateStatus and Delete are the transactional operations: each one
// runs inside a single store transaction so that stock movements, the order
// document and the cart document change together or not at all.
//
//   - Place: per line (in request order) read the product, verify the size
//     is offered and stock >= qty, then decrement stock; create the order
//     snapshot priced from the in-transaction reads; empty the owner's
//     cart. Any violated precondition aborts the whole transaction.
//     Losing a stock race surfaces as product.ErrInsufficientStock.
//   - UpdateStatus: applies an allowed transition; transitioning to
//     cancelled restores every line's qty to its product's stock in the
//     same transaction.
//   - Delete: restores stock the same way when the current status still
//     holds stock, then removes the document.
type Repository interface {
	Place(ctx context.Context, userID string, lines []PlacementLine, pricing Pricing) (Order, error)

	GetByID(ctx context.Context, id string) (Order, error)
	ListByUserID(ctx context.Context, userID string) ([]Order, error)
	List(ctx context.Context, filter Filter, page Page) (PageResult, error)

	UpdateStatus(ctx context.Context, id string, to Status) (Order, error)
	Delete(ctx context.Context, id string) error

	Stats(ctx context.Context, from, to *time.Time) (Stats, error)
}
