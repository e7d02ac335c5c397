// internal/domain/product/repository_port.go
package product

import "context"

// Filter narrows a catalog listing. Zero values mean "no constraint".
type Filter struct {
	// Category matches case-insensitively against the 2-value enum.
	Category string
	// MinPrice / MaxPrice bound Price inclusively; nil means unbounded.
	MinPrice *int
	MaxPrice *int
	// Color is a case-insensitive substring match.
	Color string
	// Size must be a member of the product's size set.
	Size string
	// Search is free text over name + description (case-insensitive).
	Search string
}

type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByPrice     SortField = "price"
	SortByName      SortField = "name"
)

type Sort struct {
	Field SortField
	Desc  bool
}

// Page is 1-indexed. PerPage <= 0 falls back to the repository default.
type Page struct {
	Number  int
	PerPage int
}

// PageResult carries one page plus listing metadata.
type PageResult struct {
	Items      []Product
	TotalCount int
	Page       int
	PerPage    int
	TotalPages int
}

// Repository is the persistence port for the catalog.
//
// DecrementStock is the reservation primitive: it must apply only if the
// product's stock is still >= qty at the instant of the update, and return
// ErrInsufficientStock otherwise. IncrementStock is its inverse (used by
// order cancellation).
type Repository interface {
	Create(ctx context.Context, p Product) (Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter Filter, sort Sort, page Page) (PageResult, error)

	DecrementStock(ctx context.Context, id string, qty int) error
	IncrementStock(ctx context.Context, id string, qty int) error
}
