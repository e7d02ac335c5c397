// internal/domain/review/repository_port.go
package review

import "context"

// Repository is the persistence port for product reviews.
type Repository interface {
	// Create persists a new review. It returns ErrDuplicate when the user
	// already has a review for the product (enforced atomically).
	Create(ctx context.Context, r Review) (Review, error)

	GetByID(ctx context.Context, id string) (Review, error)

	// ListByProductID returns the product's reviews, newest first.
	ListByProductID(ctx context.Context, productID string) ([]Review, error)

	Delete(ctx context.Context, id string) error
}
