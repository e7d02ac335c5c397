// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is the persistence port for Cart.
//
// Storage (Firestore):
// - collection: carts
// - docId: userId (the cart is 1:1 with its owner)
//
// Not-found policy: GetByUserID returns (nil, nil) when the user has no
// cart yet; the application layer creates one lazily.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Cart, error)

	// Upsert saves the cart (create or full overwrite).
	Upsert(ctx context.Context, c *Cart) error
}
