// internal/domain/user/repository_port.go
package user

import "context"

// Repository is the persistence port for user accounts.
type Repository interface {
	// GetByID returns ErrNotFound when no account exists for the uid.
	GetByID(ctx context.Context, id string) (User, error)

	// Upsert creates or updates the account document (docId = uid).
	// An existing role is preserved on update.
	Upsert(ctx context.Context, u User) (User, error)
}
