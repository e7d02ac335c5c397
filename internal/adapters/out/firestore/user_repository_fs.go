// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "storefront/internal/domain/user"
)

const usersCollection = "users"

// UserRepositoryFS implements user.Repository with Firestore
// (collection: users, docId: Firebase UID).
type UserRepositoryFS struct {
	Client *firestore.Client
	now    func() time.Time
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client, now: time.Now}
}

var _ userdom.Repository = (*UserRepositoryFS)(nil)

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(usersCollection)
}

func (r *UserRepositoryFS) GetByID(ctx context.Context, id string) (userdom.User, error) {
	if r == nil || r.Client == nil {
		return userdom.User{}, errors.New("user_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return userdom.User{}, userdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return userdom.User{}, userdom.ErrNotFound
		}
		return userdom.User{}, err
	}
	return docToUser(snap)
}

// Upsert creates or updates the account. The transaction preserves an
// existing role and createdAt; the profile never downgrades an admin.
func (r *UserRepositoryFS) Upsert(ctx context.Context, u userdom.User) (userdom.User, error) {
	if r == nil || r.Client == nil {
		return userdom.User{}, errors.New("user_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(u.ID)
	if uid == "" {
		return userdom.User{}, userdom.ErrInvalidID
	}

	ref := r.col().Doc(uid)
	now := r.now().UTC()

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			cur, derr := docToUser(snap)
			if derr != nil {
				return derr
			}
			u.Role = cur.Role
			u.CreatedAt = cur.CreatedAt
		case status.Code(err) == codes.NotFound:
			if u.Role == "" {
				u.Role = userdom.RoleUser
			}
			u.CreatedAt = now
		default:
			return err
		}

		u.UpdatedAt = now
		return tx.Set(ref, userDocFromDomain(u))
	})
	if err != nil {
		return userdom.User{}, err
	}
	return u, nil
}

// =======================
// Mapping
// =======================

type userDoc struct {
	Email     string    `firestore:"email"`
	Name      string    `firestore:"name"`
	Role      string    `firestore:"role"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func userDocFromDomain(u userdom.User) userDoc {
	return userDoc{
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func docToUser(snap *firestore.DocumentSnapshot) (userdom.User, error) {
	var raw userDoc
	if err := snap.DataTo(&raw); err != nil {
		return userdom.User{}, err
	}

	role, err := userdom.ParseRole(raw.Role)
	if err != nil {
		role = userdom.RoleUser
	}

	return userdom.User{
		ID:        snap.Ref.ID,
		Email:     raw.Email,
		Name:      raw.Name,
		Role:      role,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}, nil
}
