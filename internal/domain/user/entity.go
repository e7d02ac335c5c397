// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("user: not found")
	ErrInvalidID    = errors.New("user: invalid id")
	ErrInvalidEmail = errors.New("user: invalid email")
	ErrInvalidRole  = errors.New("user: invalid role")
)

// Role gates authorization. Every operation boundary checks the role
// explicitly instead of reading flags off a request context.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// User is one account document (docId = Firebase UID). Password handling
// and token issuance live in Firebase Auth; only the profile and the role
// are persisted here.
type User struct {
	ID    string `json:"id" firestore:"id"`
	Email string `json:"email" firestore:"email"`
	Name  string `json:"name" firestore:"name"`
	Role  Role   `json:"role" firestore:"role"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// New builds a validated user. Role defaults to RoleUser; admins are
// promoted out of band.
func New(id, email, name string, now time.Time) (User, error) {
	u := User{
		ID:        strings.TrimSpace(id),
		Email:     strings.TrimSpace(email),
		Name:      strings.TrimSpace(name),
		Role:      RoleUser,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if u.ID == "" {
		return User{}, ErrInvalidID
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return User{}, ErrInvalidEmail
	}
	return u, nil
}

// IsAdmin is the capability check used at operation boundaries.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
