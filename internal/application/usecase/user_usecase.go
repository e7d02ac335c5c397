// internal/application/usecase/user_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	userdom "storefront/internal/domain/user"
)

var ErrUserRepoMissing = errors.New("user: repository is not configured")

// UserUsecase maintains account documents keyed by the verified token
// identity. Credentials and token issuance live in Firebase Auth and are
// never handled here.
type UserUsecase struct {
	users userdom.Repository
	now   func() time.Time
}

func NewUserUsecase(users userdom.Repository) *UserUsecase {
	return &UserUsecase{users: users, now: time.Now}
}

// RegisterInput carries profile fields; identity comes from the verified
// token, never from the body.
type RegisterInput struct {
	Name string `json:"name"`
}

// Register creates or refreshes the caller's account document. The name
// falls back to the email local part when absent.
func (u *UserUsecase) Register(ctx context.Context, uid, email string, in RegisterInput) (userdom.User, error) {
	if u == nil || u.users == nil {
		return userdom.User{}, ErrUserRepoMissing
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		}
	}

	acc, err := userdom.New(uid, email, name, u.now())
	if err != nil {
		return userdom.User{}, err
	}
	return u.users.Upsert(ctx, acc)
}

func (u *UserUsecase) Get(ctx context.Context, uid string) (userdom.User, error) {
	if u == nil || u.users == nil {
		return userdom.User{}, ErrUserRepoMissing
	}
	return u.users.GetByID(ctx, uid)
}
