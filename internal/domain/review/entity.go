// internal/domain/review/entity.go
package review

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound         = errors.New("review: not found")
	ErrInvalidProductID = errors.New("review: invalid productId")
	ErrInvalidUserID    = errors.New("review: invalid userId")
	ErrInvalidRating    = errors.New("review: rating must be between 1 and 5")
	ErrDuplicate        = errors.New("review: user already reviewed this product")
)

// Review is one product review. A user may review a product once;
// duplicates are rejected as a conflict.
type Review struct {
	ID        string `json:"id" firestore:"id"`
	ProductID string `json:"productId" firestore:"productId"`
	UserID    string `json:"userId" firestore:"userId"`
	UserName  string `json:"userName" firestore:"userName"`
	Rating    int    `json:"rating" firestore:"rating"`
	Comment   string `json:"comment" firestore:"comment"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// New builds a validated review. id may be empty; the repository assigns
// one on create.
func New(id, productID, userID, userName string, rating int, comment string, now time.Time) (Review, error) {
	r := Review{
		ID:        strings.TrimSpace(id),
		ProductID: strings.TrimSpace(productID),
		UserID:    strings.TrimSpace(userID),
		UserName:  strings.TrimSpace(userName),
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: now.UTC(),
	}
	if r.ProductID == "" {
		return Review{}, ErrInvalidProductID
	}
	if r.UserID == "" {
		return Review{}, ErrInvalidUserID
	}
	if r.Rating < 1 || r.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	return r, nil
}
