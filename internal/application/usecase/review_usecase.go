// internal/application/usecase/review_usecase.go
package usecase

import (
	"context"
	"errors"
	"time"

	proddom "storefront/internal/domain/product"
	revdom "storefront/internal/domain/review"
	userdom "storefront/internal/domain/user"
)

var ErrReviewRepoMissing = errors.New("review: repositories are not configured")

// ProductReviews is the read model returned for a product's review list.
type ProductReviews struct {
	Reviews       []revdom.Review `json:"reviews"`
	Count         int             `json:"count"`
	AverageRating float64         `json:"averageRating"`
}

// ReviewUsecase owns product reviews: one per user per product, deletable
// by the author or an admin.
type ReviewUsecase struct {
	reviews  revdom.Repository
	products proddom.Repository
	now      func() time.Time
}

func NewReviewUsecase(reviews revdom.Repository, products proddom.Repository) *ReviewUsecase {
	return &ReviewUsecase{
		reviews:  reviews,
		products: products,
		now:      time.Now,
	}
}

// AddInput is the client-facing review shape.
type AddInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (u *ReviewUsecase) Add(ctx context.Context, author userdom.User, productID string, in AddInput) (revdom.Review, error) {
	if u == nil || u.reviews == nil || u.products == nil {
		return revdom.Review{}, ErrReviewRepoMissing
	}

	// The product must exist before a review can attach to it.
	p, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return revdom.Review{}, err
	}

	rv, err := revdom.New("", p.ID, author.ID, author.Name, in.Rating, in.Comment, u.now())
	if err != nil {
		return revdom.Review{}, err
	}
	return u.reviews.Create(ctx, rv)
}

func (u *ReviewUsecase) ListForProduct(ctx context.Context, productID string) (ProductReviews, error) {
	if u == nil || u.reviews == nil || u.products == nil {
		return ProductReviews{}, ErrReviewRepoMissing
	}

	if _, err := u.products.GetByID(ctx, productID); err != nil {
		return ProductReviews{}, err
	}

	list, err := u.reviews.ListByProductID(ctx, productID)
	if err != nil {
		return ProductReviews{}, err
	}

	out := ProductReviews{Reviews: list, Count: len(list)}
	if len(list) > 0 {
		sum := 0
		for _, rv := range list {
			sum += rv.Rating
		}
		out.AverageRating = float64(sum) / float64(len(list))
	}
	return out, nil
}

// Delete removes a review; only its author or an admin may.
func (u *ReviewUsecase) Delete(ctx context.Context, requester userdom.User, reviewID string) error {
	if u == nil || u.reviews == nil {
		return ErrReviewRepoMissing
	}

	rv, err := u.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != requester.ID && !requester.IsAdmin() {
		return ErrForbidden
	}
	return u.reviews.Delete(ctx, reviewID)
}
