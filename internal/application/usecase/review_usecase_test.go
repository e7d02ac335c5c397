// internal/application/usecase/review_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proddom "storefront/internal/domain/product"
	revdom "storefront/internal/domain/review"
	userdom "storefront/internal/domain/user"
)

func newReviewFixture() *ReviewUsecase {
	products := newFakeProductRepo(testProduct("p1", 8900, 5, "42"))
	return NewReviewUsecase(newFakeReviewRepo(), products)
}

func TestReviewAdd(t *testing.T) {
	uc := newReviewFixture()
	author := testUser("u1", userdom.RoleUser)
	ctx := context.Background()

	rv, err := uc.Add(ctx, author, "p1", AddInput{Rating: 4, Comment: "fits well"})
	require.NoError(t, err)
	assert.Equal(t, "u1", rv.UserID)
	assert.Equal(t, 4, rv.Rating)

	_, err = uc.Add(ctx, author, "missing", AddInput{Rating: 4})
	assert.ErrorIs(t, err, proddom.ErrNotFound)

	_, err = uc.Add(ctx, author, "p1", AddInput{Rating: 0})
	assert.ErrorIs(t, err, revdom.ErrInvalidRating)

	_, err = uc.Add(ctx, author, "p1", AddInput{Rating: 6})
	assert.ErrorIs(t, err, revdom.ErrInvalidRating)
}

func TestReviewAddDuplicateIsConflict(t *testing.T) {
	uc := newReviewFixture()
	author := testUser("u1", userdom.RoleUser)
	ctx := context.Background()

	_, err := uc.Add(ctx, author, "p1", AddInput{Rating: 4})
	require.NoError(t, err)

	_, err = uc.Add(ctx, author, "p1", AddInput{Rating: 5})
	assert.ErrorIs(t, err, revdom.ErrDuplicate)

	// A different user may still review.
	_, err = uc.Add(ctx, testUser("u2", userdom.RoleUser), "p1", AddInput{Rating: 5})
	assert.NoError(t, err)
}

func TestReviewListComputesAverage(t *testing.T) {
	uc := newReviewFixture()
	ctx := context.Background()

	res, err := uc.ListForProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Zero(t, res.AverageRating)

	_, err = uc.Add(ctx, testUser("u1", userdom.RoleUser), "p1", AddInput{Rating: 4})
	require.NoError(t, err)
	_, err = uc.Add(ctx, testUser("u2", userdom.RoleUser), "p1", AddInput{Rating: 5})
	require.NoError(t, err)

	res, err = uc.ListForProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.InDelta(t, 4.5, res.AverageRating, 0.001)

	_, err = uc.ListForProduct(ctx, "missing")
	assert.ErrorIs(t, err, proddom.ErrNotFound)
}

func TestReviewDeleteAuthorization(t *testing.T) {
	uc := newReviewFixture()
	author := testUser("u1", userdom.RoleUser)
	other := testUser("u2", userdom.RoleUser)
	admin := testUser("a1", userdom.RoleAdmin)
	ctx := context.Background()

	rv, err := uc.Add(ctx, author, "p1", AddInput{Rating: 4})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, other, rv.ID), ErrForbidden)
	assert.NoError(t, uc.Delete(ctx, author, rv.ID))
	assert.ErrorIs(t, uc.Delete(ctx, author, rv.ID), revdom.ErrNotFound)

	rv, err = uc.Add(ctx, author, "p1", AddInput{Rating: 4})
	require.NoError(t, err)
	assert.NoError(t, uc.Delete(ctx, admin, rv.ID))
}
