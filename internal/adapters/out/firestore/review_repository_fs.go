// internal/adapters/out/firestore/review_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	revdom "storefront/internal/domain/review"
)

const reviewsCollection = "reviews"

// ReviewRepositoryFS implements review.Repository with Firestore.
//
// Collection design:
// - collection: reviews
// - docId: productId__userId (composite key)
//
// The composite docId makes "one review per user per product" a property
// of the key space: Create uses the precondition-checked Create call, so a
// duplicate surfaces as codes.AlreadyExists without a read-check race.
type ReviewRepositoryFS struct {
	Client *firestore.Client
	now    func() time.Time
}

func NewReviewRepositoryFS(client *firestore.Client) *ReviewRepositoryFS {
	return &ReviewRepositoryFS{Client: client, now: time.Now}
}

var _ revdom.Repository = (*ReviewRepositoryFS)(nil)

func (r *ReviewRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(reviewsCollection)
}

func reviewDocID(productID, userID string) string {
	return strings.TrimSpace(productID) + "__" + strings.TrimSpace(userID)
}

func (r *ReviewRepositoryFS) Create(ctx context.Context, rv revdom.Review) (revdom.Review, error) {
	if r == nil || r.Client == nil {
		return revdom.Review{}, errors.New("review_repository_fs: firestore client is nil")
	}

	rv.ID = reviewDocID(rv.ProductID, rv.UserID)
	rv.CreatedAt = r.now().UTC()

	if _, err := r.col().Doc(rv.ID).Create(ctx, reviewDocFromDomain(rv)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return revdom.Review{}, revdom.ErrDuplicate
		}
		return revdom.Review{}, err
	}
	return rv, nil
}

func (r *ReviewRepositoryFS) GetByID(ctx context.Context, id string) (revdom.Review, error) {
	if r == nil || r.Client == nil {
		return revdom.Review{}, errors.New("review_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return revdom.Review{}, revdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return revdom.Review{}, revdom.ErrNotFound
		}
		return revdom.Review{}, err
	}
	return docToReview(snap)
}

func (r *ReviewRepositoryFS) ListByProductID(ctx context.Context, productID string) ([]revdom.Review, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("review_repository_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(productID)
	if pid == "" {
		return nil, revdom.ErrInvalidProductID
	}

	it := r.col().Where("productId", "==", pid).Documents(ctx)
	defer it.Stop()

	var out []revdom.Review
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		rv, err := docToReview(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}

	// Newest first; sorted app-side to avoid a composite index.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ReviewRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("review_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return revdom.ErrNotFound
	}

	ref := r.col().Doc(id)
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return revdom.ErrNotFound
		}
		return err
	}
	if !snap.Exists() {
		return revdom.ErrNotFound
	}

	_, err = ref.Delete(ctx)
	return err
}

// =======================
// Mapping
// =======================

type reviewDoc struct {
	ProductID string    `firestore:"productId"`
	UserID    string    `firestore:"userId"`
	UserName  string    `firestore:"userName"`
	Rating    int       `firestore:"rating"`
	Comment   string    `firestore:"comment"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func reviewDocFromDomain(rv revdom.Review) reviewDoc {
	return reviewDoc{
		ProductID: rv.ProductID,
		UserID:    rv.UserID,
		UserName:  rv.UserName,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
}

func docToReview(snap *firestore.DocumentSnapshot) (revdom.Review, error) {
	var raw reviewDoc
	if err := snap.DataTo(&raw); err != nil {
		return revdom.Review{}, err
	}
	return revdom.Review{
		ID:        snap.Ref.ID,
		ProductID: raw.ProductID,
		UserID:    raw.UserID,
		UserName:  raw.UserName,
		Rating:    raw.Rating,
		Comment:   raw.Comment,
		CreatedAt: raw.CreatedAt,
	}, nil
}
