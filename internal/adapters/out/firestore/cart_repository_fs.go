// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "storefront/internal/domain/cart"
)

const cartsCollection = "carts"

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: carts
// - docId: userId (docId is the source of truth)
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

var _ cartdom.Repository = (*CartRepositoryFS)(nil)

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(cartsCollection)
}

// GetByUserID returns (nil, nil) if not found; the application layer
// creates the cart lazily on first add.
func (r *CartRepositoryFS) GetByUserID(ctx context.Context, userID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("cart_repository_fs: userID is empty")
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	c, err := docToCart(snap)
	if err != nil {
		return nil, err
	}
	c.ID = uid
	return c, nil
}

// Upsert overwrites the full document (simple & predictable).
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_fs: cart is nil")
	}

	uid := strings.TrimSpace(c.ID)
	if uid == "" {
		return errors.New("cart_repository_fs: Upsert requires cart.ID (= userId) as docId")
	}

	_, err := r.col().Doc(uid).Set(ctx, cartDocFromDomain(c))
	return err
}

// =======================
// Mapping
// =======================

type cartLineDoc struct {
	ID          string `firestore:"id"`
	ProductID   string `firestore:"productId"`
	ProductName string `firestore:"productName"`
	Size        string `firestore:"size"`
	Qty         int    `firestore:"qty"`
	UnitPrice   int    `firestore:"unitPrice"`
}

type cartDoc struct {
	Lines     []cartLineDoc `firestore:"lines"`
	Total     int           `firestore:"total"`
	CreatedAt time.Time     `firestore:"createdAt"`
	UpdatedAt time.Time     `firestore:"updatedAt"`
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	lines := make([]cartLineDoc, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, cartLineDoc{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Size:        l.Size,
			Qty:         l.Qty,
			UnitPrice:   l.UnitPrice,
		})
	}
	return cartDoc{
		Lines:     lines,
		Total:     c.Total,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func docToCart(snap *firestore.DocumentSnapshot) (*cartdom.Cart, error) {
	var raw cartDoc
	if err := snap.DataTo(&raw); err != nil {
		return nil, err
	}

	lines := make([]cartdom.Line, 0, len(raw.Lines))
	total := 0
	for _, l := range raw.Lines {
		lines = append(lines, cartdom.Line{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Size:        l.Size,
			Qty:         l.Qty,
			UnitPrice:   l.UnitPrice,
		})
		total += l.Qty * l.UnitPrice
	}

	// Derived total is recomputed from lines, never trusted from the doc.
	return &cartdom.Cart{
		ID:        snap.Ref.ID,
		Lines:     lines,
		Total:     total,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}, nil
}
