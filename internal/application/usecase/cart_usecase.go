// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	cartdom "storefront/internal/domain/cart"
	proddom "storefront/internal/domain/product"
)

var (
	ErrCartRepoMissing = errors.New("cart: repositories are not configured")
	ErrCartUserEmpty   = errors.New("cart: userId is empty")
)

// CartUsecase owns cart mutations. Every mutation re-checks the live
// catalog (size offered, stock sufficient) and recomputes the derived
// total before persisting; nothing from the client besides ids and
// quantities is trusted.
type CartUsecase struct {
	carts    cartdom.Repository
	products proddom.Repository
	now      func() time.Time
	newID    func() string
}

func NewCartUsecase(carts cartdom.Repository, products proddom.Repository) *CartUsecase {
	return &CartUsecase{
		carts:    carts,
		products: products,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Get returns the user's cart, or an empty one if none exists yet. The
// empty cart is not persisted; it materializes on the first add.
func (u *CartUsecase) Get(ctx context.Context, userID string) (*cartdom.Cart, error) {
	if u == nil || u.carts == nil {
		return nil, ErrCartRepoMissing
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartUserEmpty
	}

	c, err := u.carts.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return cartdom.New(uid, u.now())
	}
	return c, nil
}

// AddLineInput is the client-facing add shape. The unit price is captured
// from the catalog here, not taken from the client.
type AddLineInput struct {
	ProductID string
	Size      string
	Qty       int
}

// AddLine merges into an existing (product, size) line or appends a new
// one. The merged quantity must respect both the per-line cap and the
// product's live stock; a violation leaves the cart untouched.
func (u *CartUsecase) AddLine(ctx context.Context, userID string, in AddLineInput) (*cartdom.Cart, error) {
	if u == nil || u.carts == nil || u.products == nil {
		return nil, ErrCartRepoMissing
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartUserEmpty
	}
	if in.Qty < 1 || in.Qty > cartdom.MaxQtyPerLine {
		return nil, cartdom.ErrQtyOutOfRange
	}

	p, err := u.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.HasSize(in.Size) {
		return nil, proddom.ErrNotFound
	}

	c, err := u.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	if c.MergedQty(p.ID, in.Size, in.Qty) > p.Stock {
		return nil, proddom.ErrInsufficientStock
	}

	if err := c.AddLine(u.newID(), p.ID, p.Name, in.Size, in.Qty, p.Price, u.now()); err != nil {
		return nil, err
	}

	if err := u.carts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetLineQty replaces a line's quantity; qty 0 removes the line. Raising
// the quantity is bounded by the product's live stock, same as AddLine.
func (u *CartUsecase) SetLineQty(ctx context.Context, userID, lineID string, qty int) (*cartdom.Cart, error) {
	if u == nil || u.carts == nil || u.products == nil {
		return nil, ErrCartRepoMissing
	}

	c, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if qty > 0 {
		line, ok := c.Line(lineID)
		if !ok {
			return nil, cartdom.ErrLineNotFound
		}
		if qty > line.Qty {
			p, err := u.products.GetByID(ctx, line.ProductID)
			if err != nil {
				return nil, err
			}
			if qty > p.Stock {
				return nil, proddom.ErrInsufficientStock
			}
		}
	}

	if err := c.SetLineQty(lineID, qty, u.now()); err != nil {
		return nil, err
	}

	if err := u.carts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *CartUsecase) RemoveLine(ctx context.Context, userID, lineID string) (*cartdom.Cart, error) {
	if u == nil || u.carts == nil {
		return nil, ErrCartRepoMissing
	}

	c, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveLine(lineID, u.now()); err != nil {
		return nil, err
	}

	if err := u.carts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the cart. Idempotent: clearing an absent or already empty
// cart succeeds and reports lines empty, total 0.
func (u *CartUsecase) Clear(ctx context.Context, userID string) (*cartdom.Cart, error) {
	if u == nil || u.carts == nil {
		return nil, ErrCartRepoMissing
	}

	c, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Clear(u.now())

	if err := u.carts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
