// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	orderdom "storefront/internal/domain/order"
	userdom "storefront/internal/domain/user"
)

var (
	ErrOrderRepoMissing = errors.New("order: repository is not configured")

	// ErrForbidden is surfaced when the requester is neither the owner
	// nor an admin for an owner-scoped operation.
	ErrForbidden = errors.New("order: requester is not allowed")
)

// OrderMailer is an outbound port for the confirmation mail sent after a
// successful placement. Sending is best-effort; a mail failure never
// fails the order.
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, to string, o orderdom.Order) error
}

// OrderUsecase fronts the order workflow and the status engine. Atomicity
// lives in the repository (one store transaction per operation); this
// layer owns input validation, authorization and the pricing policy.
type OrderUsecase struct {
	orders  orderdom.Repository
	pricing orderdom.Pricing
	mailer  OrderMailer // optional
}

func NewOrderUsecase(orders orderdom.Repository, pricing orderdom.Pricing, mailer OrderMailer) *OrderUsecase {
	return &OrderUsecase{
		orders:  orders,
		pricing: pricing,
		mailer:  mailer,
	}
}

// PlaceLineInput mirrors one requested line. Prices are deliberately not
// part of the input.
type PlaceLineInput struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Qty       int    `json:"qty"`
}

// Place runs the order workflow for the authenticated user.
func (u *OrderUsecase) Place(ctx context.Context, requester userdom.User, lines []PlaceLineInput) (orderdom.Order, error) {
	if u == nil || u.orders == nil {
		return orderdom.Order{}, ErrOrderRepoMissing
	}
	if len(lines) == 0 {
		return orderdom.Order{}, orderdom.ErrEmptyLines
	}

	req := make([]orderdom.PlacementLine, 0, len(lines))
	for _, ln := range lines {
		if strings.TrimSpace(ln.ProductID) == "" || strings.TrimSpace(ln.Size) == "" {
			return orderdom.Order{}, orderdom.ErrInvalidLine
		}
		if ln.Qty < orderdom.MinQtyPerLine || ln.Qty > orderdom.MaxQtyPerLine {
			return orderdom.Order{}, orderdom.ErrQtyOutOfRange
		}
		req = append(req, orderdom.PlacementLine{
			ProductID: strings.TrimSpace(ln.ProductID),
			Size:      strings.TrimSpace(ln.Size),
			Qty:       ln.Qty,
		})
	}

	o, err := u.orders.Place(ctx, requester.ID, req, u.pricing)
	if err != nil {
		return orderdom.Order{}, err
	}

	if u.mailer != nil && strings.TrimSpace(requester.Email) != "" {
		if mErr := u.mailer.SendOrderConfirmation(ctx, requester.Email, o); mErr != nil {
			log.Printf("[order_uc] WARN: confirmation mail failed orderId=%s err=%v", o.ID, mErr)
		}
	}

	log.Printf("[order_uc] placed orderId=%s userId=%s lines=%d total=%d", o.ID, o.UserID, len(o.Lines), o.Total)
	return o, nil
}

// Get returns one order; only the owner or an admin may see it.
func (u *OrderUsecase) Get(ctx context.Context, requester userdom.User, orderID string) (orderdom.Order, error) {
	if u == nil || u.orders == nil {
		return orderdom.Order{}, ErrOrderRepoMissing
	}

	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return orderdom.Order{}, err
	}
	if o.UserID != requester.ID && !requester.IsAdmin() {
		return orderdom.Order{}, ErrForbidden
	}
	return o, nil
}

// ListMine returns the requester's orders, newest first.
func (u *OrderUsecase) ListMine(ctx context.Context, requester userdom.User) ([]orderdom.Order, error) {
	if u == nil || u.orders == nil {
		return nil, ErrOrderRepoMissing
	}
	return u.orders.ListByUserID(ctx, requester.ID)
}

// UpdateStatus applies one transition (admin only; the role gate sits at
// the router, the capability is re-checked here).
func (u *OrderUsecase) UpdateStatus(ctx context.Context, requester userdom.User, orderID string, to orderdom.Status) (orderdom.Order, error) {
	if u == nil || u.orders == nil {
		return orderdom.Order{}, ErrOrderRepoMissing
	}
	if !requester.IsAdmin() {
		return orderdom.Order{}, ErrForbidden
	}
	return u.orders.UpdateStatus(ctx, orderID, to)
}

// Cancel is the owner-facing cancellation: a transition to cancelled,
// allowed for the owner as well as admins.
func (u *OrderUsecase) Cancel(ctx context.Context, requester userdom.User, orderID string) (orderdom.Order, error) {
	if u == nil || u.orders == nil {
		return orderdom.Order{}, ErrOrderRepoMissing
	}

	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return orderdom.Order{}, err
	}
	if o.UserID != requester.ID && !requester.IsAdmin() {
		return orderdom.Order{}, ErrForbidden
	}
	return u.orders.UpdateStatus(ctx, orderID, orderdom.StatusCancelled)
}

// Delete removes an order (owner or admin). Stock held by a pending or
// processing order is restored by the repository transaction.
func (u *OrderUsecase) Delete(ctx context.Context, requester userdom.User, orderID string) error {
	if u == nil || u.orders == nil {
		return ErrOrderRepoMissing
	}

	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != requester.ID && !requester.IsAdmin() {
		return ErrForbidden
	}
	return u.orders.Delete(ctx, orderID)
}

// AdminList is the paginated, filterable listing for the back office.
func (u *OrderUsecase) AdminList(
	ctx context.Context,
	requester userdom.User,
	filter orderdom.Filter,
	page orderdom.Page,
) (orderdom.PageResult, error) {
	if u == nil || u.orders == nil {
		return orderdom.PageResult{}, ErrOrderRepoMissing
	}
	if !requester.IsAdmin() {
		return orderdom.PageResult{}, ErrForbidden
	}
	return u.orders.List(ctx, filter, page)
}

// AdminStats aggregates counts and revenue by status over a date range.
func (u *OrderUsecase) AdminStats(ctx context.Context, requester userdom.User, from, to *time.Time) (orderdom.Stats, error) {
	if u == nil || u.orders == nil {
		return orderdom.Stats{}, ErrOrderRepoMissing
	}
	if !requester.IsAdmin() {
		return orderdom.Stats{}, ErrForbidden
	}
	return u.orders.Stats(ctx, from, to)
}
