// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	fscommon "storefront/internal/adapters/out/firestore/common"
	orderdom "storefront/internal/domain/order"
	proddom "storefront/internal/domain/product"
)

const ordersCollection = "orders"

// OrderRepositoryFS implements order.Repository with Firestore. The
// transactional operations (Place / UpdateStatus / Delete) span the
// products, orders and carts collections inside one RunTransaction, which
// is what guarantees stock movements, the order document and the cart
// document change together or not at all.
type OrderRepositoryFS struct {
	Client *firestore.Client
	now    func() time.Time
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client, now: time.Now}
}

var _ orderdom.Repository = (*OrderRepositoryFS)(nil)

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(ordersCollection)
}

// =======================
// Place (the core workflow)
// =======================

// Place runs the order workflow in one transaction.
//
// Firestore requires every read in a transaction to happen before the
// first write, so the per-line validate-then-decrement loop is split into
// a read phase (get product, check size, check stock, accumulate price)
// and a write phase (decrement stock, create order, empty cart). Failure
// semantics are unchanged: the first violated precondition aborts the
// whole transaction and nothing is persisted. On commit contention
// Firestore re-runs the function; a re-run that now sees insufficient
// stock aborts with product.ErrInsufficientStock, so two orders racing for
// the last unit produce exactly one winner.
func (r *OrderRepositoryFS) Place(
	ctx context.Context,
	userID string,
	lines []orderdom.PlacementLine,
	pricing orderdom.Pricing,
) (orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return orderdom.Order{}, orderdom.ErrInvalidUserID
	}
	if len(lines) == 0 {
		return orderdom.Order{}, orderdom.ErrEmptyLines
	}
	for _, ln := range lines {
		if strings.TrimSpace(ln.ProductID) == "" || strings.TrimSpace(ln.Size) == "" {
			return orderdom.Order{}, orderdom.ErrInvalidLine
		}
		if ln.Qty < orderdom.MinQtyPerLine || ln.Qty > orderdom.MaxQtyPerLine {
			return orderdom.Order{}, orderdom.ErrQtyOutOfRange
		}
	}

	orderID := uuid.NewString()
	now := r.now().UTC()
	cartRef := r.Client.Collection(cartsCollection).Doc(uid)

	var placed orderdom.Order
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// ---- read phase ----
		// Products are read once each; remaining tracks the stock left
		// after the preceding lines so the same product requested twice
		// (e.g. two sizes) is checked cumulatively, matching a sequential
		// per-line decrement.
		products := map[string]proddom.Product{}
		remaining := map[string]int{}

		snapshots := make([]orderdom.Line, 0, len(lines))
		for _, ln := range lines {
			pid := strings.TrimSpace(ln.ProductID)

			p, ok := products[pid]
			if !ok {
				snap, err := tx.Get(r.Client.Collection(productsCollection).Doc(pid))
				if err != nil {
					if status.Code(err) == codes.NotFound {
						return proddom.ErrNotFound
					}
					return err
				}
				p, err = docToProduct(snap)
				if err != nil {
					return err
				}
				products[pid] = p
				remaining[pid] = p.Stock
			}

			if !p.HasSize(ln.Size) {
				return orderdom.ErrSizeUnavailable
			}
			if remaining[pid] < ln.Qty {
				return proddom.ErrInsufficientStock
			}
			remaining[pid] -= ln.Qty

			snapshots = append(snapshots, orderdom.Line{
				ProductID:   pid,
				ProductName: p.Name,
				Size:        strings.TrimSpace(ln.Size),
				Qty:         ln.Qty,
				UnitPrice:   p.Price,
			})
		}

		// The cart read must also happen before any write.
		cartSnap, err := tx.Get(cartRef)
		cartExists := true
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}
			cartExists = false
		}

		subtotal := 0
		for _, s := range snapshots {
			subtotal += s.Qty * s.UnitPrice
		}

		o, err := orderdom.New(orderID, uid, snapshots, pricing.ShippingFor(subtotal), now)
		if err != nil {
			return err
		}

		// ---- write phase ----
		for pid := range products {
			if err := tx.Update(r.Client.Collection(productsCollection).Doc(pid), []firestore.Update{
				{Path: "stock", Value: remaining[pid]},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}

		if err := tx.Create(r.col().Doc(o.ID), orderDocFromDomain(o)); err != nil {
			return err
		}

		if cartExists {
			cleared, err := docToCart(cartSnap)
			if err != nil {
				return err
			}
			cleared.ID = uid
			cleared.Clear(now)
			if err := tx.Set(cartRef, cartDocFromDomain(cleared)); err != nil {
				return err
			}
		}

		placed = o
		return nil
	})
	if err != nil {
		return orderdom.Order{}, err
	}
	return placed, nil
}

// =======================
// Queries
// =======================

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}
	return docToOrder(snap)
}

func (r *OrderRepositoryFS) ListByUserID(ctx context.Context, userID string) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, orderdom.ErrInvalidUserID
	}

	it := r.col().Where("userId", "==", uid).Documents(ctx)
	defer it.Stop()

	var out []orderdom.Order
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		o, err := docToOrder(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	// Newest first; sorted app-side to avoid a composite index.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

const defaultOrdersPerPage = 20

func (r *OrderRepositoryFS) List(
	ctx context.Context,
	filter orderdom.Filter,
	page orderdom.Page,
) (orderdom.PageResult, error) {
	if r == nil || r.Client == nil {
		return orderdom.PageResult{}, errors.New("order_repository_fs: firestore client is nil")
	}

	it := r.col().Documents(ctx)
	defer it.Stop()

	var all []orderdom.Order
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return orderdom.PageResult{}, err
		}
		o, err := docToOrder(doc)
		if err != nil {
			return orderdom.PageResult{}, err
		}
		if matchOrderFilter(o, filter) {
			all = append(all, o)
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	pageNum, perPage := fscommon.NormalizePage(page.Number, page.PerPage, defaultOrdersPerPage, 100)
	lo, hi := fscommon.SlicePage(len(all), pageNum, perPage)

	return orderdom.PageResult{
		Items:      all[lo:hi],
		TotalCount: len(all),
		Page:       pageNum,
		PerPage:    perPage,
		TotalPages: fscommon.TotalPages(len(all), perPage),
	}, nil
}

func matchOrderFilter(o orderdom.Order, f orderdom.Filter) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.From != nil && o.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && o.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

// =======================
// Status engine
// =======================

// UpdateStatus applies one transition. Moving to cancelled restores every
// line's qty to its product's stock inside the same transaction. Products
// deleted from the catalog since placement are skipped so cancellation
// cannot wedge on a missing document.
func (r *OrderRepositoryFS) UpdateStatus(ctx context.Context, id string, to orderdom.Status) (orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}
	if _, err := orderdom.ParseStatus(string(to)); err != nil {
		return orderdom.Order{}, err
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	ref := r.col().Doc(id)
	now := r.now().UTC()

	var updated orderdom.Order
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return orderdom.ErrNotFound
			}
			return err
		}
		o, err := docToOrder(snap)
		if err != nil {
			return err
		}

		if !orderdom.CanTransition(o.Status, to) {
			return orderdom.ErrInvalidTransition
		}

		var restores []stockRestore
		if to == orderdom.StatusCancelled {
			restores, err = r.readRestores(tx, o)
			if err != nil {
				return err
			}
		}

		for _, res := range restores {
			if err := tx.Update(res.ref, []firestore.Update{
				{Path: "stock", Value: res.newStock},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}

		o.Status = to
		o.UpdatedAt = now
		if err := tx.Set(ref, orderDocFromDomain(o)); err != nil {
			return err
		}

		updated = o
		return nil
	})
	if err != nil {
		return orderdom.Order{}, err
	}
	return updated, nil
}

// Delete removes an order, restoring stock first when the current status
// still holds a reservation.
func (r *OrderRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.ErrNotFound
	}

	ref := r.col().Doc(id)
	now := r.now().UTC()

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return orderdom.ErrNotFound
			}
			return err
		}
		o, err := docToOrder(snap)
		if err != nil {
			return err
		}

		var restores []stockRestore
		if o.Status.HoldsStock() {
			restores, err = r.readRestores(tx, o)
			if err != nil {
				return err
			}
		}

		for _, res := range restores {
			if err := tx.Update(res.ref, []firestore.Update{
				{Path: "stock", Value: res.newStock},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}

		return tx.Delete(ref)
	})
}

type stockRestore struct {
	ref      *firestore.DocumentRef
	newStock int
}

// readRestores reads every product referenced by the order (read phase of
// the surrounding transaction) and computes the post-restore stock,
// aggregating lines that share a product.
func (r *OrderRepositoryFS) readRestores(tx *firestore.Transaction, o orderdom.Order) ([]stockRestore, error) {
	qtyByProduct := map[string]int{}
	orderOfFirstUse := []string{}
	for _, ln := range o.Lines {
		if _, ok := qtyByProduct[ln.ProductID]; !ok {
			orderOfFirstUse = append(orderOfFirstUse, ln.ProductID)
		}
		qtyByProduct[ln.ProductID] += ln.Qty
	}

	out := make([]stockRestore, 0, len(qtyByProduct))
	for _, pid := range orderOfFirstUse {
		ref := r.Client.Collection(productsCollection).Doc(pid)
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				continue
			}
			return nil, err
		}
		p, err := docToProduct(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, stockRestore{ref: ref, newStock: p.Stock + qtyByProduct[pid]})
	}
	return out, nil
}

// =======================
// Stats
// =======================

// Stats scans orders (optionally bounded by createdAt) and aggregates
// counts and revenue per status app-side.
func (r *OrderRepositoryFS) Stats(ctx context.Context, from, to *time.Time) (orderdom.Stats, error) {
	if r == nil || r.Client == nil {
		return orderdom.Stats{}, errors.New("order_repository_fs: firestore client is nil")
	}

	q := r.col().Query
	if from != nil {
		q = q.Where("createdAt", ">=", from.UTC())
	}
	if to != nil {
		q = q.Where("createdAt", "<=", to.UTC())
	}

	it := q.Documents(ctx)
	defer it.Stop()

	stats := orderdom.Stats{ByStatus: map[orderdom.Status]orderdom.StatusStats{}}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return orderdom.Stats{}, err
		}
		o, err := docToOrder(doc)
		if err != nil {
			return orderdom.Stats{}, err
		}

		stats.TotalOrders++
		stats.TotalRevenue += o.Total

		s := stats.ByStatus[o.Status]
		s.Count++
		s.Revenue += o.Total
		stats.ByStatus[o.Status] = s
	}
	return stats, nil
}

// =======================
// Mapping
// =======================

type orderLineDoc struct {
	ProductID   string `firestore:"productId"`
	ProductName string `firestore:"productName"`
	Size        string `firestore:"size"`
	Qty         int    `firestore:"qty"`
	UnitPrice   int    `firestore:"unitPrice"`
}

type orderDoc struct {
	UserID    string         `firestore:"userId"`
	Lines     []orderLineDoc `firestore:"lines"`
	Subtotal  int            `firestore:"subtotal"`
	Shipping  int            `firestore:"shipping"`
	Total     int            `firestore:"total"`
	Status    string         `firestore:"status"`
	CreatedAt time.Time      `firestore:"createdAt"`
	UpdatedAt time.Time      `firestore:"updatedAt"`
}

func orderDocFromDomain(o orderdom.Order) orderDoc {
	// total == subtotal + shipping is re-derived on every persist.
	o.Normalize()

	lines := make([]orderLineDoc, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineDoc{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Size:        l.Size,
			Qty:         l.Qty,
			UnitPrice:   l.UnitPrice,
		})
	}
	return orderDoc{
		UserID:    o.UserID,
		Lines:     lines,
		Subtotal:  o.Subtotal,
		Shipping:  o.Shipping,
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func docToOrder(snap *firestore.DocumentSnapshot) (orderdom.Order, error) {
	var raw orderDoc
	if err := snap.DataTo(&raw); err != nil {
		return orderdom.Order{}, err
	}

	st, err := orderdom.ParseStatus(raw.Status)
	if err != nil {
		return orderdom.Order{}, err
	}

	lines := make([]orderdom.Line, 0, len(raw.Lines))
	for _, l := range raw.Lines {
		lines = append(lines, orderdom.Line{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Size:        l.Size,
			Qty:         l.Qty,
			UnitPrice:   l.UnitPrice,
		})
	}

	o := orderdom.Order{
		ID:        snap.Ref.ID,
		UserID:    raw.UserID,
		Lines:     lines,
		Shipping:  raw.Shipping,
		Status:    st,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}
	o.Normalize()
	return o, nil
}
