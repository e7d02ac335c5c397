// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	cartdom "storefront/internal/domain/cart"
	orderdom "storefront/internal/domain/order"
	proddom "storefront/internal/domain/product"
	revdom "storefront/internal/domain/review"
	userdom "storefront/internal/domain/user"
)

// In-memory repository fakes. They implement the same contracts the
// Firestore adapters do (not-found policies, atomicity per call) so the
// usecases under test cannot tell the difference.

var fakeNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// ------------------------------------------------------------
// products
// ------------------------------------------------------------

type fakeProductRepo struct {
	byID map[string]proddom.Product
}

func newFakeProductRepo(products ...proddom.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: map[string]proddom.Product{}}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

var _ proddom.Repository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(_ context.Context, p proddom.Product) (proddom.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (proddom.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return proddom.Product{}, proddom.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p proddom.Product) (proddom.Product, error) {
	cur, ok := r.byID[p.ID]
	if !ok {
		return proddom.Product{}, proddom.ErrNotFound
	}
	p.Stock = cur.Stock
	r.byID[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return proddom.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ proddom.Filter, _ proddom.Sort, _ proddom.Page) (proddom.PageResult, error) {
	items := make([]proddom.Product, 0, len(r.byID))
	for _, p := range r.byID {
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return proddom.PageResult{
		Items:      items,
		TotalCount: len(items),
		Page:       1,
		PerPage:    len(items),
		TotalPages: 1,
	}, nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id string, qty int) error {
	p, ok := r.byID[id]
	if !ok {
		return proddom.ErrNotFound
	}
	if p.Stock < qty {
		return proddom.ErrInsufficientStock
	}
	p.Stock -= qty
	r.byID[id] = p
	return nil
}

func (r *fakeProductRepo) IncrementStock(_ context.Context, id string, qty int) error {
	p, ok := r.byID[id]
	if !ok {
		return proddom.ErrNotFound
	}
	p.Stock += qty
	r.byID[id] = p
	return nil
}

// ------------------------------------------------------------
// carts
// ------------------------------------------------------------

type fakeCartRepo struct {
	byUser map[string]*cartdom.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{byUser: map[string]*cartdom.Cart{}}
}

var _ cartdom.Repository = (*fakeCartRepo)(nil)

func (r *fakeCartRepo) GetByUserID(_ context.Context, userID string) (*cartdom.Cart, error) {
	c, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Lines = append([]cartdom.Line(nil), c.Lines...)
	return &cp, nil
}

func (r *fakeCartRepo) Upsert(_ context.Context, c *cartdom.Cart) error {
	cp := *c
	cp.Lines = append([]cartdom.Line(nil), c.Lines...)
	r.byUser[c.ID] = &cp
	return nil
}

// ------------------------------------------------------------
// orders
// ------------------------------------------------------------

// fakeOrderRepo mirrors the Firestore adapter's transactional semantics:
// placement validates each line against the product fake, decrements
// stock, snapshots prices and clears the cart; cancellation and deletion
// restore held stock.
type fakeOrderRepo struct {
	products *fakeProductRepo
	carts    *fakeCartRepo
	byID     map[string]orderdom.Order
}

func newFakeOrderRepo(products *fakeProductRepo, carts *fakeCartRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		products: products,
		carts:    carts,
		byID:     map[string]orderdom.Order{},
	}
}

var _ orderdom.Repository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Place(ctx context.Context, userID string, lines []orderdom.PlacementLine, pricing orderdom.Pricing) (orderdom.Order, error) {
	snapshots := make([]orderdom.Line, 0, len(lines))
	taken := map[string]int{}
	for _, ln := range lines {
		p, ok := r.products.byID[ln.ProductID]
		if !ok {
			return orderdom.Order{}, proddom.ErrNotFound
		}
		if !p.HasSize(ln.Size) {
			return orderdom.Order{}, orderdom.ErrSizeUnavailable
		}
		if p.Stock-taken[ln.ProductID] < ln.Qty {
			return orderdom.Order{}, proddom.ErrInsufficientStock
		}
		taken[ln.ProductID] += ln.Qty
		snapshots = append(snapshots, orderdom.Line{
			ProductID:   p.ID,
			ProductName: p.Name,
			Size:        ln.Size,
			Qty:         ln.Qty,
			UnitPrice:   p.Price,
		})
	}

	subtotal := 0
	for _, s := range snapshots {
		subtotal += s.Qty * s.UnitPrice
	}
	o, err := orderdom.New(uuid.NewString(), userID, snapshots, pricing.ShippingFor(subtotal), fakeNow)
	if err != nil {
		return orderdom.Order{}, err
	}

	for pid, qty := range taken {
		p := r.products.byID[pid]
		p.Stock -= qty
		r.products.byID[pid] = p
	}
	r.byID[o.ID] = o
	if c, ok := r.carts.byUser[userID]; ok {
		c.Clear(fakeNow)
	}
	return o, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) ListByUserID(_ context.Context, userID string) ([]orderdom.Order, error) {
	var out []orderdom.Order
	for _, o := range r.byID {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter orderdom.Filter, _ orderdom.Page) (orderdom.PageResult, error) {
	var out []orderdom.Order
	for _, o := range r.byID {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return orderdom.PageResult{
		Items:      out,
		TotalCount: len(out),
		Page:       1,
		PerPage:    len(out),
		TotalPages: 1,
	}, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, to orderdom.Status) (orderdom.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	if !orderdom.CanTransition(o.Status, to) {
		return orderdom.Order{}, orderdom.ErrInvalidTransition
	}
	if to == orderdom.StatusCancelled {
		r.restore(o)
	}
	o.Status = to
	o.UpdatedAt = fakeNow
	r.byID[id] = o
	return o, nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	o, ok := r.byID[id]
	if !ok {
		return orderdom.ErrNotFound
	}
	if o.Status.HoldsStock() {
		r.restore(o)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeOrderRepo) Stats(_ context.Context, _, _ *time.Time) (orderdom.Stats, error) {
	st := orderdom.Stats{ByStatus: map[orderdom.Status]orderdom.StatusStats{}}
	for _, o := range r.byID {
		st.TotalOrders++
		st.TotalRevenue += o.Total
		s := st.ByStatus[o.Status]
		s.Count++
		s.Revenue += o.Total
		st.ByStatus[o.Status] = s
	}
	return st, nil
}

func (r *fakeOrderRepo) restore(o orderdom.Order) {
	for _, ln := range o.Lines {
		p, ok := r.products.byID[ln.ProductID]
		if !ok {
			continue
		}
		p.Stock += ln.Qty
		r.products.byID[ln.ProductID] = p
	}
}

// ------------------------------------------------------------
// reviews
// ------------------------------------------------------------

type fakeReviewRepo struct {
	byID map[string]revdom.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{byID: map[string]revdom.Review{}}
}

var _ revdom.Repository = (*fakeReviewRepo)(nil)

func (r *fakeReviewRepo) Create(_ context.Context, rv revdom.Review) (revdom.Review, error) {
	id := rv.ProductID + "__" + rv.UserID
	if _, ok := r.byID[id]; ok {
		return revdom.Review{}, revdom.ErrDuplicate
	}
	rv.ID = id
	r.byID[id] = rv
	return rv, nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id string) (revdom.Review, error) {
	rv, ok := r.byID[id]
	if !ok {
		return revdom.Review{}, revdom.ErrNotFound
	}
	return rv, nil
}

func (r *fakeReviewRepo) ListByProductID(_ context.Context, productID string) ([]revdom.Review, error) {
	var out []revdom.Review
	for _, rv := range r.byID {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return revdom.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ------------------------------------------------------------
// users
// ------------------------------------------------------------

type fakeUserRepo struct {
	byID map[string]userdom.User
}

func newFakeUserRepo(users ...userdom.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[string]userdom.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

var _ userdom.Repository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (userdom.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return userdom.User{}, userdom.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, u userdom.User) (userdom.User, error) {
	if cur, ok := r.byID[u.ID]; ok {
		u.Role = cur.Role
		u.CreatedAt = cur.CreatedAt
	}
	r.byID[u.ID] = u
	return u, nil
}

// ------------------------------------------------------------
// shared test fixtures
// ------------------------------------------------------------

func testProduct(id string, price, stock int, sizes ...string) proddom.Product {
	if len(sizes) == 0 {
		sizes = []string{"42"}
	}
	p, err := proddom.New(id, "Sneaker "+id, "desc", price, stock, sizes, "white", []string{"men"}, fakeNow)
	if err != nil {
		panic(err)
	}
	return p
}

func testUser(id string, role userdom.Role) userdom.User {
	return userdom.User{
		ID:        id,
		Email:     id + "@example.com",
		Name:      id,
		Role:      role,
		CreatedAt: fakeNow,
		UpdatedAt: fakeNow,
	}
}
