// internal/adapters/out/firestore/product_repository_fs.go
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
	proddom "storefront/internal/domain/product"
)

const productsCollection = "products"

// ProductRepositoryFS implements product.Repository with Firestore.
type ProductRepositoryFS struct {
	Client *firestore.Client
	now    func() time.Time
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client, now: time.Now}
}

// Compile-time check
var _ proddom.Repository = (*ProductRepositoryFS)(nil)

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(productsCollection)
}

// =======================
// CRUD
// =======================

func (r *ProductRepositoryFS) Create(ctx context.Context, p proddom.Product) (proddom.Product, error) {
	if r == nil || r.Client == nil {
		return proddom.Product{}, errors.New("product_repository_fs: firestore client is nil")
	}

	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
	now := r.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.col().Doc(p.ID).Create(ctx, productDocFromDomain(p)); err != nil {
		return proddom.Product{}, err
	}
	return p, nil
}

func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (proddom.Product, error) {
	if r == nil || r.Client == nil {
		return proddom.Product{}, errors.New("product_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return proddom.Product{}, proddom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return proddom.Product{}, proddom.ErrNotFound
		}
		return proddom.Product{}, err
	}
	return docToProduct(snap)
}

// Update overwrites the whole document except stock, which only moves
// through DecrementStock / IncrementStock. The update runs in a
// transaction so a concurrent reservation is not clobbered.
func (r *ProductRepositoryFS) Update(ctx context.Context, p proddom.Product) (proddom.Product, error) {
	if r == nil || r.Client == nil {
		return proddom.Product{}, errors.New("product_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(p.ID)
	if id == "" {
		return proddom.Product{}, proddom.ErrNotFound
	}

	ref := r.col().Doc(id)
	now := r.now().UTC()

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return proddom.ErrNotFound
			}
			return err
		}
		cur, err := docToProduct(snap)
		if err != nil {
			return err
		}

		p.Stock = cur.Stock
		p.CreatedAt = cur.CreatedAt
		p.UpdatedAt = now
		return tx.Set(ref, productDocFromDomain(p))
	})
	if err != nil {
		return proddom.Product{}, err
	}
	return p, nil
}

func (r *ProductRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return proddom.ErrNotFound
	}

	ref := r.col().Doc(id)
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return proddom.ErrNotFound
		}
		return err
	}
	if !snap.Exists() {
		return proddom.ErrNotFound
	}

	_, err = ref.Delete(ctx)
	return err
}

// =======================
// Listing
// =======================

const defaultProductsPerPage = 12

// List scans the collection and applies the filter in memory. Substring
// and free-text matching have no native Firestore query, so the catalog
// (small, single collection) is filtered app-side; sorting and pagination
// then run over the filtered set so TotalCount reflects the filter.
func (r *ProductRepositoryFS) List(
	ctx context.Context,
	filter proddom.Filter,
	sortBy proddom.Sort,
	page proddom.Page,
) (proddom.PageResult, error) {
	if r == nil || r.Client == nil {
		return proddom.PageResult{}, errors.New("product_repository_fs: firestore client is nil")
	}

	it := r.col().Documents(ctx)
	defer it.Stop()

	var all []proddom.Product
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return proddom.PageResult{}, err
		}
		p, err := docToProduct(doc)
		if err != nil {
			return proddom.PageResult{}, err
		}
		if matchProductFilter(p, filter) {
			all = append(all, p)
		}
	}

	sortProducts(all, sortBy)

	pageNum, perPage := fscommon.NormalizePage(page.Number, page.PerPage, defaultProductsPerPage, 100)
	lo, hi := fscommon.SlicePage(len(all), pageNum, perPage)

	return proddom.PageResult{
		Items:      all[lo:hi],
		TotalCount: len(all),
		Page:       pageNum,
		PerPage:    perPage,
		TotalPages: fscommon.TotalPages(len(all), perPage),
	}, nil
}

func matchProductFilter(p proddom.Product, f proddom.Filter) bool {
	if strings.TrimSpace(f.Category) != "" && !p.HasCategory(f.Category) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if c := strings.ToLower(strings.TrimSpace(f.Color)); c != "" {
		if !strings.Contains(strings.ToLower(p.Color), c) {
			return false
		}
	}
	if s := strings.TrimSpace(f.Size); s != "" && !p.HasSize(s) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		hay := strings.ToLower(p.Name + " " + p.Description)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

func sortProducts(items []proddom.Product, s proddom.Sort) {
	less := func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) }

	switch s.Field {
	case proddom.SortByPrice:
		less = func(i, j int) bool { return items[i].Price < items[j].Price }
	case proddom.SortByName:
		less = func(i, j int) bool { return items[i].Name < items[j].Name }
	case proddom.SortByCreatedAt, "":
		less = func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) }
	}

	if s.Desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(items, less)
}

// =======================
// Stock movements
// =======================

// DecrementStock applies the atomic conditional decrement: inside the
// transaction the live stock is re-read, and the update only happens when
// stock >= qty still holds at that instant.
func (r *ProductRepositoryFS) DecrementStock(ctx context.Context, id string, qty int) error {
	if r == nil || r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}
	if qty <= 0 {
		return proddom.ErrInvalidStock
	}

	ref := r.col().Doc(strings.TrimSpace(id))
	now := r.now().UTC()

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return proddom.ErrNotFound
			}
			return err
		}
		p, err := docToProduct(snap)
		if err != nil {
			return err
		}
		if p.Stock < qty {
			return proddom.ErrInsufficientStock
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "stock", Value: p.Stock - qty},
			{Path: "updatedAt", Value: now},
		})
	})
}

func (r *ProductRepositoryFS) IncrementStock(ctx context.Context, id string, qty int) error {
	if r == nil || r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}
	if qty <= 0 {
		return proddom.ErrInvalidStock
	}

	ref := r.col().Doc(strings.TrimSpace(id))
	now := r.now().UTC()

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return proddom.ErrNotFound
			}
			return err
		}
		p, err := docToProduct(snap)
		if err != nil {
			return err
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "stock", Value: p.Stock + qty},
			{Path: "updatedAt", Value: now},
		})
	})
}

// =======================
// Mapping
// =======================

type productDoc struct {
	Name        string    `firestore:"name"`
	Description string    `firestore:"description"`
	Price       int       `firestore:"price"`
	Stock       int       `firestore:"stock"`
	Sizes       []string  `firestore:"sizes"`
	Color       string    `firestore:"color"`
	Categories  []string  `firestore:"categories"`
	ImageURL    string    `firestore:"imageUrl"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

func productDocFromDomain(p proddom.Product) productDoc {
	cats := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		cats = append(cats, string(c))
	}
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Sizes:       p.Sizes,
		Color:       p.Color,
		Categories:  cats,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func docToProduct(snap *firestore.DocumentSnapshot) (proddom.Product, error) {
	var raw productDoc
	if err := snap.DataTo(&raw); err != nil {
		return proddom.Product{}, err
	}

	cats := make([]proddom.Category, 0, len(raw.Categories))
	for _, c := range raw.Categories {
		pc, err := proddom.ParseCategory(c)
		if err != nil {
			continue
		}
		cats = append(cats, pc)
	}

	// docId is the source of truth for the id.
	return proddom.Product{
		ID:          snap.Ref.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Price:       raw.Price,
		Stock:       raw.Stock,
		Sizes:       raw.Sizes,
		Color:       raw.Color,
		Categories:  cats,
		ImageURL:    raw.ImageURL,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
	}, nil
}
