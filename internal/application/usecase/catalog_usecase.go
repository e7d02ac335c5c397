// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	proddom "storefront/internal/domain/product"
)

var (
	ErrCatalogRepoMissing = errors.New("catalog: product repository is not configured")
)

// ImageUploader is an outbound port for product image storage. The GCS
// adapter implements it; Upload returns a public URL.
type ImageUploader interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error)
}

// CatalogUsecase serves catalog reads for everyone and catalog writes for
// admins (the role gate lives at the HTTP boundary).
type CatalogUsecase struct {
	products proddom.Repository
	images   ImageUploader // optional
	now      func() time.Time
}

func NewCatalogUsecase(products proddom.Repository, images ImageUploader) *CatalogUsecase {
	return &CatalogUsecase{
		products: products,
		images:   images,
		now:      time.Now,
	}
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (proddom.Product, error) {
	if u == nil || u.products == nil {
		return proddom.Product{}, ErrCatalogRepoMissing
	}
	return u.products.GetByID(ctx, id)
}

func (u *CatalogUsecase) ListProducts(
	ctx context.Context,
	filter proddom.Filter,
	sort proddom.Sort,
	page proddom.Page,
) (proddom.PageResult, error) {
	if u == nil || u.products == nil {
		return proddom.PageResult{}, ErrCatalogRepoMissing
	}
	return u.products.List(ctx, filter, sort, page)
}

// CreateProductInput is the admin-facing shape for catalog writes.
type CreateProductInput struct {
	Name        string
	Description string
	Price       int
	Stock       int
	Sizes       []string
	Color       string
	Categories  []string
}

func (u *CatalogUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (proddom.Product, error) {
	if u == nil || u.products == nil {
		return proddom.Product{}, ErrCatalogRepoMissing
	}

	p, err := proddom.New("", in.Name, in.Description, in.Price, in.Stock, in.Sizes, in.Color, in.Categories, u.now())
	if err != nil {
		return proddom.Product{}, err
	}
	return u.products.Create(ctx, p)
}

// UpdateProduct replaces the product's descriptive fields. Stock is
// intentionally absent: it only moves through reservations and restores.
func (u *CatalogUsecase) UpdateProduct(ctx context.Context, id string, in CreateProductInput) (proddom.Product, error) {
	if u == nil || u.products == nil {
		return proddom.Product{}, ErrCatalogRepoMissing
	}

	cur, err := u.products.GetByID(ctx, id)
	if err != nil {
		return proddom.Product{}, err
	}

	p, err := proddom.New(cur.ID, in.Name, in.Description, in.Price, cur.Stock, in.Sizes, in.Color, in.Categories, u.now())
	if err != nil {
		return proddom.Product{}, err
	}
	p.ImageURL = cur.ImageURL
	p.CreatedAt = cur.CreatedAt
	return u.products.Update(ctx, p)
}

func (u *CatalogUsecase) DeleteProduct(ctx context.Context, id string) error {
	if u == nil || u.products == nil {
		return ErrCatalogRepoMissing
	}
	return u.products.Delete(ctx, id)
}

var ErrImageUploaderMissing = errors.New("catalog: image uploader is not configured")

// AttachImage uploads the image bytes and stores the resulting URL on the
// product.
func (u *CatalogUsecase) AttachImage(ctx context.Context, productID, contentType string, data []byte) (proddom.Product, error) {
	if u == nil || u.products == nil {
		return proddom.Product{}, ErrCatalogRepoMissing
	}
	if u.images == nil {
		return proddom.Product{}, ErrImageUploaderMissing
	}

	p, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return proddom.Product{}, err
	}

	ext := extForContentType(contentType)
	url, err := u.images.Upload(ctx, "products/"+p.ID+ext, contentType, data)
	if err != nil {
		return proddom.Product{}, err
	}

	p.ImageURL = url
	return u.products.Update(ctx, p)
}

func extForContentType(ct string) string {
	switch strings.ToLower(strings.TrimSpace(ct)) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
