// internal/domain/product/entity.go
package product

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("product: not found")
	ErrInvalidID         = errors.New("product: invalid id")
	ErrInvalidName       = errors.New("product: invalid name")
	ErrInvalidPrice      = errors.New("product: price must be >= 0")
	ErrInvalidStock      = errors.New("product: stock must be >= 0")
	ErrInvalidSizes      = errors.New("product: at least one size is required")
	ErrInvalidCategory   = errors.New("product: invalid category")
	ErrInsufficientStock = errors.New("product: insufficient stock")
)

// Category is a fixed 2-value enum. Matching is case-insensitive at the
// filter boundary; the stored value is always the canonical lowercase form.
type Category string

const (
	CategoryMen   Category = "men"
	CategoryWomen Category = "women"
)

// ParseCategory normalizes a raw category string.
func ParseCategory(raw string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(CategoryMen):
		return CategoryMen, nil
	case string(CategoryWomen):
		return CategoryWomen, nil
	default:
		return "", ErrInvalidCategory
	}
}

// Product is one catalog document.
//   - Price is in the store's minor currency unit (cents).
//   - Stock is never mutated directly; all changes go through the
//     conditional decrement / increment repository operations.
type Product struct {
	ID          string     `json:"id" firestore:"id"`
	Name        string     `json:"name" firestore:"name"`
	Description string     `json:"description" firestore:"description"`
	Price       int        `json:"price" firestore:"price"`
	Stock       int        `json:"stock" firestore:"stock"`
	Sizes       []string   `json:"sizes" firestore:"sizes"`
	Color       string     `json:"color" firestore:"color"`
	Categories  []Category `json:"categories" firestore:"categories"`
	ImageURL    string     `json:"imageUrl,omitempty" firestore:"imageUrl"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// New builds a validated Product. id may be empty; the repository assigns
// one on create.
func New(
	id string,
	name string,
	description string,
	price int,
	stock int,
	sizes []string,
	color string,
	categories []string,
	now time.Time,
) (Product, error) {
	p := Product{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		Stock:       stock,
		Sizes:       normalizeSizes(sizes),
		Color:       strings.TrimSpace(color),
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}

	cats, err := normalizeCategories(categories)
	if err != nil {
		return Product{}, err
	}
	p.Categories = cats

	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// HasSize reports whether size is in the available-sizes set.
func (p Product) HasSize(size string) bool {
	size = strings.TrimSpace(size)
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasCategory matches case-insensitively.
func (p Product) HasCategory(raw string) bool {
	c, err := ParseCategory(raw)
	if err != nil {
		return false
	}
	for _, pc := range p.Categories {
		if pc == c {
			return true
		}
	}
	return false
}

func (p Product) validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	if len(p.Sizes) == 0 {
		return ErrInvalidSizes
	}
	if len(p.Categories) == 0 {
		return ErrInvalidCategory
	}
	return nil
}

func normalizeSizes(raw []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func normalizeCategories(raw []string) ([]Category, error) {
	seen := map[Category]struct{}{}
	out := make([]Category, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		c, err := ParseCategory(s)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
