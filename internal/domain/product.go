package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Product represents one catalog item with its descriptive fields and
// association name lists, as stored by the catalog store.
type Product struct {
	ID          int64
	Name        string
	Description string
	Specs       string
	Price       *float64
	InStock     bool
	ReleaseDate time.Time
	Brands      []string
	Categories  []string
	Features    []string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FormatPrice renders the product price with two decimals, or "n/a" when the
// product has no price.
func (p Product) FormatPrice() string {
	if p.Price == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*p.Price, 'f', 2, 64)
}

// DescriptiveText renders the product as the labeled multi-line block used
// both for embedding generation and for grounding chat answers. The layout is
// fixed: building it twice from the same product yields identical text.
func (p Product) DescriptiveText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Id: %d\n", p.ID)
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Description: %s\n", p.Description)
	fmt.Fprintf(&b, "Specs: %s\n", p.Specs)
	fmt.Fprintf(&b, "Price: %s\n", p.FormatPrice())
	fmt.Fprintf(&b, "InStock: %t\n", p.InStock)
	fmt.Fprintf(&b, "ReleaseDate: %s\n", p.ReleaseDate.Format(time.DateOnly))
	fmt.Fprintf(&b, "Brands: %s\n", strings.Join(p.Brands, ", "))
	fmt.Fprintf(&b, "Categories: %s\n", strings.Join(p.Categories, ", "))
	fmt.Fprintf(&b, "Features: %s\n", strings.Join(p.Features, ", "))
	fmt.Fprintf(&b, "Tags: %s", strings.Join(p.Tags, ", "))
	return b.String()
}

// MentionedIn reports whether the answer text already references this product
// by name or identifier.
func (p Product) MentionedIn(answer string) bool {
	lowered := strings.ToLower(answer)
	if p.Name != "" && strings.Contains(lowered, strings.ToLower(p.Name)) {
		return true
	}
	return strings.Contains(answer, strconv.FormatInt(p.ID, 10))
}

// ListProductsParams represents the parameters for listing products.
type ListProductsParams struct {
	ReleasedAfter  *time.Time
	ReleasedBefore *time.Time
}

// ListProductOptions defines a function type for modifying ListProductsParams.
type ListProductOptions func(*ListProductsParams)

// WithReleasedAfter filters products released on or after the given date.
func WithReleasedAfter(t time.Time) ListProductOptions {
	return func(params *ListProductsParams) {
		params.ReleasedAfter = &t
	}
}

// WithReleasedBefore filters products released on or before the given date.
func WithReleasedBefore(t time.Time) ListProductOptions {
	return func(params *ListProductsParams) {
		params.ReleasedBefore = &t
	}
}

// ProductRepository defines the catalog store query surface.
type ProductRepository interface {
	// ListProducts retrieves a page of products with their associations.
	ListProducts(ctx context.Context, page int, pageSize int, opts ...ListProductOptions) ([]Product, bool, error)

	// ListAllProducts retrieves every product with its associations.
	ListAllProducts(ctx context.Context) ([]Product, error)

	// GetProduct retrieves one product by its identifier.
	GetProduct(ctx context.Context, id int64) (Product, bool, error)

	// GetProductsByIDs retrieves the products matching the given identifier set.
	GetProductsByIDs(ctx context.Context, ids []int64) ([]Product, error)

	// GetLowestPricedProduct retrieves the product with the lowest non-null
	// price, ties broken by lowest identifier.
	GetLowestPricedProduct(ctx context.Context) (Product, bool, error)

	// CountProducts returns the total number of products in the catalog.
	CountProducts(ctx context.Context) (int, error)
}
