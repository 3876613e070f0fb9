package domain

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// CatalogDigestContent holds the catalog facts a digest is generated from.
type CatalogDigestContent struct {
	ProductCount   int      `json:"product_count" toon:"product_count"`
	InStockCount   int      `json:"in_stock_count" toon:"in_stock_count"`
	TopSellers     []string `json:"top_sellers" toon:"top_sellers"`
	NewestArrivals []string `json:"newest_arrivals" toon:"newest_arrivals"`
	Digest         string   `json:"digest" toon:"-"`
}

// DiffersFrom reports whether the catalog facts changed since the previous
// digest was generated.
func (c CatalogDigestContent) DiffersFrom(previous CatalogDigestContent) bool {
	return c.ProductCount != previous.ProductCount ||
		c.InStockCount != previous.InStockCount ||
		!slices.Equal(c.TopSellers, previous.TopSellers) ||
		!slices.Equal(c.NewestArrivals, previous.NewestArrivals)
}

// CatalogDigest is one stored AI-generated storefront digest.
type CatalogDigest struct {
	ID          uuid.UUID
	Content     CatalogDigestContent
	Model       string
	GeneratedAt time.Time
}

// CatalogDigestRepository manages stored catalog digests.
type CatalogDigestRepository interface {
	// CalculateDigestContent aggregates the current catalog facts.
	CalculateDigestContent(ctx context.Context) (CatalogDigestContent, error)
	// GetLatestDigest retrieves the most recently generated digest.
	GetLatestDigest(ctx context.Context) (CatalogDigest, bool, error)
	// StoreDigest persists a generated digest.
	StoreDigest(ctx context.Context, digest CatalogDigest) error
}
