package chat

import (
	"context"
	"log"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
)

const (
	bestSellingLimit      = 5
	ratingFallbackMinimum = 2
)

// CandidateSet is the deduplicated, insertion-ordered set of catalog items
// grounding one answer.
type CandidateSet struct {
	items []domain.Product
	seen  map[int64]struct{}
}

// NewCandidateSet creates an empty candidate set.
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{seen: make(map[int64]struct{})}
}

// Add appends the product unless an item with the same identifier is already
// present. First insertion order is preserved.
func (cs *CandidateSet) Add(products ...domain.Product) {
	for _, p := range products {
		if _, ok := cs.seen[p.ID]; ok {
			continue
		}
		cs.seen[p.ID] = struct{}{}
		cs.items = append(cs.items, p)
	}
}

// Items returns the candidates in first-insertion order.
func (cs *CandidateSet) Items() []domain.Product {
	return cs.items
}

// Len returns the number of distinct candidates.
func (cs *CandidateSet) Len() int {
	return len(cs.items)
}

// BestSellingResult carries the resolved best sellers and whether the ranking
// came from sales data or from the customer-rating fallback.
type BestSellingResult struct {
	Products    []domain.Product
	RatingBased bool
}

// Resolvers answers the intent-specific deterministic catalog queries. Store
// failures are swallowed: a failing resolver contributes nothing and the
// overall question still gets answered from whatever other context exists.
type Resolvers struct {
	products domain.ProductRepository
	orders   domain.OrderRepository
	reviews  domain.ReviewRepository
	logger   *log.Logger
}

// NewResolvers creates the special-case resolvers.
func NewResolvers(products domain.ProductRepository, orders domain.OrderRepository, reviews domain.ReviewRepository, logger *log.Logger) Resolvers {
	return Resolvers{
		products: products,
		orders:   orders,
		reviews:  reviews,
		logger:   logger,
	}
}

// LowestPrice returns the cheapest priced product, if one exists.
func (r Resolvers) LowestPrice(ctx context.Context) (domain.Product, bool) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	product, found, err := r.products.GetLowestPricedProduct(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		r.logger.Printf("Resolvers: lowest price query failed: %v", err)
		return domain.Product{}, false
	}
	return product, found
}

// BestSelling returns up to five products ranked by summed order quantity.
// With no order history at all it falls back to products with at least two
// ratings, ranked by average rating then rating count.
func (r Resolvers) BestSelling(ctx context.Context) (BestSellingResult, bool) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	sales, err := r.orders.TopSellingProducts(spanCtx, bestSellingLimit)
	if telemetry.RecordErrorAndStatus(span, err) {
		r.logger.Printf("Resolvers: order aggregation failed: %v", err)
		return BestSellingResult{}, false
	}

	if len(sales) > 0 {
		ids := make([]int64, len(sales))
		for i, s := range sales {
			ids[i] = s.ProductID
		}
		products, ok := r.resolveRanked(spanCtx, ids)
		if !ok {
			return BestSellingResult{}, false
		}
		return BestSellingResult{Products: products}, true
	}

	ratings, err := r.reviews.TopRatedProducts(spanCtx, ratingFallbackMinimum, bestSellingLimit)
	if err != nil {
		r.logger.Printf("Resolvers: rating aggregation failed: %v", err)
		return BestSellingResult{}, false
	}
	if len(ratings) == 0 {
		return BestSellingResult{}, false
	}

	ids := make([]int64, len(ratings))
	for i, rating := range ratings {
		ids[i] = rating.ProductID
	}
	products, ok := r.resolveRanked(spanCtx, ids)
	if !ok {
		return BestSellingResult{}, false
	}
	return BestSellingResult{Products: products, RatingBased: true}, true
}

// resolveRanked loads the products for the ranked identifier list and returns
// them in the same order.
func (r Resolvers) resolveRanked(ctx context.Context, ids []int64) ([]domain.Product, bool) {
	products, err := r.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		r.logger.Printf("Resolvers: product load failed: %v", err)
		return nil, false
	}

	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ranked := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ranked = append(ranked, p)
		}
	}
	return ranked, true
}
