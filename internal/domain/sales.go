package domain

import "context"

// ProductSales is the aggregated order volume for one product.
type ProductSales struct {
	ProductID     int64
	TotalQuantity int
}

// OrderRepository exposes the order aggregates the chat core consumes.
type OrderRepository interface {
	// TopSellingProducts aggregates order line quantities by product and
	// returns up to limit products ordered by total quantity descending.
	TopSellingProducts(ctx context.Context, limit int) ([]ProductSales, error)
}

// ProductRating is the aggregated review rating for one product.
type ProductRating struct {
	ProductID   int64
	AvgRating   float64
	RatingCount int
}

// ReviewRepository exposes the review aggregates the chat core consumes.
type ReviewRepository interface {
	// TopRatedProducts aggregates rated reviews by product, requiring at
	// least minRatings ratings each, ordered by average rating descending
	// then rating count descending, limited to limit products.
	TopRatedProducts(ctx context.Context, minRatings, limit int) ([]ProductRating, error)
}
