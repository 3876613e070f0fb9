package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
)

// ListProductParams holds the parameters for listing products. Release date
// filters are free-form strings ("2024-01-05", "last month", ...).
type ListProductParams struct {
	ReleasedAfter  *string
	ReleasedBefore *string
}

// ListProductOptions defines a function type for specifying options when listing products.
type ListProductOptions func(*ListProductParams)

// WithReleasedAfter filters products released on or after the given date value.
func WithReleasedAfter(value string) ListProductOptions {
	return func(params *ListProductParams) {
		params.ReleasedAfter = &value
	}
}

// WithReleasedBefore filters products released on or before the given date value.
func WithReleasedBefore(value string) ListProductOptions {
	return func(params *ListProductParams) {
		params.ReleasedBefore = &value
	}
}

// ListProducts defines the interface for the ListProducts use case.
type ListProducts interface {
	Query(ctx context.Context, page int, pageSize int, opts ...ListProductOptions) ([]domain.Product, bool, error)
}

// ListProductsImpl is the implementation of the ListProducts use case.
type ListProductsImpl struct {
	productRepo  domain.ProductRepository
	timeProvider domain.CurrentTimeProvider
}

// NewListProductsImpl creates a new instance of ListProductsImpl.
func NewListProductsImpl(productRepo domain.ProductRepository, tp domain.CurrentTimeProvider) ListProductsImpl {
	return ListProductsImpl{
		productRepo:  productRepo,
		timeProvider: tp,
	}
}

// Query retrieves a page of products with their associations.
func (lp ListProductsImpl) Query(ctx context.Context, page int, pageSize int, opts ...ListProductOptions) ([]domain.Product, bool, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	params := ListProductParams{}
	for _, opt := range opts {
		opt(&params)
	}

	var queryOpts []domain.ListProductOptions
	if params.ReleasedAfter != nil {
		after, err := lp.parseDateFilter(*params.ReleasedAfter, "released_after")
		if telemetry.RecordErrorAndStatus(span, err) {
			return nil, false, err
		}
		queryOpts = append(queryOpts, domain.WithReleasedAfter(after))
	}
	if params.ReleasedBefore != nil {
		before, err := lp.parseDateFilter(*params.ReleasedBefore, "released_before")
		if telemetry.RecordErrorAndStatus(span, err) {
			return nil, false, err
		}
		queryOpts = append(queryOpts, domain.WithReleasedBefore(before))
	}

	products, hasMore, err := lp.productRepo.ListProducts(spanCtx, page, pageSize, queryOpts...)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, false, err
	}
	return products, hasMore, nil
}

func (lp ListProductsImpl) parseDateFilter(value, field string) (time.Time, error) {
	parsed, ok := domain.ParseReleaseDate(value, lp.timeProvider.Now(), time.UTC)
	if !ok {
		return time.Time{}, domain.NewValidationErr(fmt.Sprintf("invalid %s date: %q", field, value))
	}
	return parsed, nil
}

// InitListProducts initializes the ListProducts use case and registers it in
// the dependency container.
type InitListProducts struct {
	ProductRepo  domain.ProductRepository   `resolve:""`
	TimeProvider domain.CurrentTimeProvider `resolve:""`
}

// Initialize registers the ListProducts use case implementation.
func (ilp InitListProducts) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[ListProducts](NewListProductsImpl(ilp.ProductRepo, ilp.TimeProvider))
	return ctx, nil
}
