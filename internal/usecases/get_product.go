package usecases

import (
	"context"
	"fmt"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
)

// GetProduct defines the interface for retrieving one product by identifier.
type GetProduct interface {
	Query(ctx context.Context, id int64) (domain.Product, error)
}

// GetProductImpl is the implementation of the GetProduct use case.
type GetProductImpl struct {
	productRepo domain.ProductRepository
}

// NewGetProductImpl creates a new instance of GetProductImpl.
func NewGetProductImpl(productRepo domain.ProductRepository) GetProductImpl {
	return GetProductImpl{
		productRepo: productRepo,
	}
}

// Query retrieves one product with its associations.
func (gp GetProductImpl) Query(ctx context.Context, id int64) (domain.Product, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	product, found, err := gp.productRepo.GetProduct(spanCtx, id)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.Product{}, err
	}
	if !found {
		err := domain.NewNotFoundErr(fmt.Sprintf("product %d not found", id))
		return domain.Product{}, err
	}

	return product, nil
}

// InitGetProduct initializes the GetProduct use case.
type InitGetProduct struct {
	ProductRepo domain.ProductRepository `resolve:""`
}

// Initialize registers the GetProduct use case implementation.
func (igp InitGetProduct) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[GetProduct](NewGetProductImpl(igp.ProductRepo))
	return ctx, nil
}
