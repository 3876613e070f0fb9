package chat

import (
	"context"
	"testing"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/common"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCandidateSet_AddDeduplicates(t *testing.T) {
	cs := NewCandidateSet()
	cs.Add(domain.Product{ID: 2, Name: "Gadget"})
	cs.Add(domain.Product{ID: 1, Name: "Widget"}, domain.Product{ID: 2, Name: "Gadget again"})
	cs.Add(domain.Product{ID: 1, Name: "Widget again"})

	assert.Equal(t, 2, cs.Len())
	assert.Equal(t, []domain.Product{
		{ID: 2, Name: "Gadget"},
		{ID: 1, Name: "Widget"},
	}, cs.Items())
}

func TestResolvers_LowestPrice(t *testing.T) {
	widget := domain.Product{ID: 1, Name: "Widget", Price: common.Ptr(9.99)}

	tests := map[string]struct {
		setExpectations func(products *mockProductRepository)
		expectedProduct domain.Product
		expectedFound   bool
	}{
		"found": {
			setExpectations: func(products *mockProductRepository) {
				products.On("GetLowestPricedProduct", mock.Anything).Return(widget, true, nil)
			},
			expectedProduct: widget,
			expectedFound:   true,
		},
		"no-priced-products": {
			setExpectations: func(products *mockProductRepository) {
				products.On("GetLowestPricedProduct", mock.Anything).Return(domain.Product{}, false, nil)
			},
			expectedFound: false,
		},
		"store-failure-is-swallowed": {
			setExpectations: func(products *mockProductRepository) {
				products.On("GetLowestPricedProduct", mock.Anything).Return(domain.Product{}, false, assert.AnError)
			},
			expectedFound: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			products := &mockProductRepository{}
			tt.setExpectations(products)

			r := NewResolvers(products, &mockOrderRepository{}, &mockReviewRepository{}, discardLogger())
			got, found := r.LowestPrice(context.Background())

			assert.Equal(t, tt.expectedFound, found)
			assert.Equal(t, tt.expectedProduct, got)
		})
	}
}

func TestResolvers_BestSelling(t *testing.T) {
	tests := map[string]struct {
		setExpectations func(products *mockProductRepository, orders *mockOrderRepository, reviews *mockReviewRepository)
		expectedResult  BestSellingResult
		expectedFound   bool
	}{
		"sales-ranking": {
			setExpectations: func(products *mockProductRepository, orders *mockOrderRepository, reviews *mockReviewRepository) {
				orders.On("TopSellingProducts", mock.Anything, 5).Return([]domain.ProductSales{
					{ProductID: 3, TotalQuantity: 40},
					{ProductID: 1, TotalQuantity: 25},
				}, nil)
				// Store order differs from rank order; the result must follow the ranking.
				products.On("GetProductsByIDs", mock.Anything, []int64{3, 1}).Return([]domain.Product{
					{ID: 1, Name: "Widget"},
					{ID: 3, Name: "Gizmo"},
				}, nil)
			},
			expectedResult: BestSellingResult{Products: []domain.Product{
				{ID: 3, Name: "Gizmo"},
				{ID: 1, Name: "Widget"},
			}},
			expectedFound: true,
		},
		"no-sales-falls-back-to-ratings": {
			setExpectations: func(products *mockProductRepository, orders *mockOrderRepository, reviews *mockReviewRepository) {
				orders.On("TopSellingProducts", mock.Anything, 5).Return([]domain.ProductSales{}, nil)
				reviews.On("TopRatedProducts", mock.Anything, 2, 5).Return([]domain.ProductRating{
					{ProductID: 2, AvgRating: 4.8, RatingCount: 12},
				}, nil)
				products.On("GetProductsByIDs", mock.Anything, []int64{2}).Return([]domain.Product{
					{ID: 2, Name: "Gadget"},
				}, nil)
			},
			expectedResult: BestSellingResult{
				Products:    []domain.Product{{ID: 2, Name: "Gadget"}},
				RatingBased: true,
			},
			expectedFound: true,
		},
		"no-sales-no-ratings": {
			setExpectations: func(products *mockProductRepository, orders *mockOrderRepository, reviews *mockReviewRepository) {
				orders.On("TopSellingProducts", mock.Anything, 5).Return([]domain.ProductSales{}, nil)
				reviews.On("TopRatedProducts", mock.Anything, 2, 5).Return([]domain.ProductRating{}, nil)
			},
			expectedFound: false,
		},
		"order-store-failure-is-swallowed": {
			setExpectations: func(products *mockProductRepository, orders *mockOrderRepository, reviews *mockReviewRepository) {
				orders.On("TopSellingProducts", mock.Anything, 5).Return(nil, assert.AnError)
			},
			expectedFound: false,
		},
		"review-store-failure-is-swallowed": {
			setExpectations: func(products *mockProductRepository, orders *mockOrderRepository, reviews *mockReviewRepository) {
				orders.On("TopSellingProducts", mock.Anything, 5).Return([]domain.ProductSales{}, nil)
				reviews.On("TopRatedProducts", mock.Anything, 2, 5).Return(nil, assert.AnError)
			},
			expectedFound: false,
		},
		"product-load-failure-is-swallowed": {
			setExpectations: func(products *mockProductRepository, orders *mockOrderRepository, reviews *mockReviewRepository) {
				orders.On("TopSellingProducts", mock.Anything, 5).Return([]domain.ProductSales{
					{ProductID: 3, TotalQuantity: 40},
				}, nil)
				products.On("GetProductsByIDs", mock.Anything, []int64{3}).Return(nil, assert.AnError)
			},
			expectedFound: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			products := &mockProductRepository{}
			orders := &mockOrderRepository{}
			reviews := &mockReviewRepository{}
			tt.setExpectations(products, orders, reviews)

			r := NewResolvers(products, orders, reviews, discardLogger())
			got, found := r.BestSelling(context.Background())

			assert.Equal(t, tt.expectedFound, found)
			assert.Equal(t, tt.expectedResult, got)
		})
	}
}
