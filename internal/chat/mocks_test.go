package chat

import (
	"context"
	"io"
	"log"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/stretchr/testify/mock"
)

// discardLogger silences pipeline logging in tests.
func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type mockLLMClient struct {
	mock.Mock
}

func (m *mockLLMClient) Chat(ctx context.Context, req domain.LLMChatRequest) (domain.LLMChatResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.LLMChatResponse), args.Error(1)
}

func (m *mockLLMClient) Embed(ctx context.Context, model, input string) (domain.EmbedResponse, error) {
	args := m.Called(ctx, model, input)
	return args.Get(0).(domain.EmbedResponse), args.Error(1)
}

func (m *mockLLMClient) AvailableModels(ctx context.Context) ([]domain.LLMModelInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LLMModelInfo), args.Error(1)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) ListProducts(ctx context.Context, page int, pageSize int, opts ...domain.ListProductOptions) ([]domain.Product, bool, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Bool(1), args.Error(2)
}

func (m *mockProductRepository) ListAllProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetProduct(ctx context.Context, id int64) (domain.Product, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Bool(1), args.Error(2)
}

func (m *mockProductRepository) GetProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetLowestPricedProduct(ctx context.Context) (domain.Product, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Product), args.Bool(1), args.Error(2)
}

func (m *mockProductRepository) CountProducts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) TopSellingProducts(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductSales), args.Error(1)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) TopRatedProducts(ctx context.Context, minRatings, limit int) ([]domain.ProductRating, error) {
	args := m.Called(ctx, minRatings, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductRating), args.Error(1)
}
