package usecases

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/chat"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// newTestIndex builds a fresh availability index; providers are never called
// because the tests do not initialize it.
func newTestIndex() *chat.EmbeddingIndex {
	return chat.NewEmbeddingIndex(nil, nil, "embed-model", discardLogger())
}

// stubTimeProvider returns a fixed instant.
type stubTimeProvider struct {
	now time.Time
}

func (s stubTimeProvider) Now() time.Time {
	return s.now
}

type mockProductChat struct {
	mock.Mock
}

func (m *mockProductChat) Ask(ctx context.Context, question string) domain.ChatAnswer {
	args := m.Called(ctx, question)
	return args.Get(0).(domain.ChatAnswer)
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
	params := domain.ListProductsParams{}
	for _, opt := range opts {
		opt(&params)
	}
	args := m.Called(ctx, page, pageSize, params)
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

type mockCatalogDigestRepository struct {
	mock.Mock
}

func (m *mockCatalogDigestRepository) CalculateDigestContent(ctx context.Context) (domain.CatalogDigestContent, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CatalogDigestContent), args.Error(1)
}

func (m *mockCatalogDigestRepository) GetLatestDigest(ctx context.Context) (domain.CatalogDigest, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CatalogDigest), args.Bool(1), args.Error(2)
}

func (m *mockCatalogDigestRepository) StoreDigest(ctx context.Context, digest domain.CatalogDigest) error {
	args := m.Called(ctx, digest)
	return args.Error(0)
}

type mockOutboxRepository struct {
	mock.Mock
}

func (m *mockOutboxRepository) CreateChatInteractionEvent(ctx context.Context, event domain.ChatInteractionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockOutboxRepository) FetchPendingEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutboxEvent), args.Error(1)
}

func (m *mockOutboxRepository) UpdateEvent(ctx context.Context, eventID uuid.UUID, status domain.OutboxStatus, retryCount int, lastError string) error {
	args := m.Called(ctx, eventID, status, retryCount, lastError)
	return args.Error(0)
}

func (m *mockOutboxRepository) DeleteEvent(ctx context.Context, eventID uuid.UUID) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishEvent(ctx context.Context, event domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// fakeUnitOfWork runs the transaction body directly against the given
// repositories.
type fakeUnitOfWork struct {
	products   *mockProductRepository
	outbox     *mockOutboxRepository
	executeErr error
}

func (f *fakeUnitOfWork) Execute(ctx context.Context, fn func(uow domain.UnitOfWork) error) error {
	if f.executeErr != nil {
		return f.executeErr
	}
	return fn(f)
}

func (f *fakeUnitOfWork) Products() domain.ProductRepository {
	return f.products
}

func (f *fakeUnitOfWork) Outbox() domain.OutboxRepository {
	return f.outbox
}
