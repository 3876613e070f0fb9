package http

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"testing"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func serializeJSON(t *testing.T, payload any) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	assert.NoError(t, err)
	return data
}

type mockAskProductChat struct {
	mock.Mock
}

func (m *mockAskProductChat) Execute(ctx context.Context, question string) (domain.ChatAnswer, error) {
	args := m.Called(ctx, question)
	return args.Get(0).(domain.ChatAnswer), args.Error(1)
}

type mockListProducts struct {
	mock.Mock
}

func (m *mockListProducts) Query(ctx context.Context, page, pageSize int, opts ...usecases.ListProductOptions) ([]domain.Product, bool, error) {
	params := usecases.ListProductParams{}
	for _, opt := range opts {
		opt(&params)
	}
	args := m.Called(ctx, page, pageSize, params)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	return products, args.Bool(1), args.Error(2)
}

type mockGetProduct struct {
	mock.Mock
}

func (m *mockGetProduct) Query(ctx context.Context, id int64) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

type mockGetCatalogDigest struct {
	mock.Mock
}

func (m *mockGetCatalogDigest) Query(ctx context.Context) (domain.CatalogDigest, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CatalogDigest), args.Error(1)
}
