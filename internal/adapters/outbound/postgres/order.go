package postgres

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OrderRepository implements the domain.OrderRepository interface using
// PostgreSQL as the storage backend.
type OrderRepository struct {
	sb squirrel.StatementBuilderType
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(br squirrel.BaseRunner) OrderRepository {
	return OrderRepository{
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(br),
	}
}

// TopSellingProducts aggregates order line quantities by product and returns
// up to limit products ordered by total quantity descending.
func (or OrderRepository) TopSellingProducts(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(
		attribute.Int("limit", limit),
	))
	defer span.End()

	rows, err := or.sb.
		Select("product_id", "SUM(quantity) AS total_quantity").
		From("order_items").
		GroupBy("product_id").
		OrderBy("total_quantity DESC", "product_id ASC").
		Limit(uint64(limit)).
		QueryContext(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var sales []domain.ProductSales
	for rows.Next() {
		var s domain.ProductSales
		if err := rows.Scan(&s.ProductID, &s.TotalQuantity); telemetry.RecordErrorAndStatus(span, err) {
			return nil, err
		}
		sales = append(sales, s)
	}

	if err := rows.Err(); telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	return sales, nil
}

// InitOrderRepository is a Symbiont initializer for OrderRepository.
type InitOrderRepository struct {
	DB *sql.DB `resolve:""`
}

// Initialize registers the OrderRepository in the dependency container.
func (ior InitOrderRepository) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[domain.OrderRepository](NewOrderRepository(ior.DB))
	return ctx, nil
}
