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

var (
	productFields = []string{
		"id",
		"name",
		"description",
		"specs",
		"price",
		"in_stock",
		"release_date",
		"created_at",
		"updated_at",
	}
)

// ProductRepository implements the domain.ProductRepository interface using
// PostgreSQL as the storage backend. Brands, categories, features, and tags
// live in the product_terms table and are attached after each product query.
type ProductRepository struct {
	sb squirrel.StatementBuilderType
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(br squirrel.BaseRunner) ProductRepository {
	return ProductRepository{
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(br),
	}
}

// ListProducts lists products with pagination and optional release date filters.
func (pr ProductRepository) ListProducts(ctx context.Context, page int, pageSize int, opts ...domain.ListProductOptions) ([]domain.Product, bool, error) {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(
		attribute.Int("page", page),
		attribute.Int("pageSize", pageSize),
	))
	defer span.End()

	if pageSize <= 0 {
		return nil, false, domain.NewValidationErr("page_size must be greater than 0")
	}
	if page <= 0 {
		return nil, false, domain.NewValidationErr("page must be greater than 0")
	}

	qry := pr.sb.
		Select(
			productFields...,
		).From("products").
		OrderBy("id ASC").
		Limit(uint64(pageSize + 1)). // fetch one extra to determine if there's more
		Offset(uint64((page - 1) * pageSize))

	params := &domain.ListProductsParams{}
	for _, opt := range opts {
		opt(params)
	}

	if params.ReleasedAfter != nil {
		qry = qry.Where(squirrel.GtOrEq{"release_date": *params.ReleasedAfter})
	}
	if params.ReleasedBefore != nil {
		qry = qry.Where(squirrel.LtOrEq{"release_date": *params.ReleasedBefore})
	}

	rows, err := qry.QueryContext(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, false, err
	}
	defer rows.Close() //nolint:errcheck

	products, err := scanProducts(rows)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, false, err
	}

	hasMore := false
	if len(products) > pageSize {
		products = products[:pageSize]
		hasMore = true
	}

	if err := pr.attachTerms(spanCtx, products); telemetry.RecordErrorAndStatus(span, err) {
		return nil, false, err
	}
	return products, hasMore, nil
}

// ListAllProducts retrieves every product with its associations.
func (pr ProductRepository) ListAllProducts(ctx context.Context) ([]domain.Product, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	rows, err := pr.sb.
		Select(
			productFields...,
		).
		From("products").
		OrderBy("id ASC").
		QueryContext(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	products, err := scanProducts(rows)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}

	if err := pr.attachTerms(spanCtx, products); telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	return products, nil
}

// GetProduct retrieves a product by its ID.
func (pr ProductRepository) GetProduct(ctx context.Context, id int64) (domain.Product, bool, error) {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(
		attribute.Int64("product_id", id),
	))
	defer span.End()

	row := pr.sb.
		Select(
			productFields...,
		).
		From("products").
		Where(squirrel.Eq{"id": id}).
		QueryRowContext(spanCtx)

	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return domain.Product{}, false, nil
	}
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.Product{}, false, err
	}

	products := []domain.Product{product}
	if err := pr.attachTerms(spanCtx, products); telemetry.RecordErrorAndStatus(span, err) {
		return domain.Product{}, false, err
	}
	return products[0], true, nil
}

// GetProductsByIDs retrieves the products matching the given identifier set.
func (pr ProductRepository) GetProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := pr.sb.
		Select(
			productFields...,
		).
		From("products").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		QueryContext(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	products, err := scanProducts(rows)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}

	if err := pr.attachTerms(spanCtx, products); telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	return products, nil
}

// GetLowestPricedProduct retrieves the priced product with the lowest price,
// ties broken by lowest identifier.
func (pr ProductRepository) GetLowestPricedProduct(ctx context.Context) (domain.Product, bool, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	row := pr.sb.
		Select(
			productFields...,
		).
		From("products").
		Where("price IS NOT NULL").
		OrderBy("price ASC", "id ASC").
		Limit(1).
		QueryRowContext(spanCtx)

	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return domain.Product{}, false, nil
	}
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.Product{}, false, err
	}

	products := []domain.Product{product}
	if err := pr.attachTerms(spanCtx, products); telemetry.RecordErrorAndStatus(span, err) {
		return domain.Product{}, false, err
	}
	return products[0], true, nil
}

// CountProducts returns the total number of products in the catalog.
func (pr ProductRepository) CountProducts(ctx context.Context) (int, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	var count int
	err := pr.sb.
		Select("COUNT(*)").
		From("products").
		QueryRowContext(spanCtx).
		Scan(&count)
	if telemetry.RecordErrorAndStatus(span, err) {
		return 0, err
	}
	return count, nil
}

// attachTerms loads the product_terms rows for the given products and fills
// the association name lists in place.
func (pr ProductRepository) attachTerms(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, len(products))
	index := make(map[int64]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
	}

	rows, err := pr.sb.
		Select("product_id", "kind", "value").
		From("product_terms").
		Where(squirrel.Eq{"product_id": ids}).
		OrderBy("product_id ASC", "kind ASC", "value ASC").
		QueryContext(ctx)
	if err != nil {
		return err
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var productID int64
		var kind, value string
		if err := rows.Scan(&productID, &kind, &value); err != nil {
			return err
		}

		i, ok := index[productID]
		if !ok {
			continue
		}
		switch kind {
		case "brand":
			products[i].Brands = append(products[i].Brands, value)
		case "category":
			products[i].Categories = append(products[i].Categories, value)
		case "feature":
			products[i].Features = append(products[i].Features, value)
		case "tag":
			products[i].Tags = append(products[i].Tags, value)
		}
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var product domain.Product
	var price sql.NullFloat64
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Specs,
		&price,
		&product.InStock,
		&product.ReleaseDate,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	if price.Valid {
		product.Price = &price.Float64
	}
	return product, nil
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// InitProductRepository is a Symbiont initializer for ProductRepository.
type InitProductRepository struct {
	DB *sql.DB `resolve:""`
}

// Initialize registers the ProductRepository in the dependency container.
func (ipr InitProductRepository) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[domain.ProductRepository](NewProductRepository(ipr.DB))
	return ctx, nil
}
