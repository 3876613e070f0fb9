package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	catalogDigestFields = []string{
		"id",
		"digest",
		"model",
		"generated_at",
	}
)

const digestNameLimit = 5

// CatalogDigestRepository is a PostgreSQL implementation of domain.CatalogDigestRepository.
type CatalogDigestRepository struct {
	db    *sql.DB
	pqsql squirrel.StatementBuilderType
}

// NewCatalogDigestRepository creates a new instance of CatalogDigestRepository.
func NewCatalogDigestRepository(db *sql.DB) CatalogDigestRepository {
	return CatalogDigestRepository{
		db:    db,
		pqsql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(db),
	}
}

// CalculateDigestContent aggregates the current catalog facts the digest is
// generated from.
func (cdr CatalogDigestRepository) CalculateDigestContent(ctx context.Context) (domain.CatalogDigestContent, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	var content domain.CatalogDigestContent

	err := cdr.pqsql.
		Select("COUNT(*)", "COUNT(*) FILTER (WHERE in_stock)").
		From("products").
		QueryRowContext(spanCtx).
		Scan(&content.ProductCount, &content.InStockCount)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.CatalogDigestContent{}, fmt.Errorf("failed to count products: %w", err)
	}

	content.TopSellers, err = cdr.topSellerNames(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.CatalogDigestContent{}, fmt.Errorf("failed to load top sellers: %w", err)
	}

	content.NewestArrivals, err = cdr.newestArrivalNames(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.CatalogDigestContent{}, fmt.Errorf("failed to load newest arrivals: %w", err)
	}

	return content, nil
}

func (cdr CatalogDigestRepository) topSellerNames(ctx context.Context) ([]string, error) {
	rows, err := cdr.pqsql.
		Select("p.name").
		From("order_items oi").
		Join("products p ON p.id = oi.product_id").
		GroupBy("p.id", "p.name").
		OrderBy("SUM(oi.quantity) DESC", "p.id ASC").
		Limit(digestNameLimit).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	return scanNames(rows)
}

func (cdr CatalogDigestRepository) newestArrivalNames(ctx context.Context) ([]string, error) {
	rows, err := cdr.pqsql.
		Select("name").
		From("products").
		OrderBy("release_date DESC", "id ASC").
		Limit(digestNameLimit).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	return scanNames(rows)
}

func scanNames(rows *sql.Rows) ([]string, error) {
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// StoreDigest stores a catalog digest in the database, updating if it already exists.
func (cdr CatalogDigestRepository) StoreDigest(ctx context.Context, digest domain.CatalogDigest) error {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(
		attribute.String("digest_id", digest.ID.String()),
		attribute.String("model", digest.Model),
	))
	defer span.End()

	// Marshal the content to JSON
	contentJSON, err := json.Marshal(digest.Content)
	if telemetry.RecordErrorAndStatus(span, err) {
		return fmt.Errorf("failed to marshal digest content: %w", err)
	}

	query := cdr.pqsql.
		Insert("catalog_digests").
		Columns(
			catalogDigestFields...,
		).
		Values(
			digest.ID,
			contentJSON,
			digest.Model,
			digest.GeneratedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
            digest = EXCLUDED.digest,
            model = EXCLUDED.model,
            generated_at = EXCLUDED.generated_at`)

	_, err = query.ExecContext(spanCtx)

	if telemetry.RecordErrorAndStatus(span, err) {
		return fmt.Errorf("failed to store digest: %w", err)
	}

	return nil
}

// GetLatestDigest retrieves the most recently generated catalog digest.
func (cdr CatalogDigestRepository) GetLatestDigest(ctx context.Context) (domain.CatalogDigest, bool, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	var digest domain.CatalogDigest
	var contentJSON []byte

	err := cdr.pqsql.
		Select(
			catalogDigestFields...,
		).
		From("catalog_digests").
		OrderBy("generated_at DESC").
		Limit(1).
		QueryRowContext(spanCtx).
		Scan(
			&digest.ID,
			&contentJSON,
			&digest.Model,
			&digest.GeneratedAt,
		)

	if telemetry.RecordErrorAndStatus(span, err) {
		if err == sql.ErrNoRows {
			return domain.CatalogDigest{}, false, nil
		}
		return domain.CatalogDigest{}, false, err
	}

	// Unmarshal the JSON content
	err = json.Unmarshal(contentJSON, &digest.Content)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.CatalogDigest{}, false, fmt.Errorf("failed to unmarshal digest content: %w", err)
	}

	return digest, true, nil
}

// InitCatalogDigestRepository is a Symbiont initializer for CatalogDigestRepository.
type InitCatalogDigestRepository struct {
	DB *sql.DB `resolve:""`
}

// Initialize registers the CatalogDigestRepository in the dependency container.
func (icdr InitCatalogDigestRepository) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[domain.CatalogDigestRepository](NewCatalogDigestRepository(icdr.DB))
	return ctx, nil
}
