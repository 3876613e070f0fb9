package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/common"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont/depend"
	"github.com/stretchr/testify/assert"
)

const (
	selectProductsSQL = "SELECT id, name, description, specs, price, in_stock, release_date, created_at, updated_at FROM products"
	selectTermsSQL    = "SELECT product_id, kind, value FROM product_terms WHERE product_id IN ($1) ORDER BY product_id ASC, kind ASC, value ASC"
)

func productRows(products ...domain.Product) *sqlmock.Rows {
	rows := sqlmock.NewRows(productFields)
	for _, p := range products {
		var price any
		if p.Price != nil {
			price = *p.Price
		}
		rows.AddRow(p.ID, p.Name, p.Description, p.Specs, price, p.InStock, p.ReleaseDate, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func sampleProduct() domain.Product {
	return domain.Product{
		ID:          1,
		Name:        "Aurora Headphones",
		Description: "Over-ear wireless headphones.",
		Specs:       "Bluetooth 5.3",
		Price:       common.Ptr(149.90),
		InStock:     true,
		ReleaseDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestProductRepository_GetProduct(t *testing.T) {
	product := sampleProduct()

	tests := map[string]struct {
		setExpectations func(mock sqlmock.Sqlmock)
		expectedProduct domain.Product
		expectedFound   bool
		expectedErr     bool
	}{
		"found-with-terms": {
			setExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectProductsSQL + " WHERE id = $1").
					WithArgs(int64(1)).
					WillReturnRows(productRows(product))
				mock.ExpectQuery(selectTermsSQL).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"product_id", "kind", "value"}).
						AddRow(int64(1), "brand", "Aurora").
						AddRow(int64(1), "category", "Audio").
						AddRow(int64(1), "feature", "Noise cancelling").
						AddRow(int64(1), "tag", "wireless"))
			},
			expectedProduct: func() domain.Product {
				p := product
				p.Brands = []string{"Aurora"}
				p.Categories = []string{"Audio"}
				p.Features = []string{"Noise cancelling"}
				p.Tags = []string{"wireless"}
				return p
			}(),
			expectedFound: true,
		},
		"not-found": {
			setExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectProductsSQL + " WHERE id = $1").
					WithArgs(int64(1)).
					WillReturnRows(productRows())
			},
			expectedFound: false,
		},
		"database-error": {
			setExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectProductsSQL + " WHERE id = $1").
					WithArgs(int64(1)).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			assert.NoError(t, err)
			defer db.Close() // nolint:errcheck

			tt.setExpectations(mock)

			repo := NewProductRepository(db)
			got, found, gotErr := repo.GetProduct(context.Background(), 1)

			if tt.expectedErr {
				assert.Error(t, gotErr)
				return
			}
			assert.NoError(t, gotErr)
			assert.Equal(t, tt.expectedFound, found)
			assert.Equal(t, tt.expectedProduct, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_ListProducts(t *testing.T) {
	first := sampleProduct()
	second := sampleProduct()
	second.ID = 2
	second.Name = "Nimbus Speaker"
	second.Price = common.Ptr(89.00)

	tests := map[string]struct {
		page            int
		pageSize        int
		opts            []domain.ListProductOptions
		setExpectations func(mock sqlmock.Sqlmock)
		expectedLen     int
		expectedHasMore bool
		expectedErr     bool
	}{
		"first-page-has-more": {
			page:     1,
			pageSize: 1,
			setExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectProductsSQL + " ORDER BY id ASC LIMIT 2 OFFSET 0").
					WillReturnRows(productRows(first, second))
				mock.ExpectQuery(selectTermsSQL).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"product_id", "kind", "value"}))
			},
			expectedLen:     1,
			expectedHasMore: true,
		},
		"released-after-filter": {
			page:     1,
			pageSize: 10,
			opts: []domain.ListProductOptions{
				domain.WithReleasedAfter(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			},
			setExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectProductsSQL+" WHERE release_date >= $1 ORDER BY id ASC LIMIT 11 OFFSET 0").
					WithArgs(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
					WillReturnRows(productRows(first))
				mock.ExpectQuery(selectTermsSQL).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"product_id", "kind", "value"}))
			},
			expectedLen: 1,
		},
		"invalid-page": {
			page:            0,
			pageSize:        10,
			setExpectations: func(mock sqlmock.Sqlmock) {},
			expectedErr:     true,
		},
		"invalid-page-size": {
			page:            1,
			pageSize:        0,
			setExpectations: func(mock sqlmock.Sqlmock) {},
			expectedErr:     true,
		},
		"database-error": {
			page:     1,
			pageSize: 10,
			setExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectProductsSQL + " ORDER BY id ASC LIMIT 11 OFFSET 0").
					WillReturnError(errors.New("database error"))
			},
			expectedErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			assert.NoError(t, err)
			defer db.Close() // nolint:errcheck

			tt.setExpectations(mock)

			repo := NewProductRepository(db)
			got, hasMore, gotErr := repo.ListProducts(context.Background(), tt.page, tt.pageSize, tt.opts...)

			if tt.expectedErr {
				assert.Error(t, gotErr)
				return
			}
			assert.NoError(t, gotErr)
			assert.Len(t, got, tt.expectedLen)
			assert.Equal(t, tt.expectedHasMore, hasMore)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_GetProductsByIDs(t *testing.T) {
	first := sampleProduct()
	second := sampleProduct()
	second.ID = 2
	second.Name = "Nimbus Speaker"

	t.Run("empty-ids", func(t *testing.T) {
		db, _, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		assert.NoError(t, err)
		defer db.Close() // nolint:errcheck

		repo := NewProductRepository(db)
		got, gotErr := repo.GetProductsByIDs(context.Background(), nil)
		assert.NoError(t, gotErr)
		assert.Nil(t, got)
	})

	t.Run("loads-matching-products", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		assert.NoError(t, err)
		defer db.Close() // nolint:errcheck

		mock.ExpectQuery(selectProductsSQL + " WHERE id IN ($1,$2) ORDER BY id ASC").
			WithArgs(int64(1), int64(2)).
			WillReturnRows(productRows(first, second))
		mock.ExpectQuery("SELECT product_id, kind, value FROM product_terms WHERE product_id IN ($1,$2) ORDER BY product_id ASC, kind ASC, value ASC").
			WithArgs(int64(1), int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "kind", "value"}).
				AddRow(int64(2), "brand", "Nimbus"))

		repo := NewProductRepository(db)
		got, gotErr := repo.GetProductsByIDs(context.Background(), []int64{1, 2})

		assert.NoError(t, gotErr)
		assert.Len(t, got, 2)
		assert.Empty(t, got[0].Brands)
		assert.Equal(t, []string{"Nimbus"}, got[1].Brands)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_GetLowestPricedProduct(t *testing.T) {
	product := sampleProduct()

	tests := map[string]struct {
		setExpectations func(mock sqlmock.Sqlmock)
		expectedFound   bool
		expectedErr     bool
	}{
		"found": {
			setExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectProductsSQL + " WHERE price IS NOT NULL ORDER BY price ASC, id ASC LIMIT 1").
					WillReturnRows(productRows(product))
				mock.ExpectQuery(selectTermsSQL).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"product_id", "kind", "value"}))
			},
			expectedFound: true,
		},
		"no-priced-products": {
			setExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectProductsSQL + " WHERE price IS NOT NULL ORDER BY price ASC, id ASC LIMIT 1").
					WillReturnRows(productRows())
			},
			expectedFound: false,
		},
		"database-error": {
			setExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectProductsSQL + " WHERE price IS NOT NULL ORDER BY price ASC, id ASC LIMIT 1").
					WillReturnError(errors.New("database error"))
			},
			expectedErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			assert.NoError(t, err)
			defer db.Close() // nolint:errcheck

			tt.setExpectations(mock)

			repo := NewProductRepository(db)
			got, found, gotErr := repo.GetLowestPricedProduct(context.Background())

			if tt.expectedErr {
				assert.Error(t, gotErr)
				return
			}
			assert.NoError(t, gotErr)
			assert.Equal(t, tt.expectedFound, found)
			if found {
				assert.Equal(t, product.ID, got.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_CountProducts(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	assert.NoError(t, err)
	defer db.Close() // nolint:errcheck

	mock.ExpectQuery("SELECT COUNT(*) FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	repo := NewProductRepository(db)
	got, gotErr := repo.CountProducts(context.Background())

	assert.NoError(t, gotErr)
	assert.Equal(t, 10, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitProductRepository_Initialize(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close() // nolint:errcheck

	ipr := InitProductRepository{DB: db}
	ctx, err := ipr.Initialize(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, ctx)

	registered, err := depend.Resolve[domain.ProductRepository]()
	assert.NoError(t, err)
	assert.NotNil(t, registered)
}
