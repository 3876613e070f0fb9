package http

import "time"

// ErrorCode identifies the category of an API error.
type ErrorCode string

const (
	BADREQUEST    ErrorCode = "BAD_REQUEST"
	NOTFOUND      ErrorCode = "NOT_FOUND"
	INTERNALERROR ErrorCode = "INTERNAL_ERROR"
)

// Error carries the code and message of an API error.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorResp is the JSON envelope for API errors.
type ErrorResp struct {
	Error Error `json:"error"`
}

// AskChatReq is the request body for the product chat endpoint.
type AskChatReq struct {
	Question string `json:"question"`
}

// AskChatResp is the response body for the product chat endpoint.
type AskChatResp struct {
	Answer  string           `json:"answer"`
	Sources []ProductSummary `json:"sources"`
}

// ProductSummary is the compact product shape used in chat sources.
type ProductSummary struct {
	Id      int64   `json:"id"`
	Name    string  `json:"name"`
	Price   *string `json:"price,omitempty"`
	InStock bool    `json:"in_stock"`
}

// Product is the full product shape returned by the catalog endpoints.
type Product struct {
	Id          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Specs       string    `json:"specs"`
	Price       *float64  `json:"price,omitempty"`
	InStock     bool      `json:"in_stock"`
	ReleaseDate string    `json:"release_date"`
	Brands      []string  `json:"brands"`
	Categories  []string  `json:"categories"`
	Features    []string  `json:"features"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListProductsResp is the paginated response for the product listing endpoint.
type ListProductsResp struct {
	Items        []Product `json:"items"`
	Page         int       `json:"page"`
	NextPage     *int      `json:"next_page,omitempty"`
	PreviousPage *int      `json:"previous_page,omitempty"`
}

// CatalogDigest is the response body for the digest endpoint.
type CatalogDigest struct {
	ProductCount   int       `json:"product_count"`
	InStockCount   int       `json:"in_stock_count"`
	TopSellers     []string  `json:"top_sellers"`
	NewestArrivals []string  `json:"newest_arrivals"`
	Digest         string    `json:"digest"`
	Model          string    `json:"model"`
	GeneratedAt    time.Time `json:"generated_at"`
}
