package http

import (
	"net/http"
	"strconv"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/usecases"
)

func (api CatalogAppServer) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := parseIntParam(query.Get("page"), 1)
	if err != nil {
		respondBadRequest(w, "invalid page parameter")
		return
	}
	pageSize, err := parseIntParam(query.Get("page_size"), 20)
	if err != nil {
		respondBadRequest(w, "invalid page_size parameter")
		return
	}

	var queryParams []usecases.ListProductOptions
	if after := query.Get("released_after"); after != "" {
		queryParams = append(queryParams, usecases.WithReleasedAfter(after))
	}
	if before := query.Get("released_before"); before != "" {
		queryParams = append(queryParams, usecases.WithReleasedBefore(before))
	}

	products, hasMore, err := api.ListProductsUseCase.Query(r.Context(), page, pageSize, queryParams...)
	if err != nil {
		api.Logger.Printf("Error listing products: %v", err)
		respondError(w, toError(err))
		return
	}

	resp := ListProductsResp{
		Items: []Product{},
		Page:  page,
	}
	for _, p := range products {
		resp.Items = append(resp.Items, toProduct(p))
	}
	if hasMore {
		nextPage := page + 1
		resp.NextPage = &nextPage
	}
	if page > 1 {
		prevPage := page - 1
		resp.PreviousPage = &prevPage
	}

	respondJSON(w, http.StatusOK, resp)
}

func (api CatalogAppServer) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid product id")
		return
	}

	product, err := api.GetProductUseCase.Query(r.Context(), id)
	if err != nil {
		api.Logger.Printf("Error getting product: %v", err)
		respondError(w, toError(err))
		return
	}

	respondJSON(w, http.StatusOK, toProduct(product))
}

func parseIntParam(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func respondBadRequest(w http.ResponseWriter, message string) {
	errResp := ErrorResp{}
	errResp.Error.Code = BADREQUEST
	errResp.Error.Message = message
	respondError(w, errResp)
}
