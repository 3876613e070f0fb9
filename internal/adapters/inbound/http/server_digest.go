package http

import (
	"net/http"
)

func (api CatalogAppServer) GetCatalogDigest(w http.ResponseWriter, r *http.Request) {
	digest, err := api.GetCatalogDigestUseCase.Query(r.Context())
	if err != nil {
		respondError(w, toError(err))
		return
	}

	respondJSON(w, http.StatusOK, toCatalogDigest(digest))
}
