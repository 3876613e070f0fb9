package http

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func (api CatalogAppServer) AskChat(w http.ResponseWriter, r *http.Request) {
	var req AskChatReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := ErrorResp{}
		errResp.Error.Code = BADREQUEST
		errResp.Error.Message = fmt.Sprintf("invalid request body: %v", err)

		respondError(w, errResp)
		return
	}

	answer, err := api.AskProductChatUseCase.Execute(r.Context(), req.Question)
	if err != nil {
		api.Logger.Printf("Error answering chat question: %v", err)
		respondError(w, toError(err))
		return
	}

	respondJSON(w, http.StatusOK, toChatAnswer(answer))
}
