package api

import (
	"net/http"

	"github.com/okian/moonsurvival/internal/domain/model"
)

type itemsResponse struct {
	Items      []model.Item `json:"items"`
	ChatRemote bool         `json:"chat_remote"`
}

// ItemsHandler serves the reference item list.
type ItemsHandler struct {
	deps Dependencies
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(deps Dependencies) *ItemsHandler {
	return &ItemsHandler{deps: deps}
}

// HandleGetItems handles GET /items requests.
func (h *ItemsHandler) HandleGetItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, itemsResponse{
		Items:      h.deps.Items(r.Context()),
		ChatRemote: h.deps.ChatRemote(),
	})
}
