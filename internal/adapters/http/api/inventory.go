// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// InventoryHandler serves owned tickets.
type InventoryHandler struct {
	deps Dependencies
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(deps Dependencies) *InventoryHandler {
	return &InventoryHandler{deps: deps}
}

// HandleList handles GET /api/v1/inventory requests. An optional ?state=
// query filters by item state.
func (h *InventoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	items := h.deps.Inventory(r.URL.Query().Get("state"))
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// HandleGet handles GET /api/v1/inventory/{id} requests.
func (h *InventoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/inventory/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	item, err := h.deps.ItemByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
