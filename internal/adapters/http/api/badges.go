// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// BadgesHandler serves badge definitions and earned timestamps.
type BadgesHandler struct {
	deps Dependencies
}

// NewBadgesHandler creates a new badges handler.
func NewBadgesHandler(deps Dependencies) *BadgesHandler {
	return &BadgesHandler{deps: deps}
}

// HandleList handles GET /api/v1/badges requests.
func (h *BadgesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"badges": h.deps.Badges()})
}
