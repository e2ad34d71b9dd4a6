// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// UpgradesHandler serves the upgrade tree and purchases.
type UpgradesHandler struct {
	deps Dependencies
}

// NewUpgradesHandler creates a new upgrades handler.
func NewUpgradesHandler(deps Dependencies) *UpgradesHandler {
	return &UpgradesHandler{deps: deps}
}

// HandleList handles GET /api/v1/upgrades requests.
func (h *UpgradesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"upgrades": h.deps.Upgrades(),
		"effects":  h.deps.Effects(),
	})
}

type buyUpgradeRequest struct {
	ID string `json:"id"`
}

// HandleBuy handles POST /api/v1/upgrades/buy requests.
func (h *UpgradesHandler) HandleBuy(w http.ResponseWriter, r *http.Request) {
	const op = "api.upgrades_buy"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req buyUpgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	view, err := h.deps.BuyUpgrade(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
