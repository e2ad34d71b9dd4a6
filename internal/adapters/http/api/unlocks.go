// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// UnlocksHandler serves tier availability and unlock purchases.
type UnlocksHandler struct {
	deps Dependencies
}

// NewUnlocksHandler creates a new unlocks handler.
func NewUnlocksHandler(deps Dependencies) *UnlocksHandler {
	return &UnlocksHandler{deps: deps}
}

type unlockRequest struct {
	TierID string `json:"tierId"`
}

// HandleUnlocks handles GET and POST /api/v1/unlocks requests.
func (h *UnlocksHandler) HandleUnlocks(w http.ResponseWriter, r *http.Request) {
	const op = "api.unlocks"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"tiers": h.deps.UnlockStatus()})
	case http.MethodPost:
		var req unlockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if strings.TrimSpace(req.TierID) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if err := h.deps.UnlockTier(r.Context(), req.TierID); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tiers": h.deps.UnlockStatus()})
	default:
		http.NotFound(w, r)
	}
}
