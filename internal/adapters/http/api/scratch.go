// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ScratchHandler handles reveals and claims.
type ScratchHandler struct {
	deps Dependencies
}

// NewScratchHandler creates a new scratch handler.
func NewScratchHandler(deps Dependencies) *ScratchHandler {
	return &ScratchHandler{deps: deps}
}

type revealRequest struct {
	ItemID string `json:"itemId"`
	Index  int    `json:"index"`
}

type claimRequest struct {
	ItemID string `json:"itemId"`
}

// HandleReveal handles POST /api/v1/reveal requests.
func (h *ScratchHandler) HandleReveal(w http.ResponseWriter, r *http.Request) {
	const op = "api.reveal"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req revealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ItemID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	item, err := h.deps.RevealAt(r.Context(), req.ItemID, req.Index)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// HandleRevealBonus handles POST /api/v1/reveal-bonus requests.
func (h *ScratchHandler) HandleRevealBonus(w http.ResponseWriter, r *http.Request) {
	const op = "api.reveal_bonus"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ItemID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	item, err := h.deps.RevealBonus(r.Context(), req.ItemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// HandleClaim handles POST /api/v1/claim requests.
func (h *ScratchHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	const op = "api.claim"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ItemID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	sum, err := h.deps.Claim(r.Context(), req.ItemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
