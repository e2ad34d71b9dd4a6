// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// PurchaseHandler handles ticket purchases.
type PurchaseHandler struct {
	deps Dependencies
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(deps Dependencies) *PurchaseHandler {
	return &PurchaseHandler{deps: deps}
}

type purchaseRequest struct {
	TierID string `json:"tierId"`
	Qty    int    `json:"qty"`
}

func (p purchaseRequest) validate() error {
	if strings.TrimSpace(p.TierID) == "" {
		return NewKind("api.purchase", ErrBadRequest)
	}
	return nil
}

// HandlePurchase handles POST /api/v1/purchase requests.
func (h *PurchaseHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	const op = "api.purchase"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}
	res, err := h.deps.PurchaseTickets(r.Context(), req.TierID, req.Qty)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
