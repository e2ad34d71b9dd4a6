// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/foil/internal/domain/catalog"
)

// CatalogHandler serves the static tier content.
type CatalogHandler struct {
	deps Dependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps Dependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

type tiersResponse struct {
	Tiers []catalog.Tier     `json:"tiers"`
	Sets  []setResponse      `json:"sets"`
	EV    map[string]float64 `json:"ev"`
}

type setResponse struct {
	Name    string   `json:"name"`
	TierIDs []string `json:"tierIds"`
}

// HandleGetTiers handles GET /api/v1/tiers requests.
func (h *CatalogHandler) HandleGetTiers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sets := h.deps.Sets()
	resp := tiersResponse{
		Tiers: h.deps.Tiers(),
		Sets:  make([]setResponse, 0, len(sets)),
		EV:    h.deps.EVReport(),
	}
	for _, s := range sets {
		resp.Sets = append(resp.Sets, setResponse{Name: s.Name, TierIDs: s.TierIDs})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGetEV handles GET /api/v1/ev requests.
func (h *CatalogHandler) HandleGetEV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.EVReport())
}
