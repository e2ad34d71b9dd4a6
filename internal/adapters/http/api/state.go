// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// StateHandler serves save snapshots and the streak meter.
type StateHandler struct {
	deps Dependencies
}

// NewStateHandler creates a new state handler.
func NewStateHandler(deps Dependencies) *StateHandler {
	return &StateHandler{deps: deps}
}

// HandleGetState handles GET /api/v1/state requests.
func (h *StateHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.GetState())
}

// HandleGetStreak handles GET /api/v1/streak requests.
func (h *StateHandler) HandleGetStreak(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.StreakMetrics())
}
