// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"io"
	"net/http"
)

// Save uploads are capped to keep a stray client from streaming gigabytes.
const maxSaveBytes = 8 << 20

// SaveHandler serves save export, import, and reset.
type SaveHandler struct {
	deps Dependencies
}

// NewSaveHandler creates a new save handler.
func NewSaveHandler(deps Dependencies) *SaveHandler {
	return &SaveHandler{deps: deps}
}

// HandleSave handles GET, PUT, and DELETE /api/v1/save requests: export,
// import, and reset respectively.
func (h *SaveHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	const op = "api.save"
	switch r.Method {
	case http.MethodGet:
		data, err := h.deps.Export()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	case http.MethodPut:
		data, err := io.ReadAll(io.LimitReader(r.Body, maxSaveBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.Import(r.Context(), data); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
	case http.MethodDelete:
		if err := h.deps.Reset(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
	default:
		http.NotFound(w, r)
	}
}
