// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/foil/internal/app"
	"github.com/okian/foil/internal/domain/catalog"
	"github.com/okian/foil/internal/domain/upgrade"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Catalog reads.
	Tiers() []catalog.Tier
	Sets() []catalog.SetMeta
	EVReport() map[string]float64

	// Save reads.
	GetState() service.StateView
	Inventory(stateFilter string) []*service.Item
	ItemByID(id string) (*service.Item, error)
	Upgrades() []service.UpgradeView
	Effects() upgrade.Effects
	UnlockStatus() []service.TierUnlockView
	Badges() []service.BadgeView
	StreakMetrics() service.StreakView
	GetStats() map[string]interface{}

	// Mutations.
	PurchaseTickets(ctx context.Context, tierID string, qty int) (*service.PurchaseResult, error)
	RevealAt(ctx context.Context, itemID string, idx int) (*service.Item, error)
	RevealBonus(ctx context.Context, itemID string) (*service.Item, error)
	Claim(ctx context.Context, itemID string) (*service.ClaimSummary, error)
	BuyUpgrade(ctx context.Context, id string) (service.UpgradeView, error)
	UnlockTier(ctx context.Context, tierID string) error

	// Save management.
	Export() ([]byte, error)
	Import(ctx context.Context, data []byte) error
	Reset(ctx context.Context) error
}

// Server wires HTTP routes for the game API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	catalogHandler   *CatalogHandler
	stateHandler     *StateHandler
	purchaseHandler  *PurchaseHandler
	scratchHandler   *ScratchHandler
	inventoryHandler *InventoryHandler
	upgradesHandler  *UpgradesHandler
	unlocksHandler   *UnlocksHandler
	badgesHandler    *BadgesHandler
	saveHandler      *SaveHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		catalogHandler:   NewCatalogHandler(deps),
		stateHandler:     NewStateHandler(deps),
		purchaseHandler:  NewPurchaseHandler(deps),
		scratchHandler:   NewScratchHandler(deps),
		inventoryHandler: NewInventoryHandler(deps),
		upgradesHandler:  NewUpgradesHandler(deps),
		unlocksHandler:   NewUnlocksHandler(deps),
		badgesHandler:    NewBadgesHandler(deps),
		saveHandler:      NewSaveHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("/api/v1/tiers", MetricsMiddleware(s.catalogHandler.HandleGetTiers, "tiers"))
	mux.HandleFunc("/api/v1/ev", MetricsMiddleware(s.catalogHandler.HandleGetEV, "ev"))
	mux.HandleFunc("/api/v1/state", MetricsMiddleware(s.stateHandler.HandleGetState, "state"))
	mux.HandleFunc("/api/v1/streak", MetricsMiddleware(s.stateHandler.HandleGetStreak, "streak"))
	mux.HandleFunc("/api/v1/purchase", MetricsMiddleware(s.purchaseHandler.HandlePurchase, "purchase"))
	mux.HandleFunc("/api/v1/reveal", MetricsMiddleware(s.scratchHandler.HandleReveal, "reveal"))
	mux.HandleFunc("/api/v1/reveal-bonus", MetricsMiddleware(s.scratchHandler.HandleRevealBonus, "reveal_bonus"))
	mux.HandleFunc("/api/v1/claim", MetricsMiddleware(s.scratchHandler.HandleClaim, "claim"))
	mux.HandleFunc("/api/v1/inventory", MetricsMiddleware(s.inventoryHandler.HandleList, "inventory"))
	mux.HandleFunc("/api/v1/inventory/", MetricsMiddleware(s.inventoryHandler.HandleGet, "inventory_item"))
	mux.HandleFunc("/api/v1/upgrades", MetricsMiddleware(s.upgradesHandler.HandleList, "upgrades"))
	mux.HandleFunc("/api/v1/upgrades/buy", MetricsMiddleware(s.upgradesHandler.HandleBuy, "upgrades_buy"))
	mux.HandleFunc("/api/v1/unlocks", MetricsMiddleware(s.unlocksHandler.HandleUnlocks, "unlocks"))
	mux.HandleFunc("/api/v1/badges", MetricsMiddleware(s.badgesHandler.HandleList, "badges"))
	mux.HandleFunc("/api/v1/save", MetricsMiddleware(s.saveHandler.HandleSave, "save"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service sentinels onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownTier),
		errors.Is(err, service.ErrUnknownItem),
		errors.Is(err, service.ErrUnknownUpgrade):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidIndex),
		errors.Is(err, service.ErrInvalidSave),
		errors.Is(err, service.ErrNoBonusBox):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrInsufficientTokens),
		errors.Is(err, service.ErrTierLocked),
		errors.Is(err, service.ErrAlreadyClaimed),
		errors.Is(err, service.ErrNotFullyRevealed),
		errors.Is(err, service.ErrUpgradeCapped),
		errors.Is(err, service.ErrRequirementsUnmet),
		errors.Is(err, service.ErrAlreadyUnlocked):
		writeError(w, http.StatusConflict, "conflict", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
