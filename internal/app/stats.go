package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/okian/foil/internal/domain/badge"
	"github.com/okian/foil/internal/domain/catalog"
	"github.com/okian/foil/pkg/logger"
)

// StateView is the player-facing snapshot of the save.
type StateView struct {
	Money            int              `json:"money"`
	Tokens           int              `json:"tokens"`
	LifetimeSpent    int              `json:"lifetimeSpent"`
	LifetimeWinnings int              `json:"lifetimeWinnings"`
	VendorXP         int              `json:"vendorXp"`
	VendorLevel      int              `json:"vendorLevel"`
	NextLevelXP      int              `json:"nextLevelXp"`
	PityCount        int              `json:"pityCount"`
	BackstopReady    bool             `json:"backstopReady"`
	Streak           StreakView       `json:"streak"`
	Upgrades         map[string]int   `json:"upgrades"`
	Badges           map[string]int64 `json:"badges"`
	Stats            Stats            `json:"stats"`
	InventoryCount   int              `json:"inventoryCount"`
}

// GetState returns the save snapshot clients render from.
func (s *Service) GetState() StateView {
	s.mu.Lock()
	defer s.mu.Unlock()

	upgrades := make(map[string]int, len(s.state.Upgrades))
	for k, v := range s.state.Upgrades {
		upgrades[k] = v
	}
	badges := make(map[string]int64, len(s.state.Badges))
	for k, v := range s.state.Badges {
		badges[k] = v
	}
	return StateView{
		Money:            s.state.Money,
		Tokens:           s.state.Tokens,
		LifetimeSpent:    s.state.LifetimeSpent,
		LifetimeWinnings: s.state.LifetimeWinnings,
		VendorXP:         s.state.VendorXP,
		VendorLevel:      s.state.VendorLevel,
		NextLevelXP:      s.ladder.NextLevelXP(s.state.VendorXP),
		PityCount:        s.state.PityCount,
		BackstopReady:    s.state.BackstopReady,
		Streak:           s.streakViewLocked(),
		Upgrades:         upgrades,
		Badges:           badges,
		Stats:            s.state.Stats,
		InventoryCount:   len(s.state.Inventory),
	}
}

// Inventory lists owned items, optionally filtered to one state.
func (s *Service) Inventory(stateFilter string) []*Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Item, 0, len(s.state.Inventory))
	for _, it := range s.state.Inventory {
		if stateFilter == "" || it.State == stateFilter {
			out = append(out, it)
		}
	}
	return out
}

// ItemByID fetches one inventory item.
func (s *Service) ItemByID(id string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.state.item(id)
	if it == nil {
		return nil, ErrUnknownItem
	}
	return it, nil
}

// BadgeView pairs a badge definition with when it was earned, if ever.
type BadgeView struct {
	badge.Def
	EarnedAt int64 `json:"earnedAt,omitempty"`
}

// Badges lists every badge with earned timestamps.
func (s *Service) Badges() []BadgeView {
	s.mu.Lock()
	defer s.mu.Unlock()
	defs := badge.Defs(s.cat)
	out := make([]BadgeView, 0, len(defs))
	for _, d := range defs {
		out = append(out, BadgeView{Def: d, EarnedAt: s.state.Badges[d.ID]})
	}
	return out
}

// EVReport maps each tier to the expected payout per tile draw over price.
func (s *Service) EVReport() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64)
	for _, t := range s.cat.Tiers() {
		out[t.ID] = s.cat.ComputeEV(t.ID)
	}
	return out
}

// Tiers lists the configured catalog tiers.
func (s *Service) Tiers() []catalog.Tier {
	return s.cat.Tiers()
}

// Sets lists the ticket sets and their tier membership.
func (s *Service) Sets() []catalog.SetMeta {
	return s.cat.Sets()
}

// SetUnlockAll toggles the debug flag that opens every tier.
func (s *Service) SetUnlockAll(ctx context.Context, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Flags.UnlockAll = on
	s.persistLocked(ctx)
}

// Export returns the raw save as JSON.
func (s *Service) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(s.state)
}

// Import replaces the save with the supplied JSON. Decoding is permissive:
// missing fields zero out and maps are re-initialized, but malformed JSON is
// rejected without touching the current save.
func (s *Service) Import(ctx context.Context, data []byte) error {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	st.ensureMaps()
	clampNonNegative(&st.Money, &st.Tokens, &st.LifetimeSpent, &st.LifetimeWinnings,
		&st.VendorXP, &st.ClaimsSinceToken, &st.PityCount, &st.Streak.Count)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = &st
	s.state.VendorLevel = s.ladder.LevelForXP(s.state.VendorXP)
	s.logger.Info(ctx, "save imported", logger.Int("inventory", len(st.Inventory)))
	s.persistLocked(ctx)
	s.refreshGaugesLocked()
	return nil
}

// clampNonNegative floors hand-edited counters at zero.
func clampNonNegative(vals ...*int) {
	for _, v := range vals {
		if *v < 0 {
			*v = 0
		}
	}
}

// Reset wipes the save back to a fresh start and deletes the stored copy.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = newState()
	if err := s.store.Delete(ctx, s.saveKey); err != nil {
		s.logger.Warn(ctx, "delete save failed", logger.Error(err))
	}
	s.logger.Info(ctx, "save reset")
	s.refreshGaugesLocked()
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"tiers":          len(s.cat.Tiers()),
		"upgrades":       len(s.upgrades),
		"inventory":      len(s.state.Inventory),
		"money":          s.state.Money,
		"tokens":         s.state.Tokens,
		"vendorLevel":    s.state.VendorLevel,
		"claims":         s.state.Stats.Claims,
		"tilesScratched": s.state.Stats.TilesScratched,
		"badges":         len(s.state.Badges),
	}
	return stats
}
