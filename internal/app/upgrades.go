package service

import (
	"context"

	"github.com/okian/foil/internal/domain/upgrade"
	"github.com/okian/foil/pkg/logger"
)

// UpgradeView is one upgrade with its owned level folded in.
type UpgradeView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Desc      string `json:"desc,omitempty"`
	Level     int    `json:"level"`
	LevelCap  int    `json:"levelCap"`
	NextCost  int    `json:"nextCost"`
	Available bool   `json:"available"`
}

// Upgrades lists the tree with owned levels, next costs, and requirement
// availability.
func (s *Service) Upgrades() []UpgradeView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]UpgradeView, 0, len(s.upgrades))
	for _, d := range s.upgrades {
		out = append(out, s.upgradeViewLocked(d))
	}
	return out
}

func (s *Service) upgradeViewLocked(d upgrade.Def) UpgradeView {
	lvl := s.state.Upgrades[d.ID]
	return UpgradeView{
		ID:        d.ID,
		Name:      d.Name,
		Type:      d.Type,
		Desc:      d.Desc,
		Level:     lvl,
		LevelCap:  d.LevelCap,
		NextCost:  d.NextCost(lvl),
		Available: d.MeetsRequirements(s.state.Upgrades),
	}
}

// Effects reports the aggregated modifiers of everything owned.
func (s *Service) Effects() upgrade.Effects {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectsLocked()
}

// BuyUpgrade purchases the next level of an upgrade with money.
func (s *Service) BuyUpgrade(ctx context.Context, id string) (UpgradeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var def *upgrade.Def
	for i := range s.upgrades {
		if s.upgrades[i].ID == id {
			def = &s.upgrades[i]
			break
		}
	}
	if def == nil {
		return UpgradeView{}, ErrUnknownUpgrade
	}

	lvl := s.state.Upgrades[id]
	if lvl >= def.LevelCap {
		return s.upgradeViewLocked(*def), ErrUpgradeCapped
	}
	if !def.MeetsRequirements(s.state.Upgrades) {
		return s.upgradeViewLocked(*def), ErrRequirementsUnmet
	}
	cost := def.NextCost(lvl)
	if s.state.Money < cost {
		return s.upgradeViewLocked(*def), ErrInsufficientFunds
	}

	s.state.Money -= cost
	s.state.Upgrades[id] = lvl + 1

	s.logger.Info(ctx, "upgrade purchased",
		logger.String("upgrade", id),
		logger.Int("level", lvl+1),
		logger.Int("cost", cost),
	)
	s.persistLocked(ctx)
	s.refreshGaugesLocked()
	return s.upgradeViewLocked(*def), nil
}
