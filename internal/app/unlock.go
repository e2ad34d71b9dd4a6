package service

import (
	"context"

	"github.com/okian/foil/internal/adapters/events"
	"github.com/okian/foil/pkg/logger"
)

// TierUnlockView is one tier's availability: whether it can be bought now,
// and if not, whether its unlock gates could be satisfied.
type TierUnlockView struct {
	TierID      string `json:"tierId"`
	Purchasable bool   `json:"purchasable"`
	Eligible    bool   `json:"eligible"`
	Reason      string `json:"reason,omitempty"`
	TokenCost   int    `json:"tokenCost,omitempty"`
}

// UnlockStatus reports every tier's availability for the current save.
func (s *Service) UnlockStatus() []TierUnlockView {
	s.mu.Lock()
	defer s.mu.Unlock()
	tiers := s.cat.Tiers()
	out := make([]TierUnlockView, 0, len(tiers))
	for _, t := range tiers {
		st := s.unlockStateLocked(t)
		out = append(out, TierUnlockView{
			TierID:      t.ID,
			Purchasable: s.purchasableLocked(t),
			Eligible:    st.Unlocked,
			Reason:      st.Reason,
			TokenCost:   t.Unlock.Tokens,
		})
	}
	return out
}

// UnlockTier spends the tier's token cost and opens it permanently.
func (s *Service) UnlockTier(ctx context.Context, tierID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tier, ok := s.cat.TierByID(tierID)
	if !ok {
		return ErrUnknownTier
	}
	if s.state.Unlocked[tierID] {
		return ErrAlreadyUnlocked
	}
	st := s.unlockStateLocked(tier)
	if !st.Unlocked {
		if st.Reason == "not enough tokens" {
			return ErrInsufficientTokens
		}
		return ErrTierLocked
	}

	nowMs := s.now().UnixMilli()
	// The unlock-all debug flag opens tiers without charging; spending here
	// would drive the balance negative since eligibility skipped the token
	// check.
	if cost := tier.Unlock.Tokens; cost > 0 && !s.state.Flags.UnlockAll {
		s.state.Tokens -= cost
		s.bus.Publish(events.Event{Kind: events.KindTokensSpent, At: nowMs, Amount: cost})
	}
	s.state.Unlocked[tierID] = true

	s.bus.Publish(events.Event{Kind: events.KindTierUnlocked, At: nowMs, TierID: tierID})
	s.logger.Info(ctx, "tier unlocked", logger.String("tier", tierID))
	s.persistLocked(ctx)
	s.refreshGaugesLocked()
	return nil
}
