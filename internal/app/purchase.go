package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/okian/foil/internal/adapters/events"
	"github.com/okian/foil/internal/domain/catalog"
	"github.com/okian/foil/internal/domain/progression"
	"github.com/okian/foil/internal/domain/ticket"
	"github.com/okian/foil/pkg/logger"
	"github.com/okian/foil/pkg/metrics"
)

// Purchase limits.
const maxPurchaseQty = 100

// Vendor XP earned per ticket is half the sticker price, rounded.
const vendorXPPriceFactor = 0.5

// AddCash credits money. Negative amounts are rejected.
func (s *Service) AddCash(ctx context.Context, amount int) (int, error) {
	if amount < 0 {
		return 0, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Money += amount
	s.persistLocked(ctx)
	s.refreshGaugesLocked()
	return s.state.Money, nil
}

// SpendCash debits money, failing without mutation when the balance is
// short.
func (s *Service) SpendCash(ctx context.Context, amount int) (int, error) {
	if amount < 0 {
		return 0, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Money < amount {
		return s.state.Money, ErrInsufficientFunds
	}
	s.state.Money -= amount
	s.persistLocked(ctx)
	s.refreshGaugesLocked()
	return s.state.Money, nil
}

// AddTokens credits tokens and announces the grant.
func (s *Service) AddTokens(ctx context.Context, n int) (int, error) {
	if n < 0 {
		return 0, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grantTokensLocked(n)
	s.persistLocked(ctx)
	s.refreshGaugesLocked()
	return s.state.Tokens, nil
}

// SpendTokens debits tokens, failing without mutation when short.
func (s *Service) SpendTokens(ctx context.Context, n int) (int, error) {
	if n < 0 {
		return 0, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Tokens < n {
		return s.state.Tokens, ErrInsufficientTokens
	}
	s.state.Tokens -= n
	s.bus.Publish(events.Event{Kind: events.KindTokensSpent, At: s.now().UnixMilli(), Amount: n})
	s.persistLocked(ctx)
	s.refreshGaugesLocked()
	return s.state.Tokens, nil
}

// grantTokensLocked credits tokens and publishes the grant event. Zero
// grants are silent.
func (s *Service) grantTokensLocked(n int) {
	if n <= 0 {
		return
	}
	s.state.Tokens += n
	metrics.RecordTokensGranted(n)
	s.bus.Publish(events.Event{Kind: events.KindTokensAdded, At: s.now().UnixMilli(), Amount: n})
}

// PurchaseResult reports what one purchase produced.
type PurchaseResult struct {
	Items []*Item `json:"items"`
	Cost  int     `json:"cost"`
	Money int     `json:"money"`
}

// PurchaseTickets buys qty sealed tickets of a tier. The discounted total is
// charged up front; each ticket gets a tier-prefixed serial from a
// monotonically increasing per-prefix counter.
func (s *Service) PurchaseTickets(ctx context.Context, tierID string, qty int) (*PurchaseResult, error) {
	if qty <= 0 || qty > maxPurchaseQty {
		return nil, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tier, ok := s.cat.TierByID(tierID)
	if !ok {
		return nil, ErrUnknownTier
	}
	if !s.purchasableLocked(tier) {
		return nil, ErrTierLocked
	}

	cost := s.effectsLocked().DiscountedTotal(tier.Price, qty)
	if s.state.Money < cost {
		return nil, ErrInsufficientFunds
	}
	s.state.Money -= cost
	s.state.LifetimeSpent += cost

	nowMs := s.now().UnixMilli()
	prefix := ticket.SerialPrefix(tier.Name)
	items := make([]*Item, 0, qty)
	for i := 0; i < qty; i++ {
		s.state.SerialCounters[prefix]++
		it := &Item{
			ID:        "inv_" + uuid.NewString(),
			TierID:    tier.ID,
			SerialID:  ticket.FormatSerial(prefix, s.state.SerialCounters[prefix]),
			CreatedAt: nowMs,
			State:     ItemSealed,
		}
		s.state.Inventory = append(s.state.Inventory, it)
		items = append(items, it)
	}
	s.state.TierOwned[tier.ID] = true

	s.addVendorXPLocked(ctx, int(math.Round(float64(tier.Price)*vendorXPPriceFactor*float64(qty))))
	s.scanBadgesLocked(ctx)

	metrics.RecordTicketsPurchased(tier.ID, qty)
	metrics.AddSpend(cost)
	s.bus.Publish(events.Event{Kind: events.KindTicketsPurchased, At: nowMs, TierID: tier.ID, Amount: qty})
	s.logger.Info(ctx, "tickets purchased",
		logger.String("tier", tier.ID),
		logger.Int("qty", qty),
		logger.Int("cost", cost),
	)

	s.persistLocked(ctx)
	s.refreshGaugesLocked()
	return &PurchaseResult{Items: items, Cost: cost, Money: s.state.Money}, nil
}

// addVendorXPLocked grants XP and handles level-ups. Leveling up resets the
// claim streak; the new level is worth more than a hot meter.
func (s *Service) addVendorXPLocked(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	s.state.VendorXP += n
	newLevel := s.ladder.LevelForXP(s.state.VendorXP)
	if newLevel <= s.state.VendorLevel {
		return
	}
	s.state.VendorLevel = newLevel
	s.state.Streak = Streak{}
	metrics.RecordLevelUp()
	metrics.UpdateVendorLevel(newLevel)
	s.bus.Publish(events.Event{Kind: events.KindLevelUp, At: s.now().UnixMilli(), Level: newLevel})
	s.logger.Info(ctx, "vendor level up", logger.Int("level", newLevel))
}

// purchasableLocked reports whether a tier can be bought right now. Gated
// tiers must be explicitly unlocked first; ungated tiers are always open.
func (s *Service) purchasableLocked(tier catalog.Tier) bool {
	if s.state.Flags.UnlockAll || s.state.Unlocked[tier.ID] {
		return true
	}
	return tier.Unlock == (catalog.Unlock{})
}

// unlockStateLocked evaluates a tier's gate against the current save.
func (s *Service) unlockStateLocked(tier catalog.Tier) progression.UnlockState {
	return progression.Evaluate(tier, progression.Snapshot{
		VendorLevel:      s.state.VendorLevel,
		Tokens:           s.state.Tokens,
		LifetimeWinnings: s.state.LifetimeWinnings,
		Unlocked:         s.state.Unlocked,
		UnlockAll:        s.state.Flags.UnlockAll,
	})
}
