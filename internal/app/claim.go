package service

import (
	"context"
	"math"
	"strconv"

	"github.com/okian/foil/internal/adapters/events"
	"github.com/okian/foil/pkg/logger"
	"github.com/okian/foil/pkg/metrics"
)

// Claim cashes in a fully revealed ticket. The whole settlement runs as one
// ordered mutation under the service lock: payout, token rewards, stats,
// pity bookkeeping, badges, and the streak bump at the very end so this
// claim's multiplier never includes itself.
func (s *Service) Claim(ctx context.Context, itemID string) (*ClaimSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.state.item(itemID)
	if item == nil {
		return nil, ErrUnknownItem
	}
	if item.State == ItemClaimed {
		return nil, ErrAlreadyClaimed
	}
	if item.Ticket == nil || !item.Ticket.FullyRevealed() {
		return nil, ErrNotFullyRevealed
	}
	tier, ok := s.cat.TierByID(item.TierID)
	if !ok {
		return nil, ErrUnknownTier
	}

	t := item.Ticket
	nowMs := s.now().UnixMilli()

	// Payout: winning tiles scaled by upgrade and streak multipliers, plus a
	// revealed bonus at face value. Unrevealed bonuses are forfeited.
	winSum := t.WinningSum()
	upgMult := s.effectsLocked().PrizeMultiplier()
	streakMult := s.streakViewLocked().Multiplier
	payout := int(math.Floor(float64(winSum) * upgMult * streakMult))
	bonus := 0
	if t.Bonus != nil && t.Bonus.Revealed {
		bonus = t.Bonus.Amount
		payout += bonus
	}

	s.state.Money += payout
	s.state.LifetimeWinnings += payout

	// First claim on a tier pays a token.
	tokensGranted := 0
	if !s.state.FirstClaims[tier.ID] {
		s.state.FirstClaims[tier.ID] = true
		tokensGranted++
	}

	// Ten claims inside a calendar day pay a token, once per day.
	day := s.now().Format("2006-01-02")
	if s.state.Daily.Day != day {
		s.state.Daily = Daily{Day: day}
	}
	s.state.Daily.Claimed++
	if s.state.Daily.Claimed >= dailyClaimTarget && !s.state.Daily.Awarded {
		s.state.Daily.Awarded = true
		tokensGranted++
	}

	// Every fifteenth claim pays a token; the remainder carries over.
	s.state.ClaimsSinceToken++
	tokensGranted += s.state.ClaimsSinceToken / claimsPerToken
	s.state.ClaimsSinceToken %= claimsPerToken

	s.grantTokensLocked(tokensGranted)

	// Lifetime stats.
	s.state.Stats.Claims++
	if payout > s.state.Stats.BiggestWin {
		s.state.Stats.BiggestWin = payout
	}
	win := payout >= tier.Price
	if win {
		s.state.Stats.Wins++
		s.state.Stats.CurrentLossStreak = 0
	} else {
		s.state.Stats.Losses++
		s.state.Stats.CurrentLossStreak++
		if s.state.Stats.CurrentLossStreak > s.state.Stats.LongestLossStreak {
			s.state.Stats.LongestLossStreak = s.state.Stats.CurrentLossStreak
		}
	}
	for _, tile := range t.Tiles {
		if tile.Win {
			s.state.Stats.TilePrizeCounts[strconv.Itoa(tile.Prize)]++
		}
	}
	if t.FirstRevealAt > 0 {
		clearMs := nowMs - t.FirstRevealAt
		if s.state.Stats.FastestClearMs == nil || clearMs < *s.state.Stats.FastestClearMs {
			s.state.Stats.FastestClearMs = &clearMs
		}
	}

	// Pity bookkeeping. Any win while the counter is hot counts as a dodged
	// backstop. Reaching the threshold arms the backstop and restarts the
	// counter; a backstopped claim classifies like any other by payout.
	if win {
		if s.state.PityCount > 0 {
			s.state.Stats.PityAvoids++
		}
		s.state.PityCount = 0
	} else {
		s.state.PityCount++
		if s.state.PityCount >= pityThreshold {
			s.state.PityCount = 0
			s.state.BackstopReady = true
		}
	}

	item.State = ItemClaimed
	item.Claim = &ClaimSummary{
		Payout:     payout,
		Price:      tier.Price,
		Net:        payout - tier.Price,
		WinningSum: winSum,
		Winning:    append([]int(nil), t.Winning...),
		UpgMult:    upgMult,
		StreakMult: streakMult,
		Bonus:      bonus,
		Backstop:   t.BackstopApplied,
		At:         nowMs,
	}

	// Streak bumps last, then badges read the updated best streak.
	s.bumpStreakLocked()
	s.scanBadgesLocked(ctx)

	metrics.RecordTicketClaimed(tier.ID)
	metrics.AddPayout(payout)
	s.bus.Publish(events.Event{
		Kind:   events.KindTicketClaimed,
		At:     nowMs,
		TierID: tier.ID,
		ItemID: item.ID,
		Payout: payout,
	})
	s.logger.Info(ctx, "ticket claimed",
		logger.String("tier", tier.ID),
		logger.String("item", item.ID),
		logger.Int("payout", payout),
	)

	s.persistLocked(ctx)
	s.refreshGaugesLocked()
	return item.Claim, nil
}
