package service

import (
	"context"

	"github.com/okian/foil/internal/domain/catalog"
	"github.com/okian/foil/internal/domain/ticket"
	"github.com/okian/foil/pkg/logger"
	"github.com/okian/foil/pkg/metrics"
)

// RevealAt scratches the tile at idx on an owned ticket. The scratch-radius
// upgrade widens what one tap uncovers. The ticket is generated lazily on
// the first reveal, and that is also the moment a pending pity backstop
// rewrites a losing grid.
func (s *Service) RevealAt(ctx context.Context, itemID string, idx int) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.state.item(itemID)
	if item == nil {
		return nil, ErrUnknownItem
	}
	if item.State == ItemClaimed {
		return nil, ErrAlreadyClaimed
	}
	tier, ok := s.cat.TierByID(item.TierID)
	if !ok {
		return nil, ErrUnknownTier
	}
	// Validate before any mutation so a bad index cannot attach the ticket,
	// consume an armed backstop, or touch the stats.
	if idx < 0 || idx >= tier.Cols()*tier.Rows() {
		return nil, ErrInvalidIndex
	}
	s.attachTicketLocked(item)

	t := item.Ticket
	if t.FirstRevealAt == 0 {
		t.FirstRevealAt = s.now().UnixMilli()
		s.applyBackstopLocked(ctx, tier, t)
	}

	mode := ticket.ModeForLevel(s.state.Upgrades["scratch_radius"])
	for _, i := range ticket.RevealIndices(mode, idx, tier.Cols(), tier.Rows()) {
		if !t.Tiles[i].Revealed {
			t.Tiles[i].Revealed = true
			s.state.Stats.TilesScratched++
		}
	}
	if item.State == ItemSealed {
		s.state.Stats.TicketsScratched++
	}
	item.State = ItemScratched

	s.scanBadgesLocked(ctx)
	s.persistLocked(ctx)
	return item, nil
}

// RevealBonus uncovers the bonus box. An unrevealed bonus pays nothing at
// claim time, so skipping this step forfeits it.
func (s *Service) RevealBonus(ctx context.Context, itemID string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.state.item(itemID)
	if item == nil {
		return nil, ErrUnknownItem
	}
	if item.State == ItemClaimed {
		return nil, ErrAlreadyClaimed
	}
	s.attachTicketLocked(item)
	if item.Ticket.Bonus == nil {
		return nil, ErrNoBonusBox
	}
	item.Ticket.Bonus.Revealed = true
	if item.State == ItemSealed {
		s.state.Stats.TicketsScratched++
	}
	item.State = ItemScratched
	s.persistLocked(ctx)
	return item, nil
}

// attachTicketLocked generates the ticket content on demand.
func (s *Service) attachTicketLocked(item *Item) {
	if item.Ticket != nil {
		return
	}
	t := ticket.Generate(s.cat, item.TierID, item.SerialID)
	item.Ticket = &t
}

// applyBackstopLocked rewrites a losing grid so the ticket pays at least 30%
// of its price. The backstop is armed by a pity run of losses and consumed
// here whether or not the ticket needed help.
func (s *Service) applyBackstopLocked(ctx context.Context, tier catalog.Tier, t *ticket.Ticket) {
	if !s.state.BackstopReady || t.BackstopApplied || len(t.Tiles) == 0 || len(t.Winning) == 0 {
		return
	}
	s.state.BackstopReady = false

	floor := int(backstopFloorPct * float64(tier.Price))
	if floor < 1 {
		floor = 1
	}
	// The grid is only rewritten when it pays under the floor, but the ticket
	// is marked backstopped either way so the claim summary reports the
	// consumed charge.
	if winSum := t.WinningSum(); winSum < floor {
		target := -1
		for i := range t.Tiles {
			if t.Tiles[i].Win {
				target = i
				break
			}
		}
		if target >= 0 {
			needed := floor - (winSum - t.Tiles[target].Prize)
			if t.Tiles[target].Prize < needed {
				t.Tiles[target].Prize = needed
			}
		} else {
			t.Tiles[0].Num = t.Winning[0]
			t.Tiles[0].Win = true
			if t.Tiles[0].Prize < floor {
				t.Tiles[0].Prize = floor
			}
		}
	}
	t.BackstopApplied = true
	s.state.Stats.BackstopsUsed++
	metrics.RecordBackstopConsumed()
	s.logger.Info(ctx, "pity backstop applied",
		logger.String("tier", tier.ID),
		logger.Int("floor", floor),
	)
}

// StreakView is the streak meter as clients render it.
type StreakView struct {
	Count      int     `json:"count"`
	Stage      int     `json:"stage"`
	Fill       float64 `json:"fill"`
	Percent    int     `json:"percent"`
	Multiplier float64 `json:"multiplier"`
	ExpiresAt  int64   `json:"expiresAt"`
}

// StreakMetrics reports the live streak meter, decaying it first.
func (s *Service) StreakMetrics() StreakView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streakViewLocked()
}

// decayStreakLocked zeroes an expired streak. Decay is lazy; nothing runs on
// a timer.
func (s *Service) decayStreakLocked() {
	if s.state.Streak.Count > 0 && s.now().UnixMilli() >= s.state.Streak.ExpiresAt {
		s.state.Streak = Streak{}
	}
}

// bumpStreakLocked extends the streak window and advances the counter. Runs
// last in a claim so the multiplier it feeds never applies to the claim that
// earned it.
func (s *Service) bumpStreakLocked() {
	s.decayStreakLocked()
	s.state.Streak.Count++
	s.state.Streak.ExpiresAt = s.now().Add(streakWindow).UnixMilli()
	if s.state.Streak.Count > s.state.Stats.BestStreak {
		s.state.Stats.BestStreak = s.state.Streak.Count
	}
}

// streakStage buckets the claim count: 2 claims light the meter, 4 and 6
// advance it.
func streakStage(count int) int {
	switch {
	case count >= 6:
		return 3
	case count >= 4:
		return 2
	case count >= 2:
		return 1
	default:
		return 0
	}
}

// stageWidths scale the remaining-time fraction into the meter fill.
var stageWidths = [4]float64{0, 0.4, 0.8, 1.0}

// streakViewLocked computes the rendered meter. The bonus percent is
// quantized per stage rather than scaled continuously, matching what the
// meter displays.
func (s *Service) streakViewLocked() StreakView {
	s.decayStreakLocked()
	st := s.state.Streak
	stage := streakStage(st.Count)
	v := StreakView{Count: st.Count, Stage: stage, ExpiresAt: st.ExpiresAt, Multiplier: 1}
	if stage == 0 {
		return v
	}

	remaining := float64(st.ExpiresAt-s.now().UnixMilli()) / float64(streakWindow.Milliseconds())
	if remaining < 0 {
		remaining = 0
	}
	if remaining > 1 {
		remaining = 1
	}
	fill := stageWidths[stage] * remaining
	v.Fill = fill

	switch stage {
	case 3:
		switch {
		case fill >= 0.8:
			v.Percent = 5
		case fill >= 0.4:
			v.Percent = 4
		case fill > 0:
			v.Percent = 2
		}
	case 2:
		switch {
		case fill >= 0.32:
			v.Percent = 4
		case fill > 0:
			v.Percent = 2
		}
	case 1:
		if fill > 0 {
			v.Percent = 2
		}
	}
	v.Multiplier = 1 + float64(v.Percent)/100
	return v
}
