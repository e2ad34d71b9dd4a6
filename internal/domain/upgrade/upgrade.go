// Package upgrade defines purchasable upgrades and resolves owned levels
// into gameplay modifiers. Discounts and prize multipliers stack additively
// across upgrades; parallel scratch capacity is an absolute maximum.
package upgrade

import "math"

// Step is a tagged level->value function. Exactly one of Levels or PerLevel
// is set; Cap clamps either form. A Step evaluates to 0 at level 0.
type Step struct {
	// Levels indexes per-level values, 1-indexed and clamped to its length.
	Levels []float64 `yaml:"levels,omitempty"`
	// PerLevel scales linearly with level.
	PerLevel float64 `yaml:"per_level,omitempty"`
	// Cap bounds the evaluated value when > 0.
	Cap float64 `yaml:"cap,omitempty"`
}

// Eval returns the step value at level.
func (s *Step) Eval(level int) float64 {
	if s == nil || level <= 0 {
		return 0
	}
	cap := s.Cap
	if cap <= 0 {
		cap = math.Inf(1)
	}
	if len(s.Levels) > 0 {
		idx := level
		if idx > len(s.Levels) {
			idx = len(s.Levels)
		}
		return math.Min(s.Levels[idx-1], cap)
	}
	if s.PerLevel != 0 {
		return math.Min(s.PerLevel*float64(level), cap)
	}
	return 0
}

// EffectSpec lists the modifiers an upgrade contributes.
type EffectSpec struct {
	TicketDiscountPct  *Step `yaml:"ticket_discount_pct,omitempty"`
	PrizeMultiplierPct *Step `yaml:"prize_multiplier_pct,omitempty"`
	ScratchParallelMax *Step `yaml:"scratch_parallel_max,omitempty"`
}

// Def is one upgrade definition.
type Def struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Type     string  `yaml:"type"` // "ux" or "econ"
	LevelCap int     `yaml:"level_cap"`
	// CostPerLevel gives explicit costs; when exhausted or absent the
	// geometric schedule BaseCost * CostGrowth^level applies.
	CostPerLevel []int          `yaml:"cost_per_level,omitempty"`
	BaseCost     int            `yaml:"base_cost,omitempty"`
	CostGrowth   float64        `yaml:"cost_growth,omitempty"`
	Desc         string         `yaml:"desc,omitempty"`
	Effect       *EffectSpec    `yaml:"effect,omitempty"`
	Requires     map[string]int `yaml:"requires,omitempty"`
}

// NextCost returns the cost of the next level, or -1 when the upgrade is at
// cap (no next level exists).
func (d Def) NextCost(level int) int {
	if level >= d.LevelCap {
		return -1
	}
	if level < len(d.CostPerLevel) {
		return d.CostPerLevel[level]
	}
	base := d.BaseCost
	if base <= 0 {
		base = 1000
	}
	growth := d.CostGrowth
	if growth <= 0 {
		growth = 2
	}
	return int(float64(base) * math.Pow(growth, float64(level)))
}

// MeetsRequirements reports whether owned levels satisfy the prerequisite
// gates of d.
func (d Def) MeetsRequirements(levels map[string]int) bool {
	for id, need := range d.Requires {
		if levels[id] < need {
			return false
		}
	}
	return true
}

// Effects aggregates modifiers over all defs at the owned levels.
type Effects struct {
	TicketDiscountPct  float64 `json:"ticketDiscountPct"`
	PrizeMultiplierPct float64 `json:"prizeMultiplierPct"`
	ScratchParallelMax int     `json:"scratchParallelMax"`
}

// Aggregate resolves owned levels into combined effects.
func Aggregate(defs []Def, levels map[string]int) Effects {
	var e Effects
	for _, d := range defs {
		lvl := levels[d.ID]
		if lvl <= 0 || d.Effect == nil {
			continue
		}
		e.TicketDiscountPct += d.Effect.TicketDiscountPct.Eval(lvl)
		e.PrizeMultiplierPct += d.Effect.PrizeMultiplierPct.Eval(lvl)
		if par := int(d.Effect.ScratchParallelMax.Eval(lvl)); par > e.ScratchParallelMax {
			e.ScratchParallelMax = par
		}
	}
	return e
}

// DiscountedTotal applies the aggregated discount to a purchase, floored at
// zero whole currency units.
func (e Effects) DiscountedTotal(unitPrice, qty int) int {
	total := float64(unitPrice) * float64(qty) * (1 - e.TicketDiscountPct/100)
	if total < 0 {
		return 0
	}
	return int(total)
}

// PrizeMultiplier converts the additive percent into a payout factor.
func (e Effects) PrizeMultiplier() float64 {
	return 1 + e.PrizeMultiplierPct/100
}

// ParallelMax is the number of tickets scratchable side by side, at least 1.
func (e Effects) ParallelMax() int {
	if e.ScratchParallelMax < 1 {
		return 1
	}
	return e.ScratchParallelMax
}
