// Package catalog holds the static ticket-tier content: tier definitions,
// prize-weight tables, and the normalized cumulative distributions sampled
// during ticket generation. Content is loaded once at startup and treated as
// immutable for the process lifetime.
package catalog

import (
	"github.com/okian/foil/internal/domain/rng"
)

// Unlock lists the thresholds a player must meet before a tier can be bought.
type Unlock struct {
	VendorLevel      int `yaml:"vendor_level" json:"vendorLevel"`
	Tokens           int `yaml:"tokens" json:"tokens"`
	LifetimeWinnings int `yaml:"lifetime_winnings" json:"lifetimeWinnings"`
}

// Mechanics describes the scratch surface of a tier.
type Mechanics struct {
	// Grid is [cols, rows].
	Grid           [2]int    `yaml:"grid" json:"grid"`
	WinningNumbers int       `yaml:"winning_numbers" json:"winningNumbers"`
	HasBonusBox    bool      `yaml:"has_bonus_box" json:"hasBonusBox"`
	MultiplierChances []float64 `yaml:"multiplier_chances,omitempty" json:"multiplierChances,omitempty"`
}

// Tier is one configured ticket type.
type Tier struct {
	ID       string    `yaml:"id" json:"id"`
	Name     string    `yaml:"name" json:"name"`
	Set      string    `yaml:"set" json:"set"`
	Price    int       `yaml:"price" json:"price"`
	EVTarget float64   `yaml:"ev_target" json:"evTarget"`
	Unlock   Unlock    `yaml:"unlock" json:"unlock"`
	Mechanics Mechanics `yaml:"mechanics" json:"mechanics"`
}

// Cols and Rows unpack the grid shape.
func (t Tier) Cols() int { return t.Mechanics.Grid[0] }
func (t Tier) Rows() int { return t.Mechanics.Grid[1] }

// PrizeWeight is one raw row of a tier's prize table. Weights need not sum
// to anything in particular.
type PrizeWeight struct {
	Prize  int     `yaml:"prize" json:"prize"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// prizeRow is a normalized table entry with running cumulative probability.
type prizeRow struct {
	prize int
	prob  float64
	cum   float64
}

// Catalog bundles tiers with their normalized prize tables.
type Catalog struct {
	tiers  []Tier
	byID   map[string]int
	raw    map[string][]PrizeWeight
	tables map[string][]prizeRow
}

// New builds a catalog from tier definitions and raw prize tables,
// normalizing every table once. Table order is preserved.
func New(tiers []Tier, tables map[string][]PrizeWeight) *Catalog {
	c := &Catalog{
		tiers:  append([]Tier(nil), tiers...),
		byID:   make(map[string]int, len(tiers)),
		raw:    make(map[string][]PrizeWeight, len(tables)),
		tables: make(map[string][]prizeRow, len(tables)),
	}
	for i, t := range c.tiers {
		c.byID[t.ID] = i
	}
	for id, rows := range tables {
		c.raw[id] = append([]PrizeWeight(nil), rows...)
		c.tables[id] = normalize(rows)
	}
	return c
}

// normalize converts raw weights into {prize, prob, cum} rows. The final
// cumulative value is forced to exactly 1 so float drift can never leave a
// gap at the top of the table.
func normalize(rows []PrizeWeight) []prizeRow {
	total := 0.0
	for _, r := range rows {
		total += r.Weight
	}
	if total <= 0 {
		total = 1
	}
	out := make([]prizeRow, 0, len(rows))
	cum := 0.0
	for _, r := range rows {
		prob := r.Weight / total
		cum += prob
		out = append(out, prizeRow{prize: r.Prize, prob: prob, cum: cum})
	}
	if len(out) > 0 {
		out[len(out)-1].cum = 1
	}
	return out
}

// Tiers returns the tier list in configuration order.
func (c *Catalog) Tiers() []Tier {
	return append([]Tier(nil), c.tiers...)
}

// TierByID looks a tier up; ok is false for unknown ids.
func (c *Catalog) TierByID(id string) (Tier, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Tier{}, false
	}
	return c.tiers[i], true
}

// Sets returns the distinct non-empty set names in first-seen order,
// together with the tier ids belonging to each.
func (c *Catalog) Sets() []SetMeta {
	var out []SetMeta
	index := make(map[string]int)
	for _, t := range c.tiers {
		name := t.Set
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, SetMeta{Name: name})
		}
		out[i].TierIDs = append(out[i].TierIDs, t.ID)
	}
	return out
}

// SetMeta names a ticket set and its full tier membership.
type SetMeta struct {
	Name    string
	TierIDs []string
}

// SamplePrize draws one prize from a tier's normalized table using the
// supplied generator. Entries are scanned in table order and the first row
// whose cumulative probability covers the draw wins; the last row backstops
// draws at the very top of the range. Unknown tiers and empty or
// zero-weight tables yield 0.
func (c *Catalog) SamplePrize(tierID string, src rng.Source) int {
	rows := c.tables[tierID]
	if len(rows) == 0 {
		return 0
	}
	r := src()
	for _, row := range rows {
		if r <= row.cum {
			return row.prize
		}
	}
	return rows[len(rows)-1].prize
}

// SamplePrizeShared draws from the process-wide default stream. Ticket
// generation never uses this; it exists for non-deterministic contexts.
func (c *Catalog) SamplePrizeShared(tierID string) int {
	return c.SamplePrize(tierID, func() float64 { return rng.Float64() })
}

// ComputeEV returns the expected payout of one tile draw divided by the
// tier price. Informational only; payouts are always recomputed from live
// tickets.
func (c *Catalog) ComputeEV(tierID string) float64 {
	t, ok := c.TierByID(tierID)
	if !ok || t.Price <= 0 {
		return 0
	}
	rows := c.raw[tierID]
	total := 0.0
	for _, r := range rows {
		total += r.Weight
	}
	if total <= 0 {
		total = 1
	}
	expected := 0.0
	for _, r := range rows {
		expected += float64(r.Prize) * (r.Weight / total)
	}
	return expected / float64(t.Price)
}
