// Package ticket generates scratch-ticket content deterministically from a
// tier and a serial. Re-generating with the same inputs reproduces the
// identical ticket, so a save file never has to carry grids it can rebuild.
package ticket

import (
	"sort"

	"github.com/okian/foil/internal/domain/catalog"
	"github.com/okian/foil/internal/domain/rng"
)

// Tile numbers are drawn from [1, numberSpace].
const numberSpace = 99

// Tile is one scratch cell.
type Tile struct {
	Num      int  `json:"num"`
	Prize    int  `json:"prize"`
	Revealed bool `json:"revealed"`
	Win      bool `json:"win"`
}

// Bonus is the optional reveal-once extra prize on bonus-box tiers.
type Bonus struct {
	Amount   int  `json:"amount"`
	Revealed bool `json:"revealed"`
}

// Ticket is the generated payload attached to an inventory item.
type Ticket struct {
	Winning []int  `json:"winning"`
	Tiles   []Tile `json:"tiles"`
	// TotalPrize sums winning-tile prizes at generation time. Diagnostic
	// only: claims recompute from live tiles because the backstop may
	// mutate them afterwards.
	TotalPrize      int    `json:"totalPrize"`
	Bonus           *Bonus `json:"bonus,omitempty"`
	BackstopApplied bool   `json:"backstopApplied,omitempty"`
	FirstRevealAt   int64  `json:"firstRevealAt,omitempty"`
}

// Generate builds the ticket for (tier, serial). The generator is freshly
// seeded from "tierID:serialID:ticket" so replay is independent of any other
// draw in the process. Unknown tiers return an empty ticket; callers treat
// that as "no ticket".
func Generate(cat *catalog.Catalog, tierID, serialID string) Ticket {
	tier, ok := cat.TierByID(tierID)
	if !ok {
		return Ticket{Winning: []int{}, Tiles: []Tile{}}
	}

	src := rng.New(tierID + ":" + serialID + ":ticket")

	winCount := tier.Mechanics.WinningNumbers
	if winCount <= 0 {
		winCount = 4
	}
	// Rejection-sample distinct winning numbers. The space is 99 wide, so
	// this terminates quickly for any realistic count.
	winSet := make(map[int]bool, winCount)
	for len(winSet) < winCount {
		winSet[rng.IntN(src, 1, numberSpace)] = true
	}
	winning := make([]int, 0, winCount)
	for n := range winSet {
		winning = append(winning, n)
	}
	sort.Ints(winning)

	cells := tier.Cols() * tier.Rows()
	tiles := make([]Tile, 0, cells)
	total := 0
	for i := 0; i < cells; i++ {
		num := rng.IntN(src, 1, numberSpace)
		prize := cat.SamplePrize(tierID, src)
		win := winSet[num]
		if win {
			total += prize
		}
		tiles = append(tiles, Tile{Num: num, Prize: prize, Win: win})
	}

	t := Ticket{Winning: winning, Tiles: tiles, TotalPrize: total}
	if tier.Mechanics.HasBonusBox {
		t.Bonus = rollBonus(tier, serialID)
	}
	return t
}

// rollBonus derives the bonus amount from its own seed so the whole ticket
// stays a pure function of tier+serial.
func rollBonus(tier catalog.Tier, serialID string) *Bonus {
	r := rng.New(tier.ID + ":" + serialID + ":bonus")()
	pct := 0.10
	switch {
	case r > 0.95:
		pct = 0.30
	case r > 0.75:
		pct = 0.20
	case r > 0.45:
		pct = 0.15
	}
	amount := int(float64(tier.Price) * pct)
	if amount < 1 {
		amount = 1
	}
	return &Bonus{Amount: amount}
}

// WinningSum recomputes the payout base: prizes on tiles whose number is in
// the live winning set.
func (t *Ticket) WinningSum() int {
	wins := make(map[int]bool, len(t.Winning))
	for _, n := range t.Winning {
		wins[n] = true
	}
	sum := 0
	for _, tile := range t.Tiles {
		if wins[tile.Num] {
			sum += tile.Prize
		}
	}
	return sum
}

// FullyRevealed reports whether every tile has been scratched.
func (t *Ticket) FullyRevealed() bool {
	if len(t.Tiles) == 0 {
		return false
	}
	for _, tile := range t.Tiles {
		if !tile.Revealed {
			return false
		}
	}
	return true
}
