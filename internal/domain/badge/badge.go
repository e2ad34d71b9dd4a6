// Package badge evaluates achievement badges from lifetime stats. The
// evaluator is pure: callers pass a snapshot and get back every badge the
// snapshot earns, and the service diffs that against the already-awarded set.
package badge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/okian/foil/internal/domain/catalog"
)

// Def describes one badge.
type Def struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Desc  string `json:"desc"`
	Group string `json:"group"`
}

// Snapshot carries the lifetime counters badges read.
type Snapshot struct {
	TilesScratched int
	Claims         int
	BestStreak     int
	BiggestWin     int
	// TierOwned marks every tier the player has ever purchased.
	TierOwned map[string]bool
}

type milestone struct {
	threshold int
	id        string
	name      string
	desc      string
}

var tileMilestones = []milestone{
	{1, "tiles_1", "First Scratch", "Scratch your first tile."},
	{100, "tiles_100", "Silver Thumb", "Scratch 100 tiles."},
	{1000, "tiles_1000", "Foil Miner", "Scratch 1,000 tiles."},
}

var claimMilestones = []milestone{
	{1, "claims_1", "Cashed In", "Claim your first ticket."},
	{10, "claims_10", "Regular", "Claim 10 tickets."},
	{100, "claims_100", "Counter Veteran", "Claim 100 tickets."},
}

var streakMilestones = []milestone{
	{5, "streak_5", "On a Roll", "Reach a 5-claim streak."},
	{10, "streak_10", "Hot Hand", "Reach a 10-claim streak."},
}

var bigWinMilestones = []milestone{
	{1_000, "bigwin_1k", "Big Winner", "Win $1,000 on a single ticket."},
	{10_000, "bigwin_10k", "High Roller", "Win $10,000 on a single ticket."},
	{100_000, "bigwin_100k", "Jackpot", "Win $100,000 on a single ticket."},
}

// Defs lists every badge the catalog can produce, static milestones first,
// then the per-set own-any and complete badges.
func Defs(cat *catalog.Catalog) []Def {
	var out []Def
	add := func(group string, ms []milestone) {
		for _, m := range ms {
			out = append(out, Def{ID: m.id, Name: m.name, Desc: m.desc, Group: group})
		}
	}
	add("tiles", tileMilestones)
	add("claims", claimMilestones)
	add("streak", streakMilestones)
	add("bigwin", bigWinMilestones)

	for _, set := range cat.Sets() {
		safe := safeName(set.Name)
		out = append(out,
			Def{
				ID:    "set_" + safe,
				Name:  set.Name + " Collector",
				Desc:  fmt.Sprintf("Buy a ticket from the %s set.", set.Name),
				Group: "sets",
			},
			Def{
				ID:    "set_complete_" + safe,
				Name:  set.Name + " Completionist",
				Desc:  fmt.Sprintf("Buy every ticket in the %s set.", set.Name),
				Group: "sets",
			},
		)
	}
	return out
}

// Earned returns the ids of every badge the snapshot qualifies for.
func Earned(s Snapshot, cat *catalog.Catalog) []string {
	var out []string
	sweep := func(value int, ms []milestone) {
		for _, m := range ms {
			if value >= m.threshold {
				out = append(out, m.id)
			}
		}
	}
	sweep(s.TilesScratched, tileMilestones)
	sweep(s.Claims, claimMilestones)
	sweep(s.BestStreak, streakMilestones)
	sweep(s.BiggestWin, bigWinMilestones)

	for _, set := range cat.Sets() {
		owned, all := 0, len(set.TierIDs)
		for _, id := range set.TierIDs {
			if s.TierOwned[id] {
				owned++
			}
		}
		safe := safeName(set.Name)
		if owned > 0 {
			out = append(out, "set_"+safe)
		}
		if all > 0 && owned == all {
			out = append(out, "set_complete_"+safe)
		}
	}
	return out
}

var nonWord = regexp.MustCompile(`\W+`)

func safeName(name string) string {
	return nonWord.ReplaceAllString(strings.ToLower(name), "_")
}
