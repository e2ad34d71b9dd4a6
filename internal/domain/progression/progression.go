// Package progression maps vendor XP onto levels and decides which ticket
// tiers a save has earned access to.
package progression

import (
	"sort"

	"github.com/okian/foil/internal/domain/catalog"
)

// Threshold is one rung of the vendor ladder.
type Threshold struct {
	Level int `yaml:"level" json:"level"`
	XP    int `yaml:"xp" json:"xp"`
}

// Ladder is an ordered set of thresholds.
type Ladder struct {
	thresholds []Threshold
}

// New builds a ladder, sorting thresholds by XP. An empty input falls back to
// the built-in ladder.
func New(thresholds []Threshold) *Ladder {
	if len(thresholds) == 0 {
		thresholds = defaultThresholds()
	}
	ts := make([]Threshold, len(thresholds))
	copy(ts, thresholds)
	sort.Slice(ts, func(i, j int) bool { return ts[i].XP < ts[j].XP })
	return &Ladder{thresholds: ts}
}

// LevelForXP returns the highest level whose threshold is at or below xp.
func (l *Ladder) LevelForXP(xp int) int {
	level := 0
	for _, t := range l.thresholds {
		if xp >= t.XP {
			level = t.Level
		} else {
			break
		}
	}
	return level
}

// NextLevelXP returns the XP needed for the next level after the current xp,
// or -1 when the ladder is topped out.
func (l *Ladder) NextLevelXP(xp int) int {
	for _, t := range l.thresholds {
		if xp < t.XP {
			return t.XP
		}
	}
	return -1
}

// Thresholds returns a copy of the ladder rungs.
func (l *Ladder) Thresholds() []Threshold {
	out := make([]Threshold, len(l.thresholds))
	copy(out, l.thresholds)
	return out
}

// UnlockState describes a tier's availability for a given save snapshot.
type UnlockState struct {
	TierID   string `json:"tierId"`
	Unlocked bool   `json:"unlocked"`
	// Reason is empty when unlocked, otherwise the first unmet gate.
	Reason string `json:"reason,omitempty"`
}

// Snapshot carries the save fields unlock gates read.
type Snapshot struct {
	VendorLevel      int
	Tokens           int
	LifetimeWinnings int
	Unlocked         map[string]bool
	UnlockAll        bool
}

// Evaluate resolves one tier's unlock gate against a snapshot. A tier stays
// open once it is in the unlocked set; otherwise every gate must pass,
// including holding the token cost the unlock will spend.
func Evaluate(tier catalog.Tier, s Snapshot) UnlockState {
	st := UnlockState{TierID: tier.ID, Unlocked: true}
	if s.UnlockAll || s.Unlocked[tier.ID] {
		return st
	}
	u := tier.Unlock
	switch {
	case u.VendorLevel > 0 && s.VendorLevel < u.VendorLevel:
		st.Unlocked = false
		st.Reason = "vendor level too low"
	case u.LifetimeWinnings > 0 && s.LifetimeWinnings < u.LifetimeWinnings:
		st.Unlocked = false
		st.Reason = "not enough lifetime winnings"
	case u.Tokens > 0 && s.Tokens < u.Tokens:
		st.Unlocked = false
		st.Reason = "not enough tokens"
	}
	return st
}
