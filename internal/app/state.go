package service

import (
	"github.com/okian/foil/internal/domain/ticket"
)

// Starting balance for a fresh save.
const startingMoney = 50

// Item states an inventory ticket moves through.
const (
	ItemSealed    = "sealed"
	ItemScratched = "scratched"
	ItemClaimed   = "claimed"
)

// ClaimSummary is the frozen outcome of a claim on an item. It snapshots the
// price and multipliers in force at claim time so later purchases or streaks
// never rewrite history.
type ClaimSummary struct {
	Payout     int     `json:"payout"`
	Price      int     `json:"price"`
	Net        int     `json:"net"`
	WinningSum int     `json:"winningSum"`
	Winning    []int   `json:"winning"`
	UpgMult    float64 `json:"upgMult"`
	StreakMult float64 `json:"streakMult"`
	Bonus      int     `json:"bonus,omitempty"`
	Backstop   bool    `json:"backstop,omitempty"`
	At         int64   `json:"at"`
}

// Item is one owned ticket.
type Item struct {
	ID        string         `json:"id"`
	TierID    string         `json:"tierId"`
	SerialID  string         `json:"serialId"`
	CreatedAt int64          `json:"createdAt"`
	State     string         `json:"state"`
	// Ticket is attached lazily on first reveal; until then the item can be
	// regenerated from tier and serial alone.
	Ticket *ticket.Ticket `json:"ticket,omitempty"`
	Claim  *ClaimSummary  `json:"claim,omitempty"`
}

// Daily tracks the claims-per-day token reward.
type Daily struct {
	Day     string `json:"day"`
	Claimed int    `json:"claimed"`
	Awarded bool   `json:"awarded"`
}

// Streak is the claim-streak meter. Decay is lazy: the struct keeps its last
// written values and readers compare ExpiresAt against the clock.
type Streak struct {
	Count     int   `json:"count"`
	ExpiresAt int64 `json:"expiresAt"`
}

// Stats are lifetime counters.
type Stats struct {
	TicketsScratched  int            `json:"ticketsScratched"`
	TilesScratched    int            `json:"tilesScratched"`
	Claims            int            `json:"claims"`
	Wins              int            `json:"wins"`
	Losses            int            `json:"losses"`
	CurrentLossStreak int            `json:"currentLossStreak"`
	LongestLossStreak int            `json:"longestLossStreak"`
	BiggestWin        int            `json:"biggestWin"`
	BestStreak        int            `json:"bestStreak"`
	PityAvoids        int            `json:"pityAvoids"`
	BackstopsUsed     int            `json:"backstopsUsed"`
	TilePrizeCounts   map[string]int `json:"tilePrizeCounts"`
	// FastestClearMs is nil until a full ticket has been cleared; zero would
	// be a legitimate (if superhuman) time.
	FastestClearMs *int64 `json:"fastestClearMs,omitempty"`
}

// Flags are debug toggles carried in the save.
type Flags struct {
	UnlockAll bool `json:"unlockAll,omitempty"`
}

// State is the whole mutable save file.
type State struct {
	Money            int   `json:"money"`
	Tokens           int   `json:"tokens"`
	LifetimeSpent    int   `json:"lifetimeSpent"`
	LifetimeWinnings int   `json:"lifetimeWinnings"`
	VendorXP         int   `json:"vendorXp"`
	VendorLevel      int   `json:"vendorLevel"`

	Unlocked  map[string]bool `json:"unlocked"`
	TierOwned map[string]bool `json:"tierOwned"`
	Upgrades  map[string]int  `json:"upgrades"`

	FirstClaims      map[string]bool `json:"firstClaims"`
	Daily            Daily           `json:"daily"`
	ClaimsSinceToken int             `json:"claimsSinceToken"`

	PityCount     int  `json:"pityCount"`
	BackstopReady bool `json:"backstopReady"`

	Streak Streak `json:"streak"`

	SerialCounters map[string]int `json:"serialCounters"`
	Inventory      []*Item        `json:"inventory"`

	Badges map[string]int64 `json:"badges"`
	Stats  Stats            `json:"stats"`
	Flags  Flags            `json:"flags"`
}

// newState returns a fresh save.
func newState() *State {
	s := &State{Money: startingMoney}
	s.ensureMaps()
	return s
}

// ensureMaps makes every map field usable after a zero-value or partial
// decode. Imports are permissive: missing fields take their zero values.
func (s *State) ensureMaps() {
	if s.Unlocked == nil {
		s.Unlocked = make(map[string]bool)
	}
	if s.TierOwned == nil {
		s.TierOwned = make(map[string]bool)
	}
	if s.Upgrades == nil {
		s.Upgrades = make(map[string]int)
	}
	if s.FirstClaims == nil {
		s.FirstClaims = make(map[string]bool)
	}
	if s.SerialCounters == nil {
		s.SerialCounters = make(map[string]int)
	}
	if s.Badges == nil {
		s.Badges = make(map[string]int64)
	}
	if s.Stats.TilePrizeCounts == nil {
		s.Stats.TilePrizeCounts = make(map[string]int)
	}
	if s.Inventory == nil {
		s.Inventory = []*Item{}
	}
}

// item finds an inventory item by id.
func (s *State) item(id string) *Item {
	for _, it := range s.Inventory {
		if it.ID == id {
			return it
		}
	}
	return nil
}
