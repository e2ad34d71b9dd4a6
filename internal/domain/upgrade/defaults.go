package upgrade

// defaultDefs is the built-in upgrade tree used when no content directory
// overrides it.
var defaultDefs = []Def{
	{
		ID:           "scratch_radius",
		Name:         "Wider Coin",
		Type:         "ux",
		LevelCap:     3,
		CostPerLevel: []int{25, 250, 2500},
		Desc:         "Each level widens what one tap scratches: cross, 3x3, then the whole card.",
	},
	{
		ID:           "multi_scratch",
		Name:         "Second Hand",
		Type:         "ux",
		LevelCap:     2,
		CostPerLevel: []int{500, 5000},
		Desc:         "Scratch more tickets side by side.",
		Effect: &EffectSpec{
			ScratchParallelMax: &Step{Levels: []float64{2, 3}},
		},
		Requires: map[string]int{"scratch_radius": 1},
	},
	{
		ID:           "bulk_discount",
		Name:         "Regular's Rate",
		Type:         "econ",
		LevelCap:     5,
		CostPerLevel: []int{100, 400, 1600},
		BaseCost:     1600,
		CostGrowth:   4,
		Desc:         "Knock a little off every ticket purchase.",
		Effect: &EffectSpec{
			TicketDiscountPct: &Step{PerLevel: 3, Cap: 15},
		},
	},
	{
		ID:       "lucky_charm",
		Name:     "Lucky Charm",
		Type:     "econ",
		LevelCap: 4,
		BaseCost: 2000,
		Desc:     "Boosts every payout by a few percent.",
		Effect: &EffectSpec{
			PrizeMultiplierPct: &Step{Levels: []float64{5, 10, 15, 25}},
		},
		Requires: map[string]int{"bulk_discount": 2},
	},
}

// Defaults returns a copy of the built-in upgrade tree.
func Defaults() []Def {
	out := make([]Def, len(defaultDefs))
	copy(out, defaultDefs)
	return out
}
