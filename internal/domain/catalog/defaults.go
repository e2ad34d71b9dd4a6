package catalog

// Built-in content used when no content directory is configured. Mirrors the
// shipped tiers.yaml/prizes.yaml so tests and fresh checkouts work without
// any files on disk.

func defaultTiers() []Tier {
	return []Tier{
		{
			ID: "t01", Name: "Lucky Penny", Set: "Starter", Price: 1, EVTarget: 0.82,
			Mechanics: Mechanics{Grid: [2]int{3, 3}, WinningNumbers: 3},
		},
		{
			ID: "t02", Name: "Copper Clover", Set: "Starter", Price: 2, EVTarget: 0.84,
			Unlock:    Unlock{VendorLevel: 1},
			Mechanics: Mechanics{Grid: [2]int{4, 3}, WinningNumbers: 4},
		},
		{
			ID: "t03", Name: "Silver Streak", Set: "Starter", Price: 5, EVTarget: 0.86,
			Unlock:    Unlock{VendorLevel: 2, Tokens: 1},
			Mechanics: Mechanics{Grid: [2]int{4, 3}, WinningNumbers: 4},
		},
		{
			ID: "t04", Name: "Golden Gate", Set: "Metro", Price: 10, EVTarget: 0.88,
			Unlock:    Unlock{VendorLevel: 3, Tokens: 2},
			Mechanics: Mechanics{Grid: [2]int{4, 4}, WinningNumbers: 4, HasBonusBox: true},
		},
		{
			ID: "t05", Name: "Neon Nights", Set: "Metro", Price: 20, EVTarget: 0.88,
			Unlock:    Unlock{VendorLevel: 4, Tokens: 3, LifetimeWinnings: 100},
			Mechanics: Mechanics{Grid: [2]int{4, 4}, WinningNumbers: 5, HasBonusBox: true},
		},
		{
			ID: "t06", Name: "Midnight Express", Set: "Metro", Price: 50, EVTarget: 0.90,
			Unlock:    Unlock{VendorLevel: 5, Tokens: 4, LifetimeWinnings: 500},
			Mechanics: Mechanics{Grid: [2]int{5, 4}, WinningNumbers: 5, HasBonusBox: true},
		},
		{
			ID: "t07", Name: "Royal Flush", Set: "High Roller", Price: 100, EVTarget: 0.92,
			Unlock:    Unlock{VendorLevel: 7, Tokens: 6, LifetimeWinnings: 2500},
			Mechanics: Mechanics{Grid: [2]int{5, 4}, WinningNumbers: 6, HasBonusBox: true},
		},
		{
			ID: "t08", Name: "Diamond Empire", Set: "High Roller", Price: 250, EVTarget: 0.94,
			Unlock:    Unlock{VendorLevel: 9, Tokens: 8, LifetimeWinnings: 10000},
			Mechanics: Mechanics{Grid: [2]int{6, 4}, WinningNumbers: 6, HasBonusBox: true},
		},
	}
}

func defaultTables() map[string][]PrizeWeight {
	return map[string][]PrizeWeight{
		"t01": {
			{Prize: 0, Weight: 55}, {Prize: 1, Weight: 30}, {Prize: 2, Weight: 10},
			{Prize: 5, Weight: 4}, {Prize: 25, Weight: 1},
		},
		"t02": {
			{Prize: 0, Weight: 55}, {Prize: 1, Weight: 25}, {Prize: 3, Weight: 12},
			{Prize: 10, Weight: 6}, {Prize: 50, Weight: 2},
		},
		"t03": {
			{Prize: 0, Weight: 52}, {Prize: 2, Weight: 25}, {Prize: 5, Weight: 14},
			{Prize: 20, Weight: 7}, {Prize: 100, Weight: 2},
		},
		"t04": {
			{Prize: 0, Weight: 50}, {Prize: 4, Weight: 26}, {Prize: 10, Weight: 14},
			{Prize: 40, Weight: 7}, {Prize: 250, Weight: 3},
		},
		"t05": {
			{Prize: 0, Weight: 50}, {Prize: 8, Weight: 25}, {Prize: 20, Weight: 15},
			{Prize: 75, Weight: 7}, {Prize: 500, Weight: 3},
		},
		"t06": {
			{Prize: 0, Weight: 48}, {Prize: 20, Weight: 26}, {Prize: 50, Weight: 15},
			{Prize: 200, Weight: 8}, {Prize: 1500, Weight: 3},
		},
		"t07": {
			{Prize: 0, Weight: 46}, {Prize: 40, Weight: 26}, {Prize: 100, Weight: 16},
			{Prize: 400, Weight: 9}, {Prize: 5000, Weight: 3},
		},
		"t08": {
			{Prize: 0, Weight: 44}, {Prize: 100, Weight: 27}, {Prize: 250, Weight: 16},
			{Prize: 1000, Weight: 10}, {Prize: 20000, Weight: 3},
		},
	}
}
