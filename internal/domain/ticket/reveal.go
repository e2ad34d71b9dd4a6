package ticket

// Mode selects how many tiles one tap reveals. Levels of the scratch-radius
// upgrade map onto modes in order.
type Mode string

const (
	ModeSingle  Mode = "single"
	ModeCross   Mode = "cross"
	ModeSquare3 Mode = "square3"
	ModeAll     Mode = "all"
)

// ModeForLevel maps a scratch-radius upgrade level to its reveal mode.
func ModeForLevel(level int) Mode {
	switch {
	case level >= 3:
		return ModeAll
	case level == 2:
		return ModeSquare3
	case level == 1:
		return ModeCross
	default:
		return ModeSingle
	}
}

// RevealIndices returns the tile indices one tap at idx uncovers on a
// cols x rows grid, clipped to grid bounds. Out-of-range taps return nil.
func RevealIndices(mode Mode, idx, cols, rows int) []int {
	total := cols * rows
	if idx < 0 || idx >= total || cols <= 0 || rows <= 0 {
		return nil
	}
	row, col := idx/cols, idx%cols

	var out []int
	push := func(i int) { out = append(out, i) }

	switch mode {
	case ModeAll:
		for i := 0; i < total; i++ {
			push(i)
		}
	case ModeSquare3:
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				rr, cc := row+dr, col+dc
				if rr >= 0 && rr < rows && cc >= 0 && cc < cols {
					push(rr*cols + cc)
				}
			}
		}
	case ModeCross:
		push(idx)
		if col-1 >= 0 {
			push(idx - 1)
		}
		if col+1 < cols {
			push(idx + 1)
		}
		if row-1 >= 0 {
			push(idx - cols)
		}
		if row+1 < rows {
			push(idx + cols)
		}
	default:
		push(idx)
	}
	return out
}
