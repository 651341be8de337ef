package t2048

// IsLoss reports whether no move can change g: every cell is occupied and no
// two horizontally or vertically adjacent cells hold equal values.
func IsLoss(g *Grid) bool {
	n := g.sides
	for p := range n {
		// Row p and column p are walked together, each with its own
		// previous value.
		prevRow, prevCol := 0, 0
		for q := range n {
			row := g.Value(q, p)
			col := g.Value(p, q)
			if row == 0 || col == 0 {
				return false
			}
			if row == prevRow || col == prevCol {
				return false
			}
			prevRow, prevCol = row, col
		}
	}
	return true
}

// IsWin reports whether the move reached the winning tile.
func IsWin(outcome MoveOutcome) bool {
	return outcome.ReachedTarget
}
