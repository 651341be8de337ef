package t2048

// WinTarget is the tile value that wins the game.
const WinTarget = 2048

// TileMove records one tile travelling during a move.
// The rendering layer animates from these; the grid is already final.
type TileMove struct {
	From   Coord
	To     Coord
	Value  int  // Value before the move
	Merged bool // The tile was consumed into the tile at To
}

// MoveOutcome is the result of resolving one direction against a grid.
type MoveOutcome struct {
	Changed       bool
	ScoreDelta    int
	ReachedTarget bool
	Merges        int
	Moves         []TileMove
}

// Resolve slides every tile of g toward dir, merging equal neighbours at most
// once per tile, and mutates g in place. target is the winning tile value;
// ReachedTarget is set when a merge in this move produces it.
func Resolve(g *Grid, dir Direction, target int) MoveOutcome {
	var out MoveOutcome
	if !dir.Valid() {
		return out
	}

	di, dj := dir.Step()
	merged := make([]bool, len(g.slots))

	for _, src := range g.ScanOrder(dir) {
		tile, ok := g.Get(src.I, src.J)
		if !ok {
			continue
		}

		i, j := src.I, src.J
		merge := false
		for {
			ni, nj := i+di, j+dj
			if !g.InBounds(ni, nj) {
				break
			}
			next := g.slots[g.index(ni, nj)]
			if next.IsEmpty() {
				i, j = ni, nj
				continue
			}
			if next.Value == tile.Value && !merged[g.index(ni, nj)] {
				i, j = ni, nj
				merge = true
			}
			break
		}

		dst := Coord{I: i, J: j}
		if dst == src {
			continue
		}
		out.Changed = true

		if merge {
			g.mergeInto(src, dst)
			merged[g.index(dst.I, dst.J)] = true

			value := g.Value(dst.I, dst.J)
			out.ScoreDelta += value
			out.Merges++
			if value == target {
				out.ReachedTarget = true
			}
			out.Moves = append(out.Moves, TileMove{From: src, To: dst, Value: tile.Value, Merged: true})
			continue
		}

		g.Clear(src.I, src.J)
		g.Set(dst.I, dst.J, tile)
		out.Moves = append(out.Moves, TileMove{From: src, To: dst, Value: tile.Value})
	}

	return out
}

// mergeInto doubles the tile at dst and removes the tile at src.
func (g *Grid) mergeInto(src, dst Coord) {
	t := g.slots[g.index(dst.I, dst.J)]
	t.Value *= 2
	g.Set(dst.I, dst.J, t)
	g.Clear(src.I, src.J)
}

// CanMove reports whether resolving dir would change g, leaving g untouched.
func CanMove(g *Grid, dir Direction) bool {
	return Resolve(g.Clone(), dir, 0).Changed
}

// AnyMove reports whether at least one direction changes g.
func AnyMove(g *Grid) bool {
	for _, d := range Directions {
		if CanMove(g, d) {
			return true
		}
	}
	return false
}
