package core

// mooreOffsets lists the eight neighbour offsets row by row, top to bottom.
var mooreOffsets = [8]Coord{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Moore returns the Moore neighbours of c clipped to b. Corners yield 3,
// edges 5 and interior cells 8; there is no wraparound.
func Moore(b Bounds, c Coord) []Coord {
	return AppendMoore(make([]Coord, 0, len(mooreOffsets)), b, c)
}

// AppendMoore appends the clipped Moore neighbours of c to dst in a fixed
// order and returns the extended slice.
func AppendMoore(dst []Coord, b Bounds, c Coord) []Coord {
	for _, off := range mooreOffsets {
		n := Coord{X: c.X + off.X, Y: c.Y + off.Y}
		if b.Contains(n) {
			dst = append(dst, n)
		}
	}
	return dst
}

// appendNeighborStates gathers the states of c's neighbours straight from the
// arena, using index arithmetic instead of building coordinates.
func appendNeighborStates(dst []State, gen Generation, x, y int) []State {
	w, h := gen.bounds.W, gen.bounds.H
	minY, maxY := max(0, y-1), min(h-1, y+1)
	minX, maxX := max(0, x-1), min(w-1, x+1)
	for ny := minY; ny <= maxY; ny++ {
		row := ny * w
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			dst = append(dst, gen.cells[row+nx])
		}
	}
	return dst
}
