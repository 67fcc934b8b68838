package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// State is the tag stored for every cell. Dead is always zero; rules decide
// what the remaining values mean.
type State uint8

// Dead is the empty cell state shared by every rule.
const Dead State = 0

// Coord identifies a cell by column and row.
type Coord struct {
	X, Y int
}

// Bounds describes a W×H rectangle of cells addressed by [0,W)×[0,H).
type Bounds struct {
	W, H int
}

// Len returns the number of cells inside the bounds.
func (b Bounds) Len() int { return b.W * b.H }

// Contains reports whether c lies inside the bounds.
func (b Bounds) Contains(c Coord) bool {
	return c.X >= 0 && c.X < b.W && c.Y >= 0 && c.Y < b.H
}

// Index returns the row-major slice index for c. It does not check bounds.
func (b Bounds) Index(c Coord) int { return c.Y*b.W + c.X }

// Coord converts a row-major index back to a coordinate.
func (b Bounds) Coord(i int) Coord { return Coord{X: i % b.W, Y: i / b.W} }

func (b Bounds) mustContain(c Coord) {
	if !b.Contains(c) {
		panic(fmt.Sprintf("core: coordinate (%d,%d) outside %dx%d grid", c.X, c.Y, b.W, b.H))
	}
}

// Generation is an immutable snapshot of every cell state at one point in time.
type Generation struct {
	bounds Bounds
	cells  []State
}

// NewGeneration copies cells into a snapshot. len(cells) must equal b.Len().
func NewGeneration(b Bounds, cells []State) (Generation, error) {
	if b.W <= 0 || b.H <= 0 {
		return Generation{}, errors.Errorf("generation dimensions must be positive, got %dx%d", b.W, b.H)
	}
	if len(cells) != b.Len() {
		return Generation{}, errors.Errorf("generation needs %d cells, got %d", b.Len(), len(cells))
	}
	return Generation{bounds: b, cells: append([]State(nil), cells...)}, nil
}

// Bounds returns the extent of the snapshot.
func (g Generation) Bounds() Bounds { return g.bounds }

// At returns the state at c. Out-of-bounds coordinates panic.
func (g Generation) At(c Coord) State {
	g.bounds.mustContain(c)
	return g.cells[g.bounds.Index(c)]
}

// Cells returns a copy of the row-major states.
func (g Generation) Cells() []State { return append([]State(nil), g.cells...) }

// Census counts cells per state.
func (g Generation) Census() map[State]int { return census(g.cells) }

// Equal reports whether both snapshots have the same bounds and states.
func (g Generation) Equal(other Generation) bool {
	if g.bounds != other.bounds || len(g.cells) != len(other.cells) {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Grid owns the live generation of a fixed rectangular extent. The coordinate
// set never changes after construction; only states are replaced.
type Grid struct {
	bounds  Bounds
	cells   []State
	scratch []State
}

// NewGrid allocates an all-Dead grid. Non-positive dimensions are rejected.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("grid dimensions must be positive, got %dx%d", w, h)
	}
	b := Bounds{W: w, H: h}
	return &Grid{bounds: b, cells: make([]State, b.Len()), scratch: make([]State, b.Len())}, nil
}

// Bounds returns the grid extent.
func (g *Grid) Bounds() Bounds { return g.bounds }

// At returns the state at c. Out-of-bounds coordinates panic.
func (g *Grid) At(c Coord) State {
	g.bounds.mustContain(c)
	return g.cells[g.bounds.Index(c)]
}

// Set overwrites a single cell. It is meant for seeding and editing between
// steps, never while a step is running.
func (g *Grid) Set(c Coord, s State) {
	g.bounds.mustContain(c)
	g.cells[g.bounds.Index(c)] = s
}

// Fill assigns every cell from fn in row-major order.
func (g *Grid) Fill(fn func(Coord) State) {
	for i := range g.cells {
		g.cells[i] = fn(g.bounds.Coord(i))
	}
}

// Neighbors returns the in-bounds Moore neighbours of c.
func (g *Grid) Neighbors(c Coord) []Coord {
	g.bounds.mustContain(c)
	return Moore(g.bounds, c)
}

// Cells exposes the live row-major buffer for renderers. Callers must treat it
// as read-only; it is replaced wholesale on every step.
func (g *Grid) Cells() []State { return g.cells }

// Snapshot copies the current generation.
func (g *Grid) Snapshot() Generation {
	return Generation{bounds: g.bounds, cells: append([]State(nil), g.cells...)}
}

// Census counts cells per state in the current generation.
func (g *Grid) Census() map[State]int { return census(g.cells) }

// ReplaceAll swaps in next as the current generation. Mismatched bounds are
// rejected and leave the grid untouched.
func (g *Grid) ReplaceAll(next Generation) error {
	if next.bounds != g.bounds {
		return errors.Errorf("generation is %dx%d, grid is %dx%d",
			next.bounds.W, next.bounds.H, g.bounds.W, g.bounds.H)
	}
	copy(g.scratch, next.cells)
	g.commit()
	return nil
}

// view returns the current arena without copying. It stays valid until the
// next commit.
func (g *Grid) view() Generation { return Generation{bounds: g.bounds, cells: g.cells} }

// commit publishes the scratch arena as the new generation.
func (g *Grid) commit() { g.cells, g.scratch = g.scratch, g.cells }

func census(cells []State) map[State]int {
	out := make(map[State]int)
	for _, s := range cells {
		out[s]++
	}
	return out
}
