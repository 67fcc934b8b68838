// Package immigration implements the Immigration variant of Conway's Game of
// Life: live cells carry one of three strains, and a newborn cell takes the
// majority strain of the three live neighbours that created it.
package immigration

import (
	"fmt"
	"image/color"

	"immigration-ca/pkg/core"
)

// Strains is the number of distinct live strains.
const Strains = 3

// Alive returns the state for a live cell of the given strain. Strains
// outside 1..Strains panic.
func Alive(strain int) core.State {
	if strain < 1 || strain > Strains {
		panic(fmt.Sprintf("immigration: strain %d outside 1..%d", strain, Strains))
	}
	return core.State(strain)
}

// StrainOf reports the strain of s, or false when s is Dead.
func StrainOf(s core.State) (int, bool) {
	if s == core.Dead {
		return 0, false
	}
	mustValid(s)
	return int(s), true
}

func mustValid(s core.State) {
	if s > Strains {
		panic(fmt.Sprintf("immigration: invalid state %d", s))
	}
}

var strainColors = [Strains + 1]color.RGBA{
	1: {R: 26, G: 51, B: 102, A: 204},
	2: {R: 196, G: 64, B: 52, A: 255},
	3: {R: 64, G: 150, B: 72, A: 255},
}

// Rule is the Immigration transition rule.
type Rule struct{}

// Name identifies the rule.
func (Rule) Name() string { return "immigration" }

// States returns Dead plus the three strains.
func (Rule) States() int { return Strains + 1 }

// Transition applies B3/S23 with strain inheritance. Survivors keep their
// strain; a birth takes the most common strain among its three parents, and
// ties go to the lowest strain.
func (Rule) Transition(current core.State, neighbors []core.State) core.State {
	mustValid(current)
	var counts [Strains + 1]int
	alive := 0
	for _, n := range neighbors {
		mustValid(n)
		if n != core.Dead {
			counts[n]++
			alive++
		}
	}

	if current != core.Dead {
		if alive == 2 || alive == 3 {
			return current
		}
		return core.Dead
	}
	if alive != 3 {
		return core.Dead
	}
	return majority(counts)
}

// majority returns the strain with the strictly highest count, scanning from
// strain 1 so the lowest strain wins a tie.
func majority(counts [Strains + 1]int) core.State {
	best := 1
	for s := 2; s <= Strains; s++ {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return core.State(best)
}

// ColorOf maps each strain to its colour. Dead cells are not drawn.
func (Rule) ColorOf(s core.State) (color.RGBA, bool) {
	if s == core.Dead || s > Strains {
		return color.RGBA{}, false
	}
	return strainColors[s], true
}

// Seed makes a cell alive with probability density, choosing its strain
// uniformly.
func (Rule) Seed(rng *core.RNG, density float64) core.State {
	if !rng.Chance(density) {
		return core.Dead
	}
	return Alive(1 + rng.IntN(Strains))
}
