package core

import "image/color"

// Rule is a pure cell transition over the Moore neighbourhood plus the colour
// mapping renderers use to display its states.
//
// Transition must not retain the neighbors slice; the scheduler reuses it.
type Rule interface {
	Name() string
	Transition(current State, neighbors []State) State
	// ColorOf reports the display colour for s. ok is false for states that
	// are not drawn and show the background instead.
	ColorOf(s State) (c color.RGBA, ok bool)
}

// Seeder is implemented by rules that know how to draw a random initial
// state for one cell.
type Seeder interface {
	Seed(rng *RNG, density float64) State
}

// StateCounter is implemented by rules with a fixed number of states. The
// value includes Dead.
type StateCounter interface {
	States() int
}
