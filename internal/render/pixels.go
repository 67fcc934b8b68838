package render

import (
	"image/color"

	"immigration-ca/pkg/core"
)

// Background is the colour shown for cells a rule does not draw.
var Background = color.RGBA{R: 250, G: 235, B: 215, A: 255}

// maxStates covers every value a core.State can hold.
const maxStates = 256

// Palette resolves a rule's colour mapping into a lookup table indexed by
// state. Undrawn states get bg.
func Palette(rule core.Rule, bg color.RGBA) []color.RGBA {
	n := maxStates
	if sc, ok := rule.(core.StateCounter); ok && sc.States() > 0 && sc.States() < maxStates {
		n = sc.States()
	}
	palette := make([]color.RGBA, n)
	for i := range palette {
		if c, ok := rule.ColorOf(core.State(i)); ok {
			palette[i] = c
			continue
		}
		palette[i] = bg
	}
	return palette
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. States past
// the end of the palette use its last entry.
func fillPaletteRGBA(buf []byte, cells []core.State, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := min(int(c), last)
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
