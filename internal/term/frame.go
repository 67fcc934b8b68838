// Package term hosts simulations in a terminal: an interactive bubbletea
// loop and a one-shot coloured frame printer.
package term

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/logrusorgru/aurora"

	"immigration-ca/pkg/core"
)

// cellGlyph is drawn for every live cell; two columns keep cells square.
const (
	cellGlyph  = "██"
	emptyGlyph = "  "
)

// Styles maps each drawn state of a rule to a lipgloss style.
type Styles struct {
	cells []lipgloss.Style
	drawn []bool
}

// NewStyles resolves rule colours into lipgloss styles.
func NewStyles(rule core.Rule) Styles {
	n := 256
	if sc, ok := rule.(core.StateCounter); ok && sc.States() > 0 {
		n = min(sc.States(), n)
	}
	s := Styles{cells: make([]lipgloss.Style, n), drawn: make([]bool, n)}
	for i := 0; i < n; i++ {
		c, ok := rule.ColorOf(core.State(i))
		if !ok {
			continue
		}
		s.cells[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(c)))
		s.drawn[i] = true
	}
	return s
}

func (s Styles) isDrawn(st core.State) bool {
	return int(st) < len(s.drawn) && s.drawn[st]
}

// RenderFrame draws the top-left maxCols×maxRows cells (0 means no limit).
// Consecutive cells of one state share a single styled run.
func RenderFrame(cells []core.State, size core.Size, styles Styles, maxCols, maxRows int) string {
	cols, rows := size.W, size.H
	if maxCols > 0 {
		cols = min(cols, maxCols)
	}
	if maxRows > 0 {
		rows = min(rows, maxRows)
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		row := cells[y*size.W : y*size.W+cols]
		for x := 0; x < len(row); {
			end := x + 1
			for end < len(row) && row[end] == row[x] {
				end++
			}
			st := row[x]
			if styles.isDrawn(st) {
				b.WriteString(styles.cells[st].Render(strings.Repeat(cellGlyph, end-x)))
			} else {
				b.WriteString(strings.Repeat(emptyGlyph, end-x))
			}
			x = end
		}
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// PrintFrame writes the whole grid using 256-colour ANSI escapes. With
// colors disabled live cells fall back to their state digit.
func PrintFrame(w io.Writer, sim core.Sim, colors bool) error {
	au := aurora.NewAurora(colors)
	rule := sim.Rule()
	size := sim.Size()
	cells := sim.Cells()

	var b strings.Builder
	for y := 0; y < size.H; y++ {
		for _, st := range cells[y*size.W : (y+1)*size.W] {
			c, ok := rule.ColorOf(st)
			switch {
			case !ok:
				b.WriteString(emptyGlyph)
			case colors:
				b.WriteString(au.Index(xterm256(c), cellGlyph).String())
			default:
				fmt.Fprintf(&b, "%2d", st)
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// xterm256 maps an RGB colour onto the 6x6x6 cube of the 256-colour palette.
func xterm256(c color.RGBA) uint8 {
	level := func(v uint8) uint8 { return uint8((int(v)*5 + 127) / 255) }
	return 16 + 36*level(c.R) + 6*level(c.G) + level(c.B)
}
