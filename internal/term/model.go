package term

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"immigration-ca/pkg/core"
)

var (
	statusStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c44034"))
)

// Options configures a Model.
type Options struct {
	TPS    int
	Seed   int64
	Logger *slog.Logger
	// AfterStep runs on the bubbletea goroutine after every tick that
	// advanced the sim.
	AfterStep func(core.Sim)
	// Now supplies reseed values for the "s" key; defaults to time.Now.
	Now func() time.Time
}

// tickMsg asks the model to advance one tick.
type tickMsg time.Time

// Model is the bubbletea model driving a simulation. Stepping and drawing
// both happen on the bubbletea event loop, so the grid is never read while a
// step is in progress.
type Model struct {
	sim      core.Sim
	styles   Styles
	interval time.Duration
	seed     int64
	log      *slog.Logger
	after    func(core.Sim)
	now      func() time.Time

	paused   bool
	width    int
	height   int
	quitting bool
}

// NewModel builds a Model for sim.
func NewModel(sim core.Sim, opts Options) Model {
	tps := opts.TPS
	if tps <= 0 {
		tps = 10
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return Model{
		sim:      sim,
		styles:   NewStyles(sim.Rule()),
		interval: time.Second / time.Duration(tps),
		seed:     opts.Seed,
		log:      log,
		after:    opts.AfterStep,
		now:      now,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles ticks, keys and resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.paused {
			m.step()
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ", "space":
			m.paused = !m.paused
		case "n":
			m.step()
		case "r":
			m.reset(m.seed)
		case "s":
			m.reset(m.now().UnixNano())
		}
	}
	return m, nil
}

func (m *Model) step() {
	m.sim.Step()
	if m.after != nil {
		m.after(m.sim)
	}
}

func (m *Model) reset(seed int64) {
	m.seed = seed
	m.sim.Reset(seed)
	m.log.Info("reseeded", "sim", m.sim.Name(), "seed", seed)
	if m.after != nil {
		m.after(m.sim)
	}
}

// View draws the visible part of the grid above a status and help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	cols, rows := 0, 0
	if m.width > 0 {
		cols = max(m.width/len([]rune(cellGlyph)), 1)
	}
	if m.height > 0 {
		rows = max(m.height-2, 1)
	}
	frame := RenderFrame(m.sim.Cells(), m.sim.Size(), m.styles, cols, rows)
	return lipgloss.JoinVertical(lipgloss.Left, frame, m.status(), helpStyle.Render("space pause · n step · r reset · s new seed · q quit"))
}

func (m Model) status() string {
	parts := []string{fmt.Sprintf("%s  gen %d  seed %d", m.sim.Name(), m.sim.Generation(), m.seed)}
	parts = append(parts, Census(m.sim.Cells()))
	line := statusStyle.Render(strings.Join(parts, "  "))
	if m.paused {
		line += "  " + pausedStyle.Render("[paused]")
	}
	return line
}

// Census formats live-cell counts as "1:N 2:N ...", omitting Dead.
func Census(cells []core.State) string {
	counts := map[core.State]int{}
	for _, s := range cells {
		if s != core.Dead {
			counts[s]++
		}
	}
	if len(counts) == 0 {
		return "extinct"
	}
	states := make([]int, 0, len(counts))
	for s := range counts {
		states = append(states, int(s))
	}
	sort.Ints(states)
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = fmt.Sprintf("%d:%d", s, counts[core.State(s)])
	}
	return strings.Join(out, " ")
}

// Paused reports whether ticks are currently ignored.
func (m Model) Paused() bool { return m.paused }
