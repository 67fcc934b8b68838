package immigration

import (
	"immigration-ca/pkg/core"
)

const (
	paramDensity = "density"
	paramBatch   = "batch"
	maxBatch     = 64
)

// Immigration is the runnable simulation: an automaton driven by Rule plus
// the tunables the HUD exposes.
type Immigration struct {
	*core.Automaton
	cfg Config
}

// New returns an Immigration simulation built from cfg. The grid starts all
// Dead until Reset is called.
func New(cfg Config) (*Immigration, error) {
	a, err := core.NewAutomaton(Rule{}, cfg.Config, cfg.Density)
	if err != nil {
		return nil, err
	}
	return &Immigration{Automaton: a, cfg: cfg}, nil
}

// Config returns the configuration the simulation was built with, updated
// with any parameter changes.
func (im *Immigration) Config() Config { return im.cfg }

// Census returns live cell counts indexed by strain; index 0 holds Dead.
func (im *Immigration) Census() [Strains + 1]int {
	var out [Strains + 1]int
	for _, s := range im.Cells() {
		if int(s) < len(out) {
			out[s]++
		}
	}
	return out
}

// Parameters reports the current tunables.
func (im *Immigration) Parameters() core.ParameterSnapshot {
	size := im.Size()
	census := im.Census()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", size.W),
				core.IntParam("h", "Height", size.H),
				core.FloatParam(paramDensity, "Seed density", im.Density()),
				core.IntParam(paramBatch, "Steps per tick", im.Scheduler().StepsPerTick()),
			},
		},
		{
			Name: "Census",
			Params: []core.Parameter{
				core.Int64Param("generation", "Generation", int64(im.Generation())),
				core.IntParam("strain_1", "Strain 1", census[1]),
				core.IntParam("strain_2", "Strain 2", census[2]),
				core.IntParam("strain_3", "Strain 3", census[3]),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (im *Immigration) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: paramDensity, Label: "Seed density", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: paramBatch, Label: "Steps per tick", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: maxBatch, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates the seed density; it takes effect on the next
// Reset.
func (im *Immigration) SetFloatParameter(key string, value float64) bool {
	if key != paramDensity {
		return false
	}
	im.SetDensity(value)
	im.cfg.Density = im.Density()
	return true
}

// SetIntParameter updates the generation batch size.
func (im *Immigration) SetIntParameter(key string, value int) bool {
	if key != paramBatch {
		return false
	}
	value = min(max(value, 1), maxBatch)
	im.Scheduler().SetStepsPerTick(value)
	im.cfg.StepsPerTick = value
	return true
}

func init() {
	core.Register("immigration", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
