package modules

import (
	"math/rand"

	"github.com/cwbudde/algo-rack/rack/core"
	"github.com/cwbudde/algo-rack/rack/patch"
)

// Const emits a constant control level on its "out" port every cycle.
// Useful as a CV source and as plumbing in tests.
type Const struct {
	params  map[string]float64
	outputs patch.Ports
	leds    map[string]float64
}

// NewConst builds a Const with level 1.
func NewConst(ctx patch.Context) (patch.Module, error) {
	return &Const{
		params:  map[string]float64{"level": 1},
		outputs: patch.Ports{"out": patch.Buffer(ctx.BufferSize)},
		leds:    map[string]float64{"level": 0},
	}, nil
}

func (m *Const) Params() map[string]float64 { return m.params }
func (m *Const) Inputs() patch.Ports        { return nil }
func (m *Const) Outputs() patch.Ports       { return m.outputs }
func (m *Const) LEDs() map[string]float64   { return m.leds }

func (m *Const) Process() {
	level := m.params["level"]
	m.outputs["out"].SetScalar(level)
	m.leds["level"] = level
}

func (m *Const) Reset() {
	m.outputs["out"].Detach()
	m.leds["level"] = 0
}

// Noise is a seeded white noise source. The seed is fixed per instance so
// renders are reproducible; Reset restarts the sequence.
type Noise struct {
	params  map[string]float64
	outputs patch.Ports
	leds    map[string]float64
	seed    int64
	rng     *rand.Rand
}

// NewNoise builds a Noise source with level 0.5.
func NewNoise(ctx patch.Context) (patch.Module, error) {
	const defaultSeed = 1
	return &Noise{
		params:  map[string]float64{"level": 0.5},
		outputs: patch.Ports{"out": patch.Buffer(ctx.BufferSize)},
		leds:    map[string]float64{"level": 0},
		seed:    defaultSeed,
		rng:     rand.New(rand.NewSource(defaultSeed)),
	}, nil
}

func (m *Noise) Params() map[string]float64 { return m.params }
func (m *Noise) Inputs() patch.Ports        { return nil }
func (m *Noise) Outputs() patch.Ports       { return m.outputs }
func (m *Noise) LEDs() map[string]float64   { return m.leds }

func (m *Noise) Process() {
	level := m.params["level"]
	out := m.outputs["out"].Samples()
	for i := range out {
		out[i] = (m.rng.Float64()*2 - 1) * level
	}
	m.leds["level"] = peak(out)
}

func (m *Noise) Reset() {
	m.rng = rand.New(rand.NewSource(m.seed))
	core.Zero(m.outputs["out"].Samples())
	m.leds["level"] = 0
}
