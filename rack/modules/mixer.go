package modules

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-rack/rack/core"
	"github.com/cwbudde/algo-rack/rack/patch"
)

// MixerLanes is the number of input lanes on the built-in mixer.
const MixerLanes = 4

// Mixer sums its input lanes "in[0]".."in[3]" and scales the result by
// the "level" parameter. Each lane has a peak LED.
type Mixer struct {
	params  map[string]float64
	inputs  patch.Ports
	outputs patch.Ports
	leds    map[string]float64
}

// NewMixer builds a Mixer with unity master level.
func NewMixer(ctx patch.Context) (patch.Module, error) {
	lanes := make([]*patch.Signal, MixerLanes)
	leds := make(map[string]float64, MixerLanes)
	for i := range lanes {
		lanes[i] = patch.Buffer(ctx.BufferSize)
		leds[fmt.Sprintf("lane%d", i)] = 0
	}

	return &Mixer{
		params:  map[string]float64{"level": 1},
		inputs:  patch.Ports{"in": patch.Bank(lanes...)},
		outputs: patch.Ports{"out": patch.Buffer(ctx.BufferSize)},
		leds:    leds,
	}, nil
}

func (m *Mixer) Params() map[string]float64 { return m.params }
func (m *Mixer) Inputs() patch.Ports        { return m.inputs }
func (m *Mixer) Outputs() patch.Ports       { return m.outputs }
func (m *Mixer) LEDs() map[string]float64   { return m.leds }

func (m *Mixer) Process() {
	out := m.outputs["out"].Samples()
	core.Zero(out)

	bank := m.inputs["in"]
	for i := 0; i < bank.Len(); i++ {
		lane := bank.At(i).Samples()
		vecmath.AddBlockInPlace(out, lane)
		m.leds[fmt.Sprintf("lane%d", i)] = peak(lane)
	}

	vecmath.ScaleBlock(out, out, m.params["level"])
}

func (m *Mixer) Reset() {
	m.inputs["in"].Detach()
	m.outputs["out"].Detach()
	for name := range m.leds {
		m.leds[name] = 0
	}
}
