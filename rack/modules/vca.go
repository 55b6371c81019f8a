package modules

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-rack/rack/patch"
)

// VCA scales its "in" buffer by the "gain" parameter. When the "cv" input
// is driven by a cable, the control buffer multiplies the signal per
// sample on top of the gain.
type VCA struct {
	params  map[string]float64
	inputs  patch.Ports
	outputs patch.Ports
	leds    map[string]float64
}

// NewVCA builds a VCA with unity gain.
func NewVCA(ctx patch.Context) (patch.Module, error) {
	return &VCA{
		params: map[string]float64{"gain": 1},
		inputs: patch.Ports{
			"in": patch.Buffer(ctx.BufferSize),
			"cv": patch.Buffer(ctx.BufferSize),
		},
		outputs: patch.Ports{"out": patch.Buffer(ctx.BufferSize)},
		leds:    map[string]float64{"level": 0},
	}, nil
}

func (m *VCA) Params() map[string]float64 { return m.params }
func (m *VCA) Inputs() patch.Ports        { return m.inputs }
func (m *VCA) Outputs() patch.Ports       { return m.outputs }
func (m *VCA) LEDs() map[string]float64   { return m.leds }

func (m *VCA) Process() {
	in := m.inputs["in"].Samples()
	out := m.outputs["out"].Samples()

	vecmath.ScaleBlock(out, in, m.params["gain"])

	if cv := m.inputs["cv"]; cv.Borrowed() {
		vecmath.MulBlockInPlace(out, cv.Samples())
	}

	m.leds["level"] = peak(out)
}

func (m *VCA) Reset() {
	for _, sig := range m.inputs {
		sig.Detach()
	}
	m.outputs["out"].Detach()
	m.leds["level"] = 0
}
