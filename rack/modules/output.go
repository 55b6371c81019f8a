package modules

import (
	"github.com/cwbudde/algo-rack/rack/core"
	"github.com/cwbudde/algo-rack/rack/patch"
)

// Sink consumes the terminal module's rendered buffers, e.g. a playback
// bridge feeding a sound card. The timestamp is the engine's virtual
// render time for the start of the buffer, in seconds.
type Sink interface {
	Consume(samples []float64, at float64)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(samples []float64, at float64)

// Consume calls fn.
func (fn SinkFunc) Consume(samples []float64, at float64) { fn(samples, at) }

// Output is the terminal module of a patch. It copies its "in" buffer,
// forwards it to an optional Sink together with the render timestamp, and
// tracks the peak level on its "peak" LED. As the designated terminal it
// implements patch.TimeSink.
type Output struct {
	inputs patch.Ports
	leds   map[string]float64

	sink Sink
	last []float64
	at   float64
}

// NewOutput builds an Output with no sink attached.
func NewOutput(ctx patch.Context) (patch.Module, error) {
	return &Output{
		inputs: patch.Ports{"in": patch.Buffer(ctx.BufferSize)},
		leds:   map[string]float64{"peak": 0},
		last:   make([]float64, ctx.BufferSize),
	}, nil
}

// SetSink attaches the playback consumer. A nil sink detaches it.
func (m *Output) SetSink(s Sink) {
	m.sink = s
}

// Last returns the most recently rendered buffer and its timestamp.
func (m *Output) Last() ([]float64, float64) {
	return m.last, m.at
}

func (m *Output) Params() map[string]float64 { return nil }
func (m *Output) Inputs() patch.Ports        { return m.inputs }
func (m *Output) Outputs() patch.Ports       { return nil }
func (m *Output) LEDs() map[string]float64   { return m.leds }

// Process renders without a time reference; the engine calls ProcessAt
// when this module is the designated terminal.
func (m *Output) Process() {
	m.ProcessAt(m.at)
}

// ProcessAt implements patch.TimeSink.
func (m *Output) ProcessAt(at float64) {
	in := m.inputs["in"].Samples()
	copy(m.last, in)
	m.at = at
	m.leds["peak"] = peak(m.last)

	if m.sink != nil {
		m.sink.Consume(m.last, at)
	}
}

func (m *Output) Reset() {
	m.inputs["in"].Detach()
	core.Zero(m.last)
	m.at = 0
	m.leds["peak"] = 0
}
