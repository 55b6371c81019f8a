package patch

// Ports maps port names to their current signals.
type Ports map[string]*Signal

// Module is the uniform per-cycle contract every DSP unit implements.
// The engine drives inputs through the signal router, then calls Process
// exactly once per buffer cycle; Process consumes Inputs and Params and
// writes Outputs and LEDs. Reset returns the unit to silence.
type Module interface {
	Params() map[string]float64
	Inputs() Ports
	Outputs() Ports
	LEDs() map[string]float64
	Process()
	Reset()
}

// TimeSink is an optional interface for the terminal module of a patch.
// It receives the engine's virtual render time in seconds, the point where
// buffer cycles are mapped onto output sample positions. All other modules
// are cycle-local and never see a timestamp.
type TimeSink interface {
	ProcessAt(at float64)
}

// Instance pairs a module with its type tag inside a patch. The type tag
// feeds the engine's rank table; the core never inspects it otherwise.
type Instance struct {
	Module Module
	Type   string
}

// Context provides environmental information module factories need.
type Context struct {
	SampleRate float64
	BufferSize int
}
