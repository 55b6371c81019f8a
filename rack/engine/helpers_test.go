package engine

import "github.com/cwbudde/algo-rack/rack/patch"

// fakeModule copies its "in" buffer to its "out" buffer on Process and
// counts invocations. Enough surface to observe routing and scheduling.
type fakeModule struct {
	params    map[string]float64
	inputs    patch.Ports
	outputs   patch.Ports
	leds      map[string]float64
	processed int
	resets    int
}

func newFakeModule(bufferSize int) *fakeModule {
	return &fakeModule{
		params: map[string]float64{},
		inputs: patch.Ports{
			"in": patch.Buffer(bufferSize),
			"cv": patch.Scalar(0),
		},
		outputs: patch.Ports{
			"out": patch.Buffer(bufferSize),
		},
		leds: map[string]float64{"level": 0},
	}
}

func (m *fakeModule) Params() map[string]float64 { return m.params }
func (m *fakeModule) Inputs() patch.Ports        { return m.inputs }
func (m *fakeModule) Outputs() patch.Ports       { return m.outputs }
func (m *fakeModule) LEDs() map[string]float64   { return m.leds }

func (m *fakeModule) Process() {
	m.processed++
	in := m.inputs["in"].Samples()
	out := m.outputs["out"].Samples()
	copy(out, in)
	if len(out) > 0 {
		m.leds["level"] = out[0]
	}
}

func (m *fakeModule) Reset() {
	m.resets++
	for _, sig := range m.inputs {
		sig.Detach()
	}
	for _, sig := range m.outputs {
		sig.Detach()
	}
}

// timedModule records the timestamps handed to the terminal module.
type timedModule struct {
	fakeModule
	stamps []float64
}

func newTimedModule(bufferSize int) *timedModule {
	return &timedModule{fakeModule: *newFakeModule(bufferSize)}
}

func (m *timedModule) ProcessAt(at float64) {
	m.stamps = append(m.stamps, at)
	m.Process()
}

// instances builds a module map with every id bound to a fresh fakeModule
// of the given type tag.
func instances(bufferSize int, idTypes map[string]string) map[string]patch.Instance {
	out := make(map[string]patch.Instance, len(idTypes))
	for id, moduleType := range idTypes {
		out[id] = patch.Instance{Module: newFakeModule(bufferSize), Type: moduleType}
	}
	return out
}

func cable(from, fromPort, to, toPort string) patch.Cable {
	return patch.Cable{FromModule: from, FromPort: fromPort, ToModule: to, ToPort: toPort}
}

func indexOf(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}
