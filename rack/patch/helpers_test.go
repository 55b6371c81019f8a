package patch

// stubModule is a minimal Module implementation for registry tests.
type stubModule struct {
	params  map[string]float64
	inputs  Ports
	outputs Ports
	leds    map[string]float64
}

func newStubModule() *stubModule {
	return &stubModule{
		params:  map[string]float64{},
		inputs:  Ports{},
		outputs: Ports{},
		leds:    map[string]float64{},
	}
}

func (m *stubModule) Params() map[string]float64 { return m.params }
func (m *stubModule) Inputs() Ports              { return m.inputs }
func (m *stubModule) Outputs() Ports             { return m.outputs }
func (m *stubModule) LEDs() map[string]float64   { return m.leds }
func (m *stubModule) Process()                   {}
func (m *stubModule) Reset()                     {}

func stubFactory(_ Context) (Module, error) {
	return newStubModule(), nil
}
