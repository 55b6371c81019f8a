package modules

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-rack/rack/core"
	"github.com/cwbudde/algo-rack/rack/patch"
)

// Band edges for the scope LEDs, in Hz.
const (
	scopeLowEdge = 250.0
	scopeMidEdge = 2000.0
)

// Scope passes its input through unchanged and reports the spectral
// energy of each cycle on three LEDs: "low" (< 250 Hz), "mid"
// (250 Hz – 2 kHz) and "high" (above). Indicator only; the audio path is
// untouched.
type Scope struct {
	inputs  patch.Ports
	outputs patch.Ports
	leds    map[string]float64

	sampleRate float64
	fftSize    int
	plan       *algofft.Plan[complex128]
	timeBuf    []complex128
	freqBuf    []complex128
	re         []float64
	im         []float64
	mag        []float64
}

// NewScope builds a Scope for the engine's buffer size. The FFT size is
// the buffer size rounded up to a power of two.
func NewScope(ctx patch.Context) (patch.Module, error) {
	fftSize := 1
	for fftSize < ctx.BufferSize {
		fftSize <<= 1
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("scope: create FFT plan: %w", err)
	}

	bins := fftSize/2 + 1

	return &Scope{
		inputs:     patch.Ports{"in": patch.Buffer(ctx.BufferSize)},
		outputs:    patch.Ports{"out": patch.Buffer(ctx.BufferSize)},
		leds:       map[string]float64{"low": 0, "mid": 0, "high": 0},
		sampleRate: ctx.SampleRate,
		fftSize:    fftSize,
		plan:       plan,
		timeBuf:    make([]complex128, fftSize),
		freqBuf:    make([]complex128, fftSize),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
	}, nil
}

func (m *Scope) Params() map[string]float64 { return nil }
func (m *Scope) Inputs() patch.Ports        { return m.inputs }
func (m *Scope) Outputs() patch.Ports       { return m.outputs }
func (m *Scope) LEDs() map[string]float64   { return m.leds }

func (m *Scope) Process() {
	in := m.inputs["in"].Samples()
	out := m.outputs["out"].Samples()
	copy(out, in)

	for i := range m.timeBuf {
		if i < len(in) {
			m.timeBuf[i] = complex(in[i], 0)
		} else {
			m.timeBuf[i] = 0
		}
	}

	err := m.plan.Forward(m.freqBuf, m.timeBuf)
	if err != nil {
		// Analysis failure never disturbs the audio path.
		return
	}

	bins := len(m.mag)
	for i := 0; i < bins; i++ {
		m.re[i] = real(m.freqBuf[i])
		m.im[i] = imag(m.freqBuf[i])
	}
	vecmath.Magnitude(m.mag, m.re, m.im)

	var sums [3]float64
	var counts [3]int
	binHz := m.sampleRate / float64(m.fftSize)

	for i := 0; i < bins; i++ {
		freq := float64(i) * binHz

		band := 2
		switch {
		case freq < scopeLowEdge:
			band = 0
		case freq < scopeMidEdge:
			band = 1
		}

		sums[band] += m.mag[i]
		counts[band]++
	}

	scale := 1.0 / float64(m.fftSize)
	for i, name := range [...]string{"low", "mid", "high"} {
		if counts[i] == 0 {
			m.leds[name] = 0
			continue
		}
		m.leds[name] = sums[i] / float64(counts[i]) * scale
	}
}

func (m *Scope) Reset() {
	m.inputs["in"].Detach()
	m.outputs["out"].Detach()
	core.Zero(m.re)
	core.Zero(m.im)
	core.Zero(m.mag)
	for name := range m.leds {
		m.leds[name] = 0
	}
}
