package modules

import "github.com/cwbudde/algo-rack/rack/patch"

// Type names of the built-in modules.
const (
	TypeConst  = "const"
	TypeNoise  = "noise"
	TypeVCA    = "vca"
	TypeMixer  = "mixer"
	TypeScope  = "scope"
	TypeOutput = "output"
)

// DefaultRegistry returns a registry with every built-in module type.
func DefaultRegistry() *patch.Registry {
	r := patch.NewRegistry()
	r.MustRegister(TypeConst, NewConst)
	r.MustRegister(TypeNoise, NewNoise)
	r.MustRegister(TypeVCA, NewVCA)
	r.MustRegister(TypeMixer, NewMixer)
	r.MustRegister(TypeScope, NewScope)
	r.MustRegister(TypeOutput, NewOutput)
	return r
}

func peak(buf []float64) float64 {
	p := 0.0
	for _, v := range buf {
		if v < 0 {
			v = -v
		}
		if v > p {
			p = v
		}
	}
	return p
}
