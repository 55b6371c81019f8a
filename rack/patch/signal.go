package patch

import "github.com/cwbudde/algo-rack/rack/core"

type signalKind uint8

const (
	kindScalar signalKind = iota
	kindBuffer
	kindBank
)

// Signal is one routable port value: a control-rate scalar, an audio-rate
// sample buffer of fixed length, or a bank of sub-signals addressed by
// index (e.g. the lanes of a mixer input).
//
// Buffer signals distinguish the owned backing buffer, allocated once and
// kept for the signal's lifetime, from the current view. The router may
// substitute a foreign output buffer as the view for zero-copy routing;
// Detach restores the owned buffer.
type Signal struct {
	kind   signalKind
	scalar float64
	owned  []float64
	view   []float64
	bank   []*Signal
}

// Scalar returns a new control-rate signal holding v.
func Scalar(v float64) *Signal {
	return &Signal{kind: kindScalar, scalar: v}
}

// Buffer returns a new audio-rate signal with a zeroed owned buffer of n samples.
func Buffer(n int) *Signal {
	if n < 0 {
		n = 0
	}
	buf := make([]float64, n)
	return &Signal{kind: kindBuffer, owned: buf, view: buf}
}

// Bank groups sub-signals under one port name, addressed as name[i].
func Bank(signals ...*Signal) *Signal {
	return &Signal{kind: kindBank, bank: signals}
}

// IsBuffer reports whether the signal carries a sample buffer.
func (s *Signal) IsBuffer() bool { return s.kind == kindBuffer }

// IsBank reports whether the signal is a bank of sub-signals.
func (s *Signal) IsBank() bool { return s.kind == kindBank }

// Len returns the number of sub-signals in a bank, 0 otherwise.
func (s *Signal) Len() int {
	if s.kind != kindBank {
		return 0
	}
	return len(s.bank)
}

// At returns the i-th sub-signal of a bank, or nil if out of range or not a bank.
func (s *Signal) At(i int) *Signal {
	if s.kind != kindBank || i < 0 || i >= len(s.bank) {
		return nil
	}
	return s.bank[i]
}

// Samples returns the current buffer view, or nil for non-buffer signals.
func (s *Signal) Samples() []float64 {
	if s.kind != kindBuffer {
		return nil
	}
	return s.view
}

// Scalar returns the signal as a single control value: the scalar itself,
// or the first sample of a buffer. Banks and empty buffers read as 0.
func (s *Signal) Scalar() float64 {
	switch s.kind {
	case kindScalar:
		return s.scalar
	case kindBuffer:
		if len(s.view) == 0 {
			return 0
		}
		return s.view[0]
	default:
		return 0
	}
}

// SetScalar writes a control value: direct assignment for scalar signals,
// broadcast fill of the owned buffer for buffer signals.
func (s *Signal) SetScalar(v float64) {
	switch s.kind {
	case kindScalar:
		s.scalar = v
	case kindBuffer:
		core.Fill(s.owned, v)
		s.view = s.owned
	}
}

// Borrowed reports whether a buffer signal currently views a foreign buffer.
func (s *Signal) Borrowed() bool {
	if s.kind != kindBuffer || len(s.view) == 0 || len(s.owned) == 0 {
		return false
	}
	return &s.view[0] != &s.owned[0]
}

// CopyFrom writes src into s applying the coercion matrix:
//
//	buffer  <- buffer   element-wise copy into the owned buffer
//	buffer  <- scalar   broadcast fill
//	scalar  <- buffer   first sample only
//	scalar  <- scalar   assignment
//
// A plain write always restores the owned buffer as the view; the only way
// a port holds a foreign buffer is Borrow. Bank operands are ignored.
func (s *Signal) CopyFrom(src *Signal) {
	if s == nil || src == nil || s.kind == kindBank || src.kind == kindBank {
		return
	}
	switch {
	case s.kind == kindBuffer && src.kind == kindBuffer:
		core.CopyInto(s.owned, src.view)
		s.view = s.owned
	case s.kind == kindBuffer:
		s.SetScalar(src.scalar)
	default:
		s.SetScalar(src.Scalar())
	}
}

// Borrow makes s view src's buffer for the current cycle, avoiding a copy.
// Falls back to CopyFrom when either side is not a buffer of matching length.
func (s *Signal) Borrow(src *Signal) {
	if s == nil || src == nil {
		return
	}
	if s.kind == kindBuffer && src.kind == kindBuffer && len(src.view) == len(s.owned) {
		s.view = src.view
		return
	}
	s.CopyFrom(src)
}

// Detach restores the owned buffer as the view and clears the signal to
// silence. Called when a port loses its driving cable.
func (s *Signal) Detach() {
	switch s.kind {
	case kindScalar:
		s.scalar = 0
	case kindBuffer:
		s.view = s.owned
		core.Zero(s.owned)
	case kindBank:
		for _, sub := range s.bank {
			sub.Detach()
		}
	}
}
