// Package demo bridges the engine's terminal output module to an oto
// playback device for the rackdemo binary.
package demo

import (
	"math"
	"sync"
)

const bytesPerSample = 4

// Stream buffers rendered samples as little-endian float32 bytes between
// the engine goroutine (Consume) and the audio device (Read). Underruns
// read as silence; the engine's lookahead margin keeps them rare. If the
// device stalls, the oldest samples are dropped beyond maxBytes.
type Stream struct {
	mu       sync.Mutex
	buf      []byte
	maxBytes int
}

// NewStream creates a stream that retains at most maxSeconds of audio.
func NewStream(sampleRate float64, maxSeconds float64) *Stream {
	maxBytes := int(sampleRate*maxSeconds) * bytesPerSample
	if maxBytes < bytesPerSample {
		maxBytes = bytesPerSample
	}

	return &Stream{maxBytes: maxBytes}
}

// Consume implements modules.Sink. The timestamp is unused; playback
// order is implied by arrival order.
func (s *Stream) Consume(samples []float64, _ float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range samples {
		bits := math.Float32bits(float32(v))
		s.buf = append(s.buf, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}

	if len(s.buf) > s.maxBytes {
		drop := len(s.buf) - s.maxBytes
		drop -= drop % bytesPerSample
		s.buf = s.buf[drop:]
	}
}

// Read implements io.Reader for the oto player. It never blocks and
// never errors: missing audio is zero-filled.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	s.mu.Unlock()

	for i := n; i < len(p); i++ {
		p[i] = 0
	}

	return len(p), nil
}

// Pending returns the number of buffered samples.
func (s *Stream) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf) / bytesPerSample
}
