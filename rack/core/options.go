package core

import "time"

// Config defines the shared timing settings of a rack engine.
type Config struct {
	SampleRate float64
	BufferSize int

	// Lookahead is how far ahead of the clock the scheduler keeps
	// buffers rendered.
	Lookahead time.Duration

	// TickInterval is the pause between scheduling-loop wakeups.
	// Must stay below Lookahead or the pre-rendered margin can drain
	// between wakeups.
	TickInterval time.Duration
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults for real-time use.
func DefaultConfig() Config {
	return Config{
		SampleRate:   44100,
		BufferSize:   1024,
		Lookahead:    100 * time.Millisecond,
		TickInterval: 20 * time.Millisecond,
	}
}

// WithSampleRate sets the engine sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBufferSize sets the fixed per-cycle buffer length in samples.
func WithBufferSize(bufferSize int) Option {
	return func(cfg *Config) {
		if bufferSize > 0 {
			cfg.BufferSize = bufferSize
		}
	}
}

// WithLookahead sets the scheduling lookahead window.
func WithLookahead(d time.Duration) Option {
	return func(cfg *Config) {
		if d > 0 {
			cfg.Lookahead = d
		}
	}
}

// WithTickInterval sets the scheduling-loop wakeup interval.
func WithTickInterval(d time.Duration) Option {
	return func(cfg *Config) {
		if d > 0 && d < cfg.Lookahead {
			cfg.TickInterval = d
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// BufferDuration returns the length of one buffer cycle in seconds.
func (cfg Config) BufferDuration() float64 {
	return float64(cfg.BufferSize) / cfg.SampleRate
}
