// Command rackdemo runs a small patch against the sound card: a noise
// source through a VCA into the mixer, analysed by a scope and played by
// the terminal output module.
//
// Usage:
//
//	rackdemo [flags]
//
// Examples:
//
//	rackdemo
//	rackdemo -rate 44100 -buffer 512 -gain 0.3
//	rackdemo -duration 5s -log-level debug
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/cwbudde/algo-rack/internal/demo"
	"github.com/cwbudde/algo-rack/rack/core"
	"github.com/cwbudde/algo-rack/rack/engine"
	"github.com/cwbudde/algo-rack/rack/modules"
	"github.com/cwbudde/algo-rack/rack/patch"
)

func main() {
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	buffer := flag.Int("buffer", 1024, "buffer size in samples")
	gain := flag.Float64("gain", 0.2, "output gain")
	duration := flag.Duration("duration", 0, "stop after this long (0 = run until interrupted)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	if err := run(*rate, *buffer, *gain, *duration, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "rackdemo:", err)
		os.Exit(1)
	}
}

func resolveLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
}

func run(rate float64, buffer int, gain float64, duration time.Duration, logLevel string) error {
	level, err := resolveLogLevel(logLevel)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := core.ApplyOptions(core.WithSampleRate(rate), core.WithBufferSize(buffer))
	ctx := patch.Context{SampleRate: cfg.SampleRate, BufferSize: cfg.BufferSize}

	registry := modules.DefaultRegistry()

	ids := map[string]string{
		"noise": modules.TypeNoise,
		"vca":   modules.TypeVCA,
		"mix":   modules.TypeMixer,
		"scope": modules.TypeScope,
		"out":   modules.TypeOutput,
	}

	patchModules := make(map[string]patch.Instance, len(ids))
	for id, moduleType := range ids {
		inst, err := registry.New(moduleType, ctx)
		if err != nil {
			return fmt.Errorf("build %s: %w", id, err)
		}
		patchModules[id] = inst
	}

	patchModules["vca"].Module.Params()["gain"] = gain

	cables := []patch.Cable{
		{FromModule: "noise", FromPort: "out", ToModule: "vca", ToPort: "in"},
		{FromModule: "vca", FromPort: "out", ToModule: "mix", ToPort: "in[0]"},
		{FromModule: "mix", FromPort: "out", ToModule: "scope", ToPort: "in"},
		{FromModule: "scope", FromPort: "out", ToModule: "out", ToPort: "in"},
	}

	stream := demo.NewStream(cfg.SampleRate, 2)
	patchModules["out"].Module.(*modules.Output).SetSink(stream)

	player, err := demo.NewPlayer(int(cfg.SampleRate), stream)
	if err != nil {
		return err
	}
	defer func() {
		if err := player.Close(); err != nil {
			logger.Warn("close player", "error", err)
		}
	}()

	e := engine.New(
		engine.WithConfig(cfg),
		engine.WithModules(patchModules),
		engine.WithCables(cables),
		engine.WithClock(engine.NewSystemClock()),
		engine.WithTerminal("out"),
		engine.WithIndicatorFunc(func(snap engine.IndicatorSnapshot) {
			logger.Debug("indicators",
				"peak", snap["out"]["peak"],
				"low", snap["scope"]["low"],
				"mid", snap["scope"]["mid"],
				"high", snap["scope"]["high"],
			)
		}),
	)

	logger.Info("engine order", "order", e.Order())

	if err := e.Start(); err != nil {
		return err
	}
	defer e.Stop()

	player.Play()
	logger.Info("playing", "rate", cfg.SampleRate, "buffer", cfg.BufferSize)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	if duration > 0 {
		select {
		case <-interrupt:
		case <-time.After(duration):
		}
	} else {
		<-interrupt
	}

	logger.Info("stopping")

	return nil
}
