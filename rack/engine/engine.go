package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-rack/rack/core"
	"github.com/cwbudde/algo-rack/rack/patch"
)

// ErrNoClock is returned by Start when no clock source has been set.
// An engine cannot pace rendering without a time reference.
var ErrNoClock = errors.New("engine: no clock source")

// IndicatorSnapshot maps module ids to a copy of their LED values.
type IndicatorSnapshot map[string]map[string]float64

// IndicatorFunc receives the LED snapshot once per scheduling wakeup.
type IndicatorFunc func(IndicatorSnapshot)

// graphState is the immutable modules+cables+order snapshot. Mutators
// build a fresh one and swap the pointer; a batch in flight keeps whatever
// snapshot it loaded and never observes a torn update.
type graphState struct {
	modules map[string]patch.Instance
	cables  []patch.Cable
	order   []string
}

// Engine owns the real-time loop: it advances a virtual render clock,
// keeps the lookahead margin of buffers rendered ahead of the clock
// source, and runs routing + processing over the patch in resolved order.
type Engine struct {
	cfg          core.Config
	ranking      Ranking
	terminal     string
	onIndicators IndicatorFunc

	graph atomic.Pointer[graphState]

	mu       sync.Mutex
	clock    Clock
	running  bool
	stop     chan struct{}
	nextTime float64
}

// Option configures an Engine at construction.
type Option func(*Engine, *initialGraph)

type initialGraph struct {
	modules map[string]patch.Instance
	cables  []patch.Cable
}

// WithConfig sets the timing configuration.
func WithConfig(cfg core.Config) Option {
	return func(e *Engine, _ *initialGraph) { e.cfg = cfg }
}

// WithModules sets the initial module set.
func WithModules(modules map[string]patch.Instance) Option {
	return func(_ *Engine, g *initialGraph) { g.modules = modules }
}

// WithCables sets the initial cable list.
func WithCables(cables []patch.Cable) Option {
	return func(_ *Engine, g *initialGraph) { g.cables = cables }
}

// WithClock sets the clock source. Legal to omit at construction; Start
// fails until one is provided.
func WithClock(c Clock) Option {
	return func(e *Engine, _ *initialGraph) { e.clock = c }
}

// WithTerminal designates the module that receives the render timestamp.
func WithTerminal(id string) Option {
	return func(e *Engine, _ *initialGraph) { e.terminal = id }
}

// WithRanking overrides the type rank table used for order tie-breaking.
func WithRanking(r Ranking) Option {
	return func(e *Engine, _ *initialGraph) { e.ranking = r }
}

// WithIndicatorFunc sets the per-wakeup LED snapshot callback.
func WithIndicatorFunc(fn IndicatorFunc) Option {
	return func(e *Engine, _ *initialGraph) { e.onIndicators = fn }
}

// New builds a stopped engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:     core.DefaultConfig(),
		ranking: DefaultRanking,
	}

	var g initialGraph
	for _, opt := range opts {
		if opt != nil {
			opt(e, &g)
		}
	}

	e.storeGraph(g.modules, g.cables)

	return e
}

// Config returns the engine's timing configuration.
func (e *Engine) Config() core.Config {
	return e.cfg
}

// Start enters the Running state and begins the scheduling loop on its
// own goroutine. Starting a running engine is a no-op; starting without a
// clock source returns ErrNoClock.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return nil
	}

	if e.clock == nil {
		return ErrNoClock
	}

	e.nextTime = e.clock.Now()
	e.stop = make(chan struct{})
	e.running = true

	go e.loop(e.stop)

	return nil
}

// Stop cancels future loop wakeups. A batch already in flight completes;
// stopping a stopped engine is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	close(e.stop)
	e.stop = nil
	e.running = false
}

// Running reports whether the scheduling loop is armed.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// SetModules replaces the module set wholesale and recomputes the process
// order. The engine never creates or destroys module instances itself.
func (e *Engine) SetModules(modules map[string]patch.Instance) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.storeGraph(modules, e.graph.Load().cables)
}

// SetCables replaces the cable list wholesale and recomputes the process
// order. Input ports that lose their only driving cable are detached back
// to their own silent buffers, so no stale routed value or foreign buffer
// reference survives the edit.
func (e *Engine) SetCables(cables []patch.Cable) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.graph.Load()

	wasDriven := drivenPorts(g.modules, g.cables)
	stillDriven := drivenPorts(g.modules, cables)

	for port := range wasDriven {
		if _, ok := stillDriven[port]; ok {
			continue
		}

		inst, ok := g.modules[port[0]]
		if !ok || inst.Module == nil {
			continue
		}

		patch.DetachPort(inst.Module.Inputs(), port[1])
	}

	e.storeGraph(g.modules, cables)
}

// SetClock replaces the clock source, e.g. when audio hardware becomes
// available after running against a mock clock.
func (e *Engine) SetClock(c Clock) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock = c
}

// Order returns a copy of the current process order.
func (e *Engine) Order() []string {
	g := e.graph.Load()
	return append([]string(nil), g.order...)
}

// StepOnce renders exactly one buffer cycle synchronously, bypassing the
// real-time loop, and returns the post-cycle LED snapshot.
func (e *Engine) StepOnce() IndicatorSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.renderCycle()
	e.nextTime += e.cfg.BufferDuration()

	return e.snapshotLocked()
}

func (e *Engine) loop(stop chan struct{}) {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		e.runBatch()

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// runBatch renders buffer cycles until the margin ahead of the clock
// source reaches the lookahead window again, then reports indicators.
// Returns the number of cycles rendered.
func (e *Engine) runBatch() int {
	e.mu.Lock()

	if e.clock == nil {
		e.mu.Unlock()
		return 0
	}

	horizon := e.clock.Now() + e.cfg.Lookahead.Seconds()
	step := e.cfg.BufferDuration()

	rendered := 0
	for e.nextTime < horizon {
		e.renderCycle()
		e.nextTime += step
		rendered++
	}

	fn := e.onIndicators

	var snap IndicatorSnapshot
	if fn != nil {
		snap = e.snapshotLocked()
	}

	e.mu.Unlock()

	if fn != nil {
		fn(snap)
	}

	return rendered
}

// renderCycle runs routing then processing for every module in order.
// Callers hold e.mu.
func (e *Engine) renderCycle() {
	g := e.graph.Load()

	for _, id := range g.order {
		inst, ok := g.modules[id]
		if !ok || inst.Module == nil {
			continue
		}

		Route(id, g.modules, g.cables)

		if id == e.terminal {
			if sink, ok := inst.Module.(patch.TimeSink); ok {
				sink.ProcessAt(e.nextTime)
				continue
			}
		}

		inst.Module.Process()
	}
}

func (e *Engine) snapshotLocked() IndicatorSnapshot {
	g := e.graph.Load()

	snap := make(IndicatorSnapshot, len(g.modules))
	for id, inst := range g.modules {
		if inst.Module == nil {
			continue
		}

		leds := inst.Module.LEDs()
		copied := make(map[string]float64, len(leds))
		for name, v := range leds {
			copied[name] = v
		}

		snap[id] = copied
	}

	return snap
}

// storeGraph swaps in a fresh snapshot with cloned containers and a
// recomputed order.
func (e *Engine) storeGraph(modules map[string]patch.Instance, cables []patch.Cable) {
	cloned := make(map[string]patch.Instance, len(modules))
	for id, inst := range modules {
		cloned[id] = inst
	}

	cableList := append([]patch.Cable(nil), cables...)

	e.graph.Store(&graphState{
		modules: cloned,
		cables:  cableList,
		order:   ResolveOrder(cloned, cableList, e.ranking),
	})
}

// drivenPorts collects every (module, input port) pair with at least one
// cable whose endpoints both resolve, mirroring what the router would
// actually write.
func drivenPorts(modules map[string]patch.Instance, cables []patch.Cable) map[[2]string]struct{} {
	driven := make(map[[2]string]struct{}, len(cables))

	for _, c := range cables {
		if _, ok := modules[c.FromModule]; !ok {
			continue
		}

		if _, ok := modules[c.ToModule]; !ok {
			continue
		}

		driven[[2]string{c.ToModule, c.ToPort}] = struct{}{}
	}

	return driven
}
