package engine_test

import (
	"fmt"

	"github.com/cwbudde/algo-rack/rack/core"
	"github.com/cwbudde/algo-rack/rack/engine"
	"github.com/cwbudde/algo-rack/rack/modules"
	"github.com/cwbudde/algo-rack/rack/patch"
)

func Example() {
	ctx := patch.Context{SampleRate: 1000, BufferSize: 4}
	registry := modules.DefaultRegistry()

	level, _ := registry.New(modules.TypeConst, ctx)
	vca, _ := registry.New(modules.TypeVCA, ctx)
	sink, _ := registry.New(modules.TypeOutput, ctx)

	level.Module.Params()["level"] = 0.5

	e := engine.New(
		engine.WithConfig(core.ApplyOptions(
			core.WithSampleRate(ctx.SampleRate),
			core.WithBufferSize(ctx.BufferSize),
		)),
		engine.WithModules(map[string]patch.Instance{
			"lvl": level,
			"vca": vca,
			"out": sink,
		}),
		engine.WithCables([]patch.Cable{
			{FromModule: "lvl", FromPort: "out", ToModule: "vca", ToPort: "in"},
			{FromModule: "vca", FromPort: "out", ToModule: "out", ToPort: "in"},
		}),
		engine.WithTerminal("out"),
	)

	snap := e.StepOnce()

	fmt.Println(e.Order())
	fmt.Printf("peak=%.2f\n", snap["out"]["peak"])

	// Output:
	// [lvl vca out]
	// peak=0.50
}
