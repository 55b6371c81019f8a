package engine

import (
	"testing"

	"github.com/cwbudde/algo-rack/rack/patch"
)

func TestRouteBorrowsBufferZeroCopy(t *testing.T) {
	t.Parallel()

	modules := instances(4, map[string]string{"src": "oscillator", "dst": "filter"})
	cables := []patch.Cable{cable("src", "out", "dst", "in")}

	srcOut := modules["src"].Module.Outputs()["out"]
	srcOut.Samples()[2] = 0.8

	Route("dst", modules, cables)

	in := modules["dst"].Module.Inputs()["in"]
	if !in.Borrowed() {
		t.Fatal("buffer route must borrow, not copy")
	}

	if &in.Samples()[0] != &srcOut.Samples()[0] {
		t.Fatal("input view is not the source buffer")
	}
}

func TestRouteScalarCoercion(t *testing.T) {
	t.Parallel()

	modules := instances(4, map[string]string{"src": "oscillator", "dst": "filter"})

	srcOut := modules["src"].Module.Outputs()["out"]
	srcOut.Samples()[0] = 0.25

	// Audio-rate source into a control-rate input: first sample wins.
	Route("dst", modules, []patch.Cable{cable("src", "out", "dst", "cv")})

	if got := modules["dst"].Module.Inputs()["cv"].Scalar(); got != 0.25 {
		t.Fatalf("cv = %v, want 0.25", got)
	}
}

func TestRouteDanglingCablesAreSilent(t *testing.T) {
	t.Parallel()

	modules := instances(4, map[string]string{"src": "oscillator", "dst": "filter"})
	modules["src"].Module.Outputs()["out"].Samples()[0] = 1

	cables := []patch.Cable{
		cable("ghost", "out", "dst", "in"),   // missing source module
		cable("src", "phantom", "dst", "in"), // missing source port
		cable("src", "out", "ghost", "in"),   // missing target is another call's problem
		cable("src", "out", "dst", "in"),
	}

	Route("dst", modules, cables)
	Route("ghost", modules, cables) // must be a silent no-op

	in := modules["dst"].Module.Inputs()["in"]
	if in.Samples()[0] != 1 {
		t.Fatalf("valid cable did not route: %v", in.Samples()[0])
	}

	if got := modules["dst"].Module.Inputs()["cv"].Scalar(); got != 0 {
		t.Fatalf("unrelated input touched: %v", got)
	}
}

func TestRouteLastCableWins(t *testing.T) {
	t.Parallel()

	modules := instances(4, map[string]string{"one": "oscillator", "two": "oscillator", "dst": "filter"})
	modules["one"].Module.Outputs()["out"].Samples()[0] = 1
	modules["two"].Module.Outputs()["out"].Samples()[0] = 2

	cables := []patch.Cable{
		cable("one", "out", "dst", "in"),
		cable("two", "out", "dst", "in"),
	}

	Route("dst", modules, cables)

	if got := modules["dst"].Module.Inputs()["in"].Samples()[0]; got != 2 {
		t.Fatalf("in[0] = %v, want the later cable's 2", got)
	}
}

func TestRouteIdempotentWithinCycle(t *testing.T) {
	t.Parallel()

	modules := instances(4, map[string]string{"src": "oscillator", "dst": "filter"})
	modules["src"].Module.Outputs()["out"].Samples()[1] = 0.5

	cables := []patch.Cable{
		cable("src", "out", "dst", "in"),
		cable("src", "out", "dst", "cv"),
	}

	Route("dst", modules, cables)

	in := modules["dst"].Module.Inputs()["in"]
	firstView := in.Samples()
	firstCV := modules["dst"].Module.Inputs()["cv"].Scalar()

	Route("dst", modules, cables)

	if &in.Samples()[0] != &firstView[0] {
		t.Fatal("second route changed the input view")
	}

	if got := modules["dst"].Module.Inputs()["cv"].Scalar(); got != firstCV {
		t.Fatalf("cv changed across idempotent routes: %v != %v", got, firstCV)
	}
}

func TestRouteSelfLoopFeedsPriorCycleOutput(t *testing.T) {
	t.Parallel()

	modules := instances(4, map[string]string{"fb": "effect"})
	modules["fb"].Module.Outputs()["out"].Samples()[0] = 0.9

	Route("fb", modules, []patch.Cable{cable("fb", "out", "fb", "in")})

	if got := modules["fb"].Module.Inputs()["in"].Samples()[0]; got != 0.9 {
		t.Fatalf("self-loop input = %v, want prior output 0.9", got)
	}
}

func TestRouteDoesNotProcess(t *testing.T) {
	t.Parallel()

	modules := instances(4, map[string]string{"src": "oscillator", "dst": "filter"})

	Route("dst", modules, []patch.Cable{cable("src", "out", "dst", "in")})

	if modules["src"].Module.(*fakeModule).processed != 0 {
		t.Fatal("router must not invoke Process on the source")
	}

	if modules["dst"].Module.(*fakeModule).processed != 0 {
		t.Fatal("router must not invoke Process on the target")
	}
}
