package engine

import (
	"sort"

	"github.com/cwbudde/algo-rack/rack/patch"
)

// unranked sorts after every explicit rank.
const unranked = 1 << 30

// Ranking assigns module types a processing priority used to break ties
// between modules that the cable graph leaves unordered. Lower runs first;
// types not present sort last.
type Ranking map[string]int

// DefaultRanking orders the common module families source-to-sink.
var DefaultRanking = Ranking{
	"clock":      0,
	"sequencer":  1,
	"oscillator": 2,
	"noise":      3,
	"const":      4,
	"filter":     5,
	"envelope":   6,
	"vca":        7,
	"mixer":      8,
	"effect":     9,
	"scope":      10,
	"output":     11,
}

func (r Ranking) rank(moduleType string) int {
	if r == nil {
		return unranked
	}

	v, ok := r[moduleType]
	if !ok {
		return unranked
	}

	return v
}

// ResolveOrder computes the deterministic processing order for the module
// set under the given cables: Kahn's algorithm over the edges whose
// endpoints both exist (self-loops excluded, parallel edges deduplicated),
// ties broken by type rank then id. Modules left over when the ready queue
// drains — cycle members and nodes unreachable from any zero-in-degree
// seed — are appended in rank order, so the result is always a permutation
// of the full id set and the resolver never fails.
func ResolveOrder(modules map[string]patch.Instance, cables []patch.Cable, ranking Ranking) []string {
	if len(modules) == 0 {
		return nil
	}

	less := func(a, b string) bool {
		ra := ranking.rank(modules[a].Type)
		rb := ranking.rank(modules[b].Type)
		if ra != rb {
			return ra < rb
		}
		return a < b
	}

	outgoing := make(map[string][]string, len(modules))
	indegree := make(map[string]int, len(modules))
	seen := make(map[[2]string]struct{}, len(cables))

	for id := range modules {
		indegree[id] = 0
	}

	for _, c := range cables {
		if c.SelfLoop() {
			continue
		}

		if _, ok := modules[c.FromModule]; !ok {
			continue
		}

		if _, ok := modules[c.ToModule]; !ok {
			continue
		}

		key := [2]string{c.FromModule, c.ToModule}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		outgoing[c.FromModule] = append(outgoing[c.FromModule], c.ToModule)
		indegree[c.ToModule]++
	}

	queue := make([]string, 0, len(modules))
	for id, d := range indegree {
		if d == 0 {
			queue = insertRanked(queue, id, less)
		}
	}

	order := make([]string, 0, len(modules))
	visited := make(map[string]struct{}, len(modules))

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		order = append(order, id)
		visited[id] = struct{}{}

		successors := outgoing[id]
		sort.Slice(successors, func(i, j int) bool { return less(successors[i], successors[j]) })

		for _, next := range successors {
			indegree[next]--
			if indegree[next] == 0 {
				queue = insertRanked(queue, next, less)
			}
		}
	}

	if len(order) == len(modules) {
		return order
	}

	// Whatever remains sits on a cycle or behind one. Append in rank
	// order; the feedback edge costs one cycle of latency, which is
	// accepted rather than reported.
	rest := make([]string, 0, len(modules)-len(order))
	for id := range modules {
		if _, ok := visited[id]; !ok {
			rest = append(rest, id)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return less(rest[i], rest[j]) })

	return append(order, rest...)
}

// insertRanked inserts id into queue at the position that keeps the queue
// sorted under less.
func insertRanked(queue []string, id string, less func(a, b string) bool) []string {
	at := sort.Search(len(queue), func(i int) bool { return less(id, queue[i]) })
	queue = append(queue, "")
	copy(queue[at+1:], queue[at:])
	queue[at] = id
	return queue
}
