package scenario

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// edge is a directed transfer channel between two agent indices.
type edge struct {
	from, to int
}

// graphBuilder produces transfer topologies following the configured
// architecture mix. Agents are addressed by index; the mapping to names
// happens in the generator.
type graphBuilder struct {
	types []string
	cap   int
	rng   *rand.Rand
}

type builderFunc func(b *graphBuilder, n, maxEdges int) []edge

var topologyBuilders = map[string]builderFunc{
	"tree":      (*graphBuilder).buildTree,
	"ring":      (*graphBuilder).buildRing,
	"star":      (*graphBuilder).buildStar,
	"flow":      (*graphBuilder).buildFlow,
	"dag":       (*graphBuilder).buildDAG,
	"complete":  (*graphBuilder).buildComplete,
	"bipartite": (*graphBuilder).buildBipartite,
}

// build picks a topology at random and constructs its edge set for n agents.
func (b *graphBuilder) build(n, desiredEdges int) ([]edge, string) {
	kind := b.types[b.rng.Intn(len(b.types))]
	builder, ok := topologyBuilders[kind]
	if !ok {
		kind = "tree"
		builder = (*graphBuilder).buildTree
	}
	edgeCap := desiredEdges
	if b.cap > 0 && edgeCap > b.cap {
		edgeCap = b.cap
	}
	if edgeCap < 1 {
		edgeCap = 1
	}
	return builder(b, n, edgeCap), kind
}

func (b *graphBuilder) buildTree(n, maxEdges int) []edge {
	var edges []edge
	parents := []int{0}
	for v := 1; v < n; v++ {
		p := parents[b.rng.Intn(len(parents))]
		edges = append(edges, edge{p, v})
		parents = append(parents, v)
		if len(edges) >= maxEdges {
			break
		}
	}
	return edges
}

func (b *graphBuilder) buildRing(n, maxEdges int) []edge {
	order := b.rng.Perm(n)
	var edges []edge
	for i, v := range order {
		edges = append(edges, edge{v, order[(i+1)%n]})
		if len(edges) >= maxEdges {
			break
		}
	}
	return edges
}

func (b *graphBuilder) buildStar(n, maxEdges int) []edge {
	hub := b.rng.Intn(n)
	var edges []edge
	for v := 0; v < n; v++ {
		if v == hub {
			continue
		}
		edges = append(edges, edge{hub, v})
		if len(edges) >= maxEdges {
			break
		}
	}
	return edges
}

func (b *graphBuilder) buildFlow(n, maxEdges int) []edge {
	var edges []edge
	seen := make(map[edge]bool)
	attempts := 0
	limit := maxEdges * 3
	if limit < 1 {
		limit = 1
	}
	for len(edges) < maxEdges && attempts < limit {
		u, v := b.rng.Intn(n), b.rng.Intn(n)
		if u == v || seen[edge{u, v}] {
			attempts++
			continue
		}
		seen[edge{u, v}] = true
		edges = append(edges, edge{u, v})
	}
	return edges
}

func (b *graphBuilder) buildDAG(n, maxEdges int) []edge {
	order := b.rng.Perm(n)
	var edges []edge
	for i, u := range order {
		for _, v := range order[i+1:] {
			if len(edges) >= maxEdges {
				return edges
			}
			if b.rng.Float64() < 0.6 {
				edges = append(edges, edge{u, v})
			}
		}
	}
	return edges
}

func (b *graphBuilder) buildComplete(n, maxEdges int) []edge {
	var all []edge
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if u != v {
				all = append(all, edge{u, v})
			}
		}
	}
	b.rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if len(all) > maxEdges {
		all = all[:maxEdges]
	}
	return all
}

func (b *graphBuilder) buildBipartite(n, maxEdges int) []edge {
	order := b.rng.Perm(n)
	mid := n / 2
	if mid < 1 {
		mid = 1
	}
	var all []edge
	for _, u := range order[:mid] {
		for _, v := range order[mid:] {
			all = append(all, edge{u, v}, edge{v, u})
		}
	}
	b.rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if len(all) > maxEdges {
		all = all[:maxEdges]
	}
	return all
}

// cycleSearchEdgeCap bounds the simple-cycle enumeration; beyond it the
// count is reported as zero rather than paying Johnson's worst case.
const cycleSearchEdgeCap = 200

// computeMetrics derives the transfer-graph statistics used by the
// complexity score.
func computeMetrics(n int, edges []edge) Metrics {
	if n == 0 {
		return Metrics{}
	}

	dg := simple.NewDirectedGraph()
	ug := simple.NewUndirectedGraph()
	for v := 0; v < n; v++ {
		dg.AddNode(simple.Node(v))
		ug.AddNode(simple.Node(v))
	}
	for _, e := range edges {
		if e.from == e.to {
			continue
		}
		f, t := simple.Node(e.from), simple.Node(e.to)
		if !dg.HasEdgeFromTo(f.ID(), t.ID()) {
			dg.SetEdge(dg.NewEdge(f, t))
		}
		if !ug.HasEdgeBetween(f.ID(), t.ID()) {
			ug.SetEdge(ug.NewEdge(f, t))
		}
	}

	m := Metrics{
		AvgBranching: float64(len(edges)) / float64(n),
	}
	if n > 1 {
		m.Density = float64(dg.Edges().Len()) / float64(n*(n-1))
	}

	// Weak diameter: longest finite shortest path in the undirected view.
	if shortest, ok := path.FloydWarshall(ug); ok {
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				if w := shortest.Weight(int64(u), int64(v)); !math.IsInf(w, 1) && w > m.Diameter {
					m.Diameter = w
				}
			}
		}
	}

	if len(edges) < cycleSearchEdgeCap {
		m.CycleCount = float64(len(topo.DirectedCyclesIn(dg)))
	}
	return m
}
