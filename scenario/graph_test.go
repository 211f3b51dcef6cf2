package scenario

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopologyBuilders(t *testing.T) {
	const n, maxEdges = 6, 10
	for kind, build := range topologyBuilders {
		t.Run(kind, func(t *testing.T) {
			b := &graphBuilder{rng: rand.New(rand.NewSource(11))}
			edges := build(b, n, maxEdges)
			assert.LessOrEqual(t, len(edges), maxEdges)
			for _, e := range edges {
				assert.NotEqual(t, e.from, e.to, "self loop")
				assert.GreaterOrEqual(t, e.from, 0)
				assert.Less(t, e.from, n)
				assert.GreaterOrEqual(t, e.to, 0)
				assert.Less(t, e.to, n)
			}
		})
	}
}

func TestBuildUnknownTypeFallsBackToTree(t *testing.T) {
	b := &graphBuilder{types: []string{"moebius"}, rng: rand.New(rand.NewSource(1))}
	edges, kind := b.build(4, 5)
	assert.Equal(t, "tree", kind)
	// A tree over 4 nodes has exactly 3 edges.
	assert.Len(t, edges, 3)
}

func TestBuildHonorsCap(t *testing.T) {
	b := &graphBuilder{types: []string{"complete"}, cap: 4, rng: rand.New(rand.NewSource(2))}
	edges, kind := b.build(6, 100)
	assert.Equal(t, "complete", kind)
	assert.LessOrEqual(t, len(edges), 4)
}

func TestComputeMetricsTriangle(t *testing.T) {
	m := computeMetrics(3, []edge{{0, 1}, {1, 2}, {2, 0}})
	assert.InDelta(t, 0.5, m.Density, 1e-12)
	assert.InDelta(t, 1.0, m.AvgBranching, 1e-12)
	assert.InDelta(t, 1.0, m.Diameter, 1e-12)
	assert.InDelta(t, 1.0, m.CycleCount, 1e-12)
}

func TestComputeMetricsPath(t *testing.T) {
	m := computeMetrics(4, []edge{{0, 1}, {1, 2}, {2, 3}})
	assert.InDelta(t, 3.0, m.Diameter, 1e-12)
	assert.Zero(t, m.CycleCount)
}

func TestComputeMetricsDegenerate(t *testing.T) {
	assert.Equal(t, Metrics{}, computeMetrics(0, nil))

	m := computeMetrics(2, nil)
	assert.Zero(t, m.Density)
	assert.Zero(t, m.Diameter)
}

func TestComputeMetricsIgnoresSelfLoopsAndDuplicates(t *testing.T) {
	m := computeMetrics(3, []edge{{0, 1}, {0, 1}, {1, 1}})
	// Only the deduplicated 0→1 edge counts for density.
	require.InDelta(t, 1.0/6.0, m.Density, 1e-12)
}
