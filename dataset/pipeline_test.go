package dataset

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordprob/wordprob/constraint"
	"github.com/wordprob/wordprob/question"
	"github.com/wordprob/wordprob/verify"
)

// memWriter collects problems in memory. The pipeline funnels all writes
// through a single goroutine, so no locking is needed.
type memWriter struct {
	problems []*question.Problem
	closed   bool
}

func (w *memWriter) Write(p *question.Problem) error {
	w.problems = append(w.problems, p)
	return nil
}

func (w *memWriter) Close() error {
	w.closed = true
	return nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Count = 8
	cfg.Workers = 2
	cfg.Scenario.Distribution = map[string]int{"simple": 1}
	return cfg
}

func TestPipelineRun(t *testing.T) {
	cfg := testConfig()
	out := &memWriter{}

	stats, err := New(cfg).Run(context.Background(), out)
	require.NoError(t, err)

	accepted := stats.Accepted.Load()
	assert.Equal(t, accepted, int64(len(out.problems)))
	assert.Equal(t, int64(cfg.Count), accepted+stats.Exhausted.Load())

	// Every candidate lands in exactly one outcome bucket.
	assert.Equal(t, stats.Candidates.Load(),
		accepted+stats.RejectedUnsolvable.Load()+stats.RejectedNotUnique.Load()+
			stats.Inconclusive.Load()+stats.Divergent.Load())

	for _, p := range out.problems {
		assert.True(t, p.Verification.Solvable, p.ID)
		assert.True(t, p.Verification.Unique, p.ID)
		assert.NotEmpty(t, p.Text)
		assert.NotEmpty(t, p.Question)
		require.NotNil(t, p.Scenario)
	}
}

func TestPipelineRunWithSolverCrossCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping solver cross-check in short mode")
	}
	cfg := testConfig()
	cfg.Count = 4
	cfg.Verification.SMT = true
	out := &memWriter{}

	stats, err := New(cfg).Run(context.Background(), out)
	require.NoError(t, err)
	assert.Zero(t, stats.Divergent.Load())

	for _, p := range out.problems {
		require.NotNil(t, p.SMT, p.ID)
		assert.True(t, p.SMT.Satisfiable(), p.ID)
		assert.True(t, p.SMT.Unique, p.ID)
	}
}

func TestPipelineProblemsReverify(t *testing.T) {
	cfg := testConfig()
	out := &memWriter{}

	_, err := New(cfg).Run(context.Background(), out)
	require.NoError(t, err)
	require.NotEmpty(t, out.problems)

	la := verify.New(verify.Config{})
	for _, p := range out.problems {
		sys, err := constraint.Build(p.Scenario, p.Mask)
		require.NoError(t, err, p.ID)
		res := la.Verify(sys)
		assert.True(t, res.Solvable, p.ID)
		assert.True(t, res.Unique, p.ID)
	}
}

func TestPipelineCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig()).Run(ctx, &memWriter{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriterRoundTripJSONL(t *testing.T) {
	cfg := testConfig()
	cfg.Count = 3
	mem := &memWriter{}
	_, err := New(cfg).Run(context.Background(), mem)
	require.NoError(t, err)
	require.NotEmpty(t, mem.problems)

	var buf bytes.Buffer
	w := NewJSONLWriter(&buf, nil)
	for _, p := range mem.problems {
		require.NoError(t, w.Write(p))
	}
	require.NoError(t, w.Close())

	got, err := ReadJSONL(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(mem.problems))
	for i, p := range got {
		assert.Equal(t, mem.problems[i].ID, p.ID)
		assert.Equal(t, mem.problems[i].Answer, p.Answer)
		assert.Equal(t, mem.problems[i].Text, p.Text)
	}
}
