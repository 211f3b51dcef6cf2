package dataset

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wordprob/wordprob/constraint"
	"github.com/wordprob/wordprob/logger"
	"github.com/wordprob/wordprob/masking"
	"github.com/wordprob/wordprob/question"
	"github.com/wordprob/wordprob/scenario"
	"github.com/wordprob/wordprob/smt"
	"github.com/wordprob/wordprob/verify"
)

// Stats counts pipeline outcomes. Rejections are expected: the acceptance
// policy regenerates until a candidate's hidden quantities are provably
// unique.
type Stats struct {
	Candidates         atomic.Int64
	Accepted           atomic.Int64
	RejectedUnsolvable atomic.Int64
	RejectedNotUnique  atomic.Int64
	Inconclusive       atomic.Int64
	Divergent          atomic.Int64
	Exhausted          atomic.Int64
}

// Pipeline fans scenario generation, verification and rendering out over
// workers and funnels accepted problems into a single writer.
type Pipeline struct {
	cfg Config
	la  *verify.Verifier
}

// New returns a Pipeline for cfg.
func New(cfg Config) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		la:  verify.New(verify.Config{Tolerance: cfg.Verification.Tolerance}),
	}
}

// Run generates cfg.Count problems into out. Each worker owns its
// generator, renderer and solver instance; only the verified results are
// funneled to the writer goroutine.
func (p *Pipeline) Run(ctx context.Context, out Writer) (*Stats, error) {
	stats := &Stats{}
	workers := p.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	results := make(chan *question.Problem)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < p.cfg.Count; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var running sync.WaitGroup
	running.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			defer running.Done()
			return p.worker(ctx, int64(w), jobs, results, stats)
		})
	}
	go func() {
		running.Wait()
		close(results)
	}()

	g.Go(func() error {
		for problem := range results {
			if err := out.Write(problem); err != nil {
				return fmt.Errorf("dataset: write problem: %w", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}

	log := logger.Logger()
	log.Info().
		Int64("accepted", stats.Accepted.Load()).
		Int64("candidates", stats.Candidates.Load()).
		Int64("rejectedNotUnique", stats.RejectedNotUnique.Load()).
		Int64("rejectedUnsolvable", stats.RejectedUnsolvable.Load()).
		Int64("divergent", stats.Divergent.Load()).
		Msg("dataset generation finished")
	return stats, nil
}

func (p *Pipeline) worker(ctx context.Context, id int64, jobs <-chan int, results chan<- *question.Problem, stats *Stats) error {
	seed := p.cfg.Seed + id*7919
	gen, err := scenario.NewGenerator(p.cfg.Scenario, seed)
	if err != nil {
		return err
	}
	renderer := question.NewRenderer(seed + 1)
	rng := rand.New(rand.NewSource(seed + 2))

	var smtVerifier smt.Verifier
	if p.cfg.Verification.SMT {
		smtVerifier = smt.New(smt.Config{
			Bound:   p.cfg.Verification.Bound,
			Timeout: p.cfg.Verification.SMTTimeout,
		})
	}

	for range jobs {
		problem, err := p.produce(gen, renderer, rng, smtVerifier, stats)
		if err != nil {
			return err
		}
		if problem == nil {
			stats.Exhausted.Add(1)
			continue
		}
		select {
		case results <- problem:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// produce regenerates candidates until one passes verification or the
// attempt budget runs out.
func (p *Pipeline) produce(gen *scenario.Generator, renderer *question.Renderer, rng *rand.Rand, smtVerifier smt.Verifier, stats *Stats) (*question.Problem, error) {
	for attempt := 0; attempt < p.cfg.MaxAttempts; attempt++ {
		scs, err := gen.Generate(1)
		if err != nil {
			return nil, err
		}
		sc := scs[0]
		stats.Candidates.Add(1)

		spec := p.pickMask(sc, rng)
		sys, err := constraint.Build(sc, spec)
		if err != nil {
			return nil, err
		}

		res := p.la.Verify(sys)
		if !res.Solvable {
			stats.RejectedUnsolvable.Add(1)
			continue
		}
		if !res.Unique {
			stats.RejectedNotUnique.Add(1)
			continue
		}

		var smtRes *smt.Result
		if smtVerifier != nil {
			r := smtVerifier.Verify(sys)
			smtRes = &r
			if r.Available && r.Status == smt.StatusUnknown {
				stats.Inconclusive.Add(1)
				continue
			}
			if r.Available && (!r.Satisfiable() || !r.Unique) {
				// The cheap analysis accepted what the formal check
				// refuses; surface it and drop the candidate.
				stats.Divergent.Add(1)
				continue
			}
		}

		text, q, answer, kind, err := renderer.Render(sc, spec)
		if err != nil {
			return nil, err
		}
		stats.Accepted.Add(1)
		return &question.Problem{
			ID:           uuid.New(),
			ScenarioID:   sc.ID,
			Difficulty:   sc.Difficulty,
			Kind:         kind,
			Text:         text,
			Question:     q,
			Answer:       answer,
			Masked:       sys.Masked,
			Complexity:   sc.Complexity,
			Verification: res,
			SMT:          smtRes,
			Scenario:     sc,
			Mask:         spec,
		}, nil
	}
	return nil, nil
}

// pickMask draws a mask kind from the configured mix and a concrete target
// from the scenario.
func (p *Pipeline) pickMask(sc *scenario.Scenario, rng *rand.Rand) *masking.Spec {
	mix := p.cfg.Masking
	total := mix.Initial + mix.Transfer + mix.None
	if total <= 0 {
		return nil
	}
	draw := rng.Float64() * total
	switch {
	case draw < mix.Initial:
		agent := sc.Agents[rng.Intn(len(sc.Agents))]
		obj := sc.Objects[rng.Intn(len(sc.Objects))]
		return masking.Initial(agent.Name, obj)
	case draw < mix.Initial+mix.Transfer && len(sc.Transfers) > 0:
		t := sc.Transfers[rng.Intn(len(sc.Transfers))]
		return masking.Transfers(t.Seq)
	default:
		return nil
	}
}
