package scenario

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/wordprob/wordprob/logger"
)

// Generator produces scenarios from a Config with a deterministic seed.
// A Generator is not safe for concurrent use; give each worker its own.
type Generator struct {
	cfg     Config
	rng     *rand.Rand
	graphs  *graphBuilder
	catalog []string
	nextID  int
}

// NewGenerator returns a Generator drawing from cfg, deterministic under seed.
func NewGenerator(cfg Config, seed int64) (*Generator, error) {
	if len(cfg.Templates) == 0 {
		return nil, fmt.Errorf("scenario: config has no difficulty templates")
	}
	if len(cfg.GraphTypes) == 0 {
		return nil, fmt.Errorf("scenario: config has no graph types")
	}
	rng := rand.New(rand.NewSource(seed))
	g := &Generator{
		cfg:    cfg,
		rng:    rng,
		graphs: &graphBuilder{types: cfg.GraphTypes, cap: cfg.MaxTransfersCap, rng: rng},
		nextID: 1,
	}
	g.catalog = g.buildCatalog()
	if len(g.catalog) == 0 {
		return nil, fmt.Errorf("scenario: object catalog is empty")
	}
	return g, nil
}

// Generate produces count scenarios following the difficulty distribution.
func (g *Generator) Generate(count int) ([]*Scenario, error) {
	log := logger.Logger()
	difficulties := g.difficultySequence(count)
	out := make([]*Scenario, 0, count)
	for _, d := range difficulties {
		sc, err := g.generateOne(d)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	log.Debug().Int("count", len(out)).Msg("generated scenarios")
	return out, nil
}

// GenerateOne produces a single scenario of the given difficulty.
func (g *Generator) GenerateOne(difficulty string) (*Scenario, error) {
	return g.generateOne(difficulty)
}

func (g *Generator) generateOne(difficulty string) (*Scenario, error) {
	tpl, ok := g.cfg.Templates[difficulty]
	if !ok {
		return nil, fmt.Errorf("scenario: unknown difficulty %q", difficulty)
	}

	nbAgents := g.intn(tpl.Agents)
	nbObjects := g.intn(tpl.Objects)
	targetTransfers := g.intn(tpl.Transfers)

	names := g.sampleAgents(nbAgents)
	objects := g.sampleObjects(nbObjects)
	inventories := g.initialInventories(names, objects, difficulty, tpl)

	edges, graphType := g.graphs.build(len(names), targetTransfers)
	transfers := g.generateTransfers(edges, names, objects, inventories, targetTransfers, tpl.MaxQuantity)
	agents := finalizeAgents(names, objects, inventories, transfers)

	metrics := computeMetrics(len(names), edges)
	sc := &Scenario{
		ID:         g.nextID,
		Difficulty: difficulty,
		Agents:     agents,
		Objects:    objects,
		Transfers:  transfers,
		GraphType:  graphType,
		Metrics:    metrics,
		Complexity: g.complexityScore(len(names), len(objects), len(transfers), metrics),
	}
	g.nextID++

	if err := sc.CheckConservation(); err != nil {
		// Indicates a bug in this generator, not bad input.
		return nil, fmt.Errorf("scenario %d fails conservation: %w", sc.ID, err)
	}
	return sc, nil
}

func (g *Generator) intn(bounds [2]int) int {
	lo, hi := bounds[0], bounds[1]
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) difficultySequence(count int) []string {
	var pool []string
	for _, level := range sortedLevels(g.cfg.Distribution) {
		for i := 0; i < g.cfg.Distribution[level]; i++ {
			pool = append(pool, level)
		}
	}
	if len(pool) == 0 {
		pool = []string{"simple"}
	}
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for len(pool) < count {
		pool = append(pool, pool...)
	}
	return pool[:count]
}

func sortedLevels(distribution map[string]int) []string {
	levels := make([]string, 0, len(distribution))
	for l := range distribution {
		levels = append(levels, l)
	}
	sort.Strings(levels)
	return levels
}

func (g *Generator) buildCatalog() []string {
	var catalog []string
	for _, category := range g.cfg.Categories {
		catalog = append(catalog, objectCatalog[category]...)
	}
	catalog = append(catalog, g.cfg.CustomObjects...)
	if len(catalog) == 0 {
		for _, category := range Categories() {
			catalog = append(catalog, objectCatalog[category]...)
		}
		sort.Strings(catalog)
	}
	return catalog
}

func (g *Generator) sampleAgents(count int) []string {
	if count <= len(agentPool) {
		return sampleStrings(g.rng, agentPool, count)
	}
	names := append([]string(nil), agentPool...)
	for i := 1; len(names) < count; i++ {
		names = append(names, fmt.Sprintf("Agent%d", i))
	}
	g.rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	return names[:count]
}

func (g *Generator) sampleObjects(count int) []string {
	if g.cfg.CategoryPreference != "" {
		if preferred := objectCatalog[g.cfg.CategoryPreference]; len(preferred) > 0 {
			pool := append(append([]string(nil), preferred...), g.cfg.CustomObjects...)
			return g.drawFromPool(pool, count)
		}
	}
	return g.drawFromPool(g.catalog, count)
}

func (g *Generator) drawFromPool(pool []string, count int) []string {
	if count <= len(pool) {
		return sampleStrings(g.rng, pool, count)
	}
	choices := make([]string, 0, count)
	seen := make(map[string]bool)
	for _, o := range pool {
		choices = append(choices, o)
		seen[o] = true
	}
	for i := 1; len(choices) < count; i++ {
		o := fmt.Sprintf("%s%d", pool[0], i)
		if !seen[o] {
			choices = append(choices, o)
		}
	}
	return choices[:count]
}

func sampleStrings(rng *rand.Rand, pool []string, count int) []string {
	idx := rng.Perm(len(pool))[:count]
	out := make([]string, count)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

func (g *Generator) initialInventories(agents, objects []string, difficulty string, tpl Template) map[string]map[string]int64 {
	multiplier := g.cfg.DifficultyMultipliers[difficulty]
	if multiplier == 0 {
		multiplier = 1.0
	}
	maxBase := int64(float64(g.cfg.MaxInitialBase) * multiplier)
	if maxBase < 2 {
		maxBase = 2
	}

	inventories := make(map[string]map[string]int64, len(agents))
	for _, agent := range agents {
		holdings := make(map[string]int64, len(objects))
		buffer := g.int64n(g.cfg.BufferRange)
		for _, obj := range objects {
			if g.rng.Float64() > g.cfg.ObjectPresence {
				holdings[obj] = 0
				continue
			}
			upper := maxBase
			if g.rng.Float64() < g.cfg.SmallQuantity {
				upper = maxBase / 2
			}
			if upper < 2 {
				upper = 2
			}
			quantity := buffer + 1 + g.rng.Int63n(upper)
			if quantity > tpl.MaxQuantity {
				quantity = tpl.MaxQuantity
			}
			holdings[obj] = quantity
		}
		inventories[agent] = holdings
	}
	return inventories
}

func (g *Generator) int64n(bounds [2]int64) int64 {
	lo, hi := bounds[0], bounds[1]
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Int63n(hi-lo+1)
}

// generateTransfers walks the topology edges round-robin, moving random
// quantities while keeping every running inventory non-negative.
func (g *Generator) generateTransfers(edges []edge, agents, objects []string, inventories map[string]map[string]int64, target int, maxQuantity int64) []Transfer {
	if len(edges) == 0 {
		for u := range agents {
			for v := range agents {
				if u != v {
					edges = append(edges, edge{u, v})
				}
			}
		}
	}
	if len(edges) == 0 {
		return nil
	}

	running := make(map[string]map[string]int64, len(inventories))
	for name, holdings := range inventories {
		cp := make(map[string]int64, len(holdings))
		for obj, n := range holdings {
			cp[obj] = n
		}
		running[name] = cp
	}

	attemptBudget := g.cfg.MaxTransferAttempts * max(1, target)
	var transfers []Transfer
	attempts, step := 0, 0
	for len(transfers) < target && attempts < attemptBudget {
		e := edges[step%len(edges)]
		sender, receiver := agents[e.from], agents[e.to]
		obj := objects[g.rng.Intn(len(objects))]
		available := running[sender][obj]
		if available <= 0 || sender == receiver {
			attempts++
			step++
			continue
		}
		quantity := 1 + g.rng.Int63n(min(available, maxQuantity))
		running[sender][obj] -= quantity
		running[receiver][obj] += quantity
		transfers = append(transfers, Transfer{
			From:     sender,
			To:       receiver,
			Object:   obj,
			Quantity: quantity,
			Seq:      step,
		})
		step++
	}
	return transfers
}

func finalizeAgents(names, objects []string, inventories map[string]map[string]int64, transfers []Transfer) []Agent {
	final := make(map[string]map[string]int64, len(names))
	for _, name := range names {
		cp := make(map[string]int64, len(objects))
		for _, obj := range objects {
			cp[obj] = inventories[name][obj]
		}
		final[name] = cp
	}
	for _, t := range transfers {
		final[t.From][t.Object] -= t.Quantity
		final[t.To][t.Object] += t.Quantity
	}

	agents := make([]Agent, len(names))
	for i, name := range names {
		initial := make(map[string]int64, len(objects))
		for _, obj := range objects {
			initial[obj] = inventories[name][obj]
		}
		agents[i] = Agent{Name: name, Initial: initial, Final: final[name]}
	}
	return agents
}

func (g *Generator) complexityScore(nbAgents, nbObjects, nbTransfers int, m Metrics) float64 {
	w := g.cfg.Complexity
	score := w.Diameter*m.Diameter +
		w.Density*m.Density +
		w.Branching*m.AvgBranching +
		w.Cycles*m.CycleCount +
		w.Transfers*float64(nbTransfers) +
		w.Agents*float64(nbAgents) +
		w.Objects*float64(nbObjects)
	return float64(int(score*100+0.5)) / 100
}
