package flock

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/lao-tseu-is-alive/go-flocking-boids/pkg/geometry"
	"go.uber.org/zap"
)

// World owns the whole population and runs the tick pipeline. It is the
// only writer of agent state; everything a caller gets back out is a copy.
// All methods must be called from a single goroutine — the pipeline itself
// may fan work out internally, but the World has no external locking.
type World struct {
	cfg    *Config
	agents []*Agent

	// pending maps agent id to the heading computed by the current rule's
	// read pass; the write pass drains it. Keeping it on the World reuses
	// the map capacity across rules and ticks.
	pending map[int]float64
	// results is the per-index scratch the read pass writes into before the
	// merge. Separate from pending so parallel workers never share a map.
	results []ruleResult

	log *zap.SugaredLogger

	ticks         uint64
	ticksSinceLog int
	lastLogTime   time.Time
}

type ruleResult struct {
	heading float64
	ok      bool
}

// NewWorld creates the population with randomized positions and headings.
// rng is the only randomness the simulation ever consumes; pass a seeded
// source for reproducible runs. logger may be nil.
func NewWorld(cfg *Config, rng *rand.Rand, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &World{
		cfg:         cfg,
		agents:      make([]*Agent, 0, cfg.NumBoids),
		pending:     make(map[int]float64, cfg.NumBoids),
		results:     make([]ruleResult, cfg.NumBoids),
		log:         logger.Sugar(),
		lastLogTime: time.Now(),
	}
	for i := 0; i < cfg.NumBoids; i++ {
		w.agents = append(w.agents, &Agent{
			// Ids are small, dense and sequential. They only need to be
			// unique keys for the pending map, and sequential ids make
			// store order and id order coincide.
			ID: i,
			Pos: geometry.Vector2D{
				X: rng.Float64()*cfg.WorldWidth - cfg.WorldWidth/2,
				Y: rng.Float64()*cfg.WorldHeight - cfg.WorldHeight/2,
			},
			Heading: rng.Float64() * 2 * math.Pi,
		})
	}
	w.log.Infof("world ready: %d boids in %gx%g", len(w.agents), cfg.WorldWidth, cfg.WorldHeight)
	return w
}

// Tick advances the simulation one step. The rules run in a fixed order
// and compose sequentially: each rule sees the headings committed by the
// one before it, never its own partial writes. Once started, a tick always
// runs to completion.
func (w *World) Tick() {
	w.runRule(w.separationUpdate)
	w.runRule(w.alignmentUpdate)
	w.runRule(w.cohesionUpdate)
	w.runRule(w.boundsUpdate)
	w.integrateVelocities()
	w.integratePositions()
	w.ticks++
	w.logTickRate()
}

// runRule executes one rule as an explicit read pass followed by a write
// pass. The read pass computes every agent's pending heading against the
// population as it stood at the start of the rule; the write pass applies
// them. The split is what makes the read pass safe to parallelize.
func (w *World) runRule(update func(*Agent) (float64, bool)) {
	if w.cfg.Workers > 1 {
		w.readParallel(update)
	} else {
		for i, a := range w.agents {
			w.results[i].heading, w.results[i].ok = update(a)
		}
	}

	// Merge in store order, then commit. Going through the id-keyed map is
	// not strictly needed with dense ids, but it keeps the write pass
	// independent of how the read pass was scheduled.
	for i, a := range w.agents {
		if w.results[i].ok {
			w.pending[a.ID] = w.results[i].heading
		}
	}
	for _, a := range w.agents {
		if h, ok := w.pending[a.ID]; ok {
			a.Heading = h
		}
	}
	clear(w.pending)
}

// readParallel fans the read pass out over cfg.Workers goroutines in
// contiguous index chunks. Every worker only reads agent state and only
// writes its own slice indices, so no synchronization beyond the final
// Wait is needed and the outcome is identical to the sequential pass.
func (w *World) readParallel(update func(*Agent) (float64, bool)) {
	workers := w.cfg.Workers
	n := len(w.agents)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				w.results[i].heading, w.results[i].ok = update(w.agents[i])
			}
		}(start, end)
	}
	wg.Wait()
}

// integrateVelocities derives velocity from heading at the fixed speed.
// Velocity carries no state of its own: it is overwritten every tick.
func (w *World) integrateVelocities() {
	for _, a := range w.agents {
		a.Vel = geometry.Polar(w.cfg.Speed, a.Heading)
	}
}

// integratePositions moves every agent by its velocity (explicit Euler
// step). Positions are not clamped: overshooting a boundary threshold in
// one step, or drifting out through the unchecked right edge, is accepted.
func (w *World) integratePositions() {
	for _, a := range w.agents {
		a.Pos = a.Pos.Add(a.Vel)
	}
}

// Snapshot returns value copies of every agent's renderable state. Call it
// between ticks only; the slice is freshly allocated and safe to keep.
func (w *World) Snapshot() []AgentState {
	out := make([]AgentState, 0, len(w.agents))
	for _, a := range w.agents {
		out = append(out, AgentState{ID: a.ID, Pos: a.Pos, Heading: a.Heading})
	}
	return out
}

// Count returns the population size, which is constant for the run.
func (w *World) Count() int {
	return len(w.agents)
}

// Ticks returns how many ticks have fully committed.
func (w *World) Ticks() uint64 {
	return w.ticks
}

func (w *World) logTickRate() {
	w.ticksSinceLog++
	if time.Since(w.lastLogTime) >= time.Second {
		w.log.Infof("📊 TICK RATE: %d/sec | boids: %d", w.ticksSinceLog, len(w.agents))
		w.ticksSinceLog = 0
		w.lastLogTime = time.Now()
	}
}
