package flock

import (
	"math"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/lao-tseu-is-alive/go-flocking-boids/pkg/geometry"
	"go.uber.org/zap"
)

// testWorld builds a World around a hand-placed population, bypassing the
// random setup so tests control geometry exactly.
func testWorld(cfg *Config, agents ...*Agent) *World {
	return &World{
		cfg:         cfg,
		agents:      agents,
		pending:     make(map[int]float64, len(agents)),
		results:     make([]ruleResult, len(agents)),
		log:         zap.NewNop().Sugar(),
		lastLogTime: time.Now(),
	}
}

func at(id int, x, y, heading float64) *Agent {
	return &Agent{ID: id, Pos: geometry.Vector2D{X: x, Y: y}, Heading: heading}
}

func TestSeparationRepulsion(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()

	// Two boids approaching head-on, 30 apart with a slight vertical
	// offset, well inside the threshold of 50+15.
	a := at(0, 0, 0, 0)
	b := at(1, 30, 1, math.Pi)
	w := testWorld(cfg, a, b)

	w.runRule(w.separationUpdate)

	c.Assert(a.Heading, qt.Not(qt.Equals), 0.0)
	c.Assert(b.Heading, qt.Not(qt.Equals), math.Pi)

	// The committed heading is exactly the subtractive blend against the
	// bearing away from the neighbor, sharpened by 1/cbrt(distance).
	d := geometry.Vector2D{X: 30, Y: 1}.DistanceTo(geometry.Vector2D{})
	away := geometry.Vector2D{X: 30, Y: 1}.AngleTo(geometry.Vector2D{}) + math.Pi
	want := blendAway(0, away, cfg.SeparationSensitivity/math.Cbrt(d))
	c.Assert(a.Heading, qt.Equals, want)
}

func TestSeparationOutsideThresholdIsNoop(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()

	// 70 apart: beyond separationDistance+agentSize = 65.
	a := at(0, 0, 0, 0.25)
	b := at(1, 70, 0, 1.5)
	w := testWorld(cfg, a, b)

	w.runRule(w.separationUpdate)

	c.Assert(a.Heading, qt.Equals, 0.25)
	c.Assert(b.Heading, qt.Equals, 1.5)
}

func TestSeparationLastWriteWins(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()

	// One boid threatened by two neighbors at once. The pending heading is
	// overwritten per neighbor in store order, so the result must equal a
	// run against the last neighbor alone — not an average of the two.
	run := func(neighbors ...*Agent) float64 {
		me := at(0, 0, 0, 0.3)
		w := testWorld(cfg, append([]*Agent{me}, neighbors...)...)
		w.runRule(w.separationUpdate)
		return me.Heading
	}

	both := run(at(1, 20, 10, 0), at(2, 20, -10, 0))
	lastOnly := run(at(2, 20, -10, 0))
	firstOnly := run(at(1, 20, 10, 0))

	c.Assert(both, qt.Equals, lastOnly)
	c.Assert(both, qt.Not(qt.Equals), firstOnly)
}

func TestAlignmentTurnsTowardMeanHeading(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	cfg.AlignmentSensitivity = 0.5

	a := at(0, 0, 0, 0.5)
	b := at(1, 10, 0, 1.0)
	w := testWorld(cfg, a, b)

	w.runRule(w.alignmentUpdate)

	// Mean neighbor heading is 1.0; additive blend at 0.5 lands halfway.
	c.Assert(a.Heading, qt.Equals, 0.5+(1.0-0.5)*0.5)
}

func TestAlignmentZeroSensitivityStillCommitsUnchanged(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig() // alignmentSensitivity is 0 by default

	a := at(0, 0, 0, 0.5)
	b := at(1, 10, 0, 1.0)
	w := testWorld(cfg, a, b)

	w.runRule(w.alignmentUpdate)

	c.Assert(a.Heading, qt.Equals, 0.5)
	c.Assert(b.Heading, qt.Equals, 1.0)
}

func TestCohesionTurnsTowardCentroid(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	cfg.CohesionSensitivity = 0.5

	a := at(0, 0, 0, 1.0)
	b := at(1, 40, 0, 0)
	d := at(2, 40, 20, 0)
	w := testWorld(cfg, a, b, d)

	w.runRule(w.cohesionUpdate)

	// Centroid of the neighbors is (40, 10); bearing from the origin.
	target := math.Atan2(10, 40)
	c.Assert(a.Heading, qt.Equals, blendToward(1.0, target, 0.5))
}

func TestFlockingRulesIgnoreFarAgent(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	cfg.AlignmentSensitivity = 0.5
	cfg.CohesionSensitivity = 0.5

	// Two boids inside each other's alignment and cohesion ranges, one far
	// outside every threshold. The far boid must come out untouched even
	// though the rules run for it.
	near1 := at(0, 0, 0, 0.5)
	near2 := at(1, 10, 0, 1.0)
	far := at(2, 400, 0, 2.0)
	w := testWorld(cfg, near1, near2, far)

	w.runRule(w.alignmentUpdate)
	w.runRule(w.cohesionUpdate)

	c.Assert(far.Heading, qt.Equals, 2.0)
	c.Assert(near1.Heading, qt.Not(qt.Equals), 0.5)
	c.Assert(near2.Heading, qt.Not(qt.Equals), 1.0)
}

func TestBoundsLeftEdgeNudge(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()

	// One unit from the left edge: heading is pulled toward bearing 0.
	a := at(0, -cfg.WorldWidth/2+1, 0, 1.0)
	w := testWorld(cfg, a)

	w.runRule(w.boundsUpdate)

	want := blendToward(1.0, 0, cfg.SeparationSensitivity/math.Cbrt(1))
	c.Assert(a.Heading, qt.Equals, want)
	c.Assert(a.Heading < 1.0, qt.IsTrue)
}

func TestBoundsRightEdgeUnchecked(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()

	// The mirror position near the right edge gets no nudge at all: the
	// right edge is not part of the rule.
	a := at(0, cfg.WorldWidth/2-1, 0, 1.0)
	w := testWorld(cfg, a)

	w.runRule(w.boundsUpdate)

	c.Assert(a.Heading, qt.Equals, 1.0)
}

func TestBoundsCornerLastEdgeWins(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()

	// Bottom-left corner: both the bottom and the left edge qualify, and
	// the left edge is checked last, so its blend is the one committed.
	a := at(0, -cfg.WorldWidth/2+2, -cfg.WorldHeight/2+3, 1.0)
	w := testWorld(cfg, a)

	w.runRule(w.boundsUpdate)

	want := blendToward(1.0, 0, cfg.SeparationSensitivity/math.Cbrt(2))
	c.Assert(a.Heading, qt.Equals, want)
}

func TestCoincidentPositionsSingularity(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()

	// Two boids on the exact same spot. atan2(0,0) is 0, so the bearing
	// away is π, and the turn magnitude divides by cbrt(0): the heading
	// blows up to +Inf. The test documents the blow-up rather than
	// guarding against it.
	a := at(0, 0, 0, 0)
	b := at(1, 0, 0, 0)
	w := testWorld(cfg, a, b)

	w.runRule(w.separationUpdate)

	c.Assert(math.IsInf(a.Heading, 1), qt.IsTrue)
}
