package flock

import "math"

// The four steering rules. Each one is a pure read-pass function: given one
// agent it scans the whole population as it stood when the rule started and
// returns the pending heading for that agent (ok=false when no neighbor or
// edge qualified, in which case the heading is left alone by the commit).
//
// The angle blending deliberately comes in two flavours with asymmetric
// branch structure. Separation subtracts the scaled difference, the other
// rules add it. Unifying them into one formula changes observable
// behaviour the moment a sensitivity is nonzero.

// blendAway is the subtractive blend used by the separation rule.
func blendAway(heading, away, k float64) float64 {
	if math.Abs(away-heading) < math.Pi {
		return heading - (away-heading)*k
	}
	return heading - (heading-away)*k
}

// blendToward is the additive blend used by alignment, cohesion and
// boundary avoidance.
func blendToward(heading, target, k float64) float64 {
	if math.Abs(target-heading) < math.Pi {
		return heading + (target-heading)*k
	}
	return heading + (heading-target)*k
}

// separationUpdate steers away from any boid closer than
// separationDistance + agentSize. The turn sharpens with proximity:
// k = sensitivity / cbrt(distance). When several neighbors qualify, each
// one overwrites the pending heading, so the last neighbor in store order
// wins; there is no averaging across threats. Two boids on the exact same
// spot divide by cbrt(0) and push the heading to ±Inf, a known boundary
// condition that is left unguarded.
func (w *World) separationUpdate(a *Agent) (float64, bool) {
	var (
		h  float64
		ok bool
	)
	threshold := w.cfg.SeparationDistance + w.cfg.AgentSize
	for _, b := range w.agents {
		if a.ID == b.ID {
			continue
		}
		d := a.Pos.DistanceTo(b.Pos)
		if d >= threshold {
			continue
		}
		away := b.Pos.AngleTo(a.Pos) + math.Pi
		k := w.cfg.SeparationSensitivity / math.Cbrt(d)
		h = blendAway(a.Heading, away, k)
		ok = true
	}
	return h, ok
}

// alignmentUpdate turns toward the arithmetic mean heading of every boid
// within alignmentDistance (distance check offset by agentSize).
func (w *World) alignmentUpdate(a *Agent) (float64, bool) {
	var sum float64
	count := 0
	for _, b := range w.agents {
		if a.ID == b.ID {
			continue
		}
		if a.Pos.DistanceTo(b.Pos)-w.cfg.AgentSize < w.cfg.AlignmentDistance {
			sum += b.Heading
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	target := sum / float64(count)
	return blendToward(a.Heading, target, w.cfg.AlignmentSensitivity), true
}

// cohesionUpdate turns toward the centroid of every boid within
// cohesionDistance (same agentSize offset as alignment).
func (w *World) cohesionUpdate(a *Agent) (float64, bool) {
	var sumX, sumY float64
	count := 0
	for _, b := range w.agents {
		if a.ID == b.ID {
			continue
		}
		if a.Pos.DistanceTo(b.Pos)-w.cfg.AgentSize < w.cfg.CohesionDistance {
			sumX += b.Pos.X
			sumY += b.Pos.Y
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	n := float64(count)
	target := math.Atan2(sumY/n-a.Pos.Y, sumX/n-a.Pos.X)
	return blendToward(a.Heading, target, w.cfg.CohesionSensitivity), true
}

// boundsUpdate steers away from the world edges using the separation
// distance and sensitivity. Edges are checked bottom, top, left, in that
// order, with the same overwrite semantics as separationUpdate: a later
// edge replaces the pending heading of an earlier one. The right edge is
// never checked, so a boid can leave the world unobstructed on that side.
func (w *World) boundsUpdate(a *Agent) (float64, bool) {
	var (
		h  float64
		ok bool
	)
	halfW := w.cfg.WorldWidth / 2
	halfH := w.cfg.WorldHeight / 2

	if d := a.Pos.Y + halfH; d < w.cfg.SeparationDistance {
		h = blendToward(a.Heading, math.Pi/2, w.cfg.SeparationSensitivity/math.Cbrt(d))
		ok = true
	}
	if d := halfH - a.Pos.Y; d < w.cfg.SeparationDistance {
		h = blendToward(a.Heading, 3*math.Pi/2, w.cfg.SeparationSensitivity/math.Cbrt(d))
		ok = true
	}
	if d := a.Pos.X + halfW; d < w.cfg.SeparationDistance {
		h = blendToward(a.Heading, 0, w.cfg.SeparationSensitivity/math.Cbrt(d))
		ok = true
	}
	return h, ok
}
