package flock

import (
	"github.com/lao-tseu-is-alive/go-flocking-boids/pkg/geometry"
)

// Agent is a single boid.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds using only local rules.
// https://en.wikipedia.org/wiki/Boids
//
// Heading is the real steering state: every rule rewrites it, and velocity
// is rederived from it each tick. Heading is never normalized, so after
// enough turns it can drift well outside [0, 2π); the trig functions do
// not care.
type Agent struct {
	ID      int
	Pos     geometry.Vector2D
	Vel     geometry.Vector2D
	Heading float64
}

// AgentState is the read-only view of an agent handed out to renderers.
// It is a value copy: mutating it cannot reach back into the world.
type AgentState struct {
	ID      int
	Pos     geometry.Vector2D
	Heading float64
}
