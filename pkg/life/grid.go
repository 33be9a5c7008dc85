// Package life is a small Conway-style cellular automaton. It shares no
// code with the flocking simulation: cells update from a plain neighbor
// count, there is no steering or blending. It lives in this repository as
// a second, unrelated toy for the same renderer.
package life

import "math/rand"

// Grid is a toroidal grid of cells; true means alive.
type Grid struct {
	W, H  int
	cells []bool
	next  []bool // scratch for Step, reused across generations
}

// NewGrid creates an empty W x H grid.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		cells: make([]bool, w*h),
		next:  make([]bool, w*h),
	}
}

// Randomize seeds the grid, making each cell alive with the given density.
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for i := range g.cells {
		g.cells[i] = rng.Float64() < density
	}
}

// Alive reports whether the cell at (x, y) is alive. Coordinates wrap.
func (g *Grid) Alive(x, y int) bool {
	return g.cells[g.index(x, y)]
}

// Set makes the cell at (x, y) alive or dead. Coordinates wrap.
func (g *Grid) Set(x, y int, alive bool) {
	g.cells[g.index(x, y)] = alive
}

// Population counts the live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Step advances one generation with the classic B3/S23 rules: a dead cell
// with exactly three live neighbors is born, a live cell with two or
// three survives, everything else dies. The whole grid updates at once
// from the previous generation.
func (g *Grid) Step() {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			n := g.neighbors(x, y)
			alive := g.cells[y*g.W+x]
			g.next[y*g.W+x] = n == 3 || (alive && n == 2)
		}
	}
	g.cells, g.next = g.next, g.cells
}

func (g *Grid) neighbors(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.cells[g.index(x+dx, y+dy)] {
				n++
			}
		}
	}
	return n
}

func (g *Grid) index(x, y int) int {
	x = ((x % g.W) + g.W) % g.W
	y = ((y % g.H) + g.H) % g.H
	return y*g.W + x
}
