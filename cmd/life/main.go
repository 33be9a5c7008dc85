package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flocking-boids/pkg/life"
)

const (
	gridW       = 240
	gridH       = 135
	cellSize    = 4
	seedDensity = 0.25
	stepEvery   = 4 // frames between generations
)

type Game struct {
	grid       *life.Grid
	rng        *rand.Rand
	frame      int
	generation int
}

func (g *Game) Update() error {
	// R reseeds the board.
	if ebiten.IsKeyPressed(ebiten.KeyR) {
		g.grid.Randomize(g.rng, seedDensity)
		g.generation = 0
	}

	g.frame++
	if g.frame%stepEvery == 0 {
		g.grid.Step()
		g.generation++
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 15, G: 15, B: 20, A: 255})

	for y := 0; y < gridH; y++ {
		for x := 0; x < gridW; x++ {
			if g.grid.Alive(x, y) {
				vector.FillRect(screen,
					float32(x*cellSize), float32(y*cellSize),
					cellSize-1, cellSize-1,
					color.RGBA{R: 80, G: 220, B: 120, A: 255}, false)
			}
		}
	}

	msg := fmt.Sprintf("gen: %d  pop: %d  (R to reseed)", g.generation, g.grid.Population())
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}

func (g *Game) Layout(w, h int) (int, int) {
	return gridW * cellSize, gridH * cellSize
}

func main() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	grid := life.NewGrid(gridW, gridH)
	grid.Randomize(rng, seedDensity)

	ebiten.SetWindowSize(gridW*cellSize, gridH*cellSize)
	ebiten.SetWindowTitle("Life")
	if err := ebiten.RunGame(&Game{grid: grid, rng: rng}); err != nil {
		log.Fatal(err)
	}
}
