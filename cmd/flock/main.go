package main

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/juju/gnuflag"
	"github.com/lao-tseu-is-alive/go-flocking-boids/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flocking-boids/pkg/ui"
	"go.uber.org/zap"
)

var (
	configFile = gnuflag.String("config", "", "JSON config file (validated against --schema)")
	schemaFile = gnuflag.String("schema", "config.schema.json", "JSON schema used to validate --config")
	ticks      = gnuflag.Int("ticks", 0, "run this many ticks headless and exit (0 = windowed)")
	seed       = gnuflag.Int64("seed", 0, "random seed for the initial placement (0 = time-based)")
)

func main() {
	gnuflag.Parse(true)

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg := flock.DefaultConfig()
	if *configFile != "" {
		cfg, err = flock.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			sugar.Fatalf("loading config: %v", err)
		}
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	sugar.Infof("seed: %d", s)

	world := flock.NewWorld(cfg, rand.New(rand.NewSource(s)), logger)

	if *ticks > 0 {
		runHeadless(world, cfg, *ticks, sugar)
		return
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Flocking Boids")
	if err := ebiten.RunGame(newGame(world, cfg)); err != nil {
		sugar.Fatal(err)
	}
}

// runHeadless advances the world without a window, sleeping the configured
// delay between ticks. The sleep does not subtract computation time, so a
// long run drifts behind wall-clock expectations.
func runHeadless(world *flock.World, cfg *flock.Config, n int, sugar *zap.SugaredLogger) {
	delay := time.Duration(cfg.TickDelayMs) * time.Millisecond
	start := time.Now()
	for i := 0; i < n; i++ {
		world.Tick()
		time.Sleep(delay)
	}
	sugar.Infof("ran %d ticks over %s (%d boids)", n, time.Since(start).Round(time.Millisecond), world.Count())
}

// Game renders the committed world state and forwards slider values into
// the live configuration between ticks.
type Game struct {
	world *flock.World
	cfg   *flock.Config
	panel *ui.Panel

	sepDist   *ui.Slider
	sepSens   *ui.Slider
	alignDist *ui.Slider
	alignSens *ui.Slider
	cohDist   *ui.Slider
	cohSens   *ui.Slider
	speed     *ui.Slider
	paused    *ui.Checkbox
}

func newGame(world *flock.World, cfg *flock.Config) *Game {
	panel := ui.NewPanel(10, 10, 220, "Flocking rules")
	g := &Game{
		world: world,
		cfg:   cfg,
		panel: panel,
	}
	g.sepDist = panel.AddSlider("Separation distance", 0, 200, cfg.SeparationDistance)
	g.sepSens = panel.AddSlider("Separation sensitivity", 0, 0.5, cfg.SeparationSensitivity)
	g.alignDist = panel.AddSlider("Alignment distance", 0, 200, cfg.AlignmentDistance)
	g.alignSens = panel.AddSlider("Alignment sensitivity", 0, 0.5, cfg.AlignmentSensitivity)
	g.cohDist = panel.AddSlider("Cohesion distance", 0, 200, cfg.CohesionDistance)
	g.cohSens = panel.AddSlider("Cohesion sensitivity", 0, 0.5, cfg.CohesionSensitivity)
	g.speed = panel.AddSlider("Speed", 0.5, 10, cfg.Speed)
	g.paused = panel.AddCheckbox("Pause", false)
	return g
}

func (g *Game) Update() error {
	g.panel.Update()

	// The world reads the config at the start of every tick, so slider
	// changes take effect on the very next tick.
	g.cfg.SeparationDistance = g.sepDist.Value
	g.cfg.SeparationSensitivity = g.sepSens.Value
	g.cfg.AlignmentDistance = g.alignDist.Value
	g.cfg.AlignmentSensitivity = g.alignSens.Value
	g.cfg.CohesionDistance = g.cohDist.Value
	g.cfg.CohesionSensitivity = g.cohSens.Value
	g.cfg.Speed = g.speed.Value

	if !g.paused.Value {
		g.world.Tick()
	}
	return nil
}

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.RGBA{R: 100, G: 200, B: 255, A: 255})
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	// The world rectangle, so escapes through the unchecked right edge
	// are visible for what they are.
	vector.StrokeRect(screen, 0, 0, float32(g.cfg.WorldWidth), float32(g.cfg.WorldHeight),
		1, color.RGBA{R: 120, G: 120, B: 120, A: 255}, true)

	for _, b := range g.world.Snapshot() {
		g.drawBoid(screen, b)
	}

	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTick: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.world.Ticks())
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-90, 10)
}

// drawBoid renders one boid as a small triangle pointing along its
// heading. World coordinates are centered on the origin with Y up; the
// screen has Y down, hence the flipped angle and translated origin.
func (g *Game) drawBoid(screen *ebiten.Image, b flock.AgentState) {
	sx := b.Pos.X + g.cfg.WorldWidth/2
	sy := g.cfg.WorldHeight/2 - b.Pos.Y
	angle := -b.Heading

	tipX := sx + math.Cos(angle)*8
	tipY := sy + math.Sin(angle)*8
	rightX := sx + math.Cos(angle+2.5)*6
	rightY := sy + math.Sin(angle+2.5)*6
	leftX := sx + math.Cos(angle-2.5)*6
	leftY := sy + math.Sin(angle-2.5)*6

	vertices := []ebiten.Vertex{
		{
			DstX: float32(tipX),
			DstY: float32(tipY),
			SrcX: 1, SrcY: 1,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		},
		{
			DstX: float32(rightX),
			DstY: float32(rightY),
			SrcX: 1, SrcY: 1,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		},
		{
			DstX: float32(leftX),
			DstY: float32(leftY),
			SrcX: 1, SrcY: 1,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		},
	}
	indices := []uint16{0, 1, 2}

	op := &ebiten.DrawTrianglesOptions{}
	screen.DrawTriangles(vertices, indices, whiteImage, op)
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight)
}
