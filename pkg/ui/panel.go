package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is anything the panel can lay out vertically.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
}

// Panel stacks labelled widgets in a fixed column. It is deliberately
// dumb: no scrolling, no sections — the handful of simulation knobs fits
// on screen.
type Panel struct {
	X, Y        float64
	Width       float64
	Title       string
	widgets     []Widget
	labels      []string
	nextY       float64
	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewPanel creates an empty panel at the given position.
func NewPanel(x, y, width float64, title string) *Panel {
	return &Panel{
		X:           x,
		Y:           y,
		Width:       width,
		Title:       title,
		nextY:       y + 25,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSlider appends a labelled slider and returns it so the caller can
// read Value every frame.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+10, p.nextY+16, p.Width-20, label, min, max, value)
	p.widgets = append(p.widgets, s)
	p.labels = append(p.labels, label)
	p.nextY += 34
	return s
}

// AddCheckbox appends a labelled checkbox and returns it.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, p.nextY+14, label, value)
	p.widgets = append(p.widgets, c)
	p.labels = append(p.labels, label)
	p.nextY += 34
	return c
}

// Update forwards input handling to every widget.
func (p *Panel) Update() {
	for _, w := range p.widgets {
		w.Update()
	}
}

// Draw renders the background, the title and each labelled widget.
func (p *Panel) Draw(screen *ebiten.Image) {
	height := p.nextY - p.Y + 10
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(height),
		p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	y := p.Y + 25
	for i, w := range p.widgets {
		label := p.labels[i]
		if s, ok := w.(*Slider); ok {
			label = fmt.Sprintf("%s: %.3f", label, s.Value)
		}
		ebitenutil.DebugPrintAt(screen, label, int(p.X+10), int(y))
		w.Draw(screen)
		y += 34
	}
}
