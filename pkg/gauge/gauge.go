package gauge

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/chewxy/math32"
)

// DefaultDuration is the needle transition used by the application.
const DefaultDuration = 500 * time.Millisecond

// Gauge is a round dial with a needle. The needle angle is in degrees, clockwise
// from the 12 o'clock position, and is not clamped.
type Gauge struct {
	widget.BaseWidget

	mu     sync.RWMutex
	angle  float32 // currently drawn
	target float32
	anim   *fyne.Animation
}

// New creates a gauge with the needle at 12 o'clock.
func New() *Gauge {
	g := &Gauge{}
	g.ExtendBaseWidget(g)
	return g
}

// SetAngle moves the needle to deg over d. A non-positive d jumps immediately.
// A new call interrupts a running transition and starts from the angle currently drawn.
// NaN hides the needle.
func (g *Gauge) SetAngle(deg float32, d time.Duration) {
	g.mu.Lock()
	if g.anim != nil {
		g.anim.Stop()
		g.anim = nil
	}
	from := g.angle
	g.target = deg

	if d <= 0 || math32.IsNaN(deg) || math32.IsNaN(from) {
		g.angle = deg
		g.mu.Unlock()
		g.Refresh()
		return
	}

	anim := fyne.NewAnimation(d, func(p float32) {
		g.mu.Lock()
		g.angle = tween(from, deg, p)
		g.mu.Unlock()
		g.Refresh()
	})
	anim.Curve = fyne.AnimationEaseInOut
	g.anim = anim
	g.mu.Unlock()

	anim.Start()
}

// Angle returns the angle the needle is heading to.
func (g *Gauge) Angle() float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.target
}

// CreateRenderer creates the widget renderer.
func (g *Gauge) CreateRenderer() fyne.WidgetRenderer {
	dial := canvas.NewCircle(color.RGBA{R: 20, G: 20, B: 20, A: 255})
	dial.StrokeColor = color.RGBA{R: 0xBD, G: 0xBD, B: 0xBD, A: 255}
	dial.StrokeWidth = 2

	needle := canvas.NewLine(color.RGBA{R: 0xF4, G: 0x43, B: 0x36, A: 255})
	needle.StrokeWidth = 3

	hub := canvas.NewCircle(color.RGBA{R: 0xBD, G: 0xBD, B: 0xBD, A: 255})

	r := &gaugeRenderer{
		gauge:  g,
		dial:   dial,
		needle: needle,
		hub:    hub,
	}
	for i := 0; i < tickCount; i++ {
		tick := canvas.NewLine(dial.StrokeColor)
		tick.StrokeWidth = 1
		r.ticks = append(r.ticks, tick)
	}
	return r
}

// tween interpolates between two angles; p runs from 0 to 1.
func tween(from, to, p float32) float32 {
	return from + (to-from)*p
}

// needleTip returns the point at radius from center in direction deg,
// clockwise from 12 o'clock. Screen Y grows downwards.
func needleTip(center fyne.Position, radius, deg float32) fyne.Position {
	rad := deg * math32.Pi / 180
	return fyne.NewPos(
		center.X+radius*math32.Sin(rad),
		center.Y-radius*math32.Cos(rad),
	)
}
