package gauge

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/chewxy/math32"
)

const (
	tickCount  = 12
	tickLength = 0.1 // fraction of the radius
	hubRadius  = 6
)

type gaugeRenderer struct {
	gauge *Gauge

	dial   *canvas.Circle
	ticks  []*canvas.Line
	needle *canvas.Line
	hub    *canvas.Circle
}

func (r *gaugeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *gaugeRenderer) Layout(size fyne.Size) {
	center, radius := geometry(size)

	r.dial.Move(fyne.NewPos(center.X-radius, center.Y-radius))
	r.dial.Resize(fyne.NewSize(2*radius, 2*radius))

	for i, tick := range r.ticks {
		deg := float32(i) * 360 / tickCount
		tick.Position1 = needleTip(center, radius*(1-tickLength), deg)
		tick.Position2 = needleTip(center, radius, deg)
	}

	r.hub.Move(fyne.NewPos(center.X-hubRadius, center.Y-hubRadius))
	r.hub.Resize(fyne.NewSize(2*hubRadius, 2*hubRadius))

	r.layoutNeedle(center, radius)
}

func (r *gaugeRenderer) layoutNeedle(center fyne.Position, radius float32) {
	r.gauge.mu.RLock()
	angle := r.gauge.angle
	r.gauge.mu.RUnlock()

	if math32.IsNaN(angle) {
		r.needle.Hide()
		return
	}
	r.needle.Show()
	r.needle.Position1 = center
	r.needle.Position2 = needleTip(center, radius*0.85, angle)
}

func (r *gaugeRenderer) Refresh() {
	center, radius := geometry(r.gauge.Size())
	r.layoutNeedle(center, radius)
	canvas.Refresh(r.needle)
}

func (r *gaugeRenderer) Objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(r.ticks)+3)
	objects = append(objects, r.dial)
	for _, tick := range r.ticks {
		objects = append(objects, tick)
	}
	return append(objects, r.needle, r.hub)
}

func (r *gaugeRenderer) Destroy() {}

// geometry returns the dial center and radius for a widget of the given size.
func geometry(size fyne.Size) (fyne.Position, float32) {
	radius := math32.Min(size.Width, size.Height)/2 - 4
	if radius < 0 {
		radius = 0
	}
	return fyne.NewPos(size.Width/2, size.Height/2), radius
}
