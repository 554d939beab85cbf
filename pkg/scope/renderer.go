package scope

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/itohio/barosense/pkg/graph"
)

var (
	dataColor = color.RGBA{R: 0x4C, G: 0xAF, B: 0x50, A: 255} // #4CAF50
	gridColor = color.RGBA{R: 0xBD, G: 0xBD, B: 0xBD, A: 255} // #BDBDBD
)

const (
	dataStrokeWidth = 4
	gridStrokeWidth = 1
	labelTextSize   = 10
)

var _ graph.Surface = (*scopeRenderer)(nil)

// scopeRenderer renders the scope widget. It is the graph.Surface the frame is drawn on.
type scopeRenderer struct {
	scope *ScopeWidget

	background *canvas.Rectangle

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *scopeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 200)
}

// Layout arranges the widget components.
func (r *scopeRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	if r.lastSize != size {
		r.lastSize = size
		// Size changed, the graph geometry depends on it
		r.scope.BaseWidget.Refresh()
	}
}

// Refresh redraws the graph from the current window.
func (r *scopeRenderer) Refresh() {
	r.scope.mu.RLock()
	readings := r.scope.readings
	capacity := r.scope.capacity
	unit := r.scope.unit
	r.scope.mu.RUnlock()

	r.draw(readings, capacity, unit, r.scope.Size())
}

// draw rebuilds the canvas objects for a surface of the given size.
func (r *scopeRenderer) draw(readings []float32, capacity int, unit string, size fyne.Size) {
	// Clear old objects (but keep background)
	r.objects = []fyne.CanvasObject{r.background}

	if size.Width == 0 || size.Height == 0 {
		return
	}

	frame, ok := graph.Render(readings, capacity, size.Width, size.Height)
	if !ok {
		return
	}
	frame.Draw(r)

	if unit != "" {
		text := canvas.NewText(unit, gridColor)
		text.TextSize = labelTextSize
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(size.Width-10, 0))
		r.objects = append(r.objects, text)
	}
}

// Line implements graph.Surface.
func (r *scopeRenderer) Line(stroke graph.Stroke, x1, y1, x2, y2 float32) {
	var line *canvas.Line
	switch stroke {
	case graph.StrokeData:
		line = canvas.NewLine(dataColor)
		line.StrokeWidth = dataStrokeWidth
	default:
		line = canvas.NewLine(gridColor)
		line.StrokeWidth = gridStrokeWidth
	}
	line.Position1 = fyne.NewPos(x1, y1)
	line.Position2 = fyne.NewPos(x2, y2)
	r.objects = append(r.objects, line)
}

// Text implements graph.Surface.
func (r *scopeRenderer) Text(text string, x, y float32) {
	t := canvas.NewText(text, gridColor)
	t.TextSize = labelTextSize
	t.Move(fyne.NewPos(x, y))
	r.objects = append(r.objects, t)
}

// Objects returns all canvas objects for rendering.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *scopeRenderer) Destroy() {
	// Cleanup handled by Fyne
}
