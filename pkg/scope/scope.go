package scope

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/barosense/pkg/series"
)

// ScopeWidget is a custom Fyne widget that plots the pressure graph window.
type ScopeWidget struct {
	widget.BaseWidget

	// Data (protected by mu)
	mu       sync.RWMutex
	readings []float32
	capacity int
	unit     string
}

// New creates a new ScopeWidget for a graph window holding capacity readings.
func New(capacity int) *ScopeWidget {
	if capacity <= 0 {
		capacity = series.DefaultCapacity
	}
	s := &ScopeWidget{
		readings: make([]float32, 0, capacity),
		capacity: capacity,
	}
	s.ExtendBaseWidget(s)
	// Trigger initial refresh to display empty scope
	s.Refresh()
	return s
}

// UpdateData replaces the plotted window, oldest reading first.
// This should be called from the graph callback using fyne.Do().
func (s *ScopeWidget) UpdateData(readings []float32) {
	s.mu.Lock()
	s.readings = append(s.readings[:0], readings...)
	s.mu.Unlock()

	// Refresh the widget (must be outside lock to avoid potential deadlock)
	s.Refresh()
}

// SetUnit sets the caption drawn in the top right corner.
func (s *ScopeWidget) SetUnit(unit string) {
	s.mu.Lock()
	s.unit = unit
	s.mu.Unlock()
	s.Refresh()
}

// CreateRenderer creates the widget renderer.
func (s *ScopeWidget) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255}) // Dark background
	return &scopeRenderer{
		scope:      s,
		background: background,
		objects:    []fyne.CanvasObject{background},
	}
}
