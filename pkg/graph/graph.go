package graph

import (
	"strconv"

	"github.com/chewxy/math32"
)

const (
	// GridLines is the number of horizontal grid divisions; GridLines+1 lines are drawn.
	GridLines = 10

	// MinRange is the smallest value span mapped onto the full height.
	MinRange = 1.0

	labelInsetX = 10
	labelInsetY = 10
)

// Stroke distinguishes grid lines from the data polyline.
type Stroke int

const (
	StrokeGrid Stroke = iota
	StrokeData
)

// Surface receives draw commands. Coordinates grow right and down from the top-left corner.
type Surface interface {
	Line(stroke Stroke, x1, y1, x2, y2 float32)
	Text(text string, x, y float32)
}

// Point is a position on the surface.
type Point struct {
	X, Y float32
}

// Segment is a straight line between two points.
type Segment struct {
	From, To Point
}

// Label is an axis label anchored at Pos.
type Label struct {
	Text  string
	Value float32
	Pos   Point
}

// Frame is the geometry of one rendered graph.
type Frame struct {
	Min, Max float32
	Range    float32 // max(MinRange, Max-Min)
	Step     float32 // horizontal distance between consecutive readings
	Height   float32

	Grid     []Segment
	Labels   []Label
	Polyline []Segment
}

// Render lays out values, oldest first, on a width x height surface.
// The horizontal step is fixed by capacity, so a partially filled window is drawn
// left-aligned and only stretches across the width once it holds capacity readings.
// ok is false when there is nothing to draw.
func Render(values []float32, capacity int, width, height float32) (f Frame, ok bool) {
	if len(values) == 0 {
		return Frame{}, false
	}

	f.Min, f.Max = values[0], values[0]
	for _, v := range values[1:] {
		f.Min = math32.Min(f.Min, v)
		f.Max = math32.Max(f.Max, v)
	}
	f.Range = math32.Max(MinRange, f.Max-f.Min)
	f.Height = height

	if capacity > 1 {
		f.Step = width / float32(capacity-1)
	}

	f.Grid = make([]Segment, 0, GridLines+1)
	f.Labels = make([]Label, 0, GridLines+1)
	for i := 0; i <= GridLines; i++ {
		y := height - float32(i)*height/GridLines
		f.Grid = append(f.Grid, Segment{From: Point{0, y}, To: Point{width, y}})

		value := f.Min + float32(GridLines-i)*f.Range/GridLines
		f.Labels = append(f.Labels, Label{
			Text:  FormatValue(value),
			Value: value,
			Pos:   Point{labelInsetX, y - labelInsetY},
		})
	}

	f.Polyline = make([]Segment, 0, len(values)-1)
	var x float32
	for i := 1; i < len(values); i++ {
		f.Polyline = append(f.Polyline, Segment{
			From: Point{x, f.Y(values[i-1])},
			To:   Point{x + f.Step, f.Y(values[i])},
		})
		x += f.Step
	}

	return f, true
}

// Y maps a reading onto the vertical axis; larger readings are drawn higher.
func (f Frame) Y(v float32) float32 {
	return f.Height - ((v-f.Min)/f.Range)*f.Height
}

// Draw issues the frame's draw commands: grid lines and their labels, then the polyline.
func (f Frame) Draw(s Surface) {
	for i, g := range f.Grid {
		s.Line(StrokeGrid, g.From.X, g.From.Y, g.To.X, g.To.Y)
		if i < len(f.Labels) {
			l := f.Labels[i]
			s.Text(l.Text, l.Pos.X, l.Pos.Y)
		}
	}
	for _, seg := range f.Polyline {
		s.Line(StrokeData, seg.From.X, seg.From.Y, seg.To.X, seg.To.Y)
	}
}

// FormatValue formats an axis value with one decimal.
func FormatValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 1, 32)
}
