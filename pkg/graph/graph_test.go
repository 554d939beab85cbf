package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	stroke         Stroke
	x1, y1, x2, y2 float32
}

type text struct {
	s    string
	x, y float32
}

// recorder is a Surface that keeps every command it receives.
type recorder struct {
	lines []line
	texts []text
}

func (r *recorder) Line(stroke Stroke, x1, y1, x2, y2 float32) {
	r.lines = append(r.lines, line{stroke, x1, y1, x2, y2})
}

func (r *recorder) Text(s string, x, y float32) {
	r.texts = append(r.texts, text{s, x, y})
}

func (r *recorder) count(stroke Stroke) int {
	n := 0
	for _, l := range r.lines {
		if l.stroke == stroke {
			n++
		}
	}
	return n
}

func TestRender_Empty(t *testing.T) {
	f, ok := Render(nil, 100, 800, 600)
	assert.False(t, ok)

	r := &recorder{}
	f.Draw(r)
	assert.Empty(t, r.lines)
	assert.Empty(t, r.texts)
}

func TestRender_RangeFloor(t *testing.T) {
	values := make([]float32, 10)
	for i := range values {
		values[i] = 1000
	}

	f, ok := Render(values, 100, 990, 400)
	require.True(t, ok)
	assert.Equal(t, float32(1000), f.Min)
	assert.Equal(t, float32(1000), f.Max)
	assert.Equal(t, float32(1.0), f.Range)

	require.Len(t, f.Polyline, 9)
	for _, seg := range f.Polyline {
		assert.Equal(t, float32(400), seg.From.Y)
		assert.Equal(t, float32(400), seg.To.Y)
	}
}

func TestRender_Grid(t *testing.T) {
	f, ok := Render([]float32{1000, 1010, 1020}, 100, 800, 500)
	require.True(t, ok)

	assert.Equal(t, float32(20), f.Range)
	require.Len(t, f.Grid, GridLines+1)
	require.Len(t, f.Labels, GridLines+1)

	for i, g := range f.Grid {
		wantY := float32(500) - float32(i)*50
		assert.InDelta(t, wantY, g.From.Y, 1e-3, "grid line %d", i)
		assert.Equal(t, g.From.Y, g.To.Y)
		assert.Equal(t, float32(0), g.From.X)
		assert.Equal(t, float32(800), g.To.X)

		label := f.Labels[i]
		assert.InDelta(t, 1000+float32(GridLines-i)*2, label.Value, 1e-3, "label %d", i)
		assert.Equal(t, float32(10), label.Pos.X)
		assert.InDelta(t, wantY-10, label.Pos.Y, 1e-3)
	}

	assert.Equal(t, "1020.0", f.Labels[0].Text)
	assert.Equal(t, "1000.0", f.Labels[GridLines].Text)
	assert.Equal(t, "1010.0", f.Labels[5].Text)
}

func TestRender_VerticalMapping(t *testing.T) {
	f, ok := Render([]float32{10, 30, 20}, 5, 400, 200)
	require.True(t, ok)

	assert.Equal(t, float32(200), f.Y(10))
	assert.Equal(t, float32(0), f.Y(30))
	assert.Equal(t, float32(100), f.Y(20))
}

func TestRender_PolylineLeftAligned(t *testing.T) {
	values := []float32{1, 2, 3, 4}
	f, ok := Render(values, 100, 990, 300)
	require.True(t, ok)

	assert.InDelta(t, 10, f.Step, 1e-4)
	require.Len(t, f.Polyline, len(values)-1)

	x := float32(0)
	for i, seg := range f.Polyline {
		assert.InDelta(t, x, seg.From.X, 1e-3, "segment %d", i)
		assert.InDelta(t, x+f.Step, seg.To.X, 1e-3, "segment %d", i)
		assert.InDelta(t, f.Y(values[i]), seg.From.Y, 1e-3)
		assert.InDelta(t, f.Y(values[i+1]), seg.To.Y, 1e-3)
		x += f.Step
	}
	assert.Less(t, f.Polyline[len(f.Polyline)-1].To.X, float32(990))
}

func TestRender_FullWindowSpansWidth(t *testing.T) {
	values := make([]float32, 100)
	for i := range values {
		values[i] = float32(i)
	}

	f, ok := Render(values, 100, 990, 300)
	require.True(t, ok)
	require.Len(t, f.Polyline, 99)
	assert.InDelta(t, 990, f.Polyline[98].To.X, 1e-2)
}

func TestRender_SingleValue(t *testing.T) {
	f, ok := Render([]float32{1013.2}, 100, 990, 300)
	require.True(t, ok)
	assert.Empty(t, f.Polyline)
	assert.Len(t, f.Grid, GridLines+1)
}

func TestRender_DegenerateCapacity(t *testing.T) {
	f, ok := Render([]float32{1, 2}, 1, 100, 100)
	require.True(t, ok)
	assert.Equal(t, float32(0), f.Step)
	assert.Len(t, f.Polyline, 1)
}

func TestFrame_Draw(t *testing.T) {
	f, ok := Render([]float32{1000, 1001, 1002}, 100, 800, 600)
	require.True(t, ok)

	r := &recorder{}
	f.Draw(r)

	assert.Equal(t, GridLines+1, r.count(StrokeGrid))
	assert.Equal(t, 2, r.count(StrokeData))
	require.Len(t, r.texts, GridLines+1)
	assert.Equal(t, "1002.0", r.texts[0].s)
	assert.Equal(t, float32(590), r.texts[0].y)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1013.3", FormatValue(1013.26))
	assert.Equal(t, "0.0", FormatValue(0))
	assert.Equal(t, "-3.5", FormatValue(-3.5))
}
