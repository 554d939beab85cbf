package gauge

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
)

func TestNeedleTip(t *testing.T) {
	center := fyne.NewPos(100, 100)

	tests := []struct {
		deg   float32
		wantX float32
		wantY float32
	}{
		{deg: 0, wantX: 100, wantY: 50},
		{deg: 90, wantX: 150, wantY: 100},
		{deg: 180, wantX: 100, wantY: 150},
		{deg: -90, wantX: 50, wantY: 100},
		{deg: 450, wantX: 150, wantY: 100},
	}

	for _, tt := range tests {
		tip := needleTip(center, 50, tt.deg)
		assert.InDelta(t, tt.wantX, tip.X, 1e-3, "deg=%v", tt.deg)
		assert.InDelta(t, tt.wantY, tip.Y, 1e-3, "deg=%v", tt.deg)
	}
}

func TestTween(t *testing.T) {
	assert.Equal(t, float32(10), tween(10, 50, 0))
	assert.Equal(t, float32(30), tween(10, 50, 0.5))
	assert.Equal(t, float32(50), tween(10, 50, 1))
	assert.Equal(t, float32(-10), tween(10, -30, 0.5))
}

func TestGeometry(t *testing.T) {
	center, radius := geometry(fyne.NewSize(300, 200))
	assert.Equal(t, fyne.NewPos(150, 100), center)
	assert.Equal(t, float32(96), radius)

	_, radius = geometry(fyne.Size{})
	assert.Equal(t, float32(0), radius)
}
