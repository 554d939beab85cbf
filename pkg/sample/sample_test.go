package sample

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/itohio/barosense/pkg/sensor"
	"github.com/stretchr/testify/assert"
)

func TestConvertEvent(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		event  sensor.Event
		want   Sample
		wantOK bool
	}{
		{
			name:   "pressure",
			event:  sensor.Event{Type: sensor.TypePressure, Value: 1013.25, Accuracy: sensor.AccuracyHigh, Timestamp: now},
			want:   Sample{Timestamp: now, Pressure: 1013.25, Accuracy: sensor.AccuracyHigh},
			wantOK: true,
		},
		{
			name:   "non-positive pressure is forwarded",
			event:  sensor.Event{Type: sensor.TypePressure, Value: -3, Timestamp: now},
			want:   Sample{Timestamp: now, Pressure: -3},
			wantOK: true,
		},
		{
			name:  "temperature is ignored",
			event: sensor.Event{Type: sensor.TypeTemperature, Value: 21.5, Timestamp: now},
		},
		{
			name:  "unknown type is ignored",
			event: sensor.Event{Type: sensor.Type(7), Value: 1000, Timestamp: now},
		},
		{
			name:  "NaN is dropped",
			event: sensor.Event{Type: sensor.TypePressure, Value: math32.NaN(), Timestamp: now},
		},
		{
			name:  "infinity is dropped",
			event: sensor.Event{Type: sensor.TypePressure, Value: math32.Inf(1), Timestamp: now},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertEvent(tt.event)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestConverter_FiltersByType(t *testing.T) {
	in := make(chan sensor.Event, 10)
	out := NewConverter(10)(in)

	now := time.Now()
	in <- sensor.Event{Type: sensor.TypePressure, Value: 1000, Timestamp: now}
	in <- sensor.Event{Type: sensor.TypeTemperature, Value: 20, Timestamp: now}
	in <- sensor.Event{Type: sensor.TypePressure, Value: 1001, Timestamp: now}
	in <- sensor.Event{Type: sensor.TypePressure, Value: math32.NaN(), Timestamp: now}
	in <- sensor.Event{Type: sensor.TypePressure, Value: 1002, Timestamp: now}
	close(in)

	var got []float32
	for s := range out {
		got = append(got, s.Pressure)
	}

	assert.Equal(t, []float32{1000, 1001, 1002}, got)
}
