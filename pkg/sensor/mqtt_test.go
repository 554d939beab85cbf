package sensor

import (
	"testing"
	"time"

	"github.com/itohio/barosense/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	now := time.UnixMilli(5000)

	tests := []struct {
		name    string
		payload string
		want    []Event
		wantErr bool
	}{
		{
			name:    "pressure only",
			payload: `{"pressure_hpa": 1013.25, "accuracy": 3}`,
			want: []Event{
				{Type: TypePressure, Value: 1013.25, Accuracy: AccuracyHigh, Timestamp: now},
			},
		},
		{
			name:    "pressure and temperature with timestamp",
			payload: `{"pressure_hpa": 1001.5, "temp_c": 21.5, "accuracy": 2, "timestamp_ms": 1700000000123}`,
			want: []Event{
				{Type: TypePressure, Value: 1001.5, Accuracy: AccuracyMedium, Timestamp: time.UnixMilli(1700000000123)},
				{Type: TypeTemperature, Value: 21.5, Accuracy: AccuracyMedium, Timestamp: time.UnixMilli(1700000000123)},
			},
		},
		{
			name:    "zero pressure is still a reading",
			payload: `{"pressure_hpa": 0}`,
			want: []Event{
				{Type: TypePressure, Value: 0, Accuracy: AccuracyUnreliable, Timestamp: now},
			},
		},
		{
			name:    "no reading",
			payload: `{"accuracy": 3}`,
			wantErr: true,
		},
		{
			name:    "accuracy out of range",
			payload: `{"pressure_hpa": 1013.25, "accuracy": 7}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			payload: `1013.25 hPa`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodePayload([]byte(tt.payload), now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Type, got[i].Type)
				assert.Equal(t, tt.want[i].Value, got[i].Value)
				assert.Equal(t, tt.want[i].Accuracy, got[i].Accuracy)
				assert.Equal(t, tt.want[i].Timestamp.UnixNano(), got[i].Timestamp.UnixNano())
			}
		})
	}
}

func TestNewMQTT(t *testing.T) {
	cfg := config.Default().Sensor.MQTT
	src := NewMQTT(cfg, 0)
	assert.Equal(t, DefaultBufferSize, cap(src.events))
	assert.False(t, src.IsConnected())
	assert.NoError(t, src.Close())
}
