package sensor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Event
		wantErr bool
	}{
		{
			name: "valid line",
			line: "1700000000123,1013.25,3",
			want: Event{
				Type:      TypePressure,
				Value:     1013.25,
				Accuracy:  AccuracyHigh,
				Timestamp: time.UnixMilli(1700000000123),
			},
		},
		{
			name: "valid line - low accuracy",
			line: "42,987.5,1",
			want: Event{
				Type:      TypePressure,
				Value:     987.5,
				Accuracy:  AccuracyLow,
				Timestamp: time.UnixMilli(42),
			},
		},
		{
			name: "valid line - integer pressure",
			line: "0,1000,0",
			want: Event{
				Type:      TypePressure,
				Value:     1000,
				Accuracy:  AccuracyUnreliable,
				Timestamp: time.UnixMilli(0),
			},
		},
		{
			name:    "invalid - too few fields",
			line:    "1700000000123,1013.25",
			wantErr: true,
		},
		{
			name:    "invalid - too many fields",
			line:    "1700000000123,1013.25,3,1",
			wantErr: true,
		},
		{
			name:    "invalid - non-numeric timestamp",
			line:    "abc,1013.25,3",
			wantErr: true,
		},
		{
			name:    "invalid - non-numeric pressure",
			line:    "1700000000123,abc,3",
			wantErr: true,
		},
		{
			name:    "invalid - accuracy out of range",
			line:    "1700000000123,1013.25,4",
			wantErr: true,
		},
		{
			name:    "invalid - negative accuracy",
			line:    "1700000000123,1013.25,-1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Type, got.Type)
			assert.Equal(t, tt.want.Value, got.Value)
			assert.Equal(t, tt.want.Accuracy, got.Accuracy)
			assert.Equal(t, tt.want.Timestamp.UnixNano(), got.Timestamp.UnixNano())
		})
	}
}

func TestNewSerial(t *testing.T) {
	dev := NewSerial("COM3", 57600, 10)
	assert.NotNil(t, dev)
	assert.Equal(t, "COM3", dev.port)
	assert.Equal(t, 57600, dev.baudRate)
	assert.Equal(t, 10, dev.bufSize)
	assert.NotNil(t, dev.events)
	assert.False(t, dev.IsConnected())
}

func TestNewSerial_Defaults(t *testing.T) {
	dev := NewSerial("COM3", 0, 0)
	assert.Equal(t, DefaultBaudRate, dev.baudRate)
	assert.Equal(t, DefaultBufferSize, dev.bufSize)
}

func TestSerial_CloseNotConnected(t *testing.T) {
	dev := NewSerial("COM3", 0, 0)
	assert.NoError(t, dev.Close())
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "pressure", TypePressure.String())
	assert.Equal(t, "temperature", TypeTemperature.String())
	assert.Equal(t, "unknown", Type(99).String())
}
