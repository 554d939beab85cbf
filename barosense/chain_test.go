package main

import (
	"sync"
	"testing"
	"time"

	"github.com/itohio/barosense/pkg/config"
	"github.com/itohio/barosense/pkg/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource(t *testing.T) {
	tests := []struct {
		source string
		want   sensor.Source
	}{
		{source: config.SourceMock, want: &sensor.Mock{}},
		{source: config.SourceSerial, want: &sensor.Serial{}},
		{source: config.SourceMQTT, want: &sensor.MQTT{}},
		{source: config.SourceBMP, want: &sensor.BMP{}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			cfg := config.Default()
			cfg.Sensor.Source = tt.source

			src, err := newSource(cfg)
			require.NoError(t, err)
			assert.IsType(t, tt.want, src)
			assert.False(t, src.IsConnected())
		})
	}
}

func TestNewSource_Unknown(t *testing.T) {
	cfg := config.Default()
	cfg.Sensor.Source = "carrier-pigeon"

	src, err := newSource(cfg)
	assert.Error(t, err)
	assert.Nil(t, src)
}

func TestSourceName(t *testing.T) {
	cfg := config.Default()

	cfg.Sensor.Source = config.SourceSerial
	cfg.Sensor.Serial.Port = "/dev/ttyACM0"
	assert.Equal(t, "serial port /dev/ttyACM0", sourceName(cfg))

	cfg.Sensor.Source = config.SourceBMP
	assert.Equal(t, "BMP280 at 0x76", sourceName(cfg))

	cfg.Sensor.Source = config.SourceMock
	assert.Equal(t, "mock sensor", sourceName(cfg))
}

func TestTeeEvents(t *testing.T) {
	in := make(chan sensor.Event, 4)
	done := make(chan struct{})

	var mu sync.Mutex
	var temps []float32
	out := teeEvents(in, func(c float32) {
		mu.Lock()
		temps = append(temps, c)
		mu.Unlock()
	}, done)

	in <- sensor.Event{Type: sensor.TypePressure, Value: 1013.25}
	in <- sensor.Event{Type: sensor.TypeTemperature, Value: 21.5}
	close(in)

	var got []sensor.Event
	for e := range out {
		got = append(got, e)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tee did not finish")
	}

	require.Len(t, got, 2, "every event is forwarded")
	assert.Equal(t, sensor.TypePressure, got[0].Type)
	assert.Equal(t, sensor.TypeTemperature, got[1].Type)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []float32{21.5}, temps)
}

func TestCloseMeasurementChain_Nil(t *testing.T) {
	assert.NotPanics(t, func() {
		closeMeasurementChain(nil)
	})
}

func TestWithCurrent(t *testing.T) {
	assert.Equal(t, []string{"100", "1000"}, withCurrent([]string{"100", "1000"}, "1000"))
	assert.Equal(t, []string{"100", "1000", "750"}, withCurrent([]string{"100", "1000"}, "750"))
	assert.Equal(t, []string{"100"}, withCurrent([]string{"100"}, ""))
}

func TestUnitOptions(t *testing.T) {
	assert.Equal(t, []string{"hPa", "mmHg", "bar", "atm", "m"}, unitOptions())
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "21.5 °C", formatTemperature(21.46))
}
