package sensor

import (
	"testing"
	"time"

	"github.com/itohio/barosense/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
)

func TestEnvToEvents(t *testing.T) {
	now := time.Now()
	env := physic.Env{
		Pressure:    101325 * physic.Pascal,
		Temperature: physic.ZeroCelsius + 20*physic.Celsius,
	}

	events := envToEvents(env, now)
	require.Len(t, events, 2)

	assert.Equal(t, TypePressure, events[0].Type)
	assert.InDelta(t, 1013.25, events[0].Value, 1e-3)
	assert.Equal(t, now, events[0].Timestamp)

	assert.Equal(t, TypeTemperature, events[1].Type)
	assert.InDelta(t, 20.0, events[1].Value, 1e-3)
}

func TestNewBMP(t *testing.T) {
	src := NewBMP(config.Default().Sensor.BMP, 8)
	assert.Equal(t, 8, cap(src.events))
	assert.False(t, src.IsConnected())
	assert.NoError(t, src.Close())
}
