package sample

import (
	"log"
	"time"

	"github.com/chewxy/math32"

	"github.com/itohio/barosense/pkg/sensor"
)

// Sample is an accepted pressure reading.
type Sample struct {
	Timestamp time.Time
	Pressure  float32 // hPa
	Accuracy  sensor.Accuracy
}

// Converter is a function type that converts an Event channel to a Sample channel.
type Converter func(in <-chan sensor.Event) <-chan Sample

// NewConverter creates a converter that forwards pressure events as Samples.
// Other event types are ignored; non-finite pressures are dropped.
// The output channel is closed once the input channel is closed.
func NewConverter(bufSize int) Converter {
	if bufSize <= 0 {
		bufSize = 100
	}

	return func(in <-chan sensor.Event) <-chan Sample {
		out := make(chan Sample, bufSize)

		go func() {
			defer close(out)

			for event := range in {
				s, ok := convertEvent(event)
				if !ok {
					continue
				}

				select {
				case out <- s:
				case <-time.After(time.Second):
					log.Printf("Converter output channel full, dropping sample")
				}
			}
		}()

		return out
	}
}

// convertEvent turns a pressure event into a Sample. ok is false for events to skip.
func convertEvent(e sensor.Event) (s Sample, ok bool) {
	if e.Type != sensor.TypePressure {
		return Sample{}, false
	}
	if math32.IsNaN(e.Value) || math32.IsInf(e.Value, 0) {
		log.Printf("Dropping non-finite pressure reading: %v", e.Value)
		return Sample{}, false
	}

	return Sample{
		Timestamp: e.Timestamp,
		Pressure:  e.Value,
		Accuracy:  e.Accuracy,
	}, true
}
