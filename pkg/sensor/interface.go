package sensor

import "time"

// DefaultBufferSize is the default size for the events channel buffer.
const DefaultBufferSize = 100

// Type identifies the physical quantity carried by an Event.
type Type int

const (
	TypePressure    Type = iota // hPa
	TypeTemperature             // °C
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case TypePressure:
		return "pressure"
	case TypeTemperature:
		return "temperature"
	default:
		return "unknown"
	}
}

// Accuracy is the source-reported confidence of a reading, higher is better.
type Accuracy int

const (
	AccuracyUnreliable Accuracy = iota
	AccuracyLow
	AccuracyMedium
	AccuracyHigh
)

// Event is a single reading pushed by a sensor source.
type Event struct {
	Type      Type
	Value     float32
	Accuracy  Accuracy
	Timestamp time.Time
}

// Source defines the interface for pressure sensors (real or mocked).
// Events is closed after Close returns.
type Source interface {
	Connect() error
	Close() error
	Events() <-chan Event
	IsConnected() bool
}

var (
	_ Source = (*Serial)(nil)
	_ Source = (*Mock)(nil)
	_ Source = (*MQTT)(nil)
	_ Source = (*BMP)(nil)
)
