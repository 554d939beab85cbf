package sensor

import (
	"fmt"
	"log"
	"sync"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"

	"github.com/itohio/barosense/pkg/config"
)

// BMP reads a Bosch BMP280/BME280 over I2C.
// Every measurement yields a pressure event and a temperature event.
type BMP struct {
	cfg config.BMPConfig

	bus       i2c.BusCloser
	dev       *bmxx80.Dev
	events    chan Event
	done      chan struct{}
	mu        sync.RWMutex
	connected bool
}

// NewBMP creates a new BMP source.
func NewBMP(cfg config.BMPConfig, bufSize int) *BMP {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &BMP{
		cfg:    cfg,
		events: make(chan Event, bufSize),
		done:   make(chan struct{}),
	}
}

// Connect initializes the host drivers, opens the bus and starts continuous sensing.
func (b *BMP) Connect() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.connected {
		return fmt.Errorf("already connected")
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(b.cfg.Bus)
	if err != nil {
		return fmt.Errorf("I2C bus open %q: %w", b.cfg.Bus, err)
	}

	dev, err := bmxx80.NewI2C(bus, b.cfg.Address, &bmxx80.DefaultOpts)
	if err != nil {
		bus.Close()
		return fmt.Errorf("BMP init at 0x%02x: %w", b.cfg.Address, err)
	}

	envs, err := dev.SenseContinuous(b.cfg.Rate)
	if err != nil {
		dev.Halt()
		bus.Close()
		return fmt.Errorf("BMP sense continuous: %w", err)
	}

	b.bus = bus
	b.dev = dev
	b.connected = true

	go b.forward(envs)

	return nil
}

// Close halts sensing and releases the bus.
func (b *BMP) Close() error {
	b.mu.Lock()
	if !b.connected {
		b.mu.Unlock()
		return nil
	}
	b.connected = false
	dev, bus := b.dev, b.bus
	b.mu.Unlock()

	// Halt closes the env channel, which ends forward
	if err := dev.Halt(); err != nil {
		log.Printf("Error halting BMP: %v", err)
	}
	<-b.done

	if err := bus.Close(); err != nil {
		return fmt.Errorf("I2C bus close: %w", err)
	}
	return nil
}

// Events returns the channel for reading events.
func (b *BMP) Events() <-chan Event {
	return b.events
}

// IsConnected returns whether the sensor is sensing.
func (b *BMP) IsConnected() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.connected
}

func (b *BMP) forward(envs <-chan physic.Env) {
	defer close(b.done)
	defer close(b.events)

	for e := range envs {
		for _, event := range envToEvents(e, time.Now()) {
			select {
			case b.events <- event:
			default:
				log.Printf("BMP events channel full, dropping reading")
			}
		}
	}
}

// envToEvents converts a periph environment reading to hPa and °C events.
func envToEvents(e physic.Env, now time.Time) []Event {
	hpa := float64(e.Pressure) / float64(100*physic.Pascal)
	return []Event{
		{Type: TypePressure, Value: float32(hpa), Accuracy: AccuracyHigh, Timestamp: now},
		{Type: TypeTemperature, Value: float32(e.Temperature.Celsius()), Accuracy: AccuracyHigh, Timestamp: now},
	}
}
