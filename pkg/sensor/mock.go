package sensor

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/itohio/barosense/pkg/config"
)

// Mock simulates a pressure sensor for testing and development.
type Mock struct {
	cfg *config.MockConfig

	events    chan Event
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	connected bool

	startTime time.Time
}

// NewMock creates a new mocked sensor instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			BasePressure: 1013.25,
			Amplitude:    2.0,
			Period:       60 * time.Second,
			NoiseLevel:   0.05,
			SampleRate:   100 * time.Millisecond,
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:    cfg,
		events: make(chan Event, DefaultBufferSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Connect starts generating readings.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	m.startTime = time.Now()

	go m.generateEvents()

	return nil
}

// Close stops the generator and closes the events channel.
func (m *Mock) Close() error {
	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		return nil
	}
	m.cancel()
	m.connected = false
	m.mu.Unlock()

	<-m.done
	return nil
}

// Events returns the channel for reading events.
func (m *Mock) Events() <-chan Event {
	return m.events
}

// IsConnected returns whether the mock is currently generating readings.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// generateEvents emits one reading per sample period until cancelled.
func (m *Mock) generateEvents() {
	defer close(m.done)
	defer close(m.events)

	ticker := time.NewTicker(m.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case now := <-ticker.C:
			event := Event{
				Type:      TypePressure,
				Value:     m.pressureAt(now.Sub(m.startTime)),
				Accuracy:  AccuracyHigh,
				Timestamp: now,
			}
			select {
			case m.events <- event:
			case <-m.ctx.Done():
				return
			default:
				// Channel full, skip
			}
		}
	}
}

// pressureAt returns the simulated pressure after elapsed time: a slow sine drift
// around the base pressure with a small deterministic ripple as noise.
func (m *Mock) pressureAt(elapsed time.Duration) float32 {
	p := m.cfg.BasePressure
	if m.cfg.Period > 0 {
		p += m.cfg.Amplitude * math.Sin(2*math.Pi*elapsed.Seconds()/m.cfg.Period.Seconds())
	}

	noise := (math.Sin(float64(elapsed.Nanoseconds())*0.001) +
		math.Cos(float64(elapsed.Nanoseconds())*0.0013)) *
		m.cfg.NoiseLevel * 0.5

	return float32(p + noise)
}
