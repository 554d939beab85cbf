package meter

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/itohio/barosense/pkg/config"
	"github.com/itohio/barosense/pkg/sample"
	"github.com/itohio/barosense/pkg/series"
	"github.com/itohio/barosense/pkg/throttle"
	"github.com/itohio/barosense/pkg/units"
)

var _ PressureMeter = (*Meter)(nil)

// Display is the display state derived from the latest admitted reading.
type Display struct {
	Timestamp time.Time
	Pressure  float32 // native reading, hPa
	Value     float32 // Pressure converted to Mode
	Unit      string
	Mode      units.Mode
	Angle     float32 // gauge needle, degrees clockwise
}

// Text formats Value with the precision of its unit.
func (d Display) Text() string {
	return strconv.FormatFloat(float64(d.Value), 'f', d.Mode.Precision(), 32)
}

// PressureMeter throttles pressure samples, keeps the recent history and notifies listeners.
type PressureMeter interface {
	ProcessSamples(ctx context.Context, input <-chan sample.Sample)
	Reload(cfg config.DisplayConfig)
	OnDisplay(func(d Display))       // Called for every admitted sample
	OnGraph(func(readings []float32)) // Called on every graph tick with the window, oldest first
}

// Meter implements PressureMeter.
//
// All pipeline state (throttle, buffers, mode) is owned by the goroutine running
// ProcessSamples: samples, graph ticks and reloads are serialized through its select
// loop, so none of it needs locking.
type Meter struct {
	throttle *throttle.Throttler
	history  *series.Buffer // admitted readings
	graph    *series.Buffer // readings pushed on every graph tick
	mode     units.Mode

	reload chan config.DisplayConfig
	now    func() time.Time

	// Update callbacks
	onDisplay []func(d Display)
	onGraph   []func(readings []float32)
	cbMu      sync.RWMutex
}

// New creates a new Meter from the display configuration.
func New(cfg *config.Config) *Meter {
	return &Meter{
		throttle: throttle.New(cfg.Display.Interval()),
		history:  series.New(cfg.Display.HistorySize),
		graph:    series.New(cfg.Display.HistorySize),
		mode:     units.ParseMode(cfg.Display.PressureUnit),
		reload:   make(chan config.DisplayConfig, 1),
		now:      time.Now,
	}
}

// ProcessSamples runs the pipeline until ctx is cancelled or input is closed.
// It must be called from a single goroutine. No callback fires after it returns.
func (m *Meter) ProcessSamples(ctx context.Context, input <-chan sample.Sample) {
	ticker := time.NewTicker(m.throttle.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case s, ok := <-input:
			if !ok {
				return
			}
			m.processSample(s)

		case <-ticker.C:
			m.tick()

		case cfg := <-m.reload:
			m.applyReload(cfg)
			ticker.Reset(m.throttle.Interval())
			m.refreshDisplay()
		}
	}
}

// Reload applies new display options. It is safe to call from any goroutine;
// the options take effect inside ProcessSamples and the latest call wins.
func (m *Meter) Reload(cfg config.DisplayConfig) {
	for {
		select {
		case m.reload <- cfg:
			return
		default:
		}
		// Replace a pending reload that was not picked up yet
		select {
		case <-m.reload:
		default:
		}
	}
}

// OnDisplay registers a callback invoked for every admitted sample.
// Callbacks run on the ProcessSamples goroutine and should return quickly.
func (m *Meter) OnDisplay(callback func(d Display)) {
	m.cbMu.Lock()
	defer m.cbMu.Unlock()
	m.onDisplay = append(m.onDisplay, callback)
}

// OnGraph registers a callback invoked on every graph tick with a copy of the window.
// Callbacks run on the ProcessSamples goroutine and should return quickly.
func (m *Meter) OnGraph(callback func(readings []float32)) {
	m.cbMu.Lock()
	defer m.cbMu.Unlock()
	m.onGraph = append(m.onGraph, callback)
}

// Capacity returns the size of the graph window.
func (m *Meter) Capacity() int {
	return m.graph.Cap()
}

// processSample throttles s, records it and notifies display listeners.
func (m *Meter) processSample(s sample.Sample) {
	if !m.throttle.Admit(m.now()) {
		return
	}

	m.history.Append(s.Pressure)
	m.notifyDisplay(m.display(s))
}

// refreshDisplay re-notifies the last admitted reading, e.g. after a unit change.
func (m *Meter) refreshDisplay() {
	last, ok := m.history.Last()
	if !ok {
		return
	}
	m.notifyDisplay(m.display(sample.Sample{Timestamp: m.now(), Pressure: last}))
}

// tick pushes the latest admitted reading to the graph window.
func (m *Meter) tick() {
	last, ok := m.history.Last()
	if !ok {
		return
	}

	m.graph.Append(last)
	m.notifyGraph()
}

func (m *Meter) applyReload(cfg config.DisplayConfig) {
	interval := cfg.Interval()
	mode := units.ParseMode(cfg.PressureUnit)
	if interval != m.throttle.Interval() || mode != m.mode {
		log.Printf("meter: reload interval=%v unit=%s", interval, mode)
	}

	m.throttle.SetInterval(interval)
	m.mode = mode
}

func (m *Meter) display(s sample.Sample) Display {
	value, unit := units.Convert(s.Pressure, m.mode)
	return Display{
		Timestamp: s.Timestamp,
		Pressure:  s.Pressure,
		Value:     value,
		Unit:      unit,
		Mode:      m.mode,
		Angle:     units.NeedleAngle(value, m.mode),
	}
}

// notifyDisplay invokes display callbacks without holding the callback lock.
func (m *Meter) notifyDisplay(d Display) {
	m.cbMu.RLock()
	callbacks := make([]func(Display), len(m.onDisplay))
	copy(callbacks, m.onDisplay)
	m.cbMu.RUnlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(d)
		}
	}
}

// notifyGraph invokes graph callbacks, each with its own snapshot of the window.
func (m *Meter) notifyGraph() {
	m.cbMu.RLock()
	callbacks := make([]func([]float32), len(m.onGraph))
	copy(callbacks, m.onGraph)
	m.cbMu.RUnlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(m.graph.Snapshot())
		}
	}
}
