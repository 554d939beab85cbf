package sensor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

// DefaultBaudRate is the standard baud rate of the pressure firmware.
const DefaultBaudRate = 115200

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial reads pressure lines from a microcontroller over a serial port.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      serial.Port
	events    chan Event
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	connected bool
}

// NewSerial creates a new serial source with the specified port, baud rate, and buffer size.
func NewSerial(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:     port,
		baudRate: baudRate,
		bufSize:  bufSize,
		events:   make(chan Event, bufSize),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port and starts reading events.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	go d.readEvents(port)

	return nil
}

// Close closes the port and waits for the reader to stop.
func (d *Serial) Close() error {
	d.mu.Lock()
	if !d.connected {
		d.mu.Unlock()
		return nil
	}

	d.cancel()

	// Closing the port unblocks the scanner
	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		d.conn = nil
	}
	d.connected = false
	d.mu.Unlock()

	<-d.done
	return nil
}

// Events returns the channel for reading events.
func (d *Serial) Events() <-chan Event {
	return d.events
}

// IsConnected returns whether the port is currently open.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readEvents reads lines from the serial port and parses them into events.
// It owns the events channel and closes it on exit.
func (d *Serial) readEvents(r io.Reader) {
	defer close(d.done)
	defer close(d.events)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic in readEvents: %v", r)
		}
	}()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if d.ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		event, err := parseLine(line)
		if err != nil {
			log.Printf("Failed to parse line '%s': %v", line, err)
			continue
		}

		// Non-blocking send, the consumer throttles anyway
		select {
		case d.events <- event:
		case <-d.ctx.Done():
			return
		default:
			log.Printf("Events channel full, dropping reading")
		}
	}

	if err := scanner.Err(); err != nil && d.ctx.Err() == nil {
		log.Printf("Error reading from serial port: %v", err)
	}
}

// parseLine parses a line from the firmware into a pressure Event.
// Format: unix_millis,pressure_hpa,accuracy
// Example: 1700000000123,1013.25,3
func parseLine(line string) (Event, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return Event{}, fmt.Errorf("invalid line format: expected 3 comma-separated values, got %d", len(parts))
	}

	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	pressure, err := strconv.ParseFloat(parts[1], 32)
	if err != nil {
		return Event{}, fmt.Errorf("invalid pressure: %w", err)
	}

	accuracy, err := strconv.ParseUint(parts[2], 10, 8)
	if err != nil {
		return Event{}, fmt.Errorf("invalid accuracy: %w", err)
	}
	if accuracy > uint64(AccuracyHigh) {
		return Event{}, fmt.Errorf("accuracy out of range: %d (max %d)", accuracy, AccuracyHigh)
	}

	return Event{
		Type:      TypePressure,
		Value:     float32(pressure),
		Accuracy:  Accuracy(accuracy),
		Timestamp: time.UnixMilli(millis),
	}, nil
}
