package sensor

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/itohio/barosense/pkg/config"
)

const mqttTimeout = 5 * time.Second

// Payload is the JSON message published on the pressure topic.
// Example: {"pressure_hpa": 1013.25, "accuracy": 3, "timestamp_ms": 1700000000123}
type Payload struct {
	Pressure    *float32 `json:"pressure_hpa"`
	Temperature *float32 `json:"temp_c,omitempty"`
	Accuracy    Accuracy `json:"accuracy"`
	TimestampMs int64    `json:"timestamp_ms,omitempty"`
}

// MQTT subscribes to a broker topic carrying pressure readings.
type MQTT struct {
	cfg config.MQTTConfig

	client    mqtt.Client
	events    chan Event
	mu        sync.RWMutex
	connected bool
	closed    bool
}

// NewMQTT creates a new MQTT source for the given broker and topic.
func NewMQTT(cfg config.MQTTConfig, bufSize int) *MQTT {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &MQTT{
		cfg:    cfg,
		events: make(chan Event, bufSize),
	}
}

// Connect connects to the broker and subscribes to the topic.
func (s *MQTT) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return fmt.Errorf("already connected")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(s.cfg.Broker).
		SetClientID(s.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttTimeout)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); !token.WaitTimeout(mqttTimeout) || token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker %s: %w", s.cfg.Broker, tokenError(token))
	}
	log.Printf("mqtt: connected to broker at %s", s.cfg.Broker)

	token := client.Subscribe(s.cfg.Topic, 0, s.handleMessage)
	if !token.WaitTimeout(mqttTimeout) || token.Error() != nil {
		client.Disconnect(250)
		return fmt.Errorf("failed to subscribe to %s: %w", s.cfg.Topic, tokenError(token))
	}
	log.Printf("mqtt: subscribed to %s", s.cfg.Topic)

	s.client = client
	s.connected = true

	return nil
}

// Close unsubscribes, disconnects and closes the events channel.
func (s *MQTT) Close() error {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return nil
	}
	client := s.client
	s.connected = false
	s.mu.Unlock()

	// The message handler takes the read lock, so the client is shut down unlocked
	if token := client.Unsubscribe(s.cfg.Topic); !token.WaitTimeout(mqttTimeout) || token.Error() != nil {
		log.Printf("mqtt: unsubscribe from %s: %v", s.cfg.Topic, tokenError(token))
	}
	client.Disconnect(250)

	s.mu.Lock()
	s.closed = true
	close(s.events)
	s.mu.Unlock()

	return nil
}

// Events returns the channel for reading events.
func (s *MQTT) Events() <-chan Event {
	return s.events
}

// IsConnected returns whether the source is subscribed.
func (s *MQTT) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// handleMessage runs on the paho router goroutine.
func (s *MQTT) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	events, err := decodePayload(msg.Payload(), time.Now())
	if err != nil {
		log.Printf("mqtt: payload on %s: %v", msg.Topic(), err)
		return
	}

	// Holding the read lock keeps Close from closing the channel mid-send
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	for _, e := range events {
		select {
		case s.events <- e:
		default:
			log.Printf("mqtt: events channel full, dropping reading")
		}
	}
}

// decodePayload converts a JSON payload into events. now stamps payloads without a timestamp.
func decodePayload(data []byte, now time.Time) ([]Event, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if p.Pressure == nil && p.Temperature == nil {
		return nil, fmt.Errorf("payload carries no reading")
	}
	if p.Accuracy < AccuracyUnreliable || p.Accuracy > AccuracyHigh {
		return nil, fmt.Errorf("accuracy out of range: %d (max %d)", p.Accuracy, AccuracyHigh)
	}

	ts := now
	if p.TimestampMs > 0 {
		ts = time.UnixMilli(p.TimestampMs)
	}

	events := make([]Event, 0, 2)
	if p.Pressure != nil {
		events = append(events, Event{Type: TypePressure, Value: *p.Pressure, Accuracy: p.Accuracy, Timestamp: ts})
	}
	if p.Temperature != nil {
		events = append(events, Event{Type: TypeTemperature, Value: *p.Temperature, Accuracy: p.Accuracy, Timestamp: ts})
	}
	return events, nil
}

func tokenError(token mqtt.Token) error {
	if err := token.Error(); err != nil {
		return err
	}
	return fmt.Errorf("timed out after %v", mqttTimeout)
}
