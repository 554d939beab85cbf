package main

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/barosense/pkg/config"
	"github.com/itohio/barosense/pkg/sample"
	"github.com/itohio/barosense/pkg/sensor"
)

const chainBufferSize = 500

// measurementChain tracks the components of the measurement chain for graceful shutdown.
type measurementChain struct {
	source         sensor.Source
	cancel         context.CancelFunc
	teeGoroutine   chan struct{} // Closed when the event tee exits
	meterGoroutine chan struct{} // Closed when the meter goroutine exits
}

// newSource creates the sensor source selected in the configuration.
func newSource(cfg *config.Config) (sensor.Source, error) {
	switch cfg.Sensor.Source {
	case config.SourceMock:
		return sensor.NewMock(&cfg.Mock), nil
	case config.SourceSerial:
		return sensor.NewSerial(cfg.Sensor.Serial.Port, cfg.Sensor.Serial.BaudRate, sensor.DefaultBufferSize), nil
	case config.SourceMQTT:
		return sensor.NewMQTT(cfg.Sensor.MQTT, sensor.DefaultBufferSize), nil
	case config.SourceBMP:
		return sensor.NewBMP(cfg.Sensor.BMP, sensor.DefaultBufferSize), nil
	default:
		return nil, fmt.Errorf("unknown sensor source %q", cfg.Sensor.Source)
	}
}

// sourceName describes the configured source for logs and error dialogs.
func sourceName(cfg *config.Config) string {
	switch cfg.Sensor.Source {
	case config.SourceSerial:
		return "serial port " + cfg.Sensor.Serial.Port
	case config.SourceMQTT:
		return fmt.Sprintf("MQTT %s on %s", cfg.Sensor.MQTT.Topic, cfg.Sensor.MQTT.Broker)
	case config.SourceBMP:
		return fmt.Sprintf("BMP280 at 0x%02x", cfg.Sensor.BMP.Address)
	default:
		return cfg.Sensor.Source + " sensor"
	}
}

// teeEvents forwards every event to the returned channel and reports temperature
// readings to onTemperature. The returned channel closes when in closes; done is
// closed after that.
func teeEvents(in <-chan sensor.Event, onTemperature func(float32), done chan<- struct{}) <-chan sensor.Event {
	out := make(chan sensor.Event, sensor.DefaultBufferSize)

	go func() {
		defer close(done)
		defer close(out)
		for e := range in {
			if e.Type == sensor.TypeTemperature && onTemperature != nil {
				onTemperature(e.Value)
			}
			out <- e
		}
	}()

	return out
}

// startMeasurementChain wires source events through the converter into the meter.
func startMeasurementChain(state *appState, source sensor.Source) *measurementChain {
	ctx, cancel := context.WithCancel(context.Background())
	teeDone := make(chan struct{})
	meterDone := make(chan struct{})

	events := teeEvents(source.Events(), func(celsius float32) {
		text := formatTemperature(celsius)
		fyne.Do(func() {
			state.tempLabel.SetText(text)
		})
	}, teeDone)

	samples := sample.NewConverter(chainBufferSize)(events)

	go func() {
		defer close(meterDone)
		state.pressureMeter.ProcessSamples(ctx, samples)
	}()

	return &measurementChain{
		source:         source,
		cancel:         cancel,
		teeGoroutine:   teeDone,
		meterGoroutine: meterDone,
	}
}

// closeMeasurementChain gracefully closes the measurement chain.
// Waits for all goroutines to finish.
func closeMeasurementChain(chain *measurementChain) {
	if chain == nil {
		return
	}

	// Stop the meter first so no callback fires after disconnect
	chain.cancel()
	if chain.meterGoroutine != nil {
		<-chain.meterGoroutine
	}

	// Closing the source closes its events channel, which ends the tee and the converter
	if chain.source != nil {
		if err := chain.source.Close(); err != nil {
			log.Printf("Error closing sensor: %v", err)
		}
	}
	if chain.teeGoroutine != nil {
		<-chain.teeGoroutine
	}
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.chain != nil {
		closeMeasurementChain(state.chain)
		state.chain = nil
		state.tempLabel.SetText("")
		updateConnectButton(state.connectBtn, false)
		log.Printf("Disconnected from %s", sourceName(state.cfg))
		return
	}

	source, err := newSource(state.cfg)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	if err := source.Connect(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", sourceName(state.cfg), err), state.window)
		return
	}
	log.Printf("Connected to %s", sourceName(state.cfg))

	state.chain = startMeasurementChain(state, source)
	updateConnectButton(state.connectBtn, true)
}

// reconnect restarts the chain when it is running, e.g. after the source changed.
func reconnect(state *appState) {
	if state.chain == nil {
		return
	}
	handleConnect(state) // disconnect
	handleConnect(state) // connect with the new settings
}

// updateConnectButton highlights the connect button while connected.
func updateConnectButton(btn *widget.Button, connected bool) {
	if connected {
		btn.Importance = widget.HighImportance
	} else {
		btn.Importance = widget.MediumImportance
	}
	btn.Refresh()
}

func formatTemperature(celsius float32) string {
	return fmt.Sprintf("%.1f °C", celsius)
}
