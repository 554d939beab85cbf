package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/barosense/pkg/config"
	"github.com/itohio/barosense/pkg/sensor"
	"github.com/itohio/barosense/pkg/units"
)

// intervalOptions are the update intervals offered in the settings dialog, in milliseconds.
var intervalOptions = []string{"100", "250", "500", "1000", "2000", "5000"}

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createDisplayTab(state),
		createSourceTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(600, 500))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(600, 500))
	d.Show()
}

// saveConfig writes the configuration and reports failures in a dialog.
func saveConfig(state *appState) bool {
	if err := state.cfg.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
		return false
	}
	return true
}

// unitOptions returns the unit labels in menu order.
func unitOptions() []string {
	modes := units.Modes()
	options := make([]string, 0, len(modes))
	for _, m := range modes {
		options = append(options, m.Label())
	}
	return options
}

// withCurrent appends current to options unless it is already listed or empty.
func withCurrent(options []string, current string) []string {
	if current == "" {
		return options
	}
	for _, opt := range options {
		if opt == current {
			return options
		}
	}
	return append(options, current)
}

// createDisplayTab creates the tab with the reloadable display options.
func createDisplayTab(state *appState) *container.TabItem {
	intervalSelect := widget.NewSelect(withCurrent(intervalOptions, state.cfg.Display.UpdateInterval), nil)
	intervalSelect.SetSelected(state.cfg.Display.UpdateInterval)

	unitSelect := widget.NewSelect(unitOptions(), nil)
	unitSelect.SetSelected(units.ParseMode(state.cfg.Display.PressureUnit).Label())

	needleEntry := widget.NewEntry()
	needleEntry.SetText(state.cfg.Display.NeedleDuration.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Update Interval (ms)", Widget: intervalSelect},
			{Text: "Pressure Unit", Widget: unitSelect},
			{Text: "Needle Transition", Widget: needleEntry},
		},
		OnSubmit: func() {
			if intervalSelect.Selected != "" {
				state.cfg.Display.UpdateInterval = intervalSelect.Selected
			}
			if unitSelect.Selected != "" {
				state.cfg.Display.PressureUnit = unitSelect.Selected
			}
			if nd, err := time.ParseDuration(needleEntry.Text); err == nil && nd >= 0 {
				state.cfg.Display.NeedleDuration = nd
			}
			if !saveConfig(state) {
				return
			}

			// Takes effect inside the running chain, no restart needed
			state.pressureMeter.Reload(state.cfg.Display)
			state.scopeWidget.SetUnit(units.ParseMode(state.cfg.Display.PressureUnit).Label())
		},
	}

	return container.NewTabItem("Display", form)
}

// createSourceTab creates the sensor source configuration tab.
func createSourceTab(state *appState) *container.TabItem {
	sourceSelect := widget.NewSelect([]string{
		config.SourceMock,
		config.SourceSerial,
		config.SourceMQTT,
		config.SourceBMP,
	}, nil)
	sourceSelect.SetSelected(state.cfg.Sensor.Source)

	portSelect, portMap := createPortSelect(state.cfg.Sensor.Serial.Port)

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(state.cfg.Sensor.Serial.BaudRate))

	brokerEntry := widget.NewEntry()
	brokerEntry.SetText(state.cfg.Sensor.MQTT.Broker)

	topicEntry := widget.NewEntry()
	topicEntry.SetText(state.cfg.Sensor.MQTT.Topic)

	busEntry := widget.NewEntry()
	busEntry.SetPlaceHolder("first available")
	busEntry.SetText(state.cfg.Sensor.BMP.Bus)

	addressEntry := widget.NewEntry()
	addressEntry.SetText(fmt.Sprintf("0x%02x", state.cfg.Sensor.BMP.Address))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Source", Widget: sourceSelect},
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
			{Text: "MQTT Broker", Widget: brokerEntry},
			{Text: "MQTT Topic", Widget: topicEntry},
			{Text: "I2C Bus", Widget: busEntry},
			{Text: "I2C Address", Widget: addressEntry},
		},
		OnSubmit: func() {
			before := state.cfg.Sensor

			if sourceSelect.Selected != "" {
				state.cfg.Sensor.Source = sourceSelect.Selected
			}
			if portSelect.Selected != "" {
				selectedPort := portMap[portSelect.Selected]
				if selectedPort == "" {
					selectedPort = portSelect.Selected // Fallback to selected text
				}
				state.cfg.Sensor.Serial.Port = selectedPort
			}
			if baud, err := strconv.Atoi(baudEntry.Text); err == nil && baud > 0 {
				state.cfg.Sensor.Serial.BaudRate = baud
			}
			if brokerEntry.Text != "" {
				state.cfg.Sensor.MQTT.Broker = brokerEntry.Text
			}
			if topicEntry.Text != "" {
				state.cfg.Sensor.MQTT.Topic = topicEntry.Text
			}
			state.cfg.Sensor.BMP.Bus = busEntry.Text
			if addr, err := strconv.ParseUint(addressEntry.Text, 0, 16); err == nil {
				state.cfg.Sensor.BMP.Address = uint16(addr)
			}

			if !saveConfig(state) {
				return
			}

			// If the source changed while connected, restart the measurement chain
			if before != state.cfg.Sensor {
				reconnect(state)
			}
		},
	}

	return container.NewTabItem("Source", form)
}

// createPortSelect lists the serial ports, keeping current selectable even if it is not present.
func createPortSelect(currentPort string) (*widget.Select, map[string]string) {
	ports, err := sensor.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}
	return portSelect, portMap
}

// createMockTab creates the Mock sensor configuration tab.
func createMockTab(state *appState) *container.TabItem {
	baseEntry := widget.NewEntry()
	baseEntry.SetText(fmt.Sprintf("%.2f", state.cfg.Mock.BasePressure))

	amplitudeEntry := widget.NewEntry()
	amplitudeEntry.SetText(fmt.Sprintf("%.2f", state.cfg.Mock.Amplitude))

	periodEntry := widget.NewEntry()
	periodEntry.SetText(state.cfg.Mock.Period.String())

	noiseLevelEntry := widget.NewEntry()
	noiseLevelEntry.SetText(fmt.Sprintf("%.3f", state.cfg.Mock.NoiseLevel))

	sampleRateEntry := widget.NewEntry()
	sampleRateEntry.SetText(state.cfg.Mock.SampleRate.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Base Pressure (hPa)", Widget: baseEntry},
			{Text: "Amplitude (hPa)", Widget: amplitudeEntry},
			{Text: "Period", Widget: periodEntry},
			{Text: "Noise Level (hPa)", Widget: noiseLevelEntry},
			{Text: "Sample Rate", Widget: sampleRateEntry},
		},
		OnSubmit: func() {
			if base, err := strconv.ParseFloat(baseEntry.Text, 64); err == nil {
				state.cfg.Mock.BasePressure = base
			}
			if amp, err := strconv.ParseFloat(amplitudeEntry.Text, 64); err == nil {
				state.cfg.Mock.Amplitude = amp
			}
			if p, err := time.ParseDuration(periodEntry.Text); err == nil {
				state.cfg.Mock.Period = p
			}
			if nl, err := strconv.ParseFloat(noiseLevelEntry.Text, 64); err == nil {
				state.cfg.Mock.NoiseLevel = nl
			}
			if sr, err := time.ParseDuration(sampleRateEntry.Text); err == nil && sr > 0 {
				state.cfg.Mock.SampleRate = sr
			}
			if !saveConfig(state) {
				return
			}
			if state.cfg.Sensor.Source == config.SourceMock {
				reconnect(state)
			}
		},
	}

	return container.NewTabItem("Mock", form)
}
