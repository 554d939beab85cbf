package main

import (
	"flag"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/barosense/pkg/config"
	"github.com/itohio/barosense/pkg/gauge"
	"github.com/itohio/barosense/pkg/meter"
	"github.com/itohio/barosense/pkg/scope"
	"github.com/itohio/barosense/pkg/units"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked sensor regardless of the configured source")
		sourceFlag = flag.String("source", "", "Sensor source override: mock, serial, mqtt or bmp280")
		unitFlag   = flag.String("unit", "", "Pressure unit override: hPa, mmHg, bar, atm or m")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *portFlag != "" {
		cfg.Sensor.Serial.Port = *portFlag
	}
	if *sourceFlag != "" {
		cfg.Sensor.Source = *sourceFlag
	}
	if *mockFlag {
		cfg.Sensor.Source = config.SourceMock
	}
	if *unitFlag != "" {
		cfg.Display.PressureUnit = *unitFlag
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.barosense")

	// Create main window
	window := application.NewWindow("BaroSense")
	window.Resize(fyne.NewSize(900, 700))
	window.CenterOnScreen()

	pressureMeter := meter.New(cfg)

	state := &appState{
		cfg:           cfg,
		configPath:    *configFlag,
		pressureMeter: pressureMeter,
		window:        window,
	}

	toolbar := createToolbar(state)

	state.gaugeWidget = gauge.New()
	state.scopeWidget = scope.New(pressureMeter.Capacity())
	state.scopeWidget.SetUnit(units.ParseMode(cfg.Display.PressureUnit).Label())

	state.valueText = canvas.NewText("--", theme.Color(theme.ColorNameForeground))
	state.valueText.TextSize = 48
	state.valueText.TextStyle = fyne.TextStyle{Monospace: true}
	state.unitText = canvas.NewText(units.ParseMode(cfg.Display.PressureUnit).Label(), theme.Color(theme.ColorNameForeground))
	state.unitText.TextSize = 24

	registerMeterCallbacks(state)

	readout := container.NewCenter(container.NewHBox(state.valueText, state.unitText))
	dial := container.NewBorder(nil, readout, nil, nil, state.gaugeWidget)

	content := container.NewBorder(
		toolbar,
		state.scopeWidget,
		nil,
		nil,
		dial,
	)

	window.SetContent(content)
	window.SetOnClosed(func() {
		closeMeasurementChain(state.chain)
		state.chain = nil
	})
	window.ShowAndRun()
}

// appState holds the application state.
type appState struct {
	cfg           *config.Config
	configPath    string
	pressureMeter *meter.Meter
	gaugeWidget   *gauge.Gauge
	scopeWidget   *scope.ScopeWidget
	valueText     *canvas.Text
	unitText      *canvas.Text
	tempLabel     *widget.Label
	window        fyne.Window
	connectBtn    *widget.Button
	chain         *measurementChain // Current measurement chain (nil if not connected)
}

// createToolbar creates the application toolbar with Connect and Settings buttons
// and the temperature readout on the right.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	state.tempLabel = widget.NewLabel("")

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(connectBtn, settingsBtn), // left
		state.tempLabel, // right
		nil,             // center (spacer)
	)
}

// registerMeterCallbacks routes meter notifications to the widgets on the main thread.
func registerMeterCallbacks(state *appState) {
	state.pressureMeter.OnDisplay(func(d meter.Display) {
		text := d.Text()
		fyne.Do(func() {
			state.valueText.Text = text
			state.valueText.Refresh()
			state.unitText.Text = d.Unit
			state.unitText.Refresh()
			state.gaugeWidget.SetAngle(d.Angle, state.cfg.Display.NeedleDuration)
		})
	})

	state.pressureMeter.OnGraph(func(readings []float32) {
		fyne.Do(func() {
			state.scopeWidget.UpdateData(readings)
		})
	})
}
