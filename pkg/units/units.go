package units

import (
	"strings"

	"github.com/chewxy/math32"
)

// Mode selects how a native hPa reading is displayed.
type Mode int

const (
	HPa Mode = iota
	MmHg
	Bar
	Atm
	Altitude

	modeCount
)

const (
	// SeaLevelHPa is the standard atmosphere reference used by the altitude formula.
	SeaLevelHPa = 1013.25

	mmHgPerHPa = 0.750062
	barPerHPa  = 0.001
	atmPerHPa  = 0.000986923
)

// mode describes one display unit. Every Mode has an entry, see TestModeTable.
type mode struct {
	label     string
	name      string
	precision int
	convert   func(hpa float32) float32
	needle    func(value float32) float32
}

var modes = [modeCount]mode{
	HPa: {
		label:     "hPa",
		name:      "native",
		precision: 1,
		convert:   func(hpa float32) float32 { return hpa },
		needle:    func(v float32) float32 { return (v - 950) * 0.9 },
	},
	MmHg: {
		label:     "mmHg",
		name:      "mmhg",
		precision: 1,
		convert:   func(hpa float32) float32 { return hpa * mmHgPerHPa },
		needle:    func(v float32) float32 { return (v - 700) * 1.2 },
	},
	Bar: {
		label:     "bar",
		name:      "bar",
		precision: 3,
		convert:   func(hpa float32) float32 { return hpa * barPerHPa },
		needle:    func(v float32) float32 { return (v - 0.9) * 1000 },
	},
	Atm: {
		label:     "atm",
		name:      "atm",
		precision: 3,
		convert:   func(hpa float32) float32 { return hpa * atmPerHPa },
		needle:    func(v float32) float32 { return (v - 0.9) * 1000 },
	},
	Altitude: {
		label:     "m",
		name:      "altitude",
		precision: 1,
		convert:   AltitudeFromPressure,
		needle:    func(v float32) float32 { return v * 2 },
	},
}

func (m Mode) info() mode {
	if m < 0 || m >= modeCount {
		return modes[HPa]
	}
	return modes[m]
}

// Label returns the unit label shown next to the value, e.g. "mmHg".
func (m Mode) Label() string {
	return m.info().label
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return m.info().label
}

// Precision returns the number of decimals used when displaying a value in this mode.
func (m Mode) Precision() int {
	return m.info().precision
}

// Modes returns all display modes in menu order.
func Modes() []Mode {
	result := make([]Mode, 0, modeCount)
	for m := HPa; m < modeCount; m++ {
		result = append(result, m)
	}
	return result
}

// ParseMode maps a configuration key to a Mode. Keys are unit labels ("hPa", "mmHg",
// "bar", "atm", "m") or mode names ("native", "altitude"), case-insensitive.
// Unknown keys fall back to HPa.
func ParseMode(key string) Mode {
	key = strings.TrimSpace(key)
	for m := HPa; m < modeCount; m++ {
		info := modes[m]
		if strings.EqualFold(key, info.label) || strings.EqualFold(key, info.name) {
			return m
		}
	}
	return HPa
}

// Convert converts a native hPa reading into the value and unit label for mode m.
// Invalid modes behave like HPa.
func Convert(hpa float32, m Mode) (float32, string) {
	info := m.info()
	return info.convert(hpa), info.label
}

// AltitudeFromPressure returns the barometric altitude in meters for a pressure in hPa,
// using the international standard atmosphere formula.
//
// Non-positive pressures have no physical altitude: the result is NaN and callers
// propagate it rather than clamping.
func AltitudeFromPressure(hpa float32) float32 {
	if !(hpa > 0) {
		return math32.NaN()
	}
	return 44330 * (1 - math32.Pow(hpa/SeaLevelHPa, 0.190284))
}
