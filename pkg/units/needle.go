package units

// NeedleAngle maps a displayed value in mode m to a gauge needle rotation in degrees,
// clockwise from the 12 o'clock position. The result is not clamped.
func NeedleAngle(value float32, m Mode) float32 {
	return m.info().needle(value)
}
