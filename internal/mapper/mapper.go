// Package mapper converts tracking-space coordinates into viewport pixels.
//
// The tracking sensor reports positions in a bounded physical volume (roughly
// ±300 tracking units around the device) with Y increasing upward. Screens put
// the origin top-left with Y increasing downward, so the vertical axis is
// inverted during mapping. Mapping is a pure function: no clamping is applied,
// positions outside the assumed volume map off-screen.
package mapper

// Calibration describes the virtual tracking window projected onto the
// viewport. The default values reproduce the constants the original display
// pages shipped with; they are a calibration surface, not derived quantities.
type Calibration struct {
	// Window is the width and height of the virtual tracking window in
	// tracking units.
	Window float64
	// OffsetX shifts tracking X before scaling (0 for a window anchored at
	// x=0, 300 for one centered on the sensor).
	OffsetX float64
	// OffsetY is the tracking Y mapped to the top edge of the viewport.
	OffsetY float64
}

// Viewport is the pixel dimensions of the display surface.
type Viewport struct {
	Width  float64
	Height float64
}

// HandViewCalibration is the single-hand page mapping: x/600, y inverted
// around 350.
func HandViewCalibration() Calibration {
	return Calibration{Window: 600, OffsetX: 0, OffsetY: 350}
}

// TrackViewCalibration is the two-hand page mapping: both axes centered on
// ±300.
func TrackViewCalibration() Calibration {
	return Calibration{Window: 600, OffsetX: 300, OffsetY: 300}
}

// Map projects a tracking-space (x, y) pair onto the viewport.
func (c Calibration) Map(x, y float64, vp Viewport) (screenX, screenY float64) {
	screenX = (x + c.OffsetX) / c.Window * vp.Width
	screenY = (c.OffsetY - y) / c.Window * vp.Height
	return screenX, screenY
}
