package pptx

import "math"

// EMU (English Metric Units) conversion helpers.
// 1 inch = 914400 EMU, 1 point = 12700 EMU, 1 CSS pixel = 9525 EMU at 96 DPI.

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	// PixelsPerInch is the CSS reference resolution deck layouts are authored in.
	PixelsPerInch = 96
	emuPerPixel   = emuPerInch / PixelsPerInch
	// maxEMU is the maximum safe EMU value to prevent overflow.
	maxEMU = math.MaxInt64 / 2
)

// Inch converts inches to EMU. Clamps to safe range.
func Inch(n float64) int64 {
	return clampEMU(n * emuPerInch)
}

// Point converts points to EMU.
func Point(n float64) int64 {
	return clampEMU(n * emuPerPoint)
}

// Pixel converts CSS pixels (96 DPI) to EMU.
func Pixel(n float64) int64 {
	return clampEMU(n * emuPerPixel)
}

// EMUToInch converts EMU to inches.
func EMUToInch(emu int64) float64 {
	return float64(emu) / emuPerInch
}

// EMUToPoint converts EMU to points.
func EMUToPoint(emu int64) float64 {
	return float64(emu) / emuPerPoint
}

// EMUToPixel converts EMU to CSS pixels.
func EMUToPixel(emu int64) float64 {
	return float64(emu) / emuPerPixel
}

// clampEMU converts a float64 to int64, clamping to prevent overflow.
func clampEMU(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(math.Round(v))
}
