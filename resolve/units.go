// Package resolve turns raw deck values into concrete drawing values: pixel
// lengths into slide units, style cascades into colors and fonts, and
// arbitrary layouts into safe rectangles. Every function is total.
package resolve

import (
	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
)

// PixelsPerInch is the CSS reference density deck layouts are authored in.
const PixelsPerInch = 96

// PxToInch converts a pixel length to inches. Invalid input yields 1.
func PxToInch(v deck.Number) float64 {
	f, ok := v.Float()
	if !ok {
		return 1
	}
	return f / PixelsPerInch
}

// PxToEMU converts a pixel length to English Metric Units.
func PxToEMU(v deck.Number) int64 {
	return pptx.Inch(PxToInch(v))
}

// Box is a slide rectangle in EMU.
type Box struct {
	X, Y, W, H int64
}

// BoxFromLayout sanitizes l and converts it to EMU.
func BoxFromLayout(l deck.Layout) Box {
	l = SanitizeLayout(l)
	return Box{
		X: PxToEMU(l.X),
		Y: PxToEMU(l.Y),
		W: PxToEMU(l.Width),
		H: PxToEMU(l.Height),
	}
}

// Apply positions shape at the box.
func (b Box) Apply(shape pptx.Shape) {
	base, ok := shape.(interface {
		SetBounds(x, y, w, h int64) *pptx.BaseShape
	})
	if ok {
		base.SetBounds(b.X, b.Y, b.W, b.H)
	}
}

// Inset shrinks the box by d on every side, keeping at least one EMU.
func (b Box) Inset(d int64) Box {
	out := Box{X: b.X + d, Y: b.Y + d, W: b.W - 2*d, H: b.H - 2*d}
	if out.W < 1 {
		out.X, out.W = b.X, b.W
	}
	if out.H < 1 {
		out.Y, out.H = b.Y, b.H
	}
	return out
}

// SplitV cuts the box horizontally; the top part gets frac of the height.
func (b Box) SplitV(frac float64) (top, bottom Box) {
	frac = clampFrac(frac)
	th := int64(float64(b.H) * frac)
	return Box{X: b.X, Y: b.Y, W: b.W, H: th}, Box{X: b.X, Y: b.Y + th, W: b.W, H: b.H - th}
}

// SplitH cuts the box vertically; the left part gets frac of the width.
func (b Box) SplitH(frac float64) (left, right Box) {
	frac = clampFrac(frac)
	lw := int64(float64(b.W) * frac)
	return Box{X: b.X, Y: b.Y, W: lw, H: b.H}, Box{X: b.X + lw, Y: b.Y, W: b.W - lw, H: b.H}
}

// Grid divides the box into rows×cols cells separated by gap, row major.
func (b Box) Grid(rows, cols int, gap int64) []Box {
	if rows < 1 || cols < 1 {
		return nil
	}
	cw := (b.W - gap*int64(cols-1)) / int64(cols)
	ch := (b.H - gap*int64(rows-1)) / int64(rows)
	if cw < 1 || ch < 1 {
		gap = 0
		cw, ch = max(b.W/int64(cols), 1), max(b.H/int64(rows), 1)
	}
	cells := make([]Box, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells = append(cells, Box{
				X: b.X + int64(c)*(cw+gap),
				Y: b.Y + int64(r)*(ch+gap),
				W: cw,
				H: ch,
			})
		}
	}
	return cells
}

func clampFrac(f float64) float64 {
	if f != f || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
