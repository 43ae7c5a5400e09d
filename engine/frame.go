package engine

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// GridSize is the edge length of the pad grid.
const GridSize = 8

// RGB is a linear-light color contribution. Contributions from all live
// entities are summed per cell, then Saturate maps each channel back into
// displayable range.
type RGB struct {
	R, G, B float64
}

func (c RGB) Add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

func (c RGB) Scale(k float64) RGB {
	return RGB{c.R * k, c.G * k, c.B * k}
}

// HueColor resolves a hue (degrees, wraps) to a fully saturated, half-value
// linear-light color. Saturation and value are fixed; hue is the only
// user-editable color parameter.
func HueColor(hue float64) RGB {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsv(h, 1, 0.5).LinearRgb()
	return RGB{r, g, b}
}

// Frame is one rendered grid of colors, indexed [y][x].
type Frame [GridSize][GridSize]RGB

// RGB255 converts a cell to sRGB display bytes.
func (f *Frame) RGB255(x, y int) [3]uint8 {
	c := f[y][x]
	r, g, b := colorful.LinearRgb(c.R, c.G, c.B).Clamped().RGB255()
	return [3]uint8{r, g, b}
}

// FrameSink receives one tone-mapped frame per tick.
type FrameSink interface {
	Frame(f *Frame) error
}
