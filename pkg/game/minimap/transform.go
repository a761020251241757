package minimap

import (
	"image"
	"math"
)

// ScaleFactor returns the uniform scale that fits a width x height background
// into outputSize pixels along its longer edge. A degenerate background or a
// zero result yields exactly 1.
func ScaleFactor(width, height, outputSize int) float64 {
	longest := width
	if height > longest {
		longest = height
	}
	if longest <= 0 {
		return 1
	}
	scale := float64(outputSize) / float64(longest)
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return 1
	}
	return scale
}

// WorldToOutput maps a world-space point to output pixels. Every icon, arrow
// and label goes through this one formula so nothing drifts off the background.
func WorldToOutput(p, origin image.Point, scale float64) image.Point {
	return image.Pt(
		int(math.Round(float64(p.X-origin.X)*scale)),
		int(math.Round(float64(p.Y-origin.Y)*scale)),
	)
}

// transform is the world -> output mapping for one frame.
type transform struct {
	// origin is the world position of the cropped background's top-left pixel
	origin image.Point
	scale  float64
	width  int
	height int
}

func newTransform(bg *Background, levelOrigin image.Point, outputSize int) transform {
	w, h := bg.Size()
	scale := ScaleFactor(w, h, outputSize)
	return transform{
		origin: levelOrigin.Add(bg.Offset),
		scale:  scale,
		width:  scaledLength(w, scale),
		height: scaledLength(h, scale),
	}
}

func (t transform) apply(p image.Point) image.Point {
	return WorldToOutput(p, t.origin, t.scale)
}

func scaledLength(n int, scale float64) int {
	if n <= 0 {
		return 0
	}
	scaled := int(math.Round(float64(n) * scale))
	if scaled < 1 {
		return 1
	}
	return scaled
}
