// Package raster provides the pixel-buffer primitives the minimap is composed with:
// allocation, cropping to content, resizing, rotation and simple shape drawing.
// Every function returns a new buffer or draws into the one it is given; none of
// them keeps state between calls.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// New allocates a fully transparent raster. Negative sizes are treated as zero.
func New(width, height int) *image.RGBA {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// Empty reports whether img has no pixels.
func Empty(img image.Image) bool {
	return img == nil || img.Bounds().Empty()
}

// Clone returns a copy of img rebased to the origin.
func Clone(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := New(b.Dx(), b.Dy())
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// ContentBounds returns the smallest rectangle holding every pixel with a
// non-zero alpha channel. The result is empty when nothing is painted.
func ContentBounds(img *image.RGBA) image.Rectangle {
	b := img.Bounds()
	if b.Empty() {
		return image.Rectangle{}
	}
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X-1, y)+4]
		for x := 0; x < b.Dx(); x++ {
			if row[x*4+3] == 0 {
				continue
			}
			px := b.Min.X + x
			if px < minX {
				minX = px
			}
			if px > maxX {
				maxX = px
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// CropToContent returns a copy of img trimmed to ContentBounds together with the
// position of the kept rectangle inside img. A raster with no painted pixels
// crops to an empty raster at offset (0,0).
func CropToContent(img *image.RGBA) (*image.RGBA, image.Point) {
	if Empty(img) {
		return New(0, 0), image.Point{}
	}
	content := ContentBounds(img)
	if content.Empty() {
		return New(0, 0), image.Point{}
	}
	out := New(content.Dx(), content.Dy())
	draw.Draw(out, out.Bounds(), img, content.Min, draw.Src)
	return out, content.Min.Sub(img.Bounds().Min)
}

// Resize scales img to width x height with nearest-neighbour sampling so tile
// edges stay crisp.
func Resize(img *image.RGBA, width, height int) *image.RGBA {
	out := New(width, height)
	if Empty(img) || out.Bounds().Empty() {
		return out
	}
	draw.NearestNeighbor.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// Rotate turns img by angleDegrees (clockwise on screen) about its center.
// When expand is false the canvas keeps its size and corners may clip; when it
// is true the canvas grows to hold the whole rotated image. Exposed areas are
// filled with background.
func Rotate(img *image.RGBA, angleDegrees float64, expand bool, background color.Color) *image.RGBA {
	if Empty(img) {
		return New(0, 0)
	}
	turn := math.Mod(angleDegrees, 360)
	if turn == 0 && !expand {
		return Clone(img)
	}

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	rad := turn * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)

	outW, outH := b.Dx(), b.Dy()
	if expand {
		outW = ceil(math.Abs(w*cos) + math.Abs(h*sin))
		outH = ceil(math.Abs(w*sin) + math.Abs(h*cos))
	}
	out := New(outW, outH)
	if background != nil {
		draw.Draw(out, out.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}

	// source center -> destination center, rotated in between
	scx, scy := float64(b.Min.X)+w/2, float64(b.Min.Y)+h/2
	dcx, dcy := float64(outW)/2, float64(outH)/2
	s2d := f64.Aff3{
		cos, -sin, dcx - cos*scx + sin*scy,
		sin, cos, dcy - sin*scx - cos*scy,
	}
	draw.BiLinear.Transform(out, s2d, img, b, draw.Over, nil)
	return out
}

// ceil rounds up, ignoring the float noise sin/cos leave on exact right angles.
func ceil(v float64) int {
	return int(math.Ceil(v - 1e-9))
}
