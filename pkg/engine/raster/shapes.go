package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle
const kappa = 0.5522847498

// FillRect paints a solid rectangle over dst.
func FillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// FillCircle paints a solid ellipse inscribed in r.
func FillCircle(dst *image.RGBA, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	z := newRasterizer(dst)
	if z == nil {
		return
	}
	cx := float32(r.Min.X) + float32(r.Dx())/2
	cy := float32(r.Min.Y) + float32(r.Dy())/2
	rx := float32(r.Dx()) / 2
	ry := float32(r.Dy()) / 2
	kx, ky := rx*kappa, ry*kappa

	z.MoveTo(cx+rx, cy)
	z.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	z.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	z.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	z.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// Line strokes a straight segment of the given width.
func Line(dst *image.RGBA, from, to image.Point, width float32, c color.Color) {
	z := newRasterizer(dst)
	if z == nil {
		return
	}
	fx, fy := pt(from)
	tx, ty := pt(to)
	if !appendSegment(z, fx, fy, tx, ty, width) {
		return
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// Arrow strokes a segment from -> to and finishes it with a triangular head
// whose tip lies exactly on to. A shaft shorter than the head is drawn as head only.
func Arrow(dst *image.RGBA, from, to image.Point, width, headLength, headWidth float32, c color.Color) {
	z := newRasterizer(dst)
	if z == nil {
		return
	}
	fx, fy := pt(from)
	tx, ty := pt(to)
	dx, dy := tx-fx, ty-fy
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length

	head := headLength
	if head > length {
		head = length
	}
	bx, by := tx-ux*head, ty-uy*head
	if length > head {
		appendSegment(z, fx, fy, bx, by, width)
	}

	nx, ny := -uy*headWidth/2, ux*headWidth/2
	z.MoveTo(tx, ty)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func newRasterizer(dst *image.RGBA) *vector.Rasterizer {
	if Empty(dst) {
		return nil
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	return z
}

// appendSegment adds a closed quad covering the stroke from (ax,ay) to (bx,by).
func appendSegment(z *vector.Rasterizer, ax, ay, bx, by, width float32) bool {
	dx, dy := bx-ax, by-ay
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return false
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
	return true
}

func pt(p image.Point) (float32, float32) {
	return float32(p.X), float32(p.Y)
}
