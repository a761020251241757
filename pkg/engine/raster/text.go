package raster

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Built-in font names accepted by LoadFace. Anything else is treated as a path
// to a TrueType file.
const (
	FontBasic     = "basic"
	FontGoRegular = "goregular"
)

type faceKey struct {
	name string
	size float64
}

var (
	faceCache   = map[faceKey]font.Face{}
	faceCacheMu sync.Mutex
)

// LoadFace returns a cached font face for name at size points. The basic face
// has a fixed size and ignores the size argument.
func LoadFace(name string, size float64) (font.Face, error) {
	if name == "" || name == FontBasic {
		return basicfont.Face7x13, nil
	}
	if size <= 0 {
		size = 10
	}

	key := faceKey{name: name, size: size}
	faceCacheMu.Lock()
	defer faceCacheMu.Unlock()
	if face, ok := faceCache[key]; ok {
		return face, nil
	}

	ttf := goregular.TTF
	if name != FontGoRegular {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read font %q: %w", name, err)
		}
		ttf = data
	}
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", name, err)
	}
	face := truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faceCache[key] = face
	return face, nil
}

// Text draws s with its top-left corner at origin. Text running past the edge
// of dst is clipped, never wrapped.
func Text(dst *image.RGBA, face font.Face, origin image.Point, s string, c color.Color) {
	if Empty(dst) || s == "" {
		return
	}
	if face == nil {
		face = basicfont.Face7x13
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(origin.X), Y: fixed.I(origin.Y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}

// TextWidth returns the advance of s in pixels.
func TextWidth(face font.Face, s string) int {
	if face == nil {
		face = basicfont.Face7x13
	}
	return font.MeasureString(face, s).Ceil()
}
