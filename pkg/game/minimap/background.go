package minimap

import (
	"image"

	"mapassist/pkg/engine/raster"
	"mapassist/pkg/game/tiles"
)

// Background is the cropped tile raster of one level.
type Background struct {
	Image *image.RGBA
	// Offset is the tile position of Image's top-left pixel within the full grid.
	Offset image.Point
}

// Empty reports whether the background has no painted pixels.
func (b *Background) Empty() bool {
	return b == nil || raster.Empty(b.Image)
}

// Size returns the background's pixel dimensions.
func (b *Background) Size() (width, height int) {
	if b.Empty() {
		return 0, 0
	}
	r := b.Image.Bounds()
	return r.Dx(), r.Dy()
}

// paintGrid rasterizes grid one pixel per tile. Rows shorter than the longest
// one leave their missing cells transparent.
func paintGrid(grid [][]int) *image.RGBA {
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	img := raster.New(width, len(grid))
	if raster.Empty(img) {
		return img
	}
	for y, row := range grid {
		for x, code := range row {
			if !tiles.Paints(code) {
				continue
			}
			img.SetRGBA(x, y, tiles.ColorFor(code))
		}
	}
	return img
}

// buildBackground paints and crops a level's grid.
func buildBackground(grid [][]int) *Background {
	cropped, offset := raster.CropToContent(paintGrid(grid))
	return &Background{Image: cropped, Offset: offset}
}
