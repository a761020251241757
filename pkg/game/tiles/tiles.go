// Package tiles maps the map server's integer tile-type codes to minimap colors.
package tiles

import "image/color"

// Tile codes with special meaning. Every other code is an ordinary terrain tile.
const (
	OffMap   = -1 // outside the level's walkable rectangle
	Blocking = 5  // non-walkable marker inside the level
)

// Unknown is used for any code missing from the table.
var Unknown = color.RGBA{255, 255, 255, 255}

var palette = map[int]color.RGBA{
	0:  {0, 0, 0, 255},
	1:  {70, 51, 41, 255}, // wall
	2:  {10, 51, 23, 255},
	3:  {255, 0, 255, 255},
	4:  {0, 255, 255, 255},
	6:  {80, 51, 33, 255},
	7:  {255, 255, 255, 255},
	16: {168, 56, 50, 255},
	17: {255, 51, 255, 255},
	19: {0, 51, 255, 255},
	20: {70, 51, 41, 255},
	21: {255, 0, 255, 255},
	23: {0, 0, 255, 255},
	33: {0, 0, 255, 255},
	37: {50, 51, 23, 255},
	39: {20, 11, 33, 255},
	53: {10, 11, 43, 255},
}

// Paints reports whether a tile of this code is drawn at all. Off-map and
// blocking tiles are left at the raster's transparent fill.
func Paints(code int) bool {
	return code != OffMap && code != Blocking
}

// ColorFor returns the color for a tile code. It is total: unpainted codes are
// fully transparent and unrecognized codes are opaque white.
func ColorFor(code int) color.RGBA {
	if !Paints(code) {
		return color.RGBA{}
	}
	if c, ok := palette[code]; ok {
		return c
	}
	return Unknown
}
