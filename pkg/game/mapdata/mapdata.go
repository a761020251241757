// Package mapdata holds the per-level map data the minimap is drawn from and
// decodes it from the map server's JSON documents.
package mapdata

import (
	"errors"
	"image"

	"mapassist/pkg/game/objects"
)

// AreaID identifies a level.
type AreaID int

// ErrNoGrid is returned when a level document carries no tile rows.
var ErrNoGrid = errors.New("level has no tile grid")

// AdjacentLevel is a neighbouring level and the points leading to it. Exits may
// be empty when the neighbour has no reachable entrance on this level.
type AdjacentLevel struct {
	Area  AreaID
	Exits []image.Point
}

// ObjectGroup lists every position of one object type on the level, in the order
// the map server reported them. Positions is never empty.
type ObjectGroup struct {
	ID        objects.ID
	Positions []image.Point
}

// LevelData is one level's map. AdjacentLevels and Objects keep the order of the
// source document: the first adjacent level is drawn as the way back and the
// first waypoint found is the one that gets an arrow.
type LevelData struct {
	Area           AreaID
	Grid           [][]int
	Origin         image.Point
	AdjacentLevels []AdjacentLevel
	Objects        []ObjectGroup
}

// Size returns the tile grid's width (longest row) and height.
func (l *LevelData) Size() (width, height int) {
	if l == nil {
		return 0, 0
	}
	for _, row := range l.Grid {
		if len(row) > width {
			width = len(row)
		}
	}
	return width, len(l.Grid)
}

// GameStateSnapshot is the live player state for one frame.
type GameStateSnapshot struct {
	PlayerX int    `json:"playerX"`
	PlayerY int    `json:"playerY"`
	Area    AreaID `json:"area"`
}

// Position returns the player's world-space position.
func (s GameStateSnapshot) Position() image.Point {
	return image.Pt(s.PlayerX, s.PlayerY)
}
