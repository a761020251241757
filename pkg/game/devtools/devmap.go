// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"image"

	"mapassist/pkg/game/mapdata"
	"mapassist/pkg/game/objects"
	"mapassist/pkg/game/tiles"
)

// DevArea is the area code reported for the developer level.
const DevArea mapdata.AreaID = 2

// DevLevel returns a hard-coded 80x60 developer testing level: an off-map
// margin, a walled floor with a blocking strip, two exits, and one object of
// every drawn category placed with room between them.
func DevLevel() *mapdata.LevelData {
	const (
		rows   = 60
		cols   = 80
		margin = 4
	)

	grid := make([][]int, rows)
	for row := range grid {
		grid[row] = make([]int, cols)
		for col := range grid[row] {
			switch {
			case row < margin || col < margin || row >= rows-margin || col >= cols-margin:
				grid[row][col] = tiles.OffMap
			case row == margin || col == margin || row == rows-margin-1 || col == cols-margin-1:
				grid[row][col] = 1
			case row == rows/2 && col > cols/3 && col < 2*cols/3:
				grid[row][col] = tiles.Blocking
			default:
				grid[row][col] = 0
			}
		}
	}

	origin := image.Pt(5000, 5600)
	at := func(col, row int) image.Point { return origin.Add(image.Pt(col, row)) }

	return &mapdata.LevelData{
		Area:   DevArea,
		Grid:   grid,
		Origin: origin,
		AdjacentLevels: []mapdata.AdjacentLevel{
			{Area: 1, Exits: []image.Point{at(margin+1, rows/2)}},
			{Area: 3, Exits: []image.Point{at(cols-margin-2, 10)}},
			{Area: 17},
		},
		Objects: []mapdata.ObjectGroup{
			{ID: objects.ID(119), Positions: []image.Point{at(20, 15)}},
			{ID: objects.ID(156), Positions: []image.Point{at(60, 45)}},
			{ID: objects.ID(61), Positions: []image.Point{at(40, 50)}},
			{ID: objects.ID(266), Positions: []image.Point{at(15, 45)}},
			{ID: objects.ID(580), Positions: []image.Point{at(30, 20), at(50, 20), at(50, 40)}},
			{ID: objects.ID(1), Positions: []image.Point{at(45, 12)}},
		},
	}
}

// DevState places the player in the middle of DevLevel.
func DevState() mapdata.GameStateSnapshot {
	l := DevLevel()
	w, h := l.Size()
	return mapdata.GameStateSnapshot{
		PlayerX: l.Origin.X + w/2,
		PlayerY: l.Origin.Y + h/2 - 8,
		Area:    DevArea,
	}
}
