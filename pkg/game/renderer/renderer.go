// Package renderer connects the minimap compositor to presentation backends.
package renderer

import (
	"mapassist/pkg/game/mapdata"
	"mapassist/pkg/game/minimap"
	"mapassist/pkg/game/settings"
)

// LevelSource reports the level to draw and how many level changes happened.
type LevelSource interface {
	Current() (*mapdata.LevelData, mapdata.GameStateSnapshot)
	Changes() int
}

// AreaNamer resolves area codes for the status line.
type AreaNamer interface {
	Area(id int) string
}

// Compositor renders frames from the tracked level.
type Compositor struct {
	Minimap *minimap.Renderer
	Levels  LevelSource
	Names   AreaNamer
}

// Frame renders the current level. It returns an empty frame until a level
// has been loaded.
func (c *Compositor) Frame(s settings.RenderSettings) Frame {
	level, state := c.Levels.Current()
	if level == nil {
		return Frame{Level: c.Levels.Changes()}
	}

	area := level.Area
	if state.Area != 0 {
		area = state.Area
	}
	f := Frame{
		Image:  c.Minimap.Render(level, state, s),
		Area:   area,
		Player: state.Position(),
		Anchor: c.Minimap.LastLabelAnchor(),
		Level:  c.Levels.Changes(),
	}
	if c.Names != nil {
		f.AreaName = c.Names.Area(int(area))
	}
	return f
}

// Invalidate drops the cached background so the next frame rebuilds it.
func (c *Compositor) Invalidate() {
	c.Minimap.Invalidate()
}
