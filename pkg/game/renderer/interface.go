package renderer

import (
	"context"
	"image"

	"mapassist/pkg/game/mapdata"
	"mapassist/pkg/game/settings"
)

// TextStyle represents the styling applied to status text around the minimap
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleArea
	StyleSubtle
	StyleWarning
)

// Frame is one finished minimap plus the status a presentation backend shows
// next to it.
type Frame struct {
	Image    *image.RGBA
	Area     mapdata.AreaID
	AreaName string
	Player   image.Point
	Anchor   image.Point
	// Level increases every time the player enters another level
	Level int
}

// Empty reports whether there is nothing to show yet.
func (f Frame) Empty() bool {
	return f.Image == nil || f.Image.Bounds().Empty()
}

// Source produces frames on demand.
type Source interface {
	Frame(s settings.RenderSettings) Frame
}

// Backend presents frames until ctx is done or the user quits.
// Implementations: tui (terminal preview) and ebiten (window).
type Backend interface {
	// Init prepares the backend (colors, fonts, window, etc.)
	Init() error

	// Run blocks presenting frames from src
	Run(ctx context.Context, src Source) error
}
