package minimap

import (
	"image"
	"image/color"

	"golang.org/x/image/font"

	"mapassist/pkg/engine/raster"
)

// Drawing geometry in output pixels.
const (
	IconSize        = 10
	ArrowWidth      = 5
	ArrowHeadLength = 15
	ArrowHeadWidth  = 15
	LeaderWidth     = 1
	// LabelOffset is the leader line's horizontal and vertical run; the label
	// text sits one more offset above the line's end.
	LabelOffset = 20
)

// Icon is the marker drawn for a point of interest.
type Icon int

const (
	IconDoorPrevious Icon = iota
	IconDoorNext
	IconWaypoint
	IconChest
	IconPlayer
)

func (i Icon) String() string {
	switch i {
	case IconDoorPrevious:
		return "door-previous"
	case IconDoorNext:
		return "door-next"
	case IconWaypoint:
		return "waypoint"
	case IconChest:
		return "chest"
	case IconPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Command is one immutable drawing step. Commands are applied in list order, so
// later commands sit on top of earlier ones.
type Command interface {
	Draw(dst *image.RGBA, face font.Face)
}

// IconCommand draws an icon with its top-left corner at At.
type IconCommand struct {
	Icon  Icon
	At    image.Point
	Color color.RGBA
}

func (c IconCommand) Draw(dst *image.RGBA, _ font.Face) {
	box := image.Rectangle{Min: c.At, Max: c.At.Add(image.Pt(IconSize, IconSize))}
	if c.Icon == IconChest {
		raster.FillCircle(dst, box, c.Color)
		return
	}
	raster.FillRect(dst, box, c.Color)
}

// ArrowCommand draws a directional arrow from the player toward a target.
type ArrowCommand struct {
	From  image.Point
	To    image.Point
	Color color.RGBA
}

func (c ArrowCommand) Draw(dst *image.RGBA, _ font.Face) {
	raster.Arrow(dst, c.From, c.To, ArrowWidth, ArrowHeadLength, ArrowHeadWidth, c.Color)
}

// LabelCommand draws a leader line from Anchor and the label text beyond it.
type LabelCommand struct {
	Anchor image.Point
	Text   string
	Color  color.RGBA
}

// LineEnd is where the leader line meets the label.
func (c LabelCommand) LineEnd() image.Point {
	return c.Anchor.Add(image.Pt(LabelOffset, -LabelOffset))
}

// TextOrigin is the top-left corner of the label text.
func (c LabelCommand) TextOrigin() image.Point {
	return c.Anchor.Add(image.Pt(LabelOffset, -2*LabelOffset))
}

func (c LabelCommand) Draw(dst *image.RGBA, face font.Face) {
	raster.Line(dst, c.LineEnd(), c.Anchor, LeaderWidth, c.Color)
	raster.Text(dst, face, c.TextOrigin(), c.Text, c.Color)
}

// Apply runs commands in order against dst.
func Apply(dst *image.RGBA, face font.Face, commands []Command) {
	for _, cmd := range commands {
		cmd.Draw(dst, face)
	}
}
