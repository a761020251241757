// Package settings holds the minimap's render configuration and loads it from
// JSON files layered over built-in defaults.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"mapassist/pkg/engine/raster"
)

const (
	DefaultOutputSize        = 450
	DefaultRotationAngle     = 53.0
	DefaultMaxWaypointArrows = 1
	DefaultLabelFontSize     = 10.0
)

var (
	ErrInvalidOutputSize = errors.New("output size must not be negative")
	ErrInvalidColor      = errors.New("invalid color")
)

// Colors is the palette for icons, arrows and labels.
type Colors struct {
	DoorNext      color.RGBA
	DoorPrevious  color.RGBA
	Waypoint      color.RGBA
	Player        color.RGBA
	SuperChest    color.RGBA
	ArrowExit     color.RGBA
	ArrowWaypoint color.RGBA
	ArrowQuest    color.RGBA
	Label         color.RGBA
}

// RenderSettings configures one render call.
type RenderSettings struct {
	// OutputSize is the target length of the output's longer edge. Zero keeps
	// the background's native size.
	OutputSize int
	Colors     Colors
	Rotate     bool
	// RotationAngle is applied in degrees when Rotate is set.
	RotationAngle float64
	// MaxWaypointArrows caps how many waypoints get a directional arrow.
	MaxWaypointArrows int
	LabelFont         string
	LabelFontSize     float64
}

// Default returns the built-in settings.
func Default() RenderSettings {
	return RenderSettings{
		OutputSize: DefaultOutputSize,
		Colors: Colors{
			DoorNext:      color.RGBA{237, 107, 0, 255},
			DoorPrevious:  color.RGBA{255, 0, 149, 255},
			Waypoint:      color.RGBA{16, 140, 255, 255},
			Player:        color.RGBA{255, 255, 0, 255},
			SuperChest:    color.RGBA{23, 255, 0, 255},
			ArrowExit:     color.RGBA{237, 107, 0, 255},
			ArrowWaypoint: color.RGBA{16, 140, 255, 255},
			ArrowQuest:    color.RGBA{0, 255, 64, 255},
			Label:         color.RGBA{255, 255, 255, 255},
		},
		Rotate:            false,
		RotationAngle:     DefaultRotationAngle,
		MaxWaypointArrows: DefaultMaxWaypointArrows,
		LabelFont:         raster.FontBasic,
		LabelFontSize:     DefaultLabelFontSize,
	}
}

// Validate reports configuration errors.
func (s RenderSettings) Validate() error {
	if s.OutputSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOutputSize, s.OutputSize)
	}
	if s.MaxWaypointArrows < 0 {
		return fmt.Errorf("max waypoint arrows must not be negative: %d", s.MaxWaypointArrows)
	}
	return nil
}

// File is the on-disk settings format. Every field is optional and overrides
// the default when present.
type File struct {
	OutputSize        *int              `json:"outputSize,omitempty" jsonschema:"description=Target long-edge size in pixels,minimum=0"`
	Rotate            *bool             `json:"rotate,omitempty" jsonschema:"description=Rotate the finished minimap"`
	RotationAngle     *float64          `json:"rotationAngle,omitempty" jsonschema:"description=Rotation in degrees"`
	MaxWaypointArrows *int              `json:"maxWaypointArrows,omitempty" jsonschema:"minimum=0"`
	LabelFont         *string           `json:"labelFont,omitempty" jsonschema:"description=basic or goregular or a path to a TrueType file"`
	LabelFontSize     *float64          `json:"labelFontSize,omitempty"`
	Colors            map[string]string `json:"colors,omitempty" jsonschema:"description=Color overrides as #rrggbb or #rrggbbaa keyed by doorNext doorPrevious waypoint player superChest arrowExit arrowWaypoint arrowQuest label"`
}

// Parse decodes a settings document over the defaults.
func Parse(data []byte) (RenderSettings, error) {
	s := Default()
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	if err := f.apply(&s); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// Load reads a settings file. An empty path returns the defaults.
func Load(path string) (RenderSettings, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

func (f File) apply(s *RenderSettings) error {
	if f.OutputSize != nil {
		s.OutputSize = *f.OutputSize
	}
	if f.Rotate != nil {
		s.Rotate = *f.Rotate
	}
	if f.RotationAngle != nil {
		s.RotationAngle = *f.RotationAngle
	}
	if f.MaxWaypointArrows != nil {
		s.MaxWaypointArrows = *f.MaxWaypointArrows
	}
	if f.LabelFont != nil {
		s.LabelFont = *f.LabelFont
	}
	if f.LabelFontSize != nil {
		s.LabelFontSize = *f.LabelFontSize
	}

	slots := map[string]*color.RGBA{
		"doorNext":      &s.Colors.DoorNext,
		"doorPrevious":  &s.Colors.DoorPrevious,
		"waypoint":      &s.Colors.Waypoint,
		"player":        &s.Colors.Player,
		"superChest":    &s.Colors.SuperChest,
		"arrowExit":     &s.Colors.ArrowExit,
		"arrowWaypoint": &s.Colors.ArrowWaypoint,
		"arrowQuest":    &s.Colors.ArrowQuest,
		"label":         &s.Colors.Label,
	}
	for name, value := range f.Colors {
		slot, ok := slots[name]
		if !ok {
			return fmt.Errorf("unknown color %q", name)
		}
		c, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("color %q: %w", name, err)
		}
		*slot = c
	}
	return nil
}

// ParseColor parses #rrggbb or #rrggbbaa. The alpha is straight in the string
// and premultiplied in the result.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}
