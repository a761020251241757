// Package minimap composes the annotated minimap frame: a cropped tile
// background scaled to the output size, with exits, points of interest, the
// player and directional arrows with labels drawn on top.
package minimap

import (
	"image"
	"image/color"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"

	"mapassist/pkg/engine/raster"
	"mapassist/pkg/game/mapdata"
	"mapassist/pkg/game/names"
	"mapassist/pkg/game/settings"
)

// Renderer owns the background cache and the last label anchor. The cache
// holds exactly one level and is rebuilt when a different level is rendered
// or after Invalidate. A Renderer is safe for concurrent use.
type Renderer struct {
	mu sync.Mutex

	// bg was painted from builtFrom
	bg        *Background
	builtFrom *mapdata.LevelData

	anchor   image.Point
	builds   int
	badFonts map[string]bool

	namer Namer
	log   logrus.FieldLogger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithNamer replaces the embedded name tables.
func WithNamer(n Namer) Option {
	return func(r *Renderer) {
		if n != nil {
			r.namer = n
		}
	}
}

// WithLogger sets the logger used for render warnings.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a Renderer with an empty cache.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		namer:    names.Default(),
		log:      logrus.StandardLogger(),
		badFonts: map[string]bool{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws one frame for level as seen by state. It never fails: an empty
// grid yields an empty raster and unknown ids are labelled with their number.
func (r *Renderer) Render(level *mapdata.LevelData, state mapdata.GameStateSnapshot, s settings.RenderSettings) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	bg := r.background(level)
	if bg.Empty() {
		return raster.New(0, 0)
	}

	tr := newTransform(bg, origin(level), s.OutputSize)
	frame := raster.Resize(bg.Image, tr.width, tr.height)
	if level == nil {
		return frame
	}

	plan := planOverlay(level, state, s, tr, r.namer)
	Apply(frame, r.face(s), plan.commands)
	if plan.anchored {
		r.anchor = plan.anchor
	}

	if s.Rotate {
		frame = raster.Rotate(frame, s.RotationAngle, false, color.Transparent)
	}
	return frame
}

// Plan returns the draw commands Render would apply for this frame, without
// touching the label anchor.
func (r *Renderer) Plan(level *mapdata.LevelData, state mapdata.GameStateSnapshot, s settings.RenderSettings) []Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	bg := r.background(level)
	if bg.Empty() || level == nil {
		return nil
	}
	tr := newTransform(bg, level.Origin, s.OutputSize)
	return planOverlay(level, state, s, tr, r.namer).commands
}

// Background returns the cached background, building it from level on a miss.
func (r *Renderer) Background(level *mapdata.LevelData) *Background {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.background(level)
}

// Invalidate drops the cached background and resets the label anchor.
func (r *Renderer) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bg = nil
	r.builtFrom = nil
	r.anchor = image.Point{}
}

// LastLabelAnchor returns the output position of the last exit icon drawn.
func (r *Renderer) LastLabelAnchor() image.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.anchor
}

// Builds returns how many times the background has been painted.
func (r *Renderer) Builds() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.builds
}

func (r *Renderer) background(level *mapdata.LevelData) *Background {
	if r.bg != nil && r.builtFrom == level {
		return r.bg
	}
	var grid [][]int
	if level != nil {
		grid = level.Grid
	}
	r.bg = buildBackground(grid)
	r.builtFrom = level
	r.builds++

	w, h := r.bg.Size()
	r.log.WithFields(logrus.Fields{
		"width":  w,
		"height": h,
		"offset": r.bg.Offset,
	}).Debug("Built minimap background")
	return r.bg
}

func (r *Renderer) face(s settings.RenderSettings) font.Face {
	face, err := raster.LoadFace(s.LabelFont, s.LabelFontSize)
	if err == nil {
		return face
	}
	if !r.badFonts[s.LabelFont] {
		r.badFonts[s.LabelFont] = true
		r.log.WithError(err).WithField("font", s.LabelFont).Warn("Label font unavailable, using basic")
	}
	basic, _ := raster.LoadFace(raster.FontBasic, 0)
	return basic
}

func origin(level *mapdata.LevelData) image.Point {
	if level == nil {
		return image.Point{}
	}
	return level.Origin
}
