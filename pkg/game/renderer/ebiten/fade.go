package ebiten

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fader fades the minimap in whenever the level changes.
type fader struct {
	level int
	tween *gween.Tween
	alpha float32
}

func newFader() *fader {
	return &fader{level: -1, alpha: 1}
}

// step advances the fade by dt seconds and returns the alpha to draw with.
// A level different from the last one seen restarts the fade.
func (f *fader) step(level int, dt float32) float32 {
	if level != f.level {
		if f.level >= 0 {
			f.tween = gween.New(0, 1, fadeSeconds, ease.OutQuad)
			f.alpha = 0
		}
		f.level = level
	}
	if f.tween == nil {
		return f.alpha
	}
	alpha, done := f.tween.Update(dt)
	f.alpha = alpha
	if done {
		f.alpha = 1
		f.tween = nil
	}
	return f.alpha
}
