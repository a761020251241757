package ebiten

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	engineinput "mapassist/pkg/engine/input"
	"mapassist/pkg/game/devtools"
)

// Invalidator is implemented by sources whose level cache can be dropped.
type Invalidator interface {
	Invalidate()
}

// Update handles input and pulls the next frame (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.log.WithFields(logrus.Fields{"width": w, "height": h}).Info("Minimap window opened")
	}

	if e.ctx != nil && e.ctx.Err() != nil {
		return ebiten.Termination
	}

	for _, intent := range e.checkInput() {
		switch intent.Action {
		case engineinput.ActionQuit:
			return ebiten.Termination
		case engineinput.ActionToggleRotate:
			e.settings.Rotate = !e.settings.Rotate
			e.log.WithField("rotate", e.settings.Rotate).Debug("Toggled minimap rotation")
		case engineinput.ActionInvalidate:
			if inv, ok := e.src.(Invalidator); ok {
				inv.Invalidate()
			}
		case engineinput.ActionScreenshot:
			e.screenshot()
		case engineinput.ActionHelp:
			e.showHelp = !e.showHelp
		}
	}

	if e.src == nil {
		return nil
	}
	e.frame = e.src.Frame(e.settings)
	e.alpha = e.fade.step(e.frame.Level, 1/float32(ebiten.TPS()))
	e.upload()
	return nil
}

// checkInput collects intents for keys and gamepad buttons pressed this tick.
func (e *EbitenRenderer) checkInput() []engineinput.Intent {
	now := time.Now()
	var raws []engineinput.RawInput
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		raws = append(raws, engineinput.RawInput{
			Device:    engineinput.DeviceKeyboard,
			Code:      strings.ToLower(key.String()),
			Timestamp: now,
		})
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton1) {
			raws = append(raws, engineinput.RawInput{Device: engineinput.DeviceGamepad, Code: "gamepad_b", Timestamp: now})
		}
		if inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton3) {
			raws = append(raws, engineinput.RawInput{Device: engineinput.DeviceGamepad, Code: "gamepad_y", Timestamp: now})
		}
	}

	var intents []engineinput.Intent
	for _, raw := range raws {
		intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(raw))
		if intent.Action != engineinput.ActionNone {
			intents = append(intents, intent)
		}
	}
	return intents
}

func (e *EbitenRenderer) screenshot() {
	if e.frame.Empty() {
		return
	}
	path, err := devtools.SaveScreenshot(e.screenshotDir, e.frame.Image)
	if err != nil {
		e.log.WithError(err).Warn("Screenshot failed")
		return
	}
	e.log.WithField("path", path).Info("Saved screenshot")
}

// upload copies the current frame into the GPU image.
func (e *EbitenRenderer) upload() {
	if e.frame.Empty() {
		return
	}
	b := e.frame.Image.Bounds()
	if e.minimap == nil || e.minimap.Bounds().Dx() != b.Dx() || e.minimap.Bounds().Dy() != b.Dy() {
		if e.minimap != nil {
			e.minimap.Deallocate()
		}
		e.minimap = ebiten.NewImage(b.Dx(), b.Dy())
	}
	e.minimap.WritePixels(e.frame.Image.Pix)
}

// Layout returns the game's logical screen size
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.windowWidth, e.windowHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
