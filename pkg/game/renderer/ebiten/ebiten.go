// Package ebiten presents the minimap in a desktop window.
package ebiten

import (
	"bytes"
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/gofont/goregular"

	"mapassist/pkg/game/renderer"
	"mapassist/pkg/game/settings"
)

// EbitenRenderer is the window backend
type EbitenRenderer struct {
	windowWidth  int
	windowHeight int
	title        string

	settings settings.RenderSettings
	log      logrus.FieldLogger

	sansFontSource *text.GoTextFaceSource
	sansFace       *text.GoTextFace

	ctx   context.Context
	src   renderer.Source
	frame renderer.Frame
	// minimap holds the uploaded frame; recreated when the frame size changes
	minimap *ebiten.Image
	fade    *fader
	alpha   float32

	// screenshotDir receives PNGs saved from the window
	screenshotDir string

	showHelp           bool
	windowOpenedLogged bool
}

// New creates a new Ebiten renderer
func New(s settings.RenderSettings, log logrus.FieldLogger) *EbitenRenderer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &EbitenRenderer{
		windowWidth:   defaultWindowWidth,
		windowHeight:  defaultWindowHeight,
		title:         "Map Assist",
		settings:      s,
		log:           log,
		fade:          newFader(),
		alpha:         1,
		screenshotDir: ".",
	}
}

// Init loads fonts and sizes the window
func (e *EbitenRenderer) Init() error {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("load ui font: %w", err)
	}
	e.sansFontSource = source
	e.sansFace = &text.GoTextFace{Source: source, Size: uiFontSize}

	if e.settings.OutputSize > 0 {
		e.windowWidth = e.settings.OutputSize + margin*2
		e.windowHeight = e.settings.OutputSize + headerHeight + margin*2
	}
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(e.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

// SetScreenshotDir sets where screenshots are written.
func (e *EbitenRenderer) SetScreenshotDir(dir string) {
	e.screenshotDir = dir
}

// Run starts the Ebiten game loop; it returns when the window closes, the
// user quits or ctx is done.
func (e *EbitenRenderer) Run(ctx context.Context, src renderer.Source) error {
	e.ctx = ctx
	e.src = src
	if err := ebiten.RunGame(e); err != nil {
		return err
	}
	return nil
}
