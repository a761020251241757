package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"mapassist/pkg/game/menu"
)

// Draw renders the header and the minimap (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if e.sansFace == nil {
		return
	}

	if e.frame.Empty() || e.minimap == nil {
		e.drawText(screen, "Waiting for level data...", margin, margin, colorWarning)
		return
	}

	name := e.frame.AreaName
	if name == "" {
		name = fmt.Sprint(e.frame.Area)
	}
	e.drawText(screen, name, margin, margin, colorText)
	status := fmt.Sprintf("%d,%d", e.frame.Player.X, e.frame.Player.Y)
	if e.settings.Rotate {
		status += "  rotated"
	}
	w, _ := text.Measure(status, e.sansFace, 0)
	e.drawText(screen, status, float64(e.windowWidth)-w-margin, margin, colorSubtle)

	// center the minimap below the header
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	mw, mh := e.minimap.Bounds().Dx(), e.minimap.Bounds().Dy()
	x := (sw - mw) / 2
	y := headerHeight + (sh-headerHeight-mh)/2
	if y < headerHeight {
		y = headerHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleAlpha(e.alpha)
	screen.DrawImage(e.minimap, op)

	if e.showHelp {
		e.drawHelp(screen)
	}
}

// drawHelp lists the current key bindings in the bottom-left corner.
func (e *EbitenRenderer) drawHelp(screen *ebiten.Image) {
	lines := menu.HelpLines()
	_, lineHeight := text.Measure("Ag", e.sansFace, 0)
	y := float64(screen.Bounds().Dy()) - margin - lineHeight*float64(len(lines))
	for _, line := range lines {
		e.drawText(screen, line, margin, y, colorSubtle)
		y += lineHeight
	}
}

func (e *EbitenRenderer) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, e.sansFace, op)
}
