// Package tui previews the minimap in a terminal using half-block glyphs, two
// pixels per character cell.
package tui

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/gookit/color"

	"mapassist/pkg/engine/raster"
	"mapassist/pkg/engine/terminal"
	"mapassist/pkg/game/renderer"
	"mapassist/pkg/game/settings"
)

const (
	// IconHalfBlock is drawn with the upper pixel as foreground and the lower
	// one as background.
	IconHalfBlock = "▀"
	IconVoid      = " "

	// MinCols is the narrowest preview drawn.
	MinCols = 16
)

// TUIRenderer is the terminal preview backend
type TUIRenderer struct {
	Out      io.Writer
	Settings settings.RenderSettings
	// Interval between redraws; zero draws a single frame
	Interval time.Duration
	// Cols overrides the terminal width when set
	Cols int

	colorArea    color.Style
	colorSubtle  color.Style
	colorWarning color.Style
}

// New creates a new TUI renderer
func New(s settings.RenderSettings) *TUIRenderer {
	return &TUIRenderer{Out: os.Stdout, Settings: s}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() error {
	t.colorArea = color.Style{color.FgGreen, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorWarning = color.Style{color.FgYellow, color.OpBold}
	return nil
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleArea:
		return t.colorArea.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case renderer.StyleWarning:
		return t.colorWarning.Sprint(text)
	default:
		return text
	}
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	if !terminal.IsInteractive(os.Stdout) || t.Out != io.Writer(os.Stdout) {
		return
	}
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// Run draws frames from src until ctx is done. With no Interval it draws once.
func (t *TUIRenderer) Run(ctx context.Context, src renderer.Source) error {
	if t.Interval <= 0 {
		return t.Draw(src.Frame(t.Settings))
	}

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for {
		t.Clear()
		if err := t.Draw(src.Frame(t.Settings)); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Draw writes one frame with its status line.
func (t *TUIRenderer) Draw(f renderer.Frame) error {
	var b strings.Builder
	if f.Empty() {
		b.WriteString(t.StyleText("Waiting for level data...", renderer.StyleWarning))
		b.WriteString("\n")
	} else {
		name := f.AreaName
		if name == "" {
			name = fmt.Sprint(f.Area)
		}
		fmt.Fprintf(&b, "%s %s\n",
			t.StyleText(name, renderer.StyleArea),
			t.StyleText(fmt.Sprintf("player %d,%d  level %d", f.Player.X, f.Player.Y, f.Level), renderer.StyleSubtle))
		b.WriteString(Encode(f.Image, t.cols()))
	}
	_, err := io.WriteString(t.Out, b.String())
	return err
}

func (t *TUIRenderer) cols() int {
	cols := t.Cols
	if cols <= 0 {
		cols = terminal.GetWidth()
	}
	if cols < MinCols {
		cols = MinCols
	}
	return cols
}

// Encode downsamples img to cols characters wide, keeping its aspect ratio,
// and renders it with half blocks. Transparent pixels are left blank.
func Encode(img *image.RGBA, cols int) string {
	if raster.Empty(img) || cols <= 0 {
		return ""
	}
	b := img.Bounds()
	if cols > b.Dx() {
		cols = b.Dx()
	}
	rows := (b.Dy()*cols/b.Dx() + 1) / 2
	if rows < 1 {
		rows = 1
	}
	small := raster.Resize(img, cols, rows*2)

	var out strings.Builder
	for y := 0; y < rows*2; y += 2 {
		for x := 0; x < cols; x++ {
			out.WriteString(cell(small, x, y))
		}
		out.WriteString("\n")
	}
	return out.String()
}

func cell(img *image.RGBA, x, y int) string {
	top, bottom := img.RGBAAt(x, y), img.RGBAAt(x, y+1)
	switch {
	case top.A == 0 && bottom.A == 0:
		return IconVoid
	case bottom.A == 0:
		return color.RGB(top.R, top.G, top.B).Sprint(IconHalfBlock)
	case top.A == 0:
		return color.RGB(bottom.R, bottom.G, bottom.B, true).Sprint(" ")
	default:
		style := color.NewRGBStyle(color.RGB(top.R, top.G, top.B), color.RGB(bottom.R, bottom.G, bottom.B))
		return style.Sprint(IconHalfBlock)
	}
}
