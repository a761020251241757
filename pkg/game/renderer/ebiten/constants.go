package ebiten

import "image/color"

var (
	colorBackground = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorText       = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorSubtle     = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorWarning    = color.RGBA{255, 220, 100, 255}
)

const (
	defaultWindowWidth  = 600
	defaultWindowHeight = 560
	headerHeight        = 36
	margin              = 12
	uiFontSize          = 16.0

	// fadeSeconds is how long a new level takes to fade in
	fadeSeconds = 0.6
)
