package render

import "image/color"

// Global render configuration.
var (
	// Background is the deep-space fill every frame starts from.
	Background = color.RGBA{R: 0x04, G: 0x06, B: 0x10, A: 0xFF}
	// Foreground is used for overlay text.
	Foreground = color.RGBA{R: 0xFF, G: 0xE8, B: 0x1F, A: 0xFF} // #ffe81f

	// Logical canvas size used when the host reports no viewport.
	CanvasWidth  = 1280
	CanvasHeight = 720
)
