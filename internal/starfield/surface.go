package starfield

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Surface is the 2D drawing target the engine renders into.
// Coordinates are in pixels with the origin at the top-left corner.
type Surface interface {
	Size() (width int, height int)
	Resize(width, height int)
	Clear()
	FillCircle(cx, cy, radius float64, c RGB, alpha float64)
	FillRect(x, y, w, h float64, c RGB, alpha float64)
}

// Viewport reports the drawing area the host currently offers.
// A non-positive dimension means the host has no answer yet.
type Viewport func() (width int, height int)

// Fit sizes surface to the viewport and returns the resulting dimensions.
// It only resizes when the dimensions actually change, so it can be called
// on every resize notification.
func Fit(surface Surface, viewport Viewport) (int, int) {
	if surface == nil {
		return 0, 0
	}
	if viewport == nil {
		return surface.Size()
	}
	width, height := viewport()
	if width <= 0 || height <= 0 {
		return surface.Size()
	}
	if cw, ch := surface.Size(); cw != width || ch != height {
		surface.Resize(width, height)
	}
	return width, height
}

// Rand is the random source the engine samples from.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}
