package system

// SizeSource reports a candidate viewport size; non-positive values mean
// the source has no answer.
type SizeSource func() (width int, height int)

// Viewport combines sources in priority order: the first one reporting a
// positive width and height wins. Sources are consulted on every call, so
// the result follows devices that appear or change size.
func Viewport(sources ...SizeSource) func() (int, int) {
	return func() (int, int) {
		for _, src := range sources {
			if src == nil {
				continue
			}
			if w, h := src(); w > 0 && h > 0 {
				return w, h
			}
		}
		return 0, 0
	}
}

// Fixed always reports the given size.
func Fixed(width, height int) SizeSource {
	return func() (int, int) { return width, height }
}
