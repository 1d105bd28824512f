package render

import (
	"context"
	"image"
)

// Renderer is an output device the frame loop presents into.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	// Bounds reports the device size in pixels, or zeros before Start.
	Bounds() (width int, height int)
	Presenter
}

// Presenter receives every finished frame. The image is only valid for the
// duration of the call.
type Presenter interface {
	Present(frame *image.RGBA) error
}

// Screen is the picture the loop redraws every tick.
type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(c *Canvas)
	// Resize rebuilds the screen for new dimensions; zeros mean "ask the viewport".
	Resize(width, height int)
}

// NoopRenderer discards frames.
type NoopRenderer struct{}

func (NoopRenderer) Start(ctx context.Context) error { return nil }
func (NoopRenderer) Stop() error                     { return nil }
func (NoopRenderer) Bounds() (int, int)              { return 0, 0 }
func (NoopRenderer) Present(*image.RGBA) error       { return nil }

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}
