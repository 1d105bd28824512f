package web

import (
	"io"

	"github.com/rook-computer/starfield/internal/render"
	"github.com/rook-computer/starfield/internal/starfield"
	"github.com/rook-computer/starfield/internal/state"
)

// FrameSource encodes the most recent frame.
//
// The concrete implementation is typically *render.Snapshot.
type FrameSource interface {
	EncodePNG(w io.Writer) error
}

type StatusSource interface {
	Snapshot() state.State
}

// Resizer queues a reinitialization at a new size. Zero dimensions mean
// "use the viewport".
type Resizer interface {
	RequestResize(width, height int) bool
}

type APIV1Deps struct {
	Frames FrameSource
	Status StatusSource
	Resize Resizer
	Modes  func() []starfield.Mode
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Frames == nil {
		out.Frames = NoopFrameSource{}
	}
	if out.Status == nil {
		out.Status = state.NewStore()
	}
	if out.Resize == nil {
		out.Resize = NoopResizer{}
	}
	if out.Modes == nil {
		out.Modes = starfield.Modes
	}
	return out
}

type NoopFrameSource struct{}

func (NoopFrameSource) EncodePNG(io.Writer) error { return render.ErrNoFrame }

type NoopResizer struct{}

func (NoopResizer) RequestResize(int, int) bool { return false }
