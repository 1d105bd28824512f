package render

import (
	"context"
	"errors"
	"image"
	"sync"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"
)

const DefaultFramebuffer = "/dev/fb0"

// FBRenderer presents frames on a Linux framebuffer device, scaling the
// canvas to the device resolution.
type FBRenderer struct {
	Path   string
	Logger logger

	mu     sync.Mutex
	dev    *fb.Device
	scaled *image.RGBA
}

func NewFBRenderer(path string) *FBRenderer {
	if path == "" {
		path = DefaultFramebuffer
	}
	return &FBRenderer{Path: path}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.Path)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.dev = dev
	r.mu.Unlock()
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", r.Path, bounds.Dx(), bounds.Dy())
	}
	return nil
}

func (r *FBRenderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev == nil {
		return nil
	}
	r.dev.Close()
	r.dev = nil
	return nil
}

func (r *FBRenderer) Bounds() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev == nil {
		return 0, 0
	}
	b := r.dev.Bounds()
	return b.Dx(), b.Dy()
}

// Present copies frame onto the device. Frames matching the device size are
// copied directly; others are scaled nearest-neighbor into a staging buffer first.
func (r *FBRenderer) Present(frame *image.RGBA) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev == nil {
		return errors.New("framebuffer not open")
	}
	bounds := r.dev.Bounds()
	src := frame
	if frame.Bounds().Size() != bounds.Size() {
		if r.scaled == nil || r.scaled.Bounds().Size() != bounds.Size() {
			r.scaled = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		}
		xdraw.NearestNeighbor.Scale(r.scaled, r.scaled.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)
		src = r.scaled
	}
	xdraw.Draw(r.dev, bounds, src, src.Bounds().Min, xdraw.Src)
	return nil
}
