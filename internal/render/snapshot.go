package render

import (
	"errors"
	"image"
	"image/png"
	"io"
	"sync"
)

// ErrNoFrame is returned by EncodePNG before the first frame was presented.
var ErrNoFrame = errors.New("no frame rendered yet")

// Snapshot keeps a copy of the most recent frame for readers on other
// goroutines (the preview HTTP handlers).
type Snapshot struct {
	mu  sync.RWMutex
	img *image.RGBA
	seq uint64

	encoder png.Encoder
}

func NewSnapshot() *Snapshot {
	return &Snapshot{encoder: png.Encoder{CompressionLevel: png.BestSpeed}}
}

// Present copies frame into the snapshot.
func (s *Snapshot) Present(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil || s.img.Bounds() != frame.Bounds() {
		s.img = image.NewRGBA(frame.Bounds())
	}
	copy(s.img.Pix, frame.Pix)
	s.seq++
	return nil
}

// Seq counts presented frames.
func (s *Snapshot) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

// EncodePNG writes the latest frame as PNG.
func (s *Snapshot) EncodePNG(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.img == nil {
		return ErrNoFrame
	}
	return s.encoder.Encode(w, s.img)
}
