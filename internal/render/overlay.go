package render

import (
	"image"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/starfield/internal/render/layout"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	overlayPadding = 24
	captionSizePt  = 22
	qrBadgeSizePx  = 144
)

// Overlay draws an optional caption in the bottom-left corner and an
// optional QR badge in the bottom-right corner on top of each frame.
type Overlay struct {
	Caption string

	face font.Face
	qr   image.Image
}

// NewOverlay prepares fonts and the QR image. Failures degrade: a broken
// font falls back to basicfont and a broken QR payload is skipped.
func NewOverlay(caption, qrPayload string, log logger) *Overlay {
	o := &Overlay{Caption: caption}
	if caption != "" {
		o.face = loadCaptionFace(log)
	}
	if qrPayload != "" {
		img, err := GenerateQRCodeImage(qrPayload, qrBadgeSizePx)
		if err != nil {
			if log != nil {
				log.Errorf("overlay", "qr code for %q failed: %v", qrPayload, err)
			}
		} else {
			o.qr = img
		}
	}
	return o
}

func loadCaptionFace(log logger) font.Face {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		if log != nil {
			log.Errorf("overlay", "truetype parse failed, using basicfont: %v", err)
		}
		return basicfont.Face7x13
	}
	return truetype.NewFace(tt, &truetype.Options{Size: captionSizePt, DPI: 96, Hinting: font.HintingFull})
}

// Empty reports whether Draw would do nothing.
func (o *Overlay) Empty() bool {
	return o == nil || ((o.Caption == "" || o.face == nil) && o.qr == nil)
}

func (o *Overlay) Draw(c *Canvas) {
	if o.Empty() {
		return
	}
	area := layout.Inset(c.Image().Bounds(), overlayPadding)
	if area.Empty() {
		return
	}

	if o.qr != nil {
		size := o.qr.Bounds().Dx()
		dst := layout.AnchorBottomRight(area, size, size)
		if !dst.Empty() {
			xdraw.NearestNeighbor.Scale(c.Image(), dst, o.qr, o.qr.Bounds(), xdraw.Over, nil)
		}
	}

	if o.Caption != "" && o.face != nil {
		drawer := &font.Drawer{Dst: c.Image(), Src: image.NewUniform(Foreground), Face: o.face}
		metrics := o.face.Metrics()
		width := drawer.MeasureString(o.Caption).Ceil()
		height := (metrics.Ascent + metrics.Descent).Ceil()
		box := layout.AnchorBottomLeft(area, width, height)
		drawer.Dot = fixed.P(box.Min.X, box.Min.Y+metrics.Ascent.Ceil())
		drawer.DrawString(o.Caption)
	}
}
