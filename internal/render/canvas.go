package render

import (
	"image"
	"image/color"
	"math"

	"github.com/rook-computer/starfield/internal/starfield"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Canvas is an offscreen RGBA surface with antialiased, alpha-blended
// circles and rectangles. It implements starfield.Surface.
//
// Shapes are rasterized into a scratch alpha mask sized to the shape's
// bounding box and then composited onto the canvas, which clips for free.
type Canvas struct {
	Background color.RGBA

	img    *image.RGBA
	raster vector.Rasterizer
	mask   image.Alpha
}

var _ starfield.Surface = (*Canvas)(nil)

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{Background: Background}
	c.Resize(width, height)
	return c
}

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the pixel buffer and clears it.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.Clear()
}

func (c *Canvas) Clear() {
	xdraw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: c.Background}, image.Point{}, xdraw.Src)
}

// Image exposes the backing buffer. Callers must not retain it across frames.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) FillCircle(cx, cy, radius float64, col starfield.RGB, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	box := boundingBox(cx-radius, cy-radius, cx+radius, cy+radius)
	if !box.Overlaps(c.img.Bounds()) {
		return
	}
	z := c.begin(box)
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	n := circleSegments(radius)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		x := float32(cx - ox + radius*math.Cos(a))
		y := float32(cy - oy + radius*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	c.composite(box, col, alpha)
}

func (c *Canvas) FillRect(x, y, w, h float64, col starfield.RGB, alpha float64) {
	if w <= 0 || h <= 0 || alpha <= 0 {
		return
	}
	box := boundingBox(x, y, x+w, y+h)
	if !box.Overlaps(c.img.Bounds()) {
		return
	}
	z := c.begin(box)
	x0, y0 := float32(x-float64(box.Min.X)), float32(y-float64(box.Min.Y))
	x1, y1 := x0+float32(w), y0+float32(h)
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
	c.composite(box, col, alpha)
}

// boundingBox returns the integer rectangle covering the float extent with
// one pixel of slack on each side for antialiasing.
func boundingBox(minX, minY, maxX, maxY float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(minX))-1,
		int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1,
		int(math.Ceil(maxY))+1,
	)
}

func circleSegments(radius float64) int {
	n := int(radius*4) + 8
	if n > 64 {
		n = 64
	}
	return n
}

func (c *Canvas) begin(box image.Rectangle) *vector.Rasterizer {
	c.raster.Reset(box.Dx(), box.Dy())
	return &c.raster
}

func (c *Canvas) composite(box image.Rectangle, col starfield.RGB, alpha float64) {
	w, h := box.Dx(), box.Dy()
	if cap(c.mask.Pix) < w*h {
		c.mask.Pix = make([]uint8, w*h)
	}
	c.mask.Pix = c.mask.Pix[:w*h]
	c.mask.Stride = w
	c.mask.Rect = image.Rect(0, 0, w, h)

	c.raster.DrawOp = xdraw.Src
	c.raster.Draw(&c.mask, c.mask.Rect, image.Opaque, image.Point{})

	if alpha > 1 {
		alpha = 1
	}
	src := &image.Uniform{C: color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(math.Round(alpha * 255))}}
	xdraw.DrawMask(c.img, box, src, image.Point{}, &c.mask, image.Point{}, xdraw.Over)
}
