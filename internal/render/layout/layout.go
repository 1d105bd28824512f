package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	minPt := image.Pt(rect.Min.X+paddingPx, rect.Min.Y+paddingPx)
	maxPt := image.Pt(rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	if maxPt.X <= minPt.X || maxPt.Y <= minPt.Y {
		return image.Rectangle{Min: minPt, Max: minPt}
	}
	return image.Rectangle{Min: minPt, Max: maxPt}
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// AnchorBottomLeft places a (widthPx,heightPx) rectangle in the bottom-left of rect.
// The size is clamped to rect.
func AnchorBottomLeft(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx, heightPx = clampSize(rect, widthPx, heightPx)
	return image.Rect(rect.Min.X, rect.Max.Y-heightPx, rect.Min.X+widthPx, rect.Max.Y)
}

// AnchorBottomRight places a (widthPx,heightPx) rectangle in the bottom-right of rect.
// The size is clamped to rect.
func AnchorBottomRight(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx, heightPx = clampSize(rect, widthPx, heightPx)
	return image.Rect(rect.Max.X-widthPx, rect.Max.Y-heightPx, rect.Max.X, rect.Max.Y)
}

func clampSize(rect image.Rectangle, widthPx, heightPx int) (int, int) {
	widthPx = max(0, min(widthPx, rect.Dx()))
	heightPx = max(0, min(heightPx, rect.Dy()))
	return widthPx, heightPx
}
