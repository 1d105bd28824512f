package render

import (
	"image"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 160

// GenerateQRCodeImage returns a QR code image for payload, or (nil, nil)
// when payload is empty.
func GenerateQRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	// Dark modules on the caption color; scanners reject inverted codes.
	qrCode.ForegroundColor = Background
	qrCode.BackgroundColor = Foreground

	return qrCode.Image(sizePx), nil
}
