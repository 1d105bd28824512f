package main

import (
	"fmt"
	"os"

	"github.com/rook-computer/starfield/internal/app"
	"github.com/rook-computer/starfield/internal/config"
	"github.com/rook-computer/starfield/internal/render"
	"github.com/rook-computer/starfield/internal/starfield"
	"github.com/rook-computer/starfield/internal/web"
)

// dumpFrame simulates steps ticks without drawing, then draws one frame
// (with the overlay) and writes it as PNG.
func dumpFrame(settings config.Settings, steps int, path string) error {
	width, height := settings.Width, settings.Height
	if width <= 0 || height <= 0 {
		width, height = render.CanvasWidth, render.CanvasHeight
	}
	canvas := render.NewCanvas(width, height)

	engine, err := starfield.New(starfield.Resolve(app.ModeLabel(settings)), canvas, starfield.WithSeed(settings.Seed))
	if err != nil {
		return err
	}
	engine.Init()
	for i := 0; i < steps; i++ {
		engine.Step()
	}
	engine.Frame()

	var qrPayload string
	if settings.QR {
		qrPayload = web.DisplayURL(settings.Listen)
	}
	render.NewOverlay(settings.Caption, qrPayload, nil).Draw(canvas)

	snap := render.NewSnapshot()
	if err := snap.Present(canvas.Image()); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := snap.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
