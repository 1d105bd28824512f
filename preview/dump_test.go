package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rook-computer/starfield/internal/config"
	"github.com/rook-computer/starfield/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpFrame(t *testing.T) {
	settings := config.Default(":8080")
	settings.Mode = "admin"
	settings.Width, settings.Height = 240, 160
	settings.Seed = 3

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, dumpFrame(settings, 30, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 240, 160), img.Bounds())

	bg := render.Background
	lit := 0
	for y := 0; y < 160; y++ {
		for x := 0; x < 240; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if uint8(r>>8) != bg.R || uint8(g>>8) != bg.G || uint8(b>>8) != bg.B {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 100, "stars should be visible on the background")
}

func TestDumpFrameDefaultsSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, dumpFrame(config.Default(""), 0, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, render.CanvasWidth, cfg.Width)
	assert.Equal(t, render.CanvasHeight, cfg.Height)
}

func TestDumpFrameSeedIsReproducible(t *testing.T) {
	settings := config.Default("")
	settings.Width, settings.Height = 120, 80
	settings.Seed = 5

	dir := t.TempDir()
	first, second := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	require.NoError(t, dumpFrame(settings, 10, first))
	require.NoError(t, dumpFrame(settings, 10, second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
