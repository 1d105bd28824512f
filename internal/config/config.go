package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	EnvMode      = "STARFIELD_MODE"
	EnvPageClass = "STARFIELD_PAGE_CLASS"
	EnvListen    = "STARFIELD_LISTEN"
	EnvDev       = "STARFIELD_DEV"
	EnvFPS       = "STARFIELD_FPS"
	EnvStdioLog  = "STARFIELD_STDIO_LOG"

	maxFPS = 240
)

// Settings holds everything a host binary needs to run the starfield.
//
// The intended defaults differ per binary:
// - device:  framebuffer output, no HTTP server
// - preview: headless, HTTP on :8080
type Settings struct {
	// Mode is the label carried by the drawing surface itself.
	Mode string `yaml:"mode"`
	// PageClass is the fallback label taken from the hosting page.
	PageClass string `yaml:"page_class"`
	// Width and Height pin the viewport; zero defers to the device.
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Device string `yaml:"device"`
	Listen string `yaml:"listen"`
	Dev    bool   `yaml:"dev"`
	// Caption is drawn in the bottom-left corner when non-empty.
	Caption string `yaml:"caption"`
	// QR draws a badge linking to the preview server.
	QR    bool   `yaml:"qr"`
	Debug bool   `yaml:"debug"`
	Seed  uint64 `yaml:"seed"`
}

// Default returns the built-in settings with the given listen address.
func Default(listen string) Settings {
	return Settings{FPS: 60, Device: "/dev/fb0", Listen: listen}
}

// Load reads a YAML file on top of defaults and then applies environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string, defaults Settings) (Settings, error) {
	s := defaults
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Settings{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return Settings{}, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	if err := s.ApplyEnv(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ApplyEnv overrides fields from STARFIELD_* environment variables.
func (s *Settings) ApplyEnv() error {
	if v := os.Getenv(EnvMode); v != "" {
		s.Mode = v
	}
	if v := os.Getenv(EnvPageClass); v != "" {
		s.PageClass = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		s.Listen = v
	}
	if raw := os.Getenv(EnvDev); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (got %q): %w", EnvDev, raw, err)
		}
		s.Dev = parsed
	}
	if raw := os.Getenv(EnvFPS); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer (got %q): %w", EnvFPS, raw, err)
		}
		s.FPS = parsed
	}
	return nil
}

func (s Settings) Validate() error {
	if s.FPS < 1 || s.FPS > maxFPS {
		return fmt.Errorf("fps must be within [1,%d] (got %d)", maxFPS, s.FPS)
	}
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("width and height must not be negative (got %dx%d)", s.Width, s.Height)
	}
	if s.QR && s.Listen == "" {
		return fmt.Errorf("qr badge needs a listen address")
	}
	return nil
}
