package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "starfield.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load("", Default(":8080"))
	require.NoError(t, err)
	assert.Equal(t, Default(":8080"), s)

	s, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), Default(""))
	require.NoError(t, err)
	assert.Equal(t, 60, s.FPS)
	assert.NoError(t, s.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
mode: dark-twinkle
width: 800
height: 480
fps: 30
caption: "A long time ago"
qr: true
listen: ":9000"
seed: 42
`)
	s, err := Load(path, Default(""))
	require.NoError(t, err)
	assert.Equal(t, "dark-twinkle", s.Mode)
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 480, s.Height)
	assert.Equal(t, 30, s.FPS)
	assert.Equal(t, "A long time ago", s.Caption)
	assert.True(t, s.QR)
	assert.Equal(t, uint64(42), s.Seed)
	assert.Equal(t, "/dev/fb0", s.Device, "unset keys keep defaults")
	assert.NoError(t, s.Validate())
}

func TestLoadFullFile(t *testing.T) {
	path := writeFile(t, `
mode: admin
page_class: index-slow
width: 1920
height: 1080
fps: 50
device: /dev/fb1
listen: "0.0.0.0:8080"
dev: true
caption: Rebel Base
qr: true
debug: true
seed: 7
`)
	got, err := Load(path, Default(""))
	require.NoError(t, err)

	want := Settings{
		Mode: "admin", PageClass: "index-slow",
		Width: 1920, Height: 1080, FPS: 50,
		Device: "/dev/fb1", Listen: "0.0.0.0:8080", Dev: true,
		Caption: "Rebel Base", QR: true, Debug: true, Seed: 7,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	_, err := Load(writeFile(t, "fps: [1, 2"), Default(""))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env beats file", func(t *testing.T) {
		t.Setenv(EnvMode, "admin")
		t.Setenv(EnvFPS, "24")
		t.Setenv(EnvDev, "true")
		s, err := Load(writeFile(t, "mode: index-slow\nfps: 30\n"), Default(""))
		require.NoError(t, err)
		assert.Equal(t, "admin", s.Mode)
		assert.Equal(t, 24, s.FPS)
		assert.True(t, s.Dev)
	})

	t.Run("bad boolean", func(t *testing.T) {
		t.Setenv(EnvDev, "maybe")
		_, err := Load("", Default(""))
		assert.ErrorContains(t, err, EnvDev)
	})

	t.Run("bad fps", func(t *testing.T) {
		t.Setenv(EnvFPS, "fast")
		_, err := Load("", Default(""))
		assert.ErrorContains(t, err, EnvFPS)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero fps", func(s *Settings) { s.FPS = 0 }},
		{"huge fps", func(s *Settings) { s.FPS = 1000 }},
		{"negative width", func(s *Settings) { s.Width = -1 }},
		{"qr without listen", func(s *Settings) { s.QR = true; s.Listen = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default("")
			tt.mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestFlagsOverrideOnlyWhatWasSet(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", "x.yaml", "-mode", "admin", "-fps", "15", "-qr"}))

	s := Default(":8080")
	s.Caption = "from file"
	flags.Apply(&s)

	assert.Equal(t, "x.yaml", flags.ConfigPath())
	assert.Equal(t, "admin", s.Mode)
	assert.Equal(t, 15, s.FPS)
	assert.True(t, s.QR)
	assert.Equal(t, "from file", s.Caption)
	assert.Equal(t, ":8080", s.Listen)
}

func TestStdioLog(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := BindFlags(fs)
	require.NoError(t, fs.Parse(nil))
	env := func(key string) string {
		if key == EnvStdioLog {
			return "/tmp/from-env.log"
		}
		return ""
	}
	assert.Equal(t, "/tmp/from-env.log", flags.StdioLog(env))

	require.NoError(t, fs.Parse([]string{"-stdio-log", "/tmp/flag.log"}))
	assert.Equal(t, "/tmp/flag.log", flags.StdioLog(env))
}
