package config

import "flag"

// Flags binds settings to a FlagSet. Only flags given on the command line
// override values from the file and environment.
type Flags struct {
	fs       *flag.FlagSet
	path     string
	stdioLog string
	v        Settings
}

func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.path, "config", "", "path to a YAML settings file")
	fs.StringVar(&f.stdioLog, "stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+EnvStdioLog)
	fs.StringVar(&f.v.Mode, "mode", "", "starfield mode label (admin, twinkle, slow); also configurable via "+EnvMode)
	fs.StringVar(&f.v.PageClass, "page-class", "", "page class used when no mode is given; also configurable via "+EnvPageClass)
	fs.IntVar(&f.v.Width, "width", 0, "viewport width in pixels (0 = device size)")
	fs.IntVar(&f.v.Height, "height", 0, "viewport height in pixels (0 = device size)")
	fs.IntVar(&f.v.FPS, "fps", 60, "frames per second; also configurable via "+EnvFPS)
	fs.StringVar(&f.v.Device, "device", "/dev/fb0", "framebuffer device")
	fs.StringVar(&f.v.Listen, "listen", "", "http listen address; also configurable via "+EnvListen)
	fs.BoolVar(&f.v.Dev, "dev", false, "enable dev mode (permissive CORS); also configurable via "+EnvDev)
	fs.StringVar(&f.v.Caption, "caption", "", "caption drawn in the bottom-left corner")
	fs.BoolVar(&f.v.QR, "qr", false, "draw a QR badge linking to the preview server")
	fs.BoolVar(&f.v.Debug, "debug", false, "enable debug logging")
	fs.Uint64Var(&f.v.Seed, "seed", 0, "random seed (0 = time based)")
	return f
}

func (f *Flags) ConfigPath() string { return f.path }

// StdioLog returns the -stdio-log flag, falling back to the environment.
func (f *Flags) StdioLog(getenv func(string) string) string {
	if f.stdioLog != "" || getenv == nil {
		return f.stdioLog
	}
	return getenv(EnvStdioLog)
}

// Apply copies every flag that was set on the command line into s.
func (f *Flags) Apply(s *Settings) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "mode":
			s.Mode = f.v.Mode
		case "page-class":
			s.PageClass = f.v.PageClass
		case "width":
			s.Width = f.v.Width
		case "height":
			s.Height = f.v.Height
		case "fps":
			s.FPS = f.v.FPS
		case "device":
			s.Device = f.v.Device
		case "listen":
			s.Listen = f.v.Listen
		case "dev":
			s.Dev = f.v.Dev
		case "caption":
			s.Caption = f.v.Caption
		case "qr":
			s.QR = f.v.QR
		case "debug":
			s.Debug = f.v.Debug
		case "seed":
			s.Seed = f.v.Seed
		}
	})
}
