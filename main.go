package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rook-computer/starfield/internal/app"
	"github.com/rook-computer/starfield/internal/config"
	"github.com/rook-computer/starfield/internal/events"
	"github.com/rook-computer/starfield/internal/render"
	"github.com/rook-computer/starfield/internal/state"
	"github.com/rook-computer/starfield/internal/system"
	"github.com/rook-computer/starfield/internal/web"
)

func main() {
	fmt.Println("Starfield starting")

	flags := config.BindFlags(flag.CommandLine)
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	if logPath := flags.StdioLog(os.Getenv); logPath != "" {
		if err := system.RedirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	settings, err := config.Load(flags.ConfigPath(), config.Default(""))
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	flags.Apply(&settings)
	if err := settings.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if settings.Debug {
		f, err := os.OpenFile("./starfield-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := state.NewStore()

	renderer := render.NewFBRenderer(settings.Device)
	keyboard := events.NewKeyboardSource(logger)

	sources := []events.Source{events.NewSignalSource(), keyboard}
	if path := flags.ConfigPath(); path != "" {
		// Size edits in the settings file reinitialize the field; flags still win.
		sources = append(sources, events.NewFileWatchSource(path, func(path string) (int, int, error) {
			s, err := config.Load(path, config.Default(""))
			if err != nil {
				return 0, 0, err
			}
			flags.Apply(&s)
			return s.Width, s.Height, nil
		}, logger))
	}

	a := app.New(settings, store, renderer, nil, sources...)
	a.Logger = logger
	a.Viewports = []system.SizeSource{system.TerminalPixels(int(os.Stdout.Fd()))}

	// The preview API is optional on the device.
	if settings.Listen != "" {
		a.Snapshot = render.NewSnapshot()
		server := web.NewHTTPServer(web.ServerConfigFromSettings(settings))
		server.Logger = logger
		server.Handler = web.NewDefaultMux(a.APIDeps())
		a.Web = server
		fmt.Println("Preview:", web.DisplayURL(settings.Listen))
	}

	if err := a.Start(ctx); err != nil {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
	if store.Snapshot().Phase == state.IDLE {
		fmt.Println("no framebuffer available, nothing to draw")
	}
}
