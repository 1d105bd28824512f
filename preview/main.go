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
	"github.com/rook-computer/starfield/internal/web"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	dumpPath := flag.String("dump", "", "render a single frame to this PNG file and exit")
	dumpSteps := flag.Int("dump-steps", 120, "ticks to simulate before the dumped frame")
	flag.Parse()

	settings, err := config.Load(flags.ConfigPath(), config.Default(":8080"))
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	flags.Apply(&settings)
	if err := settings.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	var logger app.Logger = app.NoopLogger{}
	if settings.Debug {
		logger = app.NewFileLogger(os.Stderr)
	}

	if *dumpPath != "" {
		if err := dumpFrame(settings, *dumpSteps, *dumpPath); err != nil {
			fmt.Println("dump error:", err)
			os.Exit(1)
		}
		fmt.Println("Frame written to", *dumpPath)
		return
	}

	store := state.NewStore()
	a := app.New(settings, store, render.NoopRenderer{}, nil, events.NewSignalSource())
	a.Logger = logger
	a.Snapshot = render.NewSnapshot()

	server := web.NewHTTPServer(web.ServerConfigFromSettings(settings))
	server.Logger = logger
	server.Handler = web.NewDefaultMux(a.APIDeps())
	a.Web = server

	fmt.Println("Starfield preview listening on", settings.Listen)
	fmt.Println("Mode label:", app.ModeLabel(settings))
	fmt.Println("Open:", web.DisplayURL(settings.Listen))

	if err := a.Start(context.Background()); err != nil {
		fmt.Println("preview error:", err)
		os.Exit(1)
	}
}
