package app

import (
	"context"
	"errors"
	"image"
	"strings"
	"sync/atomic"

	"github.com/rook-computer/starfield/internal/app/screens"
	"github.com/rook-computer/starfield/internal/config"
	"github.com/rook-computer/starfield/internal/events"
	"github.com/rook-computer/starfield/internal/render"
	"github.com/rook-computer/starfield/internal/starfield"
	"github.com/rook-computer/starfield/internal/state"
	"github.com/rook-computer/starfield/internal/system"
	"github.com/rook-computer/starfield/internal/web"
	"golang.org/x/sync/errgroup"
)

const requestQueueSize = 4

type App struct {
	Settings config.Settings
	Store    *state.Store
	// Render is the primary output. Nil runs headless.
	Render render.Renderer
	// Snapshot, when set, keeps the latest frame for the preview API.
	Snapshot *render.Snapshot
	Web      web.Server
	Sources  []events.Source
	// Viewports are extra size sources consulted after the renderer bounds
	// and before the default canvas size.
	Viewports []system.SizeSource
	Logger    Logger

	requests *events.Queue
	// pinned is the explicit size requested by settings or the last sized
	// Resize event; nil defers to the device.
	pinned atomic.Pointer[image.Point]

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(settings config.Settings, store *state.Store, renderer render.Renderer, webServer web.Server, sources ...events.Source) *App {
	return &App{
		Settings: settings,
		Store:    store,
		Render:   renderer,
		Web:      webServer,
		Sources:  sources,
		Logger:   NoopLogger{},
		requests: events.NewQueue(requestQueueSize),
		exitCh:   make(chan error, 1),
	}
}

// ModeLabel picks the label the starfield mode is resolved from: the
// surface's own mode first, then the page class.
func ModeLabel(s config.Settings) string {
	if m := strings.TrimSpace(s.Mode); m != "" {
		return m
	}
	return strings.TrimSpace(s.PageClass)
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// RequestResize queues a reinitialization from outside the frame loop (the
// preview API). It never blocks and reports false when the queue is full.
func (app *App) RequestResize(width, height int) bool {
	return app.requests.Push(events.Event{Kind: events.Resize, Width: width, Height: height})
}

// APIDeps wires the preview API to this app.
func (app *App) APIDeps() web.APIV1Deps {
	deps := web.APIV1Deps{Status: app.Store, Resize: app, Modes: starfield.Modes}
	if app.Snapshot != nil {
		deps.Frames = app.Snapshot
	}
	return deps
}

func (app *App) Start(ctx context.Context) error {
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Web == nil {
		app.Web = &web.NoopServer{}
	}
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	if app.requests == nil {
		app.requests = events.NewQueue(requestQueueSize)
	}
	app.exitOnce.Store(false)

	label := ModeLabel(app.Settings)
	cfg := starfield.Resolve(label)
	app.Store.SetLabel(label)
	app.Logger.Infof("app", "label %q resolved to mode %s", label, cfg.Name)

	// Without a surface there is nothing to draw on: stay silent.
	if app.Render != nil {
		if fb, ok := app.Render.(*render.FBRenderer); ok {
			fb.Logger = app.Logger
		}
		if err := app.Render.Start(ctx); err != nil {
			app.Logger.Infof("app", "no drawing surface, starfield disabled: %v", err)
			app.Store.SetPhase(state.IDLE)
			return nil
		}
		defer func() { _ = app.Render.Stop() }()

		if _, ok := app.Render.(*render.FBRenderer); ok {
			restore := system.EnterGraphics(app.Logger)
			defer restore()
		}
	}

	app.pin(app.Settings.Width, app.Settings.Height)
	canvas := render.NewCanvas(0, 0)
	engine, err := starfield.New(cfg, canvas,
		starfield.WithViewport(app.viewport()),
		starfield.WithSeed(app.Settings.Seed))
	if err != nil {
		app.Store.SetPhase(state.IDLE)
		return err
	}

	screen := screens.NewStarfieldScreen(engine, app.overlay(), app.Store, app.Logger)
	if err := screen.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = screen.Stop() }()

	loop := render.NewLoop(canvas, screen, app.Settings.FPS, app.outputs()...)
	loop.Logger = app.Logger

	if err := app.Web.Start(ctx); err != nil {
		app.Logger.Errorf("app", "web server start error: %v", err)
		return err
	}
	defer func() { _ = app.Web.Stop() }()

	sources := append([]events.Source{app.requests}, app.Sources...)
	for _, src := range sources {
		if err := src.Start(ctx); err != nil {
			app.Logger.Errorf("app", "event source start error: %v", err)
		}
		defer func() { _ = src.Stop() }()
	}

	app.Store.SetPhase(state.RUNNING)
	defer app.Store.SetPhase(state.STOPPED)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return loop.Run(gctx) })
	g.Go(func() error {
		app.pump(loop, events.Merge(gctx, sources...))
		return nil
	})

	var exitErr error
	select {
	case <-ctx.Done():
		exitErr = ctx.Err()
	case exitErr = <-app.exitCh:
	}
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return exitErr
}

// pump applies host events until the merged channel closes.
func (app *App) pump(loop *render.Loop, in <-chan events.Event) {
	for ev := range in {
		switch ev.Kind {
		case events.Resize:
			app.pin(ev.Width, ev.Height)
			if !loop.RequestResize(ev.Width, ev.Height) {
				app.Logger.Errorf("app", "resize %dx%d dropped, loop busy", ev.Width, ev.Height)
			}
		case events.Exit:
			app.Logger.Infof("app", "exit requested")
			app.Exit(nil)
		}
	}
}

func (app *App) viewport() starfield.Viewport {
	sources := []system.SizeSource{app.pinnedSize}
	if app.Render != nil {
		sources = append(sources, app.Render.Bounds)
	}
	sources = append(sources, app.Viewports...)
	sources = append(sources, system.Fixed(render.CanvasWidth, render.CanvasHeight))
	return system.Viewport(sources...)
}

// pin records an explicit size; a zero dimension clears it so the next
// reinitialization follows the device again.
func (app *App) pin(width, height int) {
	if width > 0 && height > 0 {
		app.pinned.Store(&image.Point{X: width, Y: height})
		return
	}
	app.pinned.Store(nil)
}

func (app *App) pinnedSize() (int, int) {
	if p := app.pinned.Load(); p != nil {
		return p.X, p.Y
	}
	return 0, 0
}

func (app *App) overlay() *render.Overlay {
	var qrPayload string
	if app.Settings.QR {
		qrPayload = web.DisplayURL(app.Settings.Listen)
	}
	return render.NewOverlay(app.Settings.Caption, qrPayload, app.Logger)
}

func (app *App) outputs() []render.Presenter {
	var out []render.Presenter
	if app.Render != nil {
		out = append(out, app.Render)
	}
	if app.Snapshot != nil {
		out = append(out, app.Snapshot)
	}
	return out
}
