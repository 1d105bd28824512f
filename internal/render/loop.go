package render

import (
	"context"
	"time"
)

const (
	DefaultFPS      = 60
	resizeQueueSize = 4
)

type resizeRequest struct {
	width, height int
}

// Loop is the frame scheduler. It owns the canvas and the screen: every
// call into them happens on the goroutine running Run. The next frame is
// armed only after the current one (including presenting) has finished, so
// frames never overlap. Resize requests are applied between frames.
type Loop struct {
	Canvas  *Canvas
	Screen  Screen
	Outputs []Presenter
	FPS     int
	Logger  logger

	resize chan resizeRequest
}

func NewLoop(canvas *Canvas, screen Screen, fps int, outputs ...Presenter) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{
		Canvas:  canvas,
		Screen:  screen,
		Outputs: outputs,
		FPS:     fps,
		resize:  make(chan resizeRequest, resizeQueueSize),
	}
}

// RequestResize queues a resize for the next gap between frames. Zero
// dimensions re-derive the size from the viewport. It never blocks and
// reports false when the queue is full.
func (l *Loop) RequestResize(width, height int) bool {
	select {
	case l.resize <- resizeRequest{width: width, height: height}:
		return true
	default:
		return false
	}
}

// Run draws frames until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(l.FPS)
	timer := time.NewTimer(0)
	defer timer.Stop()

	lastLog := time.Now()
	var frames int
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-l.resize:
			l.Screen.Resize(req.width, req.height)
			if l.Logger != nil {
				w, h := l.Canvas.Size()
				l.Logger.Infof("loop", "reinitialized at %dx%d", w, h)
			}
		case <-timer.C:
			start := time.Now()
			l.frame()
			frames++
			if l.Logger != nil && time.Since(lastLog) > time.Second {
				l.Logger.Infof("loop", "heartbeat, %d frames in %s", frames, time.Since(lastLog).Round(time.Millisecond))
				frames = 0
				lastLog = time.Now()
			}
			timer.Reset(max(0, interval-time.Since(start)))
		}
	}
}

func (l *Loop) frame() {
	l.Screen.Draw(l.Canvas)
	img := l.Canvas.Image()
	for _, out := range l.Outputs {
		if err := out.Present(img); err != nil && l.Logger != nil {
			l.Logger.Errorf("loop", "present failed: %v", err)
		}
	}
}
