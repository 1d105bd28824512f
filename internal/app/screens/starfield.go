package screens

import (
	"context"
	"errors"

	"github.com/rook-computer/starfield/internal/render"
	"github.com/rook-computer/starfield/internal/starfield"
	"github.com/rook-computer/starfield/internal/state"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// FrameRecorder receives per-frame statistics, typically *state.Store.
type FrameRecorder interface {
	UpdateFrame(frame state.FrameInfo)
}

// StarfieldScreen advances the engine once per loop tick and draws the
// overlay on top.
type StarfieldScreen struct {
	Engine   *starfield.Engine
	Overlay  *render.Overlay
	Recorder FrameRecorder
	Logger   Logger
}

func NewStarfieldScreen(engine *starfield.Engine, overlay *render.Overlay, recorder FrameRecorder, logger Logger) *StarfieldScreen {
	return &StarfieldScreen{Engine: engine, Overlay: overlay, Recorder: recorder, Logger: logger}
}

func (s *StarfieldScreen) Start(ctx context.Context) error {
	if s.Engine == nil {
		return errors.New("no starfield engine configured")
	}
	s.Engine.Init()
	if s.Logger != nil {
		st := s.Engine.Stats()
		s.Logger.Infof("starfield", "mode %s: %d stars at %dx%d", st.Mode, st.Stars, st.Width, st.Height)
	}
	return nil
}

func (s *StarfieldScreen) Stop() error { return nil }

func (s *StarfieldScreen) Draw(c *render.Canvas) {
	s.Engine.Frame()
	s.Overlay.Draw(c)
	if s.Recorder != nil {
		st := s.Engine.Stats()
		s.Recorder.UpdateFrame(state.FrameInfo{
			Mode:         st.Mode,
			Frames:       st.Frames,
			Stars:        st.Stars,
			ActiveFlares: st.ActiveFlares,
			Width:        st.Width,
			Height:       st.Height,
		})
	}
}

// Resize drops every star and recreates the field at the new size.
func (s *StarfieldScreen) Resize(width, height int) {
	s.Engine.Resize(width, height)
	if s.Logger != nil {
		st := s.Engine.Stats()
		s.Logger.Infof("starfield", "reinitialized %d stars at %dx%d", st.Stars, st.Width, st.Height)
	}
}
