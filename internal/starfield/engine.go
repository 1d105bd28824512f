package starfield

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	baseAlphaPerDepth = 0.55
	minCoreAlpha      = 0.06
	twinkleFloor      = 0.6
	twinkleSwing      = 0.4
	twinkleJitter     = 0.8

	minCoreRadius   = 0.8
	coreRadiusScale = 1.1
	haloScale       = 3
	haloAlpha       = 0.12

	flarePeakAlpha   = 0.9
	flareJitterMin   = 0.9
	flareJitterSpan  = 0.2
	minFlareLength   = 6
	flareLengthScale = 16
	minFlareWidth    = 1
	flareWidthScale  = 1.3
	flareGlowScale   = 4
	flareGlowAlpha   = 0.3
)

// Engine animates a fixed set of stars on a Surface.
//
// An Engine is not safe for concurrent use: one goroutine owns it and calls
// Frame (or Step) once per display tick and Resize between ticks.
type Engine struct {
	cfg      Config
	surface  Surface
	viewport Viewport
	rng      Rand

	stars  []Star
	width  float64
	height float64
	frames uint64
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithRand sets the random source. Tests use a seeded one.
func WithRand(rng Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed makes the field reproducible: the same seed and configuration
// produce the same stars. Zero keeps the time-seeded default.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = newRand(seed)
		}
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// WithViewport sets where the engine asks for dimensions when the surface
// has none yet, and on Resize(0, 0).
func WithViewport(viewport Viewport) Option {
	return func(e *Engine) { e.viewport = viewport }
}

// New binds cfg to surface. The star collection is empty until Init.
func New(cfg Config, surface Surface, opts ...Option) (*Engine, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:     cfg.clone(),
		surface: surface,
		rng:     newRand(uint64(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config { return e.cfg.clone() }

// Init (re)creates every star at a random position inside the surface.
// A surface without dimensions is first sized from the viewport so the
// stars do not all land on the origin.
func (e *Engine) Init() {
	width, height := e.surface.Size()
	if width <= 0 || height <= 0 {
		width, height = Fit(e.surface, e.viewport)
	}
	e.width, e.height = float64(width), float64(height)

	stars := make([]Star, e.cfg.StarCount)
	for i := range stars {
		stars[i] = newStar(e.rng, e.width, e.height, e.cfg.BaseColor)
	}
	e.stars = stars
}

// Resize resizes the surface and rebuilds the whole collection.
// Zero dimensions re-derive the size from the viewport.
func (e *Engine) Resize(width, height int) {
	if width > 0 && height > 0 {
		e.surface.Resize(width, height)
	} else {
		Fit(e.surface, e.viewport)
	}
	e.Init()
}

// Frame advances every star by one tick and draws the result.
func (e *Engine) Frame() { e.advance(true) }

// Step advances every star by one tick without drawing.
func (e *Engine) Step() { e.advance(false) }

func (e *Engine) advance(draw bool) {
	if draw {
		e.surface.Clear()
	}
	for i := range e.stars {
		s := &e.stars[i]
		e.drift(s)
		alpha := e.coreAlpha(s)
		if draw {
			e.drawStar(s, alpha)
		}
		if !s.Flare.Active {
			continue
		}
		flare := e.flareAlpha(s)
		if draw {
			e.drawFlare(s, flare)
		}
		if s.Flare.expired() {
			s.Flare.reset()
		}
	}
	e.SpawnFlare()
	e.frames++
}

func (e *Engine) drift(s *Star) {
	s.X -= s.Depth * e.cfg.BaseSpeed
	if s.X < -wrapMargin {
		s.X = e.width + e.rng.Float64()*respawnJitter
		s.Y = e.rng.Float64() * e.height
	}
	if s.Y < 0 {
		s.Y = e.height
	} else if s.Y > e.height {
		s.Y = 0
	}
}

// coreAlpha returns the star's opacity for this frame and advances its
// twinkle phase.
func (e *Engine) coreAlpha(s *Star) float64 {
	alpha := baseAlphaPerDepth * s.Depth
	if e.cfg.TwinkleEnabled {
		k := e.cfg.TwinkleIntensity
		alpha *= (1 - k) + k*(twinkleFloor+twinkleSwing*math.Abs(math.Sin(s.TwinklePhase)))
		s.TwinklePhase += s.TwinkleSpeed * (1 + e.rng.Float64()*twinkleJitter)
	}
	return clamp(alpha, minCoreAlpha, 1)
}

// flareAlpha ticks the star's running flare and returns its opacity.
func (e *Engine) flareAlpha(s *Star) float64 {
	p := s.Flare.tick()
	jitter := flareJitterMin + e.rng.Float64()*flareJitterSpan
	return clamp((1-p)*flarePeakAlpha*jitter, 0, 1)
}

func coreRadius(depth float64) float64 {
	return math.Max(minCoreRadius, coreRadiusScale*depth)
}

func (e *Engine) drawStar(s *Star, alpha float64) {
	r := coreRadius(s.Depth)
	e.surface.FillCircle(s.X, s.Y, r*haloScale, s.Color, alpha*haloAlpha)
	e.surface.FillCircle(s.X, s.Y, r, s.Color, alpha)
}

func (e *Engine) drawFlare(s *Star, alpha float64) {
	if alpha <= 0 {
		return
	}
	length := math.Max(minFlareLength, flareLengthScale*s.Depth)
	width := math.Max(minFlareWidth, flareWidthScale*s.Depth)
	e.surface.FillRect(s.X-length/2, s.Y-width/2, length, width, s.Color, alpha)
	e.surface.FillRect(s.X-width/2, s.Y-length/2, width, length, s.Color, alpha)
	e.surface.FillCircle(s.X, s.Y, coreRadius(s.Depth)*flareGlowScale, s.Color, alpha*flareGlowAlpha)
}

// SpawnFlare rolls the per-frame flare chance and, on success, ignites a
// uniformly chosen star. A star that is already flaring keeps its flare and
// the attempt is lost. Frame calls this once per tick.
func (e *Engine) SpawnFlare() bool {
	if len(e.stars) == 0 || e.cfg.CrossSpawnChance <= 0 {
		return false
	}
	if e.rng.Float64() >= e.cfg.CrossSpawnChance {
		return false
	}
	s := &e.stars[e.rng.IntN(len(e.stars))]
	return s.Flare.Ignite(minFlareFrames + e.rng.IntN(flareFrameSpan))
}

// Stars returns a copy of the current collection.
func (e *Engine) Stars() []Star {
	out := make([]Star, len(e.stars))
	copy(out, e.stars)
	return out
}

// Stats summarizes the engine for status reporting.
type Stats struct {
	Mode         string
	Frames       uint64
	Stars        int
	ActiveFlares int
	Width        int
	Height       int
}

func (e *Engine) Stats() Stats {
	active := 0
	for i := range e.stars {
		if e.stars[i].Flare.Active {
			active++
		}
	}
	return Stats{
		Mode:         e.cfg.Name,
		Frames:       e.frames,
		Stars:        len(e.stars),
		ActiveFlares: active,
		Width:        int(e.width),
		Height:       int(e.height),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
