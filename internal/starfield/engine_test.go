package starfield

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSurface struct {
	width, height int
	resizes       int
	clears        int
	circles       int
	rects         int
}

func (s *recordingSurface) Size() (int, int) { return s.width, s.height }
func (s *recordingSurface) Resize(width, height int) {
	s.width, s.height = width, height
	s.resizes++
}
func (s *recordingSurface) Clear() { s.clears++ }
func (s *recordingSurface) FillCircle(cx, cy, radius float64, c RGB, alpha float64) {
	s.circles++
}
func (s *recordingSurface) FillRect(x, y, w, h float64, c RGB, alpha float64) { s.rects++ }

func seeded() Rand { return rand.New(rand.NewPCG(7, 11)) }

func newTestEngine(t *testing.T, cfg Config, width, height int) (*Engine, *recordingSurface) {
	t.Helper()
	surface := &recordingSurface{width: width, height: height}
	e, err := New(cfg, surface, WithRand(seeded()))
	require.NoError(t, err)
	e.Init()
	return e, surface
}

func TestNewWithoutSurface(t *testing.T) {
	e, err := New(DefaultConfig(), nil)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, ErrNoSurface)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{StarCount: -3}, &recordingSurface{})
	assert.Error(t, err)
}

func TestInitPlacesStarsInsideSurface(t *testing.T) {
	e, _ := newTestEngine(t, Resolve("admin"), 640, 360)

	stars := e.Stars()
	require.Len(t, stars, 140)
	for i, s := range stars {
		assert.Greater(t, s.Depth, minDepth, "star %d depth", i)
		assert.LessOrEqual(t, s.Depth, maxDepth, "star %d depth", i)
		assert.GreaterOrEqual(t, s.X, 0.0)
		assert.Less(t, s.X, 640.0)
		assert.GreaterOrEqual(t, s.Y, 0.0)
		assert.Less(t, s.Y, 360.0)
		assert.False(t, s.Flare.Active)
	}
}

func TestInitColors(t *testing.T) {
	fixed, _ := newTestEngine(t, Resolve("index-slow"), 100, 100)
	for _, s := range fixed.Stars() {
		assert.Equal(t, RGB{R: 255, G: 255, B: 255}, s.Color)
	}

	varied, _ := newTestEngine(t, Resolve("admin"), 100, 100)
	distinct := map[RGB]bool{}
	for _, s := range varied.Stars() {
		distinct[s.Color] = true
		// The hue band is blue-white: blue never loses to red.
		assert.GreaterOrEqual(t, s.Color.B, s.Color.R)
	}
	assert.Greater(t, len(distinct), 1)
}

func TestInitSizesEmptySurfaceFromViewport(t *testing.T) {
	surface := &recordingSurface{}
	e, err := New(Resolve("slow"), surface, WithRand(seeded()), WithViewport(func() (int, int) { return 320, 200 }))
	require.NoError(t, err)
	e.Init()

	assert.Equal(t, 1, surface.resizes)
	w, h := surface.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)

	var spread bool
	for _, s := range e.Stars() {
		if s.X > 1 || s.Y > 1 {
			spread = true
		}
	}
	assert.True(t, spread, "stars must not collapse onto the origin")
}

func TestResize(t *testing.T) {
	viewport := func() (int, int) { return 800, 600 }
	surface := &recordingSurface{width: 100, height: 100}
	e, err := New(Resolve("admin"), surface, WithRand(seeded()), WithViewport(viewport))
	require.NoError(t, err)
	e.Init()
	before := e.Stars()

	e.Resize(0, 0)
	assert.Equal(t, 800, surface.width)
	assert.Equal(t, 600, surface.height)
	require.Len(t, e.Stars(), len(before))
	assert.NotEqual(t, before, e.Stars())

	e.Resize(50, 40)
	assert.Equal(t, 50, surface.width)
	st := e.Stats()
	assert.Equal(t, 50, st.Width)
	assert.Equal(t, 40, st.Height)
	for _, s := range e.Stars() {
		assert.Less(t, s.X, 50.0)
		assert.Less(t, s.Y, 40.0)
	}
}

func TestFitIsIdempotent(t *testing.T) {
	surface := &recordingSurface{}
	viewport := func() (int, int) { return 10, 20 }
	Fit(surface, viewport)
	Fit(surface, viewport)
	assert.Equal(t, 1, surface.resizes)

	w, h := Fit(surface, func() (int, int) { return 0, 0 })
	assert.Equal(t, 10, w)
	assert.Equal(t, 20, h)
}

func quietConfig(count int, speed float64) Config {
	return Config{Name: "test", StarCount: count, BaseSpeed: speed, BaseColor: &RGB{R: 255, G: 255, B: 255}}
}

func TestHorizontalWrap(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig(1, 1), 100, 100)
	e.stars[0] = Star{X: -13, Y: 50, Depth: 1}

	e.Step()

	x := e.stars[0].X
	assert.GreaterOrEqual(t, x, 100.0)
	assert.Less(t, x, 150.0)
	assert.GreaterOrEqual(t, e.stars[0].Y, 0.0)
	assert.Less(t, e.stars[0].Y, 100.0)
}

func TestVerticalWrap(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig(2, 0.1), 100, 100)
	e.stars[0] = Star{X: 50, Y: -1, Depth: 1}
	e.stars[1] = Star{X: 50, Y: 101, Depth: 1}

	e.Step()

	assert.Equal(t, 100.0, e.stars[0].Y)
	assert.Equal(t, 0.0, e.stars[1].Y)
}

func TestFlareLifecycle(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig(1, 0), 100, 100)
	const duration = 25
	require.True(t, e.stars[0].Flare.Ignite(duration))

	for i := 1; i < duration; i++ {
		e.Step()
		f := e.stars[0].Flare
		require.True(t, f.Active, "step %d", i)
		assert.GreaterOrEqual(t, f.Elapsed, 0)
		assert.Less(t, f.Elapsed, f.Duration)
	}

	e.Step()
	assert.Equal(t, Flare{}, e.stars[0].Flare)
}

func TestIgniteWhileActiveIsNoop(t *testing.T) {
	var f Flare
	require.True(t, f.Ignite(30))
	f.Elapsed = 4

	assert.False(t, f.Ignite(50))
	assert.Equal(t, Flare{Active: true, Elapsed: 4, Duration: 30}, f)
	assert.False(t, (&Flare{}).Ignite(0))
}

func TestSpawnFlare(t *testing.T) {
	cfg := quietConfig(1, 0)
	cfg.CrossSpawnChance = 1
	e, _ := newTestEngine(t, cfg, 100, 100)

	require.True(t, e.SpawnFlare())
	f := e.stars[0].Flare
	assert.True(t, f.Active)
	assert.Equal(t, 0, f.Elapsed)
	assert.GreaterOrEqual(t, f.Duration, 20)
	assert.LessOrEqual(t, f.Duration, 59)

	assert.False(t, e.SpawnFlare(), "an active flare is never preempted")
	assert.Equal(t, f, e.stars[0].Flare)

	never := quietConfig(5, 0)
	e2, _ := newTestEngine(t, never, 100, 100)
	for i := 0; i < 100; i++ {
		assert.False(t, e2.SpawnFlare())
	}
}

func TestFlareDurationsStayInRange(t *testing.T) {
	cfg := quietConfig(50, 0)
	cfg.CrossSpawnChance = 1
	e, _ := newTestEngine(t, cfg, 100, 100)
	for i := 0; i < 500; i++ {
		e.Step()
		for _, s := range e.stars {
			if s.Flare.Active {
				assert.GreaterOrEqual(t, s.Flare.Duration, 20)
				assert.LessOrEqual(t, s.Flare.Duration, 59)
				assert.Less(t, s.Flare.Elapsed, s.Flare.Duration)
			}
		}
	}
}

func TestCoreAlphaFloor(t *testing.T) {
	cfg := Resolve("dark-twinkle")
	e, _ := newTestEngine(t, cfg, 100, 100)

	for _, depth := range []float64{0.0001, 0.05, 0.2, 0.9, 1.6} {
		s := Star{Depth: depth, TwinkleSpeed: 0.05}
		for i := 0; i < 200; i++ {
			s.TwinklePhase = float64(i) * math.Pi / 100
			a := e.coreAlpha(&s)
			assert.GreaterOrEqual(t, a, minCoreAlpha)
			assert.LessOrEqual(t, a, 1.0)
		}
	}
}

func TestTwinkleModulation(t *testing.T) {
	cfg := quietConfig(1, 0)
	cfg.TwinkleEnabled = true
	cfg.TwinkleIntensity = 1
	e, _ := newTestEngine(t, cfg, 100, 100)

	s := Star{Depth: 1, TwinklePhase: 0, TwinkleSpeed: 0.1}
	assert.InDelta(t, 0.55*0.6, e.coreAlpha(&s), 1e-9)
	assert.Greater(t, s.TwinklePhase, 0.1-1e-9)
	assert.Less(t, s.TwinklePhase, 0.18)

	s = Star{Depth: 1, TwinklePhase: math.Pi / 2}
	assert.InDelta(t, 0.55, e.coreAlpha(&s), 1e-9)

	cfg.TwinkleEnabled = false
	still, _ := newTestEngine(t, cfg, 100, 100)
	s = Star{Depth: 1, TwinklePhase: 1, TwinkleSpeed: 0.1}
	assert.InDelta(t, 0.55, still.coreAlpha(&s), 1e-9)
	assert.Equal(t, 1.0, s.TwinklePhase)
}

func TestFrameDraws(t *testing.T) {
	e, surface := newTestEngine(t, quietConfig(4, 0.5), 100, 100)
	e.Frame()
	assert.Equal(t, 1, surface.clears)
	assert.Equal(t, 8, surface.circles, "core and halo per star")
	assert.Equal(t, 0, surface.rects)

	require.True(t, e.stars[2].Flare.Ignite(40))
	e.Frame()
	assert.Equal(t, 2, surface.clears)
	assert.Equal(t, 8+8+1, surface.circles)
	assert.Equal(t, 2, surface.rects, "horizontal and vertical bar")

	e.Step()
	assert.Equal(t, 2, surface.clears, "Step never draws")
	assert.Equal(t, uint64(3), e.Stats().Frames)
	assert.Equal(t, 1, e.Stats().ActiveFlares)
}

func TestEveryStarWrapsWithinTwoHundredSteps(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig(3, 1), 100, 100)
	for i := range e.stars {
		e.stars[i].Depth = 1
	}

	wrapped := make([]bool, len(e.stars))
	for step := 0; step < 200; step++ {
		prev := e.Stars()
		e.Step()
		for i := range e.stars {
			if e.stars[i].X > prev[i].X {
				wrapped[i] = true
			}
		}
	}
	for i, w := range wrapped {
		assert.True(t, w, "star %d never wrapped", i)
	}
}

func TestWithSeedIsReproducible(t *testing.T) {
	build := func(seed uint64) []Star {
		e, err := New(Resolve("admin"), &recordingSurface{width: 320, height: 200}, WithSeed(seed))
		require.NoError(t, err)
		e.Init()
		for i := 0; i < 30; i++ {
			e.Step()
		}
		return e.Stars()
	}

	assert.Equal(t, build(42), build(42))
	assert.NotEqual(t, build(42), build(43))
}
