package starfield

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	minDepth = 0.2
	maxDepth = 1.6

	// A star is recycled once it is this far past the left edge.
	wrapMargin = 12
	// Recycled stars re-enter up to this many pixels beyond the right edge.
	respawnJitter = 50

	minTwinkleSpeed  = 0.02
	twinkleSpeedSpan = 0.05

	// Flares last between minFlareFrames and minFlareFrames+flareFrameSpan-1 frames.
	minFlareFrames = 20
	flareFrameSpan = 40

	// Per-star colors are drawn from this HSV band.
	hueMin, hueSpan = 190.0, 70.0
	satMin, satSpan = 0.05, 0.30
	valMin, valSpan = 0.85, 0.15
)

// Flare is the transient cross highlight on a single star.
// While Active, 0 <= Elapsed < Duration.
type Flare struct {
	Active   bool
	Elapsed  int
	Duration int
}

// Ignite starts a flare lasting duration frames. It does nothing and
// returns false when a flare is already running.
func (f *Flare) Ignite(duration int) bool {
	if f.Active || duration <= 0 {
		return false
	}
	f.Active = true
	f.Elapsed = 0
	f.Duration = duration
	return true
}

// tick advances a running flare by one frame and returns its decay fraction.
func (f *Flare) tick() float64 {
	f.Elapsed++
	return float64(f.Elapsed) / float64(f.Duration)
}

func (f *Flare) expired() bool { return f.Elapsed >= f.Duration }

func (f *Flare) reset() { *f = Flare{} }

// Star is one particle. Stars are never destroyed, only recycled in place.
type Star struct {
	X, Y         float64
	Depth        float64
	Color        RGB
	TwinklePhase float64
	TwinkleSpeed float64
	Flare        Flare
}

func newStar(rng Rand, width, height float64, base *RGB) Star {
	s := Star{
		X:            rng.Float64() * width,
		Y:            rng.Float64() * height,
		Depth:        maxDepth - rng.Float64()*(maxDepth-minDepth),
		TwinklePhase: rng.Float64() * 2 * math.Pi,
		TwinkleSpeed: minTwinkleSpeed + rng.Float64()*twinkleSpeedSpan,
	}
	if base != nil {
		s.Color = *base
	} else {
		s.Color = randomColor(rng)
	}
	return s
}

func randomColor(rng Rand) RGB {
	c := colorful.Hsv(
		hueMin+rng.Float64()*hueSpan,
		satMin+rng.Float64()*satSpan,
		valMin+rng.Float64()*valSpan,
	)
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
