package starfield

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrNoSurface is returned by New when there is nothing to draw into.
var ErrNoSurface = errors.New("starfield: no drawing surface")

// Config controls one starfield. It is selected once from a mode label and
// never changes afterwards.
type Config struct {
	Name      string
	StarCount int
	// BaseSpeed is the horizontal drift in pixels per frame at depth 1.
	BaseSpeed float64
	// BaseColor is used for every star when set; nil gives each star its
	// own color from the cool blue-white hue band.
	BaseColor        *RGB
	TwinkleEnabled   bool
	TwinkleIntensity float64
	// CrossSpawnChance is the per-frame probability of starting one flare.
	CrossSpawnChance float64
}

// Mode pairs a label pattern with the configuration it selects.
type Mode struct {
	Pattern string
	Config  Config
}

// Ordered: the first pattern contained in the label wins.
var modes = []Mode{
	{
		Pattern: "admin",
		Config: Config{
			Name:             "admin",
			StarCount:        140,
			BaseSpeed:        0.35,
			TwinkleEnabled:   true,
			TwinkleIntensity: 0.7,
			CrossSpawnChance: 0.02,
		},
	},
	{
		Pattern: "twinkle",
		Config: Config{
			Name:             "twinkle",
			StarCount:        180,
			BaseSpeed:        0.18,
			BaseColor:        &RGB{R: 210, G: 225, B: 255},
			TwinkleEnabled:   true,
			TwinkleIntensity: 1,
			CrossSpawnChance: 0.012,
		},
	},
	{
		Pattern: "slow",
		Config: Config{
			Name:             "slow",
			StarCount:        220,
			BaseSpeed:        0.08,
			BaseColor:        &RGB{R: 255, G: 255, B: 255},
			CrossSpawnChance: 0.006,
		},
	},
}

var defaultConfig = Config{
	Name:             "default",
	StarCount:        200,
	BaseSpeed:        0.22,
	BaseColor:        &RGB{R: 235, G: 240, B: 255},
	TwinkleEnabled:   true,
	TwinkleIntensity: 0.5,
	CrossSpawnChance: 0.01,
}

// Resolve returns the configuration for a mode label such as a page class
// ("index-slow", "dark-twinkle", "admin"). Matching is case-insensitive;
// unknown or empty labels get the default configuration.
func Resolve(label string) Config {
	label = strings.ToLower(strings.TrimSpace(label))
	if label != "" {
		for _, m := range modes {
			if strings.Contains(label, m.Pattern) {
				return m.Config.clone()
			}
		}
	}
	return defaultConfig.clone()
}

// DefaultConfig returns the fallback configuration.
func DefaultConfig() Config { return defaultConfig.clone() }

// Modes returns the ordered mode table.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	for i, m := range modes {
		out[i] = Mode{Pattern: m.Pattern, Config: m.Config.clone()}
	}
	return out
}

// Validate reports the first out-of-range field of a hand-built configuration.
func (c Config) Validate() error {
	if c.StarCount < 0 {
		return fmt.Errorf("star count must not be negative (got %d)", c.StarCount)
	}
	if !finite(c.BaseSpeed) || c.BaseSpeed < 0 {
		return fmt.Errorf("base speed must be a non-negative number (got %g)", c.BaseSpeed)
	}
	if !finite(c.TwinkleIntensity) || c.TwinkleIntensity < 0 || c.TwinkleIntensity > 1 {
		return fmt.Errorf("twinkle intensity must be within [0,1] (got %g)", c.TwinkleIntensity)
	}
	if !finite(c.CrossSpawnChance) || c.CrossSpawnChance < 0 || c.CrossSpawnChance > 1 {
		return fmt.Errorf("cross spawn chance must be within [0,1] (got %g)", c.CrossSpawnChance)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (c Config) clone() Config {
	if c.BaseColor != nil {
		col := *c.BaseColor
		c.BaseColor = &col
	}
	return c
}
