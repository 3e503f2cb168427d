package engine

import (
	"fmt"
	"strconv"

	"github.com/chewxy/math32"
)

// Params holds the tunables read by every evaluation pass. A value is only
// ever changed between frames; within a frame the struct is a read-only
// snapshot.
type Params struct {
	SphereRadius float32

	HelixRadius  float32
	HelixHeight  float32
	HelixTurns   float32
	StrandRadius float32
	StrandGap    float32

	TorusRadius float32
	TubeRadius  float32

	WaveSpeed    float32
	WaveStrength float32
	ColorSpeed   float32

	RippleSpeed     float32
	RippleDecay     float32
	RippleWidth     float32
	RippleAmplitude float32

	PointSize float32
	Opacity   float32

	MorphAuto  bool
	MorphSpeed float32
}

// Config controls the engine construction. GridSize is fixed once an Engine
// exists; everything in Params may change at runtime.
type Config struct {
	GridSize int

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		GridSize: 200,
		Params: Params{
			SphereRadius: 10,

			HelixRadius:  8,
			HelixHeight:  24,
			HelixTurns:   3,
			StrandRadius: 1.2,
			StrandGap:    8,

			TorusRadius: 12,
			TubeRadius:  4,

			WaveSpeed:    1.0,
			WaveStrength: 1.0,
			ColorSpeed:   0.05,

			RippleSpeed:     2.0,
			RippleDecay:     0.98,
			RippleWidth:     0.5,
			RippleAmplitude: 0.2,

			PointSize: 2,
			Opacity:   0.85,

			MorphAuto:  true,
			MorphSpeed: 0.003,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["grid"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 2 {
			c.GridSize = parsed
		}
	}
	for key, dst := range c.Params.fields() {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 32); err == nil {
				*dst = float32(parsed)
			}
		}
	}
	if v, ok := cfg["morph_auto"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.MorphAuto = parsed
		}
	}
	return c
}

// fields maps override keys onto the float-valued params. Bool params are
// handled separately.
func (p *Params) fields() map[string]*float32 {
	return map[string]*float32{
		"sphere_radius":    &p.SphereRadius,
		"helix_radius":     &p.HelixRadius,
		"helix_height":     &p.HelixHeight,
		"helix_turns":      &p.HelixTurns,
		"strand_radius":    &p.StrandRadius,
		"strand_gap":       &p.StrandGap,
		"torus_radius":     &p.TorusRadius,
		"tube_radius":      &p.TubeRadius,
		"wave_speed":       &p.WaveSpeed,
		"wave_strength":    &p.WaveStrength,
		"color_speed":      &p.ColorSpeed,
		"ripple_speed":     &p.RippleSpeed,
		"ripple_decay":     &p.RippleDecay,
		"ripple_width":     &p.RippleWidth,
		"ripple_amplitude": &p.RippleAmplitude,
		"point_size":       &p.PointSize,
		"opacity":          &p.Opacity,
		"morph_speed":      &p.MorphSpeed,
	}
}

// Validate reports the first problem with the configuration, or nil when it
// is usable. Non-finite values are rejected wholesale; the evaluation loops
// assume finite inputs.
func (c Config) Validate() error {
	if c.GridSize < 2 {
		return fmt.Errorf("grid size %d too small, need at least 2", c.GridSize)
	}
	p := c.Params
	for key, f := range p.fields() {
		if math32.IsNaN(*f) || math32.IsInf(*f, 0) {
			return fmt.Errorf("parameter %s is not finite", key)
		}
	}
	for key, f := range map[string]float32{
		"sphere_radius": p.SphereRadius,
		"helix_radius":  p.HelixRadius,
		"helix_height":  p.HelixHeight,
		"torus_radius":  p.TorusRadius,
		"tube_radius":   p.TubeRadius,
		"ripple_width":  p.RippleWidth,
	} {
		if f <= 0 {
			return fmt.Errorf("parameter %s must be positive, got %v", key, f)
		}
	}
	if p.MorphSpeed <= 0 || p.MorphSpeed > 1 {
		return fmt.Errorf("morph_speed %v outside (0, 1]", p.MorphSpeed)
	}
	if p.RippleDecay <= 0 || p.RippleDecay > 1 {
		return fmt.Errorf("ripple_decay %v outside (0, 1]", p.RippleDecay)
	}
	if p.Opacity < 0 || p.Opacity > 1 {
		return fmt.Errorf("opacity %v outside [0, 1]", p.Opacity)
	}
	return nil
}
