package engine

import (
	"math"
	"strconv"

	"morphcloud/internal/core"
)

// Parameters reports the current tunables grouped for the HUD.
func (e *Engine) Parameters() core.ParameterSnapshot {
	p := e.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Shapes",
			Params: []core.Parameter{
				floatParam("sphere_radius", "Sphere radius", p.SphereRadius),
				floatParam("helix_radius", "Helix radius", p.HelixRadius),
				floatParam("helix_height", "Helix height", p.HelixHeight),
				floatParam("helix_turns", "Helix turns", p.HelixTurns),
				floatParam("strand_radius", "Strand radius", p.StrandRadius),
				floatParam("strand_gap", "Strand gap", p.StrandGap),
				floatParam("torus_radius", "Torus radius", p.TorusRadius),
				floatParam("tube_radius", "Tube radius", p.TubeRadius),
			},
		},
		{
			Name: "Fields",
			Params: []core.Parameter{
				floatParam("wave_speed", "Wave speed", p.WaveSpeed),
				floatParam("wave_strength", "Wave strength", p.WaveStrength),
				floatParam("color_speed", "Color speed", p.ColorSpeed),
			},
		},
		{
			Name: "Ripples",
			Params: []core.Parameter{
				floatParam("ripple_speed", "Ripple speed", p.RippleSpeed),
				floatParam("ripple_decay", "Ripple decay", p.RippleDecay),
				floatParam("ripple_width", "Ripple width", p.RippleWidth),
				floatParam("ripple_amplitude", "Ripple amplitude", p.RippleAmplitude),
			},
		},
		{
			Name: "Morph",
			Params: []core.Parameter{
				boolParam("morph_auto", "Auto advance", p.MorphAuto),
				floatParam("morph_speed", "Morph speed", p.MorphSpeed),
			},
		},
		{
			Name: "Visual",
			Params: []core.Parameter{
				floatParam("point_size", "Point size", p.PointSize),
				floatParam("opacity", "Opacity", p.Opacity),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable tunables with their steps and
// bounds.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		floatControl("sphere_radius", "Sphere radius", 0.5, 1, 30),
		floatControl("helix_radius", "Helix radius", 0.5, 1, 30),
		floatControl("helix_height", "Helix height", 1, 2, 60),
		floatControl("helix_turns", "Helix turns", 0.5, 0.5, 10),
		floatControl("torus_radius", "Torus radius", 0.5, 1, 30),
		floatControl("tube_radius", "Tube radius", 0.25, 0.5, 12),
		floatControl("wave_speed", "Wave speed", 0.1, 0, 5),
		floatControl("wave_strength", "Wave strength", 0.1, 0, 5),
		floatControl("color_speed", "Color speed", 0.01, 0, 1),
		floatControl("ripple_speed", "Ripple speed", 0.25, 0.25, 10),
		floatControl("ripple_decay", "Ripple decay", 0.005, 0.8, 1),
		floatControl("ripple_amplitude", "Ripple amplitude", 0.05, 0.05, 1),
		floatControl("morph_speed", "Morph speed", 0.001, 0.001, 0.05),
		{Key: "morph_auto", Label: "Auto advance", Type: core.ParamTypeBool},
		floatControl("point_size", "Point size", 0.5, 0.5, 8),
		floatControl("opacity", "Opacity", 0.05, 0.05, 1),
	}
}

// SetFloatParameter updates one tunable between frames. Returns false when
// the key is unknown or the value would make the configuration invalid.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	next := e.cfg
	dst, ok := next.Params.fields()[key]
	if !ok {
		return false
	}
	*dst = float32(value)
	if next.Validate() != nil {
		return false
	}
	e.cfg = next
	return true
}

// SetBoolParameter toggles a boolean tunable.
func (e *Engine) SetBoolParameter(key string, value bool) bool {
	if key != "morph_auto" {
		return false
	}
	e.cfg.Params.MorphAuto = value
	return true
}

func floatParam(key, label string, v float32) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(float64(v), 'g', 4, 32),
	}
}

func boolParam(key, label string, v bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(v),
	}
}

func floatControl(key, label string, step, min, max float64) core.ParameterControl {
	return core.ParameterControl{
		Key:    key,
		Label:  label,
		Type:   core.ParamTypeFloat,
		Step:   step,
		Min:    min,
		Max:    max,
		HasMin: true,
		HasMax: true,
	}
}
