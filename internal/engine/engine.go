// Package engine implements the morph/displacement core: a fixed N×N grid of
// parametric points blended between three surfaces, displaced by wave and
// ripple fields, and colored from the combined state. The engine owns all
// cross-frame mutable state (morph progress, ripples, elapsed time); the
// position and color buffers are overwritten every frame and never
// integrated.
package engine

import (
	"runtime"

	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"

	"morphcloud/internal/core"
)

const colorSaturation = 0.8

// Engine evaluates the point cloud. Construct with New; Step once per frame.
// Splash and the parameter setters must only be called between Steps.
type Engine struct {
	cfg Config
	n   int

	positions []float32
	colors    []float32

	waves   []Wave
	ripples RippleField
	morph   Morph

	time    float32
	pending []core.Vec3

	workers     int
	sampleIndex int

	diag Diagnostics
}

// New constructs an Engine for the configured grid. The grid size is fixed
// for the engine's lifetime.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.GridSize
	e := &Engine{
		cfg:         cfg,
		n:           n,
		positions:   make([]float32, 3*n*n),
		colors:      make([]float32, 3*n*n),
		waves:       defaultWaves(),
		workers:     1,
		sampleIndex: (n/2)*n + n/2,
	}
	return e, nil
}

// Size returns the grid side length N.
func (e *Engine) Size() int { return e.n }

// Points returns the number of grid points, N².
func (e *Engine) Points() int { return e.n * e.n }

// Positions exposes the position buffer, 3 floats per point, row-major by
// (i, j). Valid until the next Step overwrites it.
func (e *Engine) Positions() []float32 { return e.positions }

// Colors exposes the color buffer, r/g/b in [0,1] per point.
func (e *Engine) Colors() []float32 { return e.colors }

// Morph exposes the morph controller for scrubbing and inspection.
func (e *Engine) Morph() *Morph { return &e.morph }

// Ripples exposes the ripple field for inspection.
func (e *Engine) Ripples() *RippleField { return &e.ripples }

// Config returns a copy of the current configuration snapshot.
func (e *Engine) Config() Config { return e.cfg }

// Elapsed returns the accumulated animation time in seconds.
func (e *Engine) Elapsed() float32 { return e.time }

// SetWorkers sets how many goroutines evaluate the grid. Values below 1
// select one worker; 0 via SetWorkersAuto picks the CPU count.
func (e *Engine) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.workers = n
}

// SetWorkersAuto shards the grid across all available CPUs.
func (e *Engine) SetWorkersAuto() {
	e.SetWorkers(runtime.NumCPU())
}

// SetSampleIndex selects the grid point reported by Diagnostics. Out of
// range values are ignored.
func (e *Engine) SetSampleIndex(idx int) {
	if idx >= 0 && idx < e.n*e.n {
		e.sampleIndex = idx
	}
}

// Reset clears all cross-frame state: elapsed time, morph progress, live
// ripples, and any queued interaction events. Configuration is untouched.
func (e *Engine) Reset() {
	e.time = 0
	e.morph.SetProgress(0)
	e.ripples = RippleField{}
	e.pending = e.pending[:0]
}

// Splash queues a ripple at the given surface point. The queue drains at the
// start of the next Step, so events land between evaluation passes.
func (e *Engine) Splash(at core.Vec3) {
	e.pending = append(e.pending, at)
}

// Step advances the animation by dt seconds and rebuilds the position and
// color buffers. The sequencing is fixed: morph, ripple spawn/advance/prune,
// then the grid pass — ripple mutation never overlaps evaluation.
func (e *Engine) Step(dt float32) {
	p := &e.cfg.Params

	if p.MorphAuto {
		e.morph.Advance(p.MorphSpeed)
	}
	e.time += dt

	for _, at := range e.pending {
		e.ripples.Spawn(at, p)
	}
	e.pending = e.pending[:0]
	e.ripples.Advance(p)

	e.evaluate()
	e.captureDiagnostics()
}

// evaluate runs the grid pass, sharding rows across workers when more than
// one is configured. Rows are independent: every point reads the same
// immutable snapshot and writes only its own buffer slot.
func (e *Engine) evaluate() {
	if e.workers <= 1 {
		e.evaluateRows(0, e.n)
		return
	}
	var g errgroup.Group
	rowsPer := (e.n + e.workers - 1) / e.workers
	for start := 0; start < e.n; start += rowsPer {
		end := start + rowsPer
		if end > e.n {
			end = e.n
		}
		start, end := start, end
		g.Go(func() error {
			e.evaluateRows(start, end)
			return nil
		})
	}
	// Workers never return errors; Wait is the join point.
	_ = g.Wait()
}

// evaluateRows computes position and color for grid rows [i0, i1).
func (e *Engine) evaluateRows(i0, i1 int) {
	p := &e.cfg.Params
	n := e.n
	inv := 1 / float32(n-1)
	src, dst := e.morph.Pair()
	phase := e.morph.Phase()
	blend := e.morph.Blend()
	t := e.time

	for i := i0; i < i1; i++ {
		u := float32(i) * inv
		for j := 0; j < n; j++ {
			v := float32(j) * inv

			from := surfacePoint(src, u, v, p)
			to := surfacePoint(dst, u, v, p)
			base := from.Lerp(to, blend)

			disp := waveDisplacement(e.waves, base, t, p) +
				e.ripples.DisplacementAt(base, p)
			final := base.Add(base.Normalize().Scale(disp))

			idx := (i*n + j) * 3
			e.positions[idx+0] = final.X
			e.positions[idx+1] = final.Y
			e.positions[idx+2] = final.Z

			r, g, b := pointColor(phase, float32(j)/float32(n), v, t, disp, p)
			e.colors[idx+0] = r
			e.colors[idx+1] = g
			e.colors[idx+2] = b
		}
	}
}

// pointColor derives a point's color from the morph phase and displacement.
// Hue cycles with time; lightness is keyed to the phase's target surface:
// flat on the sphere, split per strand on the helix, tube-modulated on the
// torus. Displacement brightens or darkens on top of that.
func pointColor(phase int, colorV, v, t, disp float32, p *Params) (r, g, b float32) {
	hue := colorV + t*p.ColorSpeed
	hue -= math32.Floor(hue)

	var light float32
	switch phase {
	case 1: // morphing toward the helix: one lightness per strand
		if v < 0.5 {
			light = 0.3
		} else {
			light = 0.7
		}
	case 2: // morphing toward the torus: shade around the tube
		light = 0.5 + math32.Sin(v*2*math32.Pi)*0.2
	default:
		light = 0.5
	}
	light = core.Clamp(light+disp*0.2, 0, 1)

	c := colorful.Hsl(float64(hue)*360, colorSaturation, float64(light)).Clamped()
	return float32(c.R), float32(c.G), float32(c.B)
}
