package engine

import (
	"fmt"
	"strings"

	"morphcloud/internal/core"
)

// RippleInfo is the diagnostics view of one live ripple.
type RippleInfo struct {
	Age       float32
	Radius    float32
	Amplitude float32
}

// Diagnostics reports the live state of the designated sample point plus the
// field values acting on it. Captured at the end of every Step.
type Diagnostics struct {
	SampleIndex int
	Point       core.Vec3

	Phase    int
	Blend    float32
	Source   Shape
	Target   Shape
	Progress float32

	WaveContributions []float32
	RippleCount       int
	Ripples           []RippleInfo
	RippleTotal       float32
}

// captureDiagnostics snapshots the sample point state after an evaluation
// pass. The ripple listing follows insertion order, so successive frames
// report the same ripple on the same line.
func (e *Engine) captureDiagnostics() {
	p := &e.cfg.Params
	idx := e.sampleIndex
	base := idx * 3
	point := core.Vec3{
		X: e.positions[base+0],
		Y: e.positions[base+1],
		Z: e.positions[base+2],
	}

	d := &e.diag
	d.SampleIndex = idx
	d.Point = point
	d.Phase = e.morph.Phase()
	d.Blend = e.morph.Blend()
	d.Source, d.Target = e.morph.Pair()
	d.Progress = e.morph.Progress()

	d.WaveContributions = d.WaveContributions[:0]
	for i := range e.waves {
		one := e.waves[i : i+1]
		d.WaveContributions = append(d.WaveContributions,
			waveDisplacement(one, point, e.time, p))
	}

	live := e.ripples.Ripples()
	d.RippleCount = len(live)
	d.Ripples = d.Ripples[:0]
	for i := range live {
		d.Ripples = append(d.Ripples, RippleInfo{
			Age:       live[i].Age,
			Radius:    live[i].Radius,
			Amplitude: live[i].Amplitude,
		})
	}
	d.RippleTotal = e.ripples.DisplacementAt(point, p)
}

// Diagnostics returns the record captured by the most recent Step. The
// returned struct shares its slices with the engine; copy before retaining.
func (e *Engine) Diagnostics() Diagnostics { return e.diag }

// String renders the record as the multi-line block shown on the HUD.
func (d Diagnostics) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sample %d  (%.2f, %.2f, %.2f)\n",
		d.SampleIndex, d.Point.X, d.Point.Y, d.Point.Z)
	fmt.Fprintf(&b, "morph %s -> %s  phase %d  blend %.3f\n",
		d.Source, d.Target, d.Phase, d.Blend)
	for i, w := range d.WaveContributions {
		fmt.Fprintf(&b, "wave %d: %+.4f\n", i, w)
	}
	fmt.Fprintf(&b, "ripples: %d  total %+.4f\n", d.RippleCount, d.RippleTotal)
	for i, r := range d.Ripples {
		fmt.Fprintf(&b, "  %d: age %.0f radius %.2f amp %.4f\n",
			i, r.Age, r.Radius, r.Amplitude)
	}
	return b.String()
}
