package engine

import (
	"github.com/chewxy/math32"

	"morphcloud/internal/core"
)

// rippleEpsilon is the amplitude below which a ripple is dropped from the
// active set.
const rippleEpsilon = 0.01

// Ripple is a transient expanding wavefront seeded by one interaction event.
// Origin is the unit direction of the point that was struck; the ring grows
// outward from it in spherical angle while the amplitude decays.
type Ripple struct {
	Origin    core.Vec3
	Radius    float32
	Amplitude float32
	Age       float32
}

// RippleField owns the live ripples. Insertion order is preserved so the
// diagnostics listing is stable frame to frame.
type RippleField struct {
	ripples []Ripple
}

// Spawn adds a ripple centered on the given surface point.
func (f *RippleField) Spawn(at core.Vec3, p *Params) {
	f.ripples = append(f.ripples, Ripple{
		Origin:    at.Normalize(),
		Amplitude: p.RippleAmplitude,
	})
}

// Advance grows, decays, and ages every ripple, then compacts the slice in
// place dropping the ones that have faded out. Must run strictly between
// evaluation passes.
func (f *RippleField) Advance(p *Params) {
	live := f.ripples[:0]
	for i := range f.ripples {
		r := &f.ripples[i]
		r.Radius += p.RippleSpeed * 0.1
		r.Amplitude *= p.RippleDecay
		r.Age++
		if r.Amplitude > rippleEpsilon {
			live = append(live, *r)
		}
	}
	f.ripples = live
}

// DisplacementAt sums the contribution of every live ripple at the given
// point. The point is normalized and compared to each origin by spherical
// angle; on the helix and torus phases that angle is only an approximation
// of surface distance, which is the intended look.
func (f *RippleField) DisplacementAt(point core.Vec3, p *Params) float32 {
	if len(f.ripples) == 0 {
		return 0
	}
	dir := point.Normalize()
	var sum float32
	for i := range f.ripples {
		sum += f.ripples[i].contributionAt(dir, p)
	}
	return sum
}

// contributionAt evaluates one ripple against a unit-length query direction.
func (r *Ripple) contributionAt(dir core.Vec3, p *Params) float32 {
	// Rounding can push the dot product a hair past ±1; clamp before acos.
	cosAngle := core.Clamp(r.Origin.Dot(dir), -1, 1)
	angle := math32.Acos(cosAngle)
	fromRing := math32.Abs(angle - r.Radius)
	if fromRing > p.RippleWidth {
		return 0
	}
	falloff := 1 - fromRing/p.RippleWidth
	return r.Amplitude * falloff * math32.Cos(angle*20-r.Age*0.1)
}

// Count returns the number of live ripples.
func (f *RippleField) Count() int { return len(f.ripples) }

// Ripples exposes the live ripples in insertion order for diagnostics.
func (f *RippleField) Ripples() []Ripple { return f.ripples }
