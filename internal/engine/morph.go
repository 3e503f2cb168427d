package engine

// phaseCount is the number of phases in the morph cycle, one per surface
// hand-off.
const phaseCount = 3

// Morph tracks the continuous transition progress through the surface cycle.
// Progress lives in [0, phaseCount); the integer part selects the phase and
// the fractional part is the blend factor within it. Phase and blend are
// always derived, never stored, so the controller cannot hold an
// inconsistent pair.
type Morph struct {
	progress float32
}

// Advance moves progress forward by speed and wraps at the end of the cycle.
func (m *Morph) Advance(speed float32) {
	m.progress += speed
	for m.progress >= phaseCount {
		m.progress -= phaseCount
	}
}

// SetProgress scrubs directly to the given progress, wrapped into
// [0, phaseCount). Used for manual control when auto-advance is off.
func (m *Morph) SetProgress(p float32) {
	for p < 0 {
		p += phaseCount
	}
	for p >= phaseCount {
		p -= phaseCount
	}
	m.progress = p
}

// Progress returns the raw transition progress.
func (m *Morph) Progress() float32 { return m.progress }

// Phase returns the current phase index in [0, phaseCount).
func (m *Morph) Phase() int { return int(m.progress) }

// Blend returns the fractional interpolation factor within the current
// phase, in [0, 1).
func (m *Morph) Blend() float32 { return m.progress - float32(m.Phase()) }

// Pair resolves the source and target surfaces for the current phase.
func (m *Morph) Pair() (src, dst Shape) {
	p := morphCycle[m.Phase()]
	return p.src, p.dst
}
