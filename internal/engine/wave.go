package engine

import (
	"github.com/chewxy/math32"

	"morphcloud/internal/core"
)

// Wave describes one traveling sine component of the ambient displacement
// field. Waves are immutable after construction and shared by every point.
type Wave struct {
	Amplitude float32
	Frequency float32
	Speed     float32
	Phase     float32
}

// defaultWaves is the fixed superposition evaluated at every point. Three
// components with incommensurate frequencies keep the surface from settling
// into a visible repeat.
func defaultWaves() []Wave {
	return []Wave{
		{Amplitude: 0.5, Frequency: 0.8, Speed: 1.2, Phase: 0},
		{Amplitude: 0.3, Frequency: 1.7, Speed: 0.8, Phase: math32.Pi / 3},
		{Amplitude: 0.2, Frequency: 2.9, Speed: 1.6, Phase: math32.Pi * 0.75},
	}
}

// waveDisplacement sums the traveling waves at point p and time t. The
// distance term uses the already-blended point, so the wave pattern rides
// whichever surface is currently visible.
func waveDisplacement(waves []Wave, p core.Vec3, t float32, params *Params) float32 {
	dist := p.Length()
	var sum float32
	for i := range waves {
		w := &waves[i]
		sum += w.Amplitude * params.WaveStrength *
			math32.Sin(w.Frequency*dist+t*w.Speed*params.WaveSpeed+w.Phase)
	}
	return sum
}
