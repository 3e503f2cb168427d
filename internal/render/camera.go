// Package render projects the engine's point buffers onto the screen. The
// camera math is pure and build-tag free; only the painter touches ebiten.
package render

import (
	"github.com/chewxy/math32"

	"morphcloud/internal/core"
)

// pitchLimit keeps the orbit shy of the poles so the view never flips.
const pitchLimit = 1.45

// Camera is a simple orbit camera: yaw/pitch around the origin at a fixed
// distance, with a perspective divide on projection.
type Camera struct {
	Yaw      float32
	Pitch    float32
	Distance float32

	// Perspective is the projection strength; larger values flatten the
	// image toward orthographic.
	Perspective float32

	Width  int
	Height int
}

// NewCamera returns a camera framing the default cloud.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Pitch:       0.35,
		Distance:    46,
		Perspective: 320,
		Width:       width,
		Height:      height,
	}
}

// Orbit rotates the view by the given yaw and pitch deltas, clamping pitch
// away from the poles.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = core.Clamp(c.Pitch+dPitch, -pitchLimit, pitchLimit)
}

// Zoom moves the camera along its view axis. Distance never drops below 5.
func (c *Camera) Zoom(delta float32) {
	c.Distance += delta
	if c.Distance < 5 {
		c.Distance = 5
	}
}

// view transforms a world point into camera space.
func (c *Camera) view(p core.Vec3) core.Vec3 {
	sinY, cosY := math32.Sincos(c.Yaw)
	sinP, cosP := math32.Sincos(c.Pitch)

	// Yaw around Y, then pitch around X, then pull back by Distance.
	x := p.X*cosY - p.Z*sinY
	z := p.X*sinY + p.Z*cosY
	y := p.Y*cosP - z*sinP
	z = p.Y*sinP + z*cosP

	return core.Vec3{X: x, Y: y, Z: z + c.Distance}
}

// Project maps a world point to screen coordinates. The returned depth grows
// away from the camera and is suitable for painter-order sorting; ok is
// false when the point sits on or behind the camera plane.
func (c *Camera) Project(p core.Vec3) (x, y, depth float32, ok bool) {
	v := c.view(p)
	denom := c.Perspective + v.Z
	if denom <= 1e-3 {
		return 0, 0, 0, false
	}
	factor := c.Perspective / denom
	x = v.X*factor + float32(c.Width)/2
	y = -v.Y*factor + float32(c.Height)/2
	return x, y, v.Z, true
}

// Scale returns the perspective scale factor at the given world point, used
// to size point sprites with distance.
func (c *Camera) Scale(p core.Vec3) float32 {
	v := c.view(p)
	denom := c.Perspective + v.Z
	if denom <= 1e-3 {
		return 0
	}
	return c.Perspective / denom
}

// NearestPoint finds the buffer index of the projected point closest to the
// screen position (sx, sy) within maxDist pixels. Used to resolve a click
// back onto the cloud surface. Returns ok=false when nothing is close
// enough.
func (c *Camera) NearestPoint(positions []float32, sx, sy, maxDist float32) (int, bool) {
	bestIdx := -1
	bestDepth := float32(math32.MaxFloat32)
	maxSq := maxDist * maxDist
	for i := 0; i+2 < len(positions); i += 3 {
		p := core.Vec3{X: positions[i], Y: positions[i+1], Z: positions[i+2]}
		x, y, depth, ok := c.Project(p)
		if !ok {
			continue
		}
		dx := x - sx
		dy := y - sy
		if dx*dx+dy*dy > maxSq {
			continue
		}
		// Prefer the nearest surface among points under the cursor.
		if depth < bestDepth {
			bestDepth = depth
			bestIdx = i / 3
		}
	}
	if bestIdx < 0 {
		return 0, false
	}
	return bestIdx, true
}
