package engine

import (
	"github.com/chewxy/math32"

	"morphcloud/internal/core"
)

// Shape identifies one of the parametric surfaces the cloud morphs between.
type Shape uint8

const (
	ShapeSphere Shape = iota
	ShapeHelix
	ShapeTorus
)

// String returns the surface name.
func (s Shape) String() string {
	switch s {
	case ShapeSphere:
		return "sphere"
	case ShapeHelix:
		return "helix"
	case ShapeTorus:
		return "torus"
	}
	return "unknown"
}

// shapePair names the source and target surfaces interpolated during one
// morph phase.
type shapePair struct {
	src Shape
	dst Shape
}

// morphCycle maps each morph phase onto its surface pair. The cycle is
// torus → sphere → helix → torus.
var morphCycle = [phaseCount]shapePair{
	{src: ShapeTorus, dst: ShapeSphere},
	{src: ShapeSphere, dst: ShapeHelix},
	{src: ShapeHelix, dst: ShapeTorus},
}

// spherePoint maps (u, v) in [0,1) onto a sphere. u sweeps azimuth, v sweeps
// the polar angle pole to pole.
func spherePoint(u, v float32, p *Params) core.Vec3 {
	theta := u * 2 * math32.Pi
	phi := v * math32.Pi
	sinPhi, cosPhi := math32.Sincos(phi)
	sinTheta, cosTheta := math32.Sincos(theta)
	r := p.SphereRadius
	return core.Vec3{
		X: sinPhi * cosTheta * r,
		Y: cosPhi * r,
		Z: sinPhi * sinTheta * r,
	}
}

// helixPoint maps (u, v) onto a double helix. Points with v below 0.5 belong
// to the first strand, the rest to the second, offset by half a turn around
// the strand axis. The switch at v=0.5 is a hard seam; that is the
// double-helix structure, not a defect.
func helixPoint(u, v float32, p *Params) core.Vec3 {
	angle := u * 2 * math32.Pi * p.HelixTurns
	height := (v - 0.5) * p.HelixHeight

	sinA, cosA := math32.Sincos(angle)
	x := cosA * p.HelixRadius
	z := sinA * p.HelixRadius

	var strandOffset float32
	if v >= 0.5 {
		strandOffset = math32.Pi
	}
	sinS, cosS := math32.Sincos(angle*p.StrandGap + strandOffset)
	return core.Vec3{
		X: x + cosS*p.StrandRadius,
		Y: height,
		Z: z + sinS*p.StrandRadius,
	}
}

// torusPoint maps (u, v) onto a torus. u sweeps the main ring, v the tube.
func torusPoint(u, v float32, p *Params) core.Vec3 {
	mainAngle := u * 2 * math32.Pi
	tubeAngle := v * 2 * math32.Pi
	sinTube, cosTube := math32.Sincos(tubeAngle)
	sinMain, cosMain := math32.Sincos(mainAngle)
	ring := p.TorusRadius + p.TubeRadius*cosTube
	return core.Vec3{
		X: ring * cosMain,
		Y: p.TubeRadius * sinTube,
		Z: ring * sinMain,
	}
}

// surfacePoint evaluates the named surface at (u, v).
func surfacePoint(s Shape, u, v float32, p *Params) core.Vec3 {
	switch s {
	case ShapeSphere:
		return spherePoint(u, v, p)
	case ShapeHelix:
		return helixPoint(u, v, p)
	default:
		return torusPoint(u, v, p)
	}
}
