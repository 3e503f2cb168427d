package render

import (
	"math"
	"testing"

	"morphcloud/internal/core"
)

func TestProjectOriginHitsScreenCenter(t *testing.T) {
	cam := NewCamera(640, 480)
	x, y, _, ok := cam.Project(core.Vec3{})
	if !ok {
		t.Fatal("origin not projectable")
	}
	if math.Abs(float64(x-320)) > 1e-3 || math.Abs(float64(y-240)) > 1e-3 {
		t.Fatalf("origin projected to (%v, %v), want (320, 240)", x, y)
	}
}

func TestProjectDepthOrdering(t *testing.T) {
	cam := NewCamera(640, 480)
	cam.Yaw = 0
	cam.Pitch = 0
	_, _, nearDepth, ok := cam.Project(core.V3(0, 0, -5))
	if !ok {
		t.Fatal("near point not projectable")
	}
	_, _, farDepth, ok := cam.Project(core.V3(0, 0, 5))
	if !ok {
		t.Fatal("far point not projectable")
	}
	if nearDepth >= farDepth {
		t.Fatalf("near depth %v not less than far depth %v", nearDepth, farDepth)
	}
}

func TestProjectRejectsBehindCamera(t *testing.T) {
	cam := NewCamera(640, 480)
	cam.Yaw = 0
	cam.Pitch = 0
	cam.Distance = 10
	// A point far behind the camera plane.
	if _, _, _, ok := cam.Project(core.V3(0, 0, -1000)); ok {
		t.Fatal("point behind the camera was projected")
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	cam := NewCamera(640, 480)
	cam.Orbit(0, 10)
	if cam.Pitch > pitchLimit {
		t.Fatalf("pitch %v exceeds limit %v", cam.Pitch, pitchLimit)
	}
	cam.Orbit(0, -20)
	if cam.Pitch < -pitchLimit {
		t.Fatalf("pitch %v below limit %v", cam.Pitch, -pitchLimit)
	}
}

func TestZoomFloor(t *testing.T) {
	cam := NewCamera(640, 480)
	cam.Zoom(-1000)
	if cam.Distance < 5 {
		t.Fatalf("distance %v fell below the floor", cam.Distance)
	}
}

func TestNearestPointPicksFrontSurface(t *testing.T) {
	cam := NewCamera(640, 480)
	cam.Yaw = 0
	cam.Pitch = 0

	// Two points on the view axis; both project to the center, the one with
	// smaller Z is nearer the camera.
	positions := []float32{
		0, 0, 8, // far
		0, 0, -8, // near
	}
	idx, ok := cam.NearestPoint(positions, 320, 240, 5)
	if !ok {
		t.Fatal("no point picked at screen center")
	}
	if idx != 1 {
		t.Fatalf("picked index %d, want the nearer point 1", idx)
	}
}

func TestNearestPointRespectsRadius(t *testing.T) {
	cam := NewCamera(640, 480)
	cam.Yaw = 0
	cam.Pitch = 0
	positions := []float32{0, 0, 0}
	if _, ok := cam.NearestPoint(positions, 0, 0, 10); ok {
		t.Fatal("picked a point far outside the search radius")
	}
}
