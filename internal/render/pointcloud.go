//go:build ebiten

package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"morphcloud/internal/core"
)

// CloudPainter draws the engine's position and color buffers as depth-sorted
// point sprites. Scratch slices are reused across frames.
type CloudPainter struct {
	order  []int
	depths []float32
	xs     []float32
	ys     []float32
}

// NewCloudPainter constructs a painter sized for the given point count.
func NewCloudPainter(points int) *CloudPainter {
	return &CloudPainter{
		order:  make([]int, 0, points),
		depths: make([]float32, points),
		xs:     make([]float32, points),
		ys:     make([]float32, points),
	}
}

// Draw projects every point through cam and paints far to near. pointSize is
// the sprite radius at the camera plane; opacity in [0,1] applies uniformly.
func (cp *CloudPainter) Draw(dst *ebiten.Image, positions, colors []float32, cam *Camera, pointSize, opacity float32) {
	points := len(positions) / 3
	cp.order = cp.order[:0]
	for i := 0; i < points; i++ {
		p := core.Vec3{
			X: positions[i*3],
			Y: positions[i*3+1],
			Z: positions[i*3+2],
		}
		x, y, depth, ok := cam.Project(p)
		if !ok {
			continue
		}
		cp.xs[i] = x
		cp.ys[i] = y
		cp.depths[i] = depth
		cp.order = append(cp.order, i)
	}
	sort.Slice(cp.order, func(a, b int) bool {
		return cp.depths[cp.order[a]] > cp.depths[cp.order[b]]
	})

	alpha := core.Clamp(opacity, 0, 1)
	for _, i := range cp.order {
		radius := pointSize * cam.Perspective / (cam.Perspective + cp.depths[i])
		if radius < 0.5 {
			radius = 0.5
		}
		// Premultiplied alpha, as ebiten expects.
		clr := color.RGBA{
			R: uint8(core.Clamp(colors[i*3], 0, 1) * alpha * 255),
			G: uint8(core.Clamp(colors[i*3+1], 0, 1) * alpha * 255),
			B: uint8(core.Clamp(colors[i*3+2], 0, 1) * alpha * 255),
			A: uint8(alpha * 255),
		}
		vector.DrawFilledCircle(dst, cp.xs[i], cp.ys[i], radius, clr, false)
	}
}
