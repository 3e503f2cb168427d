//go:build ebiten

package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"morphcloud/internal/core"
	"morphcloud/internal/engine"
	"morphcloud/internal/render"
	"morphcloud/internal/ui"
)

const (
	orbitKeySpeed   = 0.03
	orbitDragSpeed  = 0.008
	zoomWheelSpeed  = 2.0
	pickRadius      = 12.0
	dragThresholdSq = 9.0
	scrubSpeed      = 0.01
)

// Game adapts the engine to the ebiten.Game interface: input, frame pacing,
// and drawing. All engine mutation happens inside Update, between
// evaluation passes.
type Game struct {
	eng     *engine.Engine
	cam     *render.Camera
	painter *render.CloudPainter
	hud     *ui.HUD

	width  int
	height int

	paused   bool
	tickOnce bool

	dragging   bool
	dragMoved  float32
	lastMouseX int
	lastMouseY int
}

// New constructs a Game around the provided engine.
func New(eng *engine.Engine, width, height int) *Game {
	return &Game{
		eng:     eng,
		cam:     render.NewCamera(width, height),
		painter: render.NewCloudPainter(eng.Points()),
		hud:     ui.NewHUD(eng),
		width:   width,
		height:  height,
	}
}

// Update handles per-frame input and advances the engine.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.eng.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		auto := g.eng.Config().Params.MorphAuto
		g.eng.SetBoolParameter("morph_auto", !auto)
	}
	// Manual scrub, only meaningful while auto-advance is off.
	if ebiten.IsKeyPressed(ebiten.KeyComma) {
		g.eng.Morph().SetProgress(g.eng.Morph().Progress() - scrubSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyPeriod) {
		g.eng.Morph().SetProgress(g.eng.Morph().Progress() + scrubSpeed)
	}

	g.handleOrbit()
	g.handlePick()
	g.hud.Update()

	if !g.paused || g.tickOnce {
		g.eng.Step(1 / float32(ebiten.TPS()))
		g.tickOnce = false
	}
	return nil
}

// handleOrbit applies keyboard and mouse-drag camera movement.
func (g *Game) handleOrbit() {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.cam.Orbit(-orbitKeySpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.cam.Orbit(orbitKeySpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.cam.Orbit(0, orbitKeySpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.cam.Orbit(0, -orbitKeySpeed)
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		g.cam.Zoom(-float32(wheelY) * zoomWheelSpeed)
	}

	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.dragMoved = 0
		g.lastMouseX, g.lastMouseY = mx, my
	}
	if g.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		dx := float32(mx - g.lastMouseX)
		dy := float32(my - g.lastMouseY)
		g.dragMoved += dx*dx + dy*dy
		if g.dragMoved > dragThresholdSq {
			g.cam.Orbit(dx*orbitDragSpeed, -dy*orbitDragSpeed)
		}
		g.lastMouseX, g.lastMouseY = mx, my
	}
}

// handlePick turns a click (a press-release without a drag) into a ripple on
// the nearest cloud point under the cursor.
func (g *Game) handlePick() {
	if !inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		return
	}
	wasDrag := g.dragging && g.dragMoved > dragThresholdSq
	g.dragging = false
	if wasDrag {
		return
	}
	mx, my := ebiten.CursorPosition()
	positions := g.eng.Positions()
	idx, ok := g.cam.NearestPoint(positions, float32(mx), float32(my), pickRadius)
	if !ok {
		return
	}
	at := core.Vec3{
		X: positions[idx*3],
		Y: positions[idx*3+1],
		Z: positions[idx*3+2],
	}
	g.eng.Splash(at)
}

// Draw renders the point cloud and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	p := g.eng.Config().Params
	g.painter.Draw(screen, g.eng.Positions(), g.eng.Colors(), g.cam, p.PointSize, p.Opacity)
	g.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
