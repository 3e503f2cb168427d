//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"morphcloud/internal/core"
	"morphcloud/internal/engine"
)

const (
	panelWidth = 230
	lineHeight = 14
	panelPadX  = 8
	panelPadY  = 16
)

// Provider is the engine surface the HUD reads and mutates.
type Provider interface {
	Parameters() core.ParameterSnapshot
	ParameterControls() []core.ParameterControl
	Diagnostics() engine.Diagnostics
	core.FloatParameterSetter
	core.BoolParameterSetter
}

// HUD renders the diagnostics block and the parameter panel, and owns the
// keyboard interaction for adjusting tunables.
type HUD struct {
	provider Provider
	controls []core.ParameterControl
	selected int

	showDiag  bool
	showPanel bool

	pixel *ebiten.Image
}

// NewHUD constructs a HUD bound to the given provider.
func NewHUD(p Provider) *HUD {
	h := &HUD{
		provider:  p,
		controls:  p.ParameterControls(),
		showDiag:  true,
		showPanel: true,
	}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	return h
}

// Update processes HUD key bindings: Tab cycles the selected control, minus
// and equal adjust it, D and P toggle the diagnostics block and the panel.
func (h *HUD) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		h.showDiag = !h.showDiag
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		h.showPanel = !h.showPanel
	}
	if len(h.controls) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			h.selected = (h.selected + len(h.controls) - 1) % len(h.controls)
		} else {
			h.selected = (h.selected + 1) % len(h.controls)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		h.adjust(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		h.adjust(1)
	}
}

// adjust nudges the selected control by direction*step, clamped to its
// bounds. Bool controls toggle regardless of direction.
func (h *HUD) adjust(direction float64) {
	ctrl := h.controls[h.selected]
	if ctrl.Type == core.ParamTypeBool {
		cur := h.currentBool(ctrl.Key)
		h.provider.SetBoolParameter(ctrl.Key, !cur)
		return
	}
	cur, ok := h.currentFloat(ctrl.Key)
	if !ok {
		return
	}
	next := cur + direction*ctrl.Step
	if ctrl.HasMin && next < ctrl.Min {
		next = ctrl.Min
	}
	if ctrl.HasMax && next > ctrl.Max {
		next = ctrl.Max
	}
	h.provider.SetFloatParameter(ctrl.Key, next)
}

// currentFloat looks the control's value up in the live snapshot.
func (h *HUD) currentFloat(key string) (float64, bool) {
	p, ok := h.lookup(key)
	if !ok {
		return 0, false
	}
	var v float64
	if _, err := fmt.Sscanf(p.Value, "%g", &v); err != nil {
		return 0, false
	}
	return v, true
}

func (h *HUD) currentBool(key string) bool {
	p, ok := h.lookup(key)
	return ok && p.Value == "true"
}

func (h *HUD) lookup(key string) (core.Parameter, bool) {
	snap := h.provider.Parameters()
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return core.Parameter{}, false
}

// Draw renders the HUD on top of the scene.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h.showDiag {
		h.drawDiagnostics(screen)
	}
	if h.showPanel {
		h.drawPanel(screen)
	}
}

// drawDiagnostics prints the sample-point record in the top-left corner.
func (h *HUD) drawDiagnostics(screen *ebiten.Image) {
	block := h.provider.Diagnostics().String()
	y := panelPadY
	for _, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
		text.Draw(screen, line, basicfont.Face7x13, panelPadX, y, color.White)
		y += lineHeight
	}
}

// drawPanel renders the parameter list down the right edge with the selected
// control highlighted.
func (h *HUD) drawPanel(screen *ebiten.Image) {
	w := screen.Bounds().Dx()
	x := w - panelWidth

	lines := len(h.controls) + 1
	h.fillRect(screen, x-panelPadX, 0, panelWidth+panelPadX, lines*lineHeight+panelPadY,
		color.RGBA{A: 160})

	y := panelPadY
	text.Draw(screen, "tab select  -/= adjust", basicfont.Face7x13, x, y, color.Gray{Y: 170})
	y += lineHeight
	for i, ctrl := range h.controls {
		marker := "  "
		clr := color.Color(color.Gray{Y: 200})
		if i == h.selected {
			marker = "> "
			clr = color.White
		}
		value := "--"
		if p, ok := h.lookup(ctrl.Key); ok {
			value = p.Value
		}
		line := fmt.Sprintf("%s%-17s %s", marker, ctrl.Label, value)
		text.Draw(screen, line, basicfont.Face7x13, x, y, clr)
		y += lineHeight
	}
}

// fillRect covers the panel background with a translucent quad.
func (h *HUD) fillRect(screen *ebiten.Image, x, y, w, ht int, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(ht))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(h.pixel, op)
}
