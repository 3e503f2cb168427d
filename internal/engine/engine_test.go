package engine

import (
	"math"
	"testing"

	"morphcloud/internal/core"
)

// quietConfig returns a small grid with the wave field switched off so base
// positions are undisturbed.
func quietConfig(n int) Config {
	cfg := DefaultConfig()
	cfg.GridSize = n
	cfg.Params.WaveStrength = 0
	cfg.Params.MorphAuto = false
	return cfg
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridSize = 1
	if _, err := New(cfg); err == nil {
		t.Fatal("New accepted a 1x1 grid")
	}
	cfg = DefaultConfig()
	cfg.Params.RippleDecay = 1.5
	if _, err := New(cfg); err == nil {
		t.Fatal("New accepted ripple decay above 1")
	}
	cfg = DefaultConfig()
	cfg.Params.MorphSpeed = float32(math.NaN())
	if _, err := New(cfg); err == nil {
		t.Fatal("New accepted NaN morph speed")
	}
}

func TestBlendZeroMatchesSourceSurface(t *testing.T) {
	cfg := quietConfig(8)
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e.Morph().SetProgress(0) // phase 0, blend 0: pure torus
	e.Step(0.016)

	n := e.Size()
	inv := 1 / float32(n-1)
	pos := e.Positions()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := torusPoint(float32(i)*inv, float32(j)*inv, &cfg.Params)
			idx := (i*n + j) * 3
			got := core.V3(pos[idx], pos[idx+1], pos[idx+2])
			if got != want {
				t.Fatalf("point (%d,%d) = %v, want torus %v", i, j, got, want)
			}
		}
	}
}

func TestBlendConvergesToTarget(t *testing.T) {
	cfg := quietConfig(6)
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e.Morph().SetProgress(0.9999) // phase 0, nearly all sphere
	e.Step(0.016)

	n := e.Size()
	inv := 1 / float32(n-1)
	pos := e.Positions()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := spherePoint(float32(i)*inv, float32(j)*inv, &cfg.Params)
			idx := (i*n + j) * 3
			got := core.V3(pos[idx], pos[idx+1], pos[idx+2])
			if !vecClose(got, want, 0.02) {
				t.Fatalf("point (%d,%d) = %v, want near sphere %v", i, j, got, want)
			}
		}
	}
}

func TestSphereCornerScenario(t *testing.T) {
	cfg := quietConfig(4)
	cfg.Params.SphereRadius = 10
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e.Morph().SetProgress(1) // phase 1, blend 0: pure sphere
	e.Step(0.016)

	pos := e.Positions()
	got := core.V3(pos[0], pos[1], pos[2])
	if !vecClose(got, core.V3(0, 10, 0), 1e-4) {
		t.Fatalf("corner point = %v, want (0, 10, 0)", got)
	}
}

func TestBuffersOverwrittenNotIntegrated(t *testing.T) {
	cfg := quietConfig(8)
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e.Morph().SetProgress(1.5)

	// Identical state twice over: frozen morph, zero dt, no ripples.
	e.Step(0)
	first := append([]float32(nil), e.Positions()...)
	firstColors := append([]float32(nil), e.Colors()...)
	e.Step(0)

	for i, v := range e.Positions() {
		if v != first[i] {
			t.Fatalf("position %d changed from %v to %v with frozen state", i, first[i], v)
		}
	}
	for i, v := range e.Colors() {
		if v != firstColors[i] {
			t.Fatalf("color %d changed from %v to %v with frozen state", i, firstColors[i], v)
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridSize = 16
	cfg.Params.MorphAuto = false

	serial, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	parallel.SetWorkers(4)

	serial.Morph().SetProgress(1.3)
	parallel.Morph().SetProgress(1.3)
	serial.Splash(core.V3(0, 0, 1))
	parallel.Splash(core.V3(0, 0, 1))
	for k := 0; k < 3; k++ {
		serial.Step(0.016)
		parallel.Step(0.016)
	}

	sp, pp := serial.Positions(), parallel.Positions()
	for i := range sp {
		if sp[i] != pp[i] {
			t.Fatalf("position %d: serial %v != parallel %v", i, sp[i], pp[i])
		}
	}
	sc, pc := serial.Colors(), parallel.Colors()
	for i := range sc {
		if sc[i] != pc[i] {
			t.Fatalf("color %d: serial %v != parallel %v", i, sc[i], pc[i])
		}
	}
}

func TestColorsWithinRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridSize = 12
	cfg.Params.WaveStrength = 3 // push lightness toward the clamp
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for k := 0; k < 5; k++ {
		e.Step(0.1)
	}
	for i, c := range e.Colors() {
		if c < 0 || c > 1 {
			t.Fatalf("color component %d = %v outside [0,1]", i, c)
		}
	}
}

func TestHueWrapsWithTime(t *testing.T) {
	p := DefaultConfig().Params
	p.ColorSpeed = 0.05

	r0, g0, b0 := pointColor(0, 0.4, 0.4, 2.0, 0, &p)
	// One full hue cycle later: 1/colorSpeed seconds.
	r1, g1, b1 := pointColor(0, 0.4, 0.4, 2.0+1/0.05, 0, &p)
	if math.Abs(float64(r0-r1)) > 1e-3 ||
		math.Abs(float64(g0-g1)) > 1e-3 ||
		math.Abs(float64(b0-b1)) > 1e-3 {
		t.Fatalf("color did not wrap over a full cycle: (%v,%v,%v) vs (%v,%v,%v)",
			r0, g0, b0, r1, g1, b1)
	}
}

func TestHelixPhaseStrandLightness(t *testing.T) {
	p := DefaultConfig().Params
	p.ColorSpeed = 0

	rLow, gLow, bLow := pointColor(1, 0.2, 0.2, 0, 0, &p)
	rHigh, gHigh, bHigh := pointColor(1, 0.2, 0.8, 0, 0, &p)
	lumLow := float64(rLow) + float64(gLow) + float64(bLow)
	lumHigh := float64(rHigh) + float64(gHigh) + float64(bHigh)
	if lumHigh <= lumLow {
		t.Fatalf("upper strand (%v) not brighter than lower (%v)", lumHigh, lumLow)
	}
}

func TestSplashSpawnsRippleNextStep(t *testing.T) {
	cfg := quietConfig(6)
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e.Splash(core.V3(0, 0, 11))
	if e.Ripples().Count() != 0 {
		t.Fatal("ripple appeared before the next Step")
	}
	e.Step(0.016)
	if e.Ripples().Count() != 1 {
		t.Fatalf("ripple count after Step = %d, want 1", e.Ripples().Count())
	}
	// Queue must have drained.
	e.Step(0.016)
	if e.Ripples().Count() != 1 {
		t.Fatalf("ripple count after second Step = %d, want 1", e.Ripples().Count())
	}
}

func TestDiagnosticsSampleMatchesBuffer(t *testing.T) {
	cfg := quietConfig(6)
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e.SetSampleIndex(7)
	e.Splash(core.V3(1, 0, 0))
	e.Step(0.016)

	d := e.Diagnostics()
	if d.SampleIndex != 7 {
		t.Fatalf("sample index = %d, want 7", d.SampleIndex)
	}
	pos := e.Positions()
	want := core.V3(pos[21], pos[22], pos[23])
	if d.Point != want {
		t.Fatalf("diagnostics point = %v, buffer has %v", d.Point, want)
	}
	if d.RippleCount != 1 || len(d.Ripples) != 1 {
		t.Fatalf("diagnostics ripples = %d/%d, want 1/1", d.RippleCount, len(d.Ripples))
	}
	if len(d.WaveContributions) != len(defaultWaves()) {
		t.Fatalf("wave contributions = %d, want %d",
			len(d.WaveContributions), len(defaultWaves()))
	}
	if d.String() == "" {
		t.Fatal("diagnostics String is empty")
	}
}

func TestSetFloatParameter(t *testing.T) {
	e, err := New(quietConfig(4))
	if err != nil {
		t.Fatal(err)
	}
	if !e.SetFloatParameter("sphere_radius", 14) {
		t.Fatal("valid sphere_radius update rejected")
	}
	if got := e.Config().Params.SphereRadius; got != 14 {
		t.Fatalf("sphere_radius = %v, want 14", got)
	}
	if e.SetFloatParameter("sphere_radius", math.Inf(1)) {
		t.Fatal("non-finite value accepted")
	}
	if e.SetFloatParameter("ripple_decay", 1.5) {
		t.Fatal("out-of-range ripple_decay accepted")
	}
	if e.SetFloatParameter("no_such_key", 1) {
		t.Fatal("unknown key accepted")
	}
	if got := e.Config().Params.SphereRadius; got != 14 {
		t.Fatalf("rejected updates disturbed config: sphere_radius = %v", got)
	}
}

func TestSetBoolParameter(t *testing.T) {
	e, err := New(quietConfig(4))
	if err != nil {
		t.Fatal(err)
	}
	if !e.SetBoolParameter("morph_auto", true) {
		t.Fatal("morph_auto toggle rejected")
	}
	if !e.Config().Params.MorphAuto {
		t.Fatal("morph_auto not applied")
	}
	if e.SetBoolParameter("wave_speed", true) {
		t.Fatal("bool setter accepted a float key")
	}
}

func TestResetClearsCrossFrameState(t *testing.T) {
	e, err := New(quietConfig(4))
	if err != nil {
		t.Fatal(err)
	}
	e.SetBoolParameter("morph_auto", true)
	e.Splash(core.V3(0, 1, 0))
	for k := 0; k < 10; k++ {
		e.Step(0.016)
	}
	if e.Elapsed() == 0 || e.Ripples().Count() == 0 {
		t.Fatal("engine did not accumulate state before Reset")
	}

	e.Reset()
	if e.Elapsed() != 0 {
		t.Fatalf("elapsed after Reset = %v, want 0", e.Elapsed())
	}
	if e.Ripples().Count() != 0 {
		t.Fatalf("ripple count after Reset = %d, want 0", e.Ripples().Count())
	}
	if e.Morph().Progress() != 0 {
		t.Fatalf("morph progress after Reset = %v, want 0", e.Morph().Progress())
	}
}
