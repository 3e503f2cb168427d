// cloud-bench runs the morph engine headless for a fixed number of frames
// and reports evaluation throughput. Useful for sizing the grid and worker
// count on a target machine without any GUI in the way.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"morphcloud/internal/core"
	"morphcloud/internal/engine"
)

type overrides map[string]string

func (o overrides) String() string { return "" }

func (o overrides) Set(arg string) error {
	key, value, found := strings.Cut(arg, "=")
	if !found || key == "" {
		return fmt.Errorf("want key=value, got %q", arg)
	}
	o[key] = value
	return nil
}

func main() {
	grid := flag.Int("grid", 200, "grid side length N (NxN points)")
	frames := flag.Int("frames", 600, "frames to evaluate")
	workers := flag.Int("workers", runtime.NumCPU(), "evaluation goroutines")
	tps := flag.Int("tps", 60, "simulated ticks per second (sets the frame dt)")
	splashEvery := flag.Int("splash-every", 0, "spawn a synthetic ripple every K frames (0 = none)")
	realtime := flag.Bool("realtime", false, "pace frames at -tps instead of free-running")
	params := overrides{}
	flag.Var(params, "set", "override a parameter, e.g. -set morph_speed=0.005 (repeatable)")
	flag.Parse()

	cfg := engine.FromMap(params)
	cfg.GridSize = *grid

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("bad configuration: %v", err)
	}
	eng.SetWorkers(*workers)

	pacer := core.NewFixedStep(*tps)
	dt := pacer.DeltaSeconds()

	// Splash origins rotate through the axes so ripples overlap unevenly,
	// which is the expensive case.
	origins := []core.Vec3{
		core.V3(0, 0, 1),
		core.V3(0, 1, 0),
		core.V3(1, 0, 0),
	}

	start := time.Now()
	for frame := 0; frame < *frames; frame++ {
		if *splashEvery > 0 && frame%*splashEvery == 0 {
			eng.Splash(origins[(frame / *splashEvery)%len(origins)])
		}
		if *realtime {
			for !pacer.ShouldStep() {
				time.Sleep(time.Millisecond)
			}
		}
		eng.Step(dt)
	}
	elapsed := time.Since(start)

	points := eng.Points()
	fmt.Printf("grid %dx%d (%d points), %d workers\n", *grid, *grid, points, *workers)
	fmt.Printf("%d frames in %v (%.1f fps, %.2f Mpoint/s)\n",
		*frames, elapsed.Round(time.Millisecond),
		float64(*frames)/elapsed.Seconds(),
		float64(points)*float64(*frames)/elapsed.Seconds()/1e6)
	fmt.Printf("live ripples at end: %d\n", eng.Ripples().Count())
	fmt.Println()
	fmt.Print(eng.Diagnostics())
}
