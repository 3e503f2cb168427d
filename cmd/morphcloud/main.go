//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"morphcloud/internal/app"
	"morphcloud/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
)

// overrides collects repeatable -set key=value flags.
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
	opts := app.NewOptions()
	opts.Bind(flag.CommandLine)
	params := overrides{}
	flag.Var(params, "set", "override a parameter, e.g. -set morph_speed=0.005 (repeatable)")
	flag.Parse()

	cfg := engine.FromMap(params)
	cfg.GridSize = opts.Grid

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("bad configuration: %v", err)
	}
	if opts.Workers <= 0 {
		eng.SetWorkersAuto()
	} else {
		eng.SetWorkers(opts.Workers)
	}
	eng.Step(0) // fill the buffers before the first draw

	game := app.New(eng, opts.Width, opts.Height)

	ebiten.SetWindowTitle("morphcloud")
	ebiten.SetTPS(opts.TPS)
	ebiten.SetWindowSize(opts.Width, opts.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
