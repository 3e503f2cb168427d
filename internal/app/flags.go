package app

import "flag"

// Options represents the command-line parameters for the viewer.
type Options struct {
	Grid    int
	Width   int
	Height  int
	TPS     int
	Workers int
}

// NewOptions returns Options populated with sensible defaults.
func NewOptions() *Options {
	return &Options{Grid: 200, Width: 960, Height: 720, TPS: 60, Workers: 0}
}

// Bind attaches the options to the provided FlagSet.
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.IntVar(&o.Grid, "grid", o.Grid, "grid side length N (NxN points)")
	fs.IntVar(&o.Width, "width", o.Width, "window width in pixels")
	fs.IntVar(&o.Height, "height", o.Height, "window height in pixels")
	fs.IntVar(&o.TPS, "tps", o.TPS, "ticks per second")
	fs.IntVar(&o.Workers, "workers", o.Workers, "evaluation goroutines (0 = all CPUs)")
}
