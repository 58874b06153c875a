package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/plus3/spree/app"
	"github.com/plus3/spree/desktop"
	"github.com/plus3/spree/ecs"
	"github.com/plus3/spree/gpu"
	"github.com/plus3/spree/gpu/webgpu"
	"github.com/plus3/spree/graphics"
	"github.com/plus3/spree/world"
)

func main() {
	width := flag.Int("width", 1280, "Initial window width in screen coordinates.")
	height := flag.Int("height", 720, "Initial window height in screen coordinates.")
	title := flag.String("title", "Spree", "Window title.")
	present := flag.String("present", "fifo", "Preferred present mode: fifo, fifo-relaxed, immediate or mailbox.")
	workers := flag.Int("workers", 0, "Scheduler worker count. 0 uses GOMAXPROCS.")
	backend := flag.String("backend", os.Getenv(webgpu.BackendEnv), "GPU backend: vulkan, metal, dx12 or gl. Empty picks the platform default.")
	fallback := flag.Bool("fallback", false, "Force the fallback (software) adapter.")
	verbose := flag.Bool("v", false, "Log with microsecond timestamps and file locations.")
	flag.Parse()

	if *verbose {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}

	mode, err := gpu.ParsePresentMode(*present)
	if err != nil {
		log.Fatalf("Invalid -present: %v", err)
	}

	cfg := graphics.DefaultConfig()
	cfg.PresentMode = mode
	cfg.Label = *title
	cfg.Open.Backend = *backend
	cfg.Open.ForceFallbackAdapter = *fallback

	var opts []ecs.SchedulerOption
	if *workers > 0 {
		opts = append(opts, ecs.WithWorkers(*workers))
	}
	w := world.New(opts...)
	log.Printf("Scheduler running %d workers", w.Scheduler.Workers())

	err = desktop.Run(desktop.Options{
		Width:    *width,
		Height:   *height,
		Title:    *title,
		Backend:  webgpu.New(),
		Graphics: cfg,
	}, w, app.NewDemoState())
	switch {
	case errors.Is(err, graphics.ErrInit):
		log.Fatalf("Startup failed: %v", err)
	case err != nil:
		log.Fatalf("Run failed: %v", err)
	}
	log.Println("Bye.")
}
