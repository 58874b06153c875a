package main

import (
	"errors"
	"flag"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spree/app"
	"github.com/plus3/spree/ecs"
	"github.com/plus3/spree/ecs/debugui"
	debugui_ebiten "github.com/plus3/spree/ecs/debugui/ebiten"
	"github.com/plus3/spree/gpu"
	"github.com/plus3/spree/gpu/headless"
	"github.com/plus3/spree/graphics"
	"github.com/plus3/spree/world"
)

func main() {
	width := flag.Int("width", 1280, "Window width.")
	height := flag.Int("height", 720, "Window height.")
	workers := flag.Int("workers", 0, "Scheduler worker count. 0 uses GOMAXPROCS.")
	tps := flag.Int("tps", 60, "Ticks per second.")
	flag.Parse()

	var opts []ecs.SchedulerOption
	if *workers > 0 {
		opts = append(opts, ecs.WithWorkers(*workers))
	}

	backend := headless.New(headless.WithAdapterName("spree-inspect"))
	surfaces, err := graphics.NewSurfaceManager(backend, nil, uint32(*width), uint32(*height), graphics.DefaultConfig())
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}

	imguiBackend := debugui_ebiten.NewImguiBackend("Spree Inspector", *width, *height)

	w := world.New(opts...)
	windows := debugui.Install(w.Storage, w.Scheduler)
	a := app.New(w, surfaces, graphics.NewFrameRenderer(graphics.DefaultConfig()), app.NewDemoState())
	defer a.Close()

	panel := newCameraPanel(a)
	w.Storage.SpawnComponents(debugui.ImguiItem{Render: panel.Render})

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Spree Inspector")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(*tps)

	g := &inspector{
		app:     a,
		backend: backend,
		imgui:   imguiBackend,
		input:   ecs.NewSingleton[debugui.ImguiInputState](w.Storage),
		stats:   windows.PerformanceStats,
		timer:   debugui.NewFrameTimer(),
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("Run failed: %v", err)
	}
	log.Printf("Inspector exiting after %d ticks", a.Ticks())
}

// inspector runs the app on the headless backend and shows each presented
// frame under the imgui overlay.
type inspector struct {
	app     *app.App
	backend *headless.Backend
	imgui   *debugui_ebiten.ImguiBackend
	input   *ecs.Singleton[debugui.ImguiInputState]
	poll    pollInput
	stats   *debugui.PerformanceStats
	timer   *debugui.FrameTimer

	pendingW, pendingH int
	frame              *ebiten.Image
}

func (g *inspector) Update() error {
	if w, h := g.pendingW, g.pendingH; w > 0 && h > 0 {
		g.pendingW, g.pendingH = 0, 0
		if err := g.app.HandleEvent(app.ResizedEvent{Width: uint32(w), Height: uint32(h)}); err != nil {
			return err
		}
	}

	if ebiten.IsWindowBeingClosed() {
		g.app.HandleEvent(app.CloseRequestedEvent{})
	}
	state := g.input.Get()
	for _, e := range g.poll.events(state.WantCaptureKeyboard, state.WantCaptureMouse) {
		if err := g.app.HandleEvent(e); err != nil {
			return err
		}
	}
	if g.app.ShouldExit() {
		return ebiten.Termination
	}

	g.stats.Record(g.timer.Tick())
	return g.imgui.Frame(g.app.Tick)
}

func (g *inspector) Draw(screen *ebiten.Image) {
	if img := g.backend.Surface().LastFrame(); img != nil {
		g.blit(screen, img)
	}
	g.imgui.Overlay(screen)
}

func (g *inspector) blit(screen *ebiten.Image, img *image.RGBA) {
	size := img.Bounds().Size()
	if g.frame == nil || g.frame.Bounds().Size() != size {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(size.X, size.Y)
	}
	g.frame.WritePixels(img.Pix)
	screen.DrawImage(g.frame, nil)
}

func (g *inspector) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Layout(outsideWidth, outsideHeight)
	if cw, ch := g.app.Surfaces.Size(); uint32(outsideWidth) != cw || uint32(outsideHeight) != ch {
		g.pendingW, g.pendingH = outsideWidth, outsideHeight
	}
	return outsideWidth, outsideHeight
}

func clearColor(c [4]float32) gpu.Color {
	return gpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}
